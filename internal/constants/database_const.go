// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file names the tables of the CMS database that the
// exporter reads. Identifiers are unquoted so the same statements run on MySQL
// and PostgreSQL.
package constants

// User tables.
const (
	TableUsers            = "umbracoUser"
	TableUserGroups       = "umbracoUserGroup"
	TableUserGroupApps    = "umbracoUserGroup2App"
	TableUserToUserGroups = "umbracoUser2UserGroup"
)

// Member tables.
const (
	TableMembers              = "cmsMember"
	TableMemberProperties     = "cmsMemberProperty"
	TableMemberGroups         = "cmsMemberGroup"
	TableMemberToMemberGroups = "cmsMember2MemberGroup"
)

// Content type and data type tables.
const (
	TableMemberTypes        = "cmsMemberType"
	TablePropertyTypeGroups = "cmsPropertyTypeGroup"
	TablePropertyTypes      = "cmsPropertyType"
	TableDataTypes          = "cmsDataType"
	TableDataTypePreValues  = "cmsDataTypePreValues"
)

// Sensitive column fragments. Query arguments are redacted in logs when a
// statement mentions one of them.
const (
	ColumnPassword = "password"
	ColumnSecret   = "secret"
	ColumnToken    = "token"
)
