package constants

// Layout of a migration pack working directory.
const (
	DataFolder         = "data"
	SiteFolder         = "_site"
	UsersFolder        = "Users"
	UserGroupsFolder   = "UserGroups"
	MembersFolder      = "Members"
	MemberGroupsFolder = "MemberGroups"
	MemberTypesFolder  = "MemberTypes"
	DataTypesFolder    = "DataTypes"
	SiteConfigFolder   = "config"
	SiteViewsFolder    = "views"
	SiteCSSFolder      = "css"
	SiteScriptsFolder  = "scripts"
	GridConfigFileName = "grid.editors.config.js"
	PackageManifest    = "package.manifest"
)

// Document naming.
const (
	DocumentExtension = ".config"
	UntitledFileName  = "untitled"
	UnknownTab        = "unknown"

	MemberGroupAliasPrefix = "group"
)

// Archive naming. The layout is a Go reference time for yyyy_MM_dd_HHmmss.
const (
	ArchivePrefix     = "migration_data_"
	ArchiveTimeLayout = "2006_01_02_150405"
	ArchiveExtension  = ".zip"
)

// Pack states logged while a run progresses.
const (
	PackStateCreated    = "created"
	PackStatePopulating = "populating"
	PackStateArchiving  = "archiving"
	PackStateCleaned    = "cleaned"
	PackStateFailed     = "failed"
)

// File modes for created directories and documents.
const (
	DirPermission  = 0o755
	FilePermission = 0o644
)
