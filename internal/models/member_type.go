package models

import "github.com/google/uuid"

// MemberType is the schema members are created from.
type MemberType struct {
	ID            int64          `json:"id" db:"id"`
	Key           uuid.UUID      `json:"key" db:"typeKey"`
	Alias         string         `json:"alias" db:"alias"`
	Name          string         `json:"name" db:"name"`
	Icon          string         `json:"icon" db:"icon"`
	Thumbnail     string         `json:"thumbnail" db:"thumbnail"`
	Description   string         `json:"description" db:"description"`
	Level         int            `json:"level" db:"level"`
	AllowAtRoot   bool           `json:"allow_at_root" db:"allowAtRoot"`
	IsListView    bool           `json:"is_list_view" db:"isListView"`
	PropertyTypes []PropertyType `json:"property_types"`
	Tabs          []PropertyTab  `json:"tabs"`
}

// PropertyType is one property definition of a member type.
type PropertyType struct {
	ID               int64     `json:"id" db:"id"`
	Key              uuid.UUID `json:"key" db:"typeKey"`
	Alias            string    `json:"alias" db:"Alias"`
	Name             string    `json:"name" db:"Name"`
	Description      string    `json:"description" db:"Description"`
	EditorAlias      string    `json:"editor_alias" db:"editorAlias"`
	DataTypeID       int64     `json:"data_type_id" db:"dataTypeId"`
	Mandatory        bool      `json:"mandatory" db:"mandatory"`
	ValidationRegExp string    `json:"validation_reg_exp" db:"validationRegExp"`
	SortOrder        int       `json:"sort_order" db:"sortOrder"`
}

// PropertyTab groups property types for editing. A tab owns the properties
// whose aliases it lists.
type PropertyTab struct {
	ID              int64     `json:"id" db:"id"`
	Key             uuid.UUID `json:"key" db:"groupKey"`
	Name            string    `json:"name" db:"text"`
	SortOrder       int       `json:"sort_order" db:"sortorder"`
	PropertyAliases []string  `json:"property_aliases"`
}

// Contains reports whether the tab owns the property with the given alias.
func (t *PropertyTab) Contains(alias string) bool {
	for _, a := range t.PropertyAliases {
		if a == alias {
			return true
		}
	}
	return false
}

// DataType is a configured property editor.
type DataType struct {
	ID           int64              `json:"id" db:"nodeId"`
	Key          uuid.UUID          `json:"key" db:"dataTypeKey"`
	Name         string             `json:"name" db:"name"`
	EditorAlias  string             `json:"editor_alias" db:"propertyEditorAlias"`
	DatabaseType string             `json:"database_type" db:"dbType"`
	PreValues    []DataTypePreValue `json:"pre_values"`
}

// DataTypePreValue is one configuration entry of a data type.
type DataTypePreValue struct {
	Alias     string `json:"alias" db:"alias"`
	Value     string `json:"value" db:"value"`
	SortOrder int    `json:"sort_order" db:"sortorder"`
}
