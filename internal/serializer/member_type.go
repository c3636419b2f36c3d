package serializer

import (
	"encoding/xml"

	"github.com/google/uuid"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

// DataTypeLookup resolves the key of a data type from its numeric id.
type DataTypeLookup interface {
	DataTypeKey(id int64) (uuid.UUID, bool)
}

// DataTypeKeys is a DataTypeLookup backed by a map.
type DataTypeKeys map[int64]uuid.UUID

// DataTypeKey implements DataTypeLookup.
func (k DataTypeKeys) DataTypeKey(id int64) (uuid.UUID, bool) {
	key, ok := k[id]
	return key, ok
}

type memberTypeDocument struct {
	XMLName    xml.Name          `xml:"MemberType"`
	Key        string            `xml:"Key,attr"`
	Alias      string            `xml:"Alias,attr"`
	Level      int               `xml:"Level,attr"`
	Info       memberTypeInfo    `xml:"Info"`
	Properties genericProperties `xml:"GenericProperties"`
	Tabs       memberTypeTabs    `xml:"Tabs"`
}

type memberTypeInfo struct {
	Name        string `xml:"Name"`
	Icon        string `xml:"Icon"`
	Thumbnail   string `xml:"Thumbnail"`
	Description string `xml:"Description"`
	AllowAtRoot bool   `xml:"AllowAtRoot"`
	IsListView  bool   `xml:"IsListView"`
}

type genericProperties struct {
	Property []genericProperty `xml:"GenericProperty"`
}

type memberTypeTabs struct {
	Tab []memberTypeTab `xml:"Tab"`
}

type genericProperty struct {
	Key         string `xml:"Key"`
	Name        string `xml:"Name"`
	Alias       string `xml:"Alias"`
	Definition  string `xml:"Definition,omitempty"`
	Type        string `xml:"Type"`
	Mandatory   bool   `xml:"Mandatory"`
	Validation  string `xml:"Validation"`
	Description string `xml:"Description"`
	SortOrder   int    `xml:"SortOrder"`
	Tab         string `xml:"Tab"`
}

type memberTypeTab struct {
	Key       string `xml:"Key"`
	Caption   string `xml:"Caption"`
	SortOrder int    `xml:"SortOrder"`
}

// OwningTab returns the name of the first tab of memberType that lists the
// property, or "unknown" when no tab claims it.
func OwningTab(memberType *models.MemberType, property *models.PropertyType) string {
	if memberType == nil || property == nil {
		return constants.UnknownTab
	}
	for i := range memberType.Tabs {
		if memberType.Tabs[i].Contains(property.Alias) {
			return memberType.Tabs[i].Name
		}
	}
	return constants.UnknownTab
}

// WriteMemberType stores memberType in dir under its alias. Property
// definitions reference their data type by key when lookup knows it.
func WriteMemberType(dir string, memberType *models.MemberType, lookup DataTypeLookup) (string, error) {
	if memberType == nil {
		return "", nil
	}

	doc := memberTypeDocument{
		Key:   memberType.Key.String(),
		Alias: memberType.Alias,
		Level: memberType.Level,
		Info: memberTypeInfo{
			Name:        memberType.Name,
			Icon:        memberType.Icon,
			Thumbnail:   memberType.Thumbnail,
			Description: memberType.Description,
			AllowAtRoot: memberType.AllowAtRoot,
			IsListView:  memberType.IsListView,
		},
	}

	for i := range memberType.PropertyTypes {
		p := &memberType.PropertyTypes[i]
		gp := genericProperty{
			Key:         p.Key.String(),
			Name:        p.Name,
			Alias:       p.Alias,
			Type:        p.EditorAlias,
			Mandatory:   p.Mandatory,
			Validation:  p.ValidationRegExp,
			Description: p.Description,
			SortOrder:   p.SortOrder,
			Tab:         OwningTab(memberType, p),
		}
		if lookup != nil {
			if key, ok := lookup.DataTypeKey(p.DataTypeID); ok {
				gp.Definition = key.String()
			}
		}
		doc.Properties.Property = append(doc.Properties.Property, gp)
	}

	for _, tab := range memberType.Tabs {
		doc.Tabs.Tab = append(doc.Tabs.Tab, memberTypeTab{
			Key:       tab.Key.String(),
			Caption:   tab.Name,
			SortOrder: tab.SortOrder,
		})
	}

	return writeDocument(dir, memberType.Alias, doc)
}
