package serializer

import (
	"encoding/xml"
	"strings"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

type memberGroupDocument struct {
	XMLName    xml.Name `xml:"MemberGroup"`
	Key        string   `xml:"Key,attr"`
	Alias      string   `xml:"Alias,attr"`
	Name       string   `xml:"Name"`
	CreateDate string   `xml:"CreateDate"`
	UpdateDate string   `xml:"UpdateDate"`
}

// WriteMemberGroup stores group in dir under its name. The alias attribute is
// derived from the name with SafeAlias, or from the key when the name has no
// letters.
func WriteMemberGroup(dir string, group *models.MemberGroup) (string, error) {
	if group == nil {
		return "", nil
	}

	doc := memberGroupDocument{
		Key:        group.Key.String(),
		Alias:      memberGroupAlias(group),
		Name:       group.Name,
		CreateDate: formatDate(group.CreateDate),
		UpdateDate: formatDate(group.UpdateDate),
	}

	return writeDocument(dir, group.Name, doc)
}

func memberGroupAlias(group *models.MemberGroup) string {
	if alias := SafeAlias(group.Name); alias != "" {
		return alias
	}
	return constants.MemberGroupAliasPrefix + strings.ReplaceAll(group.Key.String(), "-", "")
}
