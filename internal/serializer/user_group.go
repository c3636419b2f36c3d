package serializer

import (
	"encoding/xml"
	"strings"

	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

type userGroupDocument struct {
	XMLName             xml.Name      `xml:"UserGroup"`
	Key                 string        `xml:"Key,attr"`
	Alias               string        `xml:"Alias,attr"`
	Info                userGroupInfo `xml:"Info"`
	AssignedPermissions string        `xml:"AssignedPermissions"`
}

type userGroupInfo struct {
	Sections       string `xml:"Sections"`
	Icon           string `xml:"Icon"`
	Name           string `xml:"Name"`
	StartContentID string `xml:"StartContentId"`
	StartMediaID   string `xml:"StartMediaId"`
	Permission     string `xml:"Permission"`
}

// WriteUserGroup stores group in dir under its name. Sections and permissions
// are written comma-joined.
func WriteUserGroup(dir string, group *models.UserGroup) (string, error) {
	if group == nil {
		return "", nil
	}

	doc := userGroupDocument{
		Key:   group.Key.String(),
		Alias: group.Alias,
		Info: userGroupInfo{
			Sections:       strings.Join(group.AllowedSections, ","),
			Icon:           group.Icon,
			Name:           group.Name,
			StartContentID: group.StartContentID.String(),
			StartMediaID:   group.StartMediaID.String(),
			Permission:     strings.Join(group.Permissions, ","),
		},
	}

	return writeDocument(dir, group.Name, doc)
}
