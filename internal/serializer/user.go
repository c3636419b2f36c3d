package serializer

import (
	"encoding/xml"

	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

type userDocument struct {
	XMLName xml.Name      `xml:"User"`
	Key     string        `xml:"Key,attr"`
	Alias   string        `xml:"Alias,attr"`
	Info    userInfo      `xml:"Info"`
	Groups  userGroupRefs `xml:"Groups"`
}

type userInfo struct {
	Comments       string `xml:"Comments"`
	Name           string `xml:"Name"`
	Username       string `xml:"Username"`
	Email          string `xml:"Email"`
	EmailConfirmed string `xml:"EmailConfirmed"`
	FailedAttempts int    `xml:"FailedAttempts"`
	Approved       bool   `xml:"Approved"`
	LockedOut      bool   `xml:"LockedOut"`
	Language       string `xml:"Language"`
	RawPassword    string `xml:"RawPassword"`
}

type userGroupRefs struct {
	Group []userGroupRef `xml:"Group"`
}

type userGroupRef struct {
	Alias string `xml:"Alias"`
}

// WriteUser stores user in dir under its email address. A nil user writes
// nothing. It returns the path of the written document.
func WriteUser(dir string, user *models.User) (string, error) {
	if user == nil {
		return "", nil
	}

	doc := userDocument{
		Key:   user.Key.String(),
		Alias: user.Username,
		Info: userInfo{
			Comments:       user.Comments,
			Name:           user.Name,
			Username:       user.Username,
			Email:          user.Email,
			FailedAttempts: user.FailedPasswordAttempts,
			Approved:       user.IsApproved,
			LockedOut:      user.IsLockedOut,
			Language:       user.Language,
			RawPassword:    user.RawPassword,
		},
	}
	if user.EmailConfirmedDate != nil {
		doc.Info.EmailConfirmed = formatDate(*user.EmailConfirmedDate)
	}
	for _, alias := range user.Groups {
		doc.Groups.Group = append(doc.Groups.Group, userGroupRef{Alias: alias})
	}

	return writeDocument(dir, user.Email, doc)
}
