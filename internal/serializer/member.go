package serializer

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

type memberDocument struct {
	XMLName                xml.Name         `xml:"Member"`
	Key                    string           `xml:"Key"`
	Name                   string           `xml:"Name"`
	Username               string           `xml:"Username"`
	Email                  string           `xml:"Email"`
	PasswordHash           string           `xml:"PasswordHash"`
	PasswordSalt           string           `xml:"PasswordSalt"`
	IsApproved             bool             `xml:"IsApproved"`
	IsLockedOut            bool             `xml:"IsLockedOut"`
	LastLoginDate          string           `xml:"LastLoginDate"`
	LastPasswordChangeDate string           `xml:"LastPasswordChangeDate"`
	LastLockoutDate        string           `xml:"LastLockoutDate"`
	FailedPasswordAttempts int              `xml:"FailedPasswordAttempts"`
	Properties             memberProperties `xml:"Properties"`
	Groups                 memberRoles      `xml:"Groups"`
}

type memberProperties struct {
	Property []memberProperty `xml:"Property"`
}

type memberRoles struct {
	Group []string `xml:"Group"`
}

type memberProperty struct {
	Alias string `xml:"alias,attr"`
	Value string `xml:"Value"`
}

// WriteMember stores member in dir under its email address. The stored
// password value is copied as is; the salt element stays empty because the
// hash already embeds it.
func WriteMember(dir string, member *models.Member) (string, error) {
	if member == nil {
		return "", nil
	}

	doc := memberDocument{
		Key:                    member.Key.String(),
		Name:                   member.Name,
		Username:               member.Username,
		Email:                  member.Email,
		PasswordHash:           member.RawPassword,
		IsApproved:             member.IsApproved,
		IsLockedOut:            member.IsLockedOut,
		LastLoginDate:          formatDate(member.LastLoginDate),
		LastPasswordChangeDate: formatDate(member.LastPasswordChangeDate),
		LastLockoutDate:        formatDate(member.LastLockoutDate),
		FailedPasswordAttempts: member.FailedPasswordAttempts,
		Groups:                 memberRoles{Group: member.Roles},
	}
	for _, p := range member.Properties {
		doc.Properties.Property = append(doc.Properties.Property, memberProperty{Alias: p.Alias, Value: formatValue(p.Value)})
	}

	return writeDocument(dir, member.Email, doc)
}

// formatValue renders an opaque property value in its natural string form.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return formatDate(val)
	case *time.Time:
		if val == nil {
			return ""
		}
		return formatDate(*val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
