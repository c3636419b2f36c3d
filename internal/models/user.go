// Package models defines the entities read from the CMS database and written
// into a migration pack, plus the result of a pack run.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a back-office account of the CMS.
type User struct {
	ID                     int64      `json:"id" db:"id"`
	Key                    uuid.UUID  `json:"key" db:"userKey"`
	Username               string     `json:"username" db:"userLogin"`
	Name                   string     `json:"name" db:"userName"`
	Email                  string     `json:"email" db:"userEmail"`
	Comments               string     `json:"comments" db:"comments"`
	RawPassword            string     `json:"-" db:"userPassword"`
	IsApproved             bool       `json:"is_approved"`   // negation of userDisabled
	IsLockedOut            bool       `json:"is_locked_out"` // userNoConsole
	FailedPasswordAttempts int        `json:"failed_password_attempts" db:"failedLoginAttempts"`
	Language               string     `json:"language" db:"userLanguage"`
	EmailConfirmedDate     *time.Time `json:"email_confirmed_date,omitempty" db:"emailConfirmedDate"`

	// Groups holds the aliases of the groups the user belongs to.
	Groups []string `json:"groups"`
}

// UserGroup is a named set of back-office permissions.
type UserGroup struct {
	ID              int64     `json:"id" db:"id"`
	Key             uuid.UUID `json:"key" db:"userGroupKey"`
	Alias           string    `json:"alias" db:"userGroupAlias"`
	Name            string    `json:"name" db:"userGroupName"`
	Icon            string    `json:"icon" db:"icon"`
	AllowedSections []string  `json:"allowed_sections"`
	Permissions     []string  `json:"permissions"`

	// StartContentID and StartMediaID are the keys of the group's start nodes.
	// The zero UUID means the group starts at the root.
	StartContentID uuid.UUID `json:"start_content_id"`
	StartMediaID   uuid.UUID `json:"start_media_id"`
}

// HasGroup reports whether the user belongs to the group with the given alias.
func (u *User) HasGroup(alias string) bool {
	for _, g := range u.Groups {
		if g == alias {
			return true
		}
	}
	return false
}
