package models

import (
	"time"

	"github.com/google/uuid"
)

// Member is a front-end account of the site.
type Member struct {
	ID                     int64            `json:"id" db:"nodeId"`
	Key                    uuid.UUID        `json:"key" db:"memberKey"`
	Name                   string           `json:"name" db:"memberName"`
	Username               string           `json:"username" db:"LoginName"`
	Email                  string           `json:"email" db:"Email"`
	RawPassword            string           `json:"-" db:"Password"`
	IsApproved             bool             `json:"is_approved" db:"isApproved"`
	IsLockedOut            bool             `json:"is_locked_out" db:"isLockedOut"`
	FailedPasswordAttempts int              `json:"failed_password_attempts" db:"failedPasswordAttempts"`
	LastLoginDate          time.Time        `json:"last_login_date" db:"lastLoginDate"`
	LastPasswordChangeDate time.Time        `json:"last_password_change_date" db:"lastPasswordChangeDate"`
	LastLockoutDate        time.Time        `json:"last_lockout_date" db:"lastLockoutDate"`
	CreateDate             time.Time        `json:"create_date" db:"createDate"`
	UpdateDate             time.Time        `json:"update_date" db:"updateDate"`
	Properties             []MemberProperty `json:"properties"`

	// Roles holds the names of the member groups the member belongs to.
	Roles []string `json:"roles"`
}

// MemberProperty is one custom property value of a member. Value is opaque and
// carries whatever the storage column held: string, int64, float64, time.Time or nil.
type MemberProperty struct {
	Alias string `json:"alias"`
	Value any    `json:"value"`
}

// MemberGroup is a role that members can be assigned to.
type MemberGroup struct {
	ID         int64     `json:"id" db:"id"`
	Key        uuid.UUID `json:"key" db:"groupKey"`
	Name       string    `json:"name" db:"groupName"`
	CreateDate time.Time `json:"create_date" db:"createDate"`
	UpdateDate time.Time `json:"update_date" db:"updateDate"`
}
