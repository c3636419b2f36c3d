package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

func TestUser_HasGroup(t *testing.T) {
	user := &models.User{
		Username: "editor",
		Groups:   []string{"editor", "translator"},
	}

	assert.True(t, user.HasGroup("translator"))
	assert.False(t, user.HasGroup("admin"))
}

func TestPropertyTab_Contains(t *testing.T) {
	tab := &models.PropertyTab{
		Name:            "Profile",
		PropertyAliases: []string{"firstName", "lastName"},
	}

	assert.True(t, tab.Contains("lastName"))
	assert.False(t, tab.Contains("LastName"), "aliases are matched case-sensitively")

	var empty models.PropertyTab
	assert.False(t, empty.Contains("firstName"))
}
