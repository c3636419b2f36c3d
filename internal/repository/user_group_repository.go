package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/database"
	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

// UserGroupRepository defines methods for reading back-office user groups
type UserGroupRepository interface {
	GetAllUserGroups(ctx context.Context) ([]*models.UserGroup, error)
}

// SQLUserGroupRepository reads user groups from the CMS tables
type SQLUserGroupRepository struct {
	db *database.Pool
}

// NewUserGroupRepository creates a new UserGroupRepository
func NewUserGroupRepository(db *database.Pool) UserGroupRepository {
	return &SQLUserGroupRepository{
		db: db,
	}
}

var (
	selectUserGroupsQuery = `
        SELECT id, userGroupKey, userGroupAlias, userGroupName, icon, userGroupDefaultPermissions
        FROM ` + constants.TableUserGroups + `
        ORDER BY id
    `

	selectUserGroupAppsQuery = `
        SELECT userGroupId, app
        FROM ` + constants.TableUserGroupApps + `
        ORDER BY userGroupId, app
    `
)

// GetAllUserGroups returns every user group with its allowed sections
func (r *SQLUserGroupRepository) GetAllUserGroups(ctx context.Context) ([]*models.UserGroup, error) {
	var groups []*models.UserGroup

	err := r.db.ReadTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		groups, err = listUserGroups(ctx, tx)
		if err != nil {
			return err
		}

		byID := make(map[int64]*models.UserGroup, len(groups))
		for _, g := range groups {
			byID[g.ID] = g
		}

		return queryAll(ctx, tx, selectUserGroupAppsQuery, func(rows *sql.Rows) error {
			var (
				groupID int64
				app     string
			)
			if err := rows.Scan(&groupID, &app); err != nil {
				return fmt.Errorf("failed to scan user group section: %w", err)
			}
			if group, ok := byID[groupID]; ok {
				group.AllowedSections = append(group.AllowedSections, app)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user groups: %w", err)
	}

	return groups, nil
}

func listUserGroups(ctx context.Context, q database.Querier) ([]*models.UserGroup, error) {
	var groups []*models.UserGroup

	err := queryAll(ctx, q, selectUserGroupsQuery, func(rows *sql.Rows) error {
		group := &models.UserGroup{}
		var icon, permissions sql.NullString

		if err := rows.Scan(
			&group.ID,
			&group.Key,
			&group.Alias,
			&group.Name,
			&icon,
			&permissions,
		); err != nil {
			return fmt.Errorf("failed to scan user group: %w", err)
		}

		group.Icon = icon.String
		group.Permissions = splitPermissions(permissions.String)

		groups = append(groups, group)
		return nil
	})

	return groups, err
}

// splitPermissions expands the stored permission letters, one entry per letter
func splitPermissions(s string) []string {
	if s == "" {
		return nil
	}

	permissions := make([]string, 0, len(s))
	for _, r := range s {
		permissions = append(permissions, string(r))
	}
	return permissions
}
