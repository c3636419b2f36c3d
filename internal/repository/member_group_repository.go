package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/database"
	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

// MemberGroupRepository defines methods for reading member groups
type MemberGroupRepository interface {
	GetAllMemberGroups(ctx context.Context) ([]*models.MemberGroup, error)
}

// SQLMemberGroupRepository reads member groups from the CMS tables
type SQLMemberGroupRepository struct {
	db *database.Pool
}

// NewMemberGroupRepository creates a new MemberGroupRepository
func NewMemberGroupRepository(db *database.Pool) MemberGroupRepository {
	return &SQLMemberGroupRepository{
		db: db,
	}
}

var selectMemberGroupsQuery = `
        SELECT id, groupKey, groupName, createDate, updateDate
        FROM ` + constants.TableMemberGroups + `
        ORDER BY id
    `

// GetAllMemberGroups returns every member group
func (r *SQLMemberGroupRepository) GetAllMemberGroups(ctx context.Context) ([]*models.MemberGroup, error) {
	groups, err := listMemberGroups(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get member groups: %w", err)
	}
	return groups, nil
}

func listMemberGroups(ctx context.Context, q database.Querier) ([]*models.MemberGroup, error) {
	var groups []*models.MemberGroup

	err := queryAll(ctx, q, selectMemberGroupsQuery, func(rows *sql.Rows) error {
		group := &models.MemberGroup{}
		var created, updated sql.NullTime

		if err := rows.Scan(&group.ID, &group.Key, &group.Name, &created, &updated); err != nil {
			return fmt.Errorf("failed to scan member group: %w", err)
		}

		group.CreateDate = timeOrZero(created)
		group.UpdateDate = timeOrZero(updated)

		groups = append(groups, group)
		return nil
	})

	return groups, err
}
