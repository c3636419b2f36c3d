package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/database"
	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

// MemberRepository defines methods for reading front-end members
type MemberRepository interface {
	GetAllMembers(ctx context.Context) ([]*models.Member, error)
}

// SQLMemberRepository reads members, their custom properties and their
// group memberships from the CMS tables
type SQLMemberRepository struct {
	db *database.Pool
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *database.Pool) MemberRepository {
	return &SQLMemberRepository{
		db: db,
	}
}

var (
	selectMembersQuery = `
        SELECT nodeId, memberKey, memberName, LoginName, Email, Password,
               isApproved, isLockedOut, failedPasswordAttempts,
               lastLoginDate, lastPasswordChangeDate, lastLockoutDate,
               createDate, updateDate
        FROM ` + constants.TableMembers + `
        ORDER BY nodeId
    `

	selectMemberPropertiesQuery = `
        SELECT memberId, alias, dataInt, dataDecimal, dataDate, dataNvarchar, dataNtext
        FROM ` + constants.TableMemberProperties + `
        ORDER BY memberId, alias
    `

	selectMemberGroupLinksQuery = `
        SELECT Member, MemberGroup
        FROM ` + constants.TableMemberToMemberGroups + `
        ORDER BY Member, MemberGroup
    `
)

// GetAllMembers returns every member with its properties and role names.
// The four reads run in one read-only transaction.
func (r *SQLMemberRepository) GetAllMembers(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member

	err := r.db.ReadTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		members, err = listMembers(ctx, tx)
		if err != nil {
			return err
		}

		byID := make(map[int64]*models.Member, len(members))
		for _, m := range members {
			byID[m.ID] = m
		}

		if err := attachMemberProperties(ctx, tx, byID); err != nil {
			return err
		}

		groups, err := listMemberGroups(ctx, tx)
		if err != nil {
			return err
		}
		groupNames := make(map[int64]string, len(groups))
		for _, g := range groups {
			groupNames[g.ID] = g.Name
		}

		return queryAll(ctx, tx, selectMemberGroupLinksQuery, func(rows *sql.Rows) error {
			var memberID, groupID int64
			if err := rows.Scan(&memberID, &groupID); err != nil {
				return fmt.Errorf("failed to scan member group link: %w", err)
			}

			member, ok := byID[memberID]
			if !ok {
				return nil
			}
			name, ok := groupNames[groupID]
			if !ok {
				log.Warn().Int64("member_id", memberID).Int64("group_id", groupID).Msg("Member linked to unknown group")
				return nil
			}
			member.Roles = append(member.Roles, name)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}

	return members, nil
}

func listMembers(ctx context.Context, q database.Querier) ([]*models.Member, error) {
	var members []*models.Member

	err := queryAll(ctx, q, selectMembersQuery, func(rows *sql.Rows) error {
		member := &models.Member{}
		var (
			password                                sql.NullString
			lastLogin, lastPasswordChange, lastLock sql.NullTime
			created, updated                        sql.NullTime
		)

		if err := rows.Scan(
			&member.ID,
			&member.Key,
			&member.Name,
			&member.Username,
			&member.Email,
			&password,
			&member.IsApproved,
			&member.IsLockedOut,
			&member.FailedPasswordAttempts,
			&lastLogin,
			&lastPasswordChange,
			&lastLock,
			&created,
			&updated,
		); err != nil {
			return fmt.Errorf("failed to scan member: %w", err)
		}

		member.RawPassword = password.String
		member.LastLoginDate = timeOrZero(lastLogin)
		member.LastPasswordChangeDate = timeOrZero(lastPasswordChange)
		member.LastLockoutDate = timeOrZero(lastLock)
		member.CreateDate = timeOrZero(created)
		member.UpdateDate = timeOrZero(updated)

		members = append(members, member)
		return nil
	})

	return members, err
}

func attachMemberProperties(ctx context.Context, q database.Querier, byID map[int64]*models.Member) error {
	return queryAll(ctx, q, selectMemberPropertiesQuery, func(rows *sql.Rows) error {
		var (
			memberID int64
			alias    string
			intVal   sql.NullInt64
			decVal   sql.NullFloat64
			dateVal  sql.NullTime
			strVal   sql.NullString
			textVal  sql.NullString
		)
		if err := rows.Scan(&memberID, &alias, &intVal, &decVal, &dateVal, &strVal, &textVal); err != nil {
			return fmt.Errorf("failed to scan member property: %w", err)
		}

		member, ok := byID[memberID]
		if !ok {
			return nil
		}

		member.Properties = append(member.Properties, models.MemberProperty{
			Alias: alias,
			Value: propertyValue(intVal, decVal, dateVal, strVal, textVal),
		})
		return nil
	})
}

// propertyValue picks the first populated storage column of a property row.
// A row with every column NULL yields nil.
func propertyValue(i sql.NullInt64, d sql.NullFloat64, t sql.NullTime, s, text sql.NullString) any {
	switch {
	case i.Valid:
		return i.Int64
	case d.Valid:
		return d.Float64
	case t.Valid:
		return t.Time
	case s.Valid:
		return s.String
	case text.Valid:
		return text.String
	default:
		return nil
	}
}
