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

// UserRepository defines methods for reading back-office users
type UserRepository interface {
	GetAllUsers(ctx context.Context) ([]*models.User, error)
}

// SQLUserRepository reads users from the CMS tables
type SQLUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &SQLUserRepository{
		db: db,
	}
}

var (
	selectUsersQuery = `
        SELECT id, userKey, userName, userLogin, userEmail, userPassword,
               userDisabled, userNoConsole, userLanguage, failedLoginAttempts,
               emailConfirmedDate, comments
        FROM ` + constants.TableUsers + `
        ORDER BY id
    `

	selectUserGroupAliasesQuery = `
        SELECT id, userGroupAlias
        FROM ` + constants.TableUserGroups + `
    `

	selectUserGroupLinksQuery = `
        SELECT userId, userGroupId
        FROM ` + constants.TableUserToUserGroups + `
        ORDER BY userId, userGroupId
    `
)

// GetAllUsers returns every user with the aliases of its groups.
// All three reads run in one read-only transaction.
func (r *SQLUserRepository) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User

	err := r.db.ReadTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		users, err = listUsers(ctx, tx)
		if err != nil {
			return err
		}

		aliases, err := listUserGroupAliases(ctx, tx)
		if err != nil {
			return err
		}

		byID := make(map[int64]*models.User, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}

		return queryAll(ctx, tx, selectUserGroupLinksQuery, func(rows *sql.Rows) error {
			var userID, groupID int64
			if err := rows.Scan(&userID, &groupID); err != nil {
				return fmt.Errorf("failed to scan user group link: %w", err)
			}

			user, ok := byID[userID]
			if !ok {
				return nil
			}
			alias, ok := aliases[groupID]
			if !ok {
				log.Warn().Int64("user_id", userID).Int64("group_id", groupID).Msg("User linked to unknown group")
				return nil
			}
			user.Groups = append(user.Groups, alias)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return users, nil
}

func listUsers(ctx context.Context, q database.Querier) ([]*models.User, error) {
	var users []*models.User

	err := queryAll(ctx, q, selectUsersQuery, func(rows *sql.Rows) error {
		user := &models.User{}
		var (
			language, comments  sql.NullString
			disabled, noConsole bool
			emailConfirmed      sql.NullTime
		)

		if err := rows.Scan(
			&user.ID,
			&user.Key,
			&user.Name,
			&user.Username,
			&user.Email,
			&user.RawPassword,
			&disabled,
			&noConsole,
			&language,
			&user.FailedPasswordAttempts,
			&emailConfirmed,
			&comments,
		); err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}

		user.IsApproved = !disabled
		user.IsLockedOut = noConsole
		user.Language = language.String
		user.Comments = comments.String
		user.EmailConfirmedDate = timePtr(emailConfirmed)

		users = append(users, user)
		return nil
	})

	return users, err
}

func listUserGroupAliases(ctx context.Context, q database.Querier) (map[int64]string, error) {
	aliases := make(map[int64]string)

	err := queryAll(ctx, q, selectUserGroupAliasesQuery, func(rows *sql.Rows) error {
		var (
			id    int64
			alias string
		)
		if err := rows.Scan(&id, &alias); err != nil {
			return fmt.Errorf("failed to scan user group: %w", err)
		}
		aliases[id] = alias
		return nil
	})

	return aliases, err
}
