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

// MemberTypeRepository defines methods for reading member types
type MemberTypeRepository interface {
	GetAllMemberTypes(ctx context.Context) ([]*models.MemberType, error)
}

// SQLMemberTypeRepository reads member types with their tabs and property
// types from the CMS tables
type SQLMemberTypeRepository struct {
	db *database.Pool
}

// NewMemberTypeRepository creates a new MemberTypeRepository
func NewMemberTypeRepository(db *database.Pool) MemberTypeRepository {
	return &SQLMemberTypeRepository{
		db: db,
	}
}

var (
	selectMemberTypesQuery = `
        SELECT id, typeKey, alias, name, icon, thumbnail, description, level, allowAtRoot, isListView
        FROM ` + constants.TableMemberTypes + `
        ORDER BY id
    `

	selectPropertyTabsQuery = `
        SELECT id, groupKey, contentTypeId, text, sortorder
        FROM ` + constants.TablePropertyTypeGroups + `
        ORDER BY contentTypeId, sortorder, id
    `

	selectPropertyTypesQuery = `
        SELECT id, typeKey, contentTypeId, propertyTypeGroupId, dataTypeId, Alias, Name,
               Description, mandatory, validationRegExp, sortOrder
        FROM ` + constants.TablePropertyTypes + `
        ORDER BY contentTypeId, sortOrder, id
    `
)

// GetAllMemberTypes returns every member type with its tabs and property types.
// Property editor aliases are resolved from the data type of each property.
func (r *SQLMemberTypeRepository) GetAllMemberTypes(ctx context.Context) ([]*models.MemberType, error) {
	var memberTypes []*models.MemberType

	err := r.db.ReadTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		memberTypes, err = listMemberTypes(ctx, tx)
		if err != nil {
			return err
		}

		byID := make(map[int64]*models.MemberType, len(memberTypes))
		for _, mt := range memberTypes {
			byID[mt.ID] = mt
		}

		tabs, err := attachPropertyTabs(ctx, tx, byID)
		if err != nil {
			return err
		}

		dataTypes, err := listDataTypes(ctx, tx)
		if err != nil {
			return err
		}
		editors := make(map[int64]string, len(dataTypes))
		for _, dt := range dataTypes {
			editors[dt.ID] = dt.EditorAlias
		}

		return attachPropertyTypes(ctx, tx, byID, tabs, editors)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get member types: %w", err)
	}

	return memberTypes, nil
}

func listMemberTypes(ctx context.Context, q database.Querier) ([]*models.MemberType, error) {
	var memberTypes []*models.MemberType

	err := queryAll(ctx, q, selectMemberTypesQuery, func(rows *sql.Rows) error {
		mt := &models.MemberType{}
		var icon, thumbnail, description sql.NullString

		if err := rows.Scan(
			&mt.ID,
			&mt.Key,
			&mt.Alias,
			&mt.Name,
			&icon,
			&thumbnail,
			&description,
			&mt.Level,
			&mt.AllowAtRoot,
			&mt.IsListView,
		); err != nil {
			return fmt.Errorf("failed to scan member type: %w", err)
		}

		mt.Icon = icon.String
		mt.Thumbnail = thumbnail.String
		mt.Description = description.String

		memberTypes = append(memberTypes, mt)
		return nil
	})

	return memberTypes, err
}

// tabRef locates a tab inside its member type
type tabRef struct {
	memberType *models.MemberType
	index      int
}

// attachPropertyTabs appends the tabs of every member type in byID. Tabs of
// other content types share the table and are skipped.
func attachPropertyTabs(ctx context.Context, q database.Querier, byID map[int64]*models.MemberType) (map[int64]tabRef, error) {
	tabs := make(map[int64]tabRef)

	err := queryAll(ctx, q, selectPropertyTabsQuery, func(rows *sql.Rows) error {
		var (
			tab           models.PropertyTab
			contentTypeID int64
		)
		if err := rows.Scan(&tab.ID, &tab.Key, &contentTypeID, &tab.Name, &tab.SortOrder); err != nil {
			return fmt.Errorf("failed to scan property tab: %w", err)
		}

		mt, ok := byID[contentTypeID]
		if !ok {
			return nil
		}
		mt.Tabs = append(mt.Tabs, tab)
		tabs[tab.ID] = tabRef{memberType: mt, index: len(mt.Tabs) - 1}
		return nil
	})

	return tabs, err
}

func attachPropertyTypes(
	ctx context.Context,
	q database.Querier,
	byID map[int64]*models.MemberType,
	tabs map[int64]tabRef,
	editors map[int64]string,
) error {
	return queryAll(ctx, q, selectPropertyTypesQuery, func(rows *sql.Rows) error {
		var (
			p                       models.PropertyType
			contentTypeID           int64
			tabID                   sql.NullInt64
			description, validation sql.NullString
		)
		if err := rows.Scan(
			&p.ID,
			&p.Key,
			&contentTypeID,
			&tabID,
			&p.DataTypeID,
			&p.Alias,
			&p.Name,
			&description,
			&p.Mandatory,
			&validation,
			&p.SortOrder,
		); err != nil {
			return fmt.Errorf("failed to scan property type: %w", err)
		}

		mt, ok := byID[contentTypeID]
		if !ok {
			return nil
		}

		p.Description = description.String
		p.ValidationRegExp = validation.String
		p.EditorAlias = editors[p.DataTypeID]
		mt.PropertyTypes = append(mt.PropertyTypes, p)

		if !tabID.Valid {
			return nil
		}
		ref, ok := tabs[tabID.Int64]
		if !ok || ref.memberType != mt {
			log.Warn().Str("member_type", mt.Alias).Str("property", p.Alias).Msg("Property assigned to a tab of another type")
			return nil
		}
		tab := &ref.memberType.Tabs[ref.index]
		tab.PropertyAliases = append(tab.PropertyAliases, p.Alias)
		return nil
	})
}
