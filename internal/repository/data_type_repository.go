package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/database"
	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

// DataTypeRepository defines methods for reading data types
type DataTypeRepository interface {
	GetAllDataTypes(ctx context.Context) ([]*models.DataType, error)
	GetDataTypeKeys(ctx context.Context) (map[int64]uuid.UUID, error)
}

// SQLDataTypeRepository reads data types and their pre-values from the CMS tables
type SQLDataTypeRepository struct {
	db *database.Pool
}

// NewDataTypeRepository creates a new DataTypeRepository
func NewDataTypeRepository(db *database.Pool) DataTypeRepository {
	return &SQLDataTypeRepository{
		db: db,
	}
}

var (
	selectDataTypesQuery = `
        SELECT nodeId, dataTypeKey, name, propertyEditorAlias, dbType
        FROM ` + constants.TableDataTypes + `
        ORDER BY nodeId
    `

	selectDataTypePreValuesQuery = `
        SELECT datatypeNodeId, alias, value, sortorder
        FROM ` + constants.TableDataTypePreValues + `
        ORDER BY datatypeNodeId, sortorder, id
    `
)

// GetAllDataTypes returns every data type with its pre-values
func (r *SQLDataTypeRepository) GetAllDataTypes(ctx context.Context) ([]*models.DataType, error) {
	var dataTypes []*models.DataType

	err := r.db.ReadTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		dataTypes, err = listDataTypes(ctx, tx)
		if err != nil {
			return err
		}

		byID := make(map[int64]*models.DataType, len(dataTypes))
		for _, dt := range dataTypes {
			byID[dt.ID] = dt
		}

		return queryAll(ctx, tx, selectDataTypePreValuesQuery, func(rows *sql.Rows) error {
			var (
				dataTypeID   int64
				pv           models.DataTypePreValue
				alias, value sql.NullString
			)
			if err := rows.Scan(&dataTypeID, &alias, &value, &pv.SortOrder); err != nil {
				return fmt.Errorf("failed to scan data type pre-value: %w", err)
			}
			if dt, ok := byID[dataTypeID]; ok {
				pv.Alias = alias.String
				pv.Value = value.String
				dt.PreValues = append(dt.PreValues, pv)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get data types: %w", err)
	}

	return dataTypes, nil
}

// GetDataTypeKeys maps data type ids to their keys
func (r *SQLDataTypeRepository) GetDataTypeKeys(ctx context.Context) (map[int64]uuid.UUID, error) {
	dataTypes, err := listDataTypes(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get data type keys: %w", err)
	}

	keys := make(map[int64]uuid.UUID, len(dataTypes))
	for _, dt := range dataTypes {
		keys[dt.ID] = dt.Key
	}
	return keys, nil
}

func listDataTypes(ctx context.Context, q database.Querier) ([]*models.DataType, error) {
	var dataTypes []*models.DataType

	err := queryAll(ctx, q, selectDataTypesQuery, func(rows *sql.Rows) error {
		dt := &models.DataType{}
		var name sql.NullString

		if err := rows.Scan(&dt.ID, &dt.Key, &name, &dt.EditorAlias, &dt.DatabaseType); err != nil {
			return fmt.Errorf("failed to scan data type: %w", err)
		}
		dt.Name = name.String

		dataTypes = append(dataTypes, dt)
		return nil
	})

	return dataTypes, err
}
