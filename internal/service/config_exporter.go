package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/export"
)

// ConfigExporter writes the CMS configuration documents of a pack into folder
// and reports how many it wrote.
type ConfigExporter interface {
	ExportAll(ctx context.Context, folder string) (int, error)
}

// DataTypeExporter is the ConfigExporter that writes every data type into
// <folder>/DataTypes.
type DataTypeExporter struct {
	source export.DataTypeSource
}

// NewDataTypeExporter creates a new DataTypeExporter reading from source.
func NewDataTypeExporter(source export.DataTypeSource) *DataTypeExporter {
	return &DataTypeExporter{source: source}
}

// ExportAll implements ConfigExporter.
func (e *DataTypeExporter) ExportAll(ctx context.Context, folder string) (int, error) {
	n, err := export.ExportDataTypes(ctx, e.source, filepath.Join(folder, constants.DataTypesFolder))
	if err != nil {
		return n, fmt.Errorf("failed to export configuration: %w", err)
	}
	log.Debug().Int("data_types", n).Str("folder", folder).Msg("Exported configuration")
	return n, nil
}
