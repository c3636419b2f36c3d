// Package service provides the business logic of the migration pack exporter.
// It orchestrates the repositories, serializers and file system helpers that
// together turn a live CMS into a portable archive.
//
// This file implements the pack service, which runs one export end to end:
// it creates a private working directory, writes every entity family and the
// site assets into it, zips it and finally removes it again.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yasinhessnawi1/migrationpack/internal/config"
	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/export"
	"github.com/yasinhessnawi1/migrationpack/internal/models"
	"github.com/yasinhessnawi1/migrationpack/internal/serializer"
	"github.com/yasinhessnawi1/migrationpack/internal/utils"
)

// DataTypeSource enumerates data types and resolves their keys by id.
type DataTypeSource interface {
	export.DataTypeSource
	GetDataTypeKeys(ctx context.Context) (map[int64]uuid.UUID, error)
}

// ArchivePublisher uploads a finished archive and returns where it can be fetched.
type ArchivePublisher interface {
	Publish(ctx context.Context, path string) (string, error)
}

// PackStores groups the read sources of one export.
type PackStores struct {
	Users        export.UserSource
	UserGroups   export.UserGroupSource
	Members      export.MemberSource
	MemberGroups export.MemberGroupSource
	MemberTypes  export.MemberTypeSource
	DataTypes    DataTypeSource
}

// PackService builds migration packs.
type PackService struct {
	stores         PackStores
	configExporter ConfigExporter
	gridSource     GridConfigSource
	publisher      ArchivePublisher
	archiver       *export.Archiver
	settings       config.PackSettings
	newID          func() string
}

// NewPackService creates a new PackService.
//
// Parameters:
//   - stores: The entity sources read during an export
//   - configExporter: Writes the configuration documents into data/
//   - gridSource: Supplies the merged grid editor configuration
//   - publisher: Uploads finished archives; nil disables publishing
//   - settings: Site and output locations
//
// Returns:
//   - A new PackService writing archives into settings.OutputRoot
func NewPackService(
	stores PackStores,
	configExporter ConfigExporter,
	gridSource GridConfigSource,
	publisher ArchivePublisher,
	settings config.PackSettings,
) *PackService {
	return &PackService{
		stores:         stores,
		configExporter: configExporter,
		gridSource:     gridSource,
		publisher:      publisher,
		archiver:       export.NewArchiver(settings.OutputRoot),
		settings:       settings,
		newID:          newRunID,
	}
}

// newRunID returns a random 32 character hex identifier.
func newRunID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// PackExport builds a migration pack with the configured defaults.
func (s *PackService) PackExport(ctx context.Context) (*models.PackResult, error) {
	return s.PackExportWith(ctx, models.PackRequest{})
}

// PackExportWith builds a migration pack.
//
// The run creates a fresh working directory below the output root, populates
// it, and archives it next to it. On success the working directory is removed;
// on failure it is kept for inspection unless cleanup_on_failure is set.
// Publishing happens after the archive exists and never fails the run.
//
// Parameters:
//   - ctx: Context checked between pipeline steps
//   - req: Per-run overrides
//
// Returns:
//   - The finished archive
//   - An error if any step before publishing fails
func (s *PackService) PackExportWith(ctx context.Context, req models.PackRequest) (*models.PackResult, error) {
	runID := s.newID()
	logger := utils.PackLogger(runID)

	if err := os.MkdirAll(s.settings.OutputRoot, constants.DirPermission); err != nil {
		return nil, fmt.Errorf("failed to create output root: %w", err)
	}

	workDir := filepath.Join(s.settings.OutputRoot, runID)
	// Mkdir rather than MkdirAll: an existing directory means an id clash.
	if err := os.Mkdir(workDir, constants.DirPermission); err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}
	logger.Info().
		Str("state", constants.PackStateCreated).
		Str("folder", workDir).
		Str("reason", req.Reason).
		Msg("Migration pack state changed")

	result, err := s.build(ctx, logger, workDir)
	if err != nil {
		logger.Error().
			Err(err).
			Str("state", constants.PackStateFailed).
			Str("folder", workDir).
			Msg("Migration pack state changed")
		if s.settings.CleanupOnFailure {
			export.CleanFolder(workDir)
		}
		return nil, err
	}
	result.ID = runID

	export.CleanFolder(workDir)
	logger.Info().
		Str("state", constants.PackStateCleaned).
		Str("archive", result.FileName).
		Int64("size", result.Size).
		Int("documents", result.Documents).
		Msg("Migration pack state changed")

	if s.shouldPublish(req) {
		s.publish(ctx, logger, result)
	}

	return result, nil
}

// build populates workDir and archives it.
func (s *PackService) build(ctx context.Context, logger zerolog.Logger, workDir string) (*models.PackResult, error) {
	logger.Info().Str("state", constants.PackStatePopulating).Msg("Migration pack state changed")

	documents := 0
	dataDir := filepath.Join(workDir, constants.DataFolder)
	siteDir := filepath.Join(workDir, constants.SiteFolder)

	count := func(n int, err error) error {
		documents += n
		return err
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"configuration", func() error {
			return count(s.configExporter.ExportAll(ctx, dataDir))
		}},
		{"users", func() error {
			return count(export.ExportUsers(ctx, s.stores.Users, filepath.Join(dataDir, constants.UsersFolder)))
		}},
		{"user groups", func() error {
			return count(export.ExportUserGroups(ctx, s.stores.UserGroups, filepath.Join(dataDir, constants.UserGroupsFolder)))
		}},
		{"member types", func() error {
			keys, err := s.stores.DataTypes.GetDataTypeKeys(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve data type keys: %w", err)
			}
			return count(export.ExportMemberTypes(ctx, s.stores.MemberTypes, serializer.DataTypeKeys(keys),
				filepath.Join(dataDir, constants.MemberTypesFolder)))
		}},
		{"members", func() error {
			return count(export.ExportMembers(ctx, s.stores.Members, filepath.Join(dataDir, constants.MembersFolder)))
		}},
		{"member groups", func() error {
			return count(export.ExportMemberGroups(ctx, s.stores.MemberGroups, filepath.Join(dataDir, constants.MemberGroupsFolder)))
		}},
		{"grid configuration", func() error {
			editors, err := s.gridSource.Editors(ctx)
			if err != nil {
				return err
			}
			return WriteGridConfig(filepath.Join(siteDir, constants.SiteConfigFolder, constants.GridConfigFileName), editors)
		}},
		{"assets", func() error {
			return s.copyAssets(siteDir)
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pack run cancelled before %s: %w", step.name, err)
		}
		if err := step.run(); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", step.name, err)
		}
		logger.Debug().Str("step", step.name).Int("documents", documents).Msg("Pack step finished")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pack run cancelled before archiving: %w", err)
	}
	logger.Info().
		Str("state", constants.PackStateArchiving).
		Int("documents", documents).
		Msgf("Archiving %s", utils.Plural(documents, "document"))

	path, err := s.archiver.ZipFolder(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to archive pack: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	return &models.PackResult{
		FilePath:  path,
		FileName:  filepath.Base(path),
		Size:      info.Size(),
		Documents: documents,
		CreatedAt: info.ModTime().UTC(),
	}, nil
}

// copyAssets mirrors the views, stylesheets and scripts of the site.
func (s *PackService) copyAssets(siteDir string) error {
	assets := []struct{ src, dst string }{
		{s.settings.ViewsDir, constants.SiteViewsFolder},
		{s.settings.CSSDir, constants.SiteCSSFolder},
		{s.settings.ScriptsDir, constants.SiteScriptsFolder},
	}
	for _, a := range assets {
		if a.src == "" {
			continue
		}
		if err := export.CopyFolder(filepath.Join(s.settings.SiteRoot, a.src), filepath.Join(siteDir, a.dst)); err != nil {
			return err
		}
	}
	return nil
}

func (s *PackService) shouldPublish(req models.PackRequest) bool {
	if s.publisher == nil {
		return false
	}
	if req.Publish != nil {
		return *req.Publish
	}
	return true
}

// publish uploads the archive. Failures are logged; the local archive stands.
func (s *PackService) publish(ctx context.Context, logger zerolog.Logger, result *models.PackResult) {
	url, err := s.publisher.Publish(ctx, result.FilePath)
	if err != nil {
		logger.Warn().Err(err).Str("archive", result.FileName).Msg("Failed to publish migration pack")
		return
	}
	result.PublishedURL = url
	logger.Info().Str("archive", result.FileName).Str("url", url).Msg("Migration pack published")
}
