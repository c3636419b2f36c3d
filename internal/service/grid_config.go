package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/migrationpack/internal/config"
	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

// GridConfigSource supplies the grid editors a pack carries.
type GridConfigSource interface {
	Editors(ctx context.Context) ([]models.GridEditor, error)
}

// FileGridConfigSource reads grid editors from the site's grid configuration
// file and from the gridEditors of every App_Plugins package manifest.
type FileGridConfigSource struct {
	configPath string
	pluginsDir string
}

// NewFileGridConfigSource creates a new FileGridConfigSource for the site
// described by settings.
func NewFileGridConfigSource(settings config.PackSettings) *FileGridConfigSource {
	src := &FileGridConfigSource{}
	if settings.GridConfigPath != "" {
		src.configPath = filepath.Join(settings.SiteRoot, settings.GridConfigPath)
	}
	if settings.AppPluginsDir != "" {
		src.pluginsDir = filepath.Join(settings.SiteRoot, settings.AppPluginsDir)
	}
	return src
}

// Editors returns the merged editor list. The site file comes first, then the
// manifests in path order. An editor whose alias was already seen replaces the
// earlier entry in place. A missing site file contributes nothing; an
// unreadable one fails the call. A malformed manifest is skipped.
func (s *FileGridConfigSource) Editors(ctx context.Context) ([]models.GridEditor, error) {
	var editors []models.GridEditor

	if s.configPath != "" {
		base, err := readGridConfig(s.configPath)
		if err != nil {
			return nil, err
		}
		editors = mergeEditors(editors, base)
	}

	if s.pluginsDir == "" {
		return editors, nil
	}

	manifests, err := filepath.Glob(filepath.Join(s.pluginsDir, "*", constants.PackageManifest))
	if err != nil {
		return nil, fmt.Errorf("failed to list package manifests: %w", err)
	}
	for _, path := range manifests {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("manifest", path).Msg("Skipping unreadable package manifest")
			continue
		}
		var manifest models.PackageManifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			log.Warn().Err(err).Str("manifest", path).Msg("Skipping malformed package manifest")
			continue
		}
		editors = mergeEditors(editors, manifest.GridEditors)
	}

	return editors, nil
}

func readGridConfig(path string) ([]models.GridEditor, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", path).Msg("No grid configuration found")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read grid configuration: %w", err)
	}

	var editors []models.GridEditor
	if err := json.Unmarshal(data, &editors); err != nil {
		return nil, fmt.Errorf("failed to parse grid configuration %s: %w", path, err)
	}
	return editors, nil
}

// mergeEditors appends more to editors, replacing entries with a known alias.
func mergeEditors(editors, more []models.GridEditor) []models.GridEditor {
	index := make(map[string]int, len(editors))
	for i, e := range editors {
		index[e.Alias] = i
	}
	for _, e := range more {
		if i, ok := index[e.Alias]; ok {
			editors[i] = e
			continue
		}
		index[e.Alias] = len(editors)
		editors = append(editors, e)
	}
	return editors
}

// WriteGridConfig writes editors to path as an indented JSON array, creating
// parent directories as needed. No editors produce "[]".
func WriteGridConfig(path string, editors []models.GridEditor) error {
	if editors == nil {
		editors = []models.GridEditor{}
	}
	data, err := json.MarshalIndent(editors, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode grid configuration: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermission); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, constants.FilePermission); err != nil {
		return fmt.Errorf("failed to write grid configuration: %w", err)
	}
	return nil
}
