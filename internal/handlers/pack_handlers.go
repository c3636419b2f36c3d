package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/migrationpack/internal/auth"
	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/models"
	"github.com/yasinhessnawi1/migrationpack/internal/utils"
)

// PackHandler handles the packer routes
type PackHandler struct {
	packService PackServiceInterface

	// readFile is replaced in tests
	readFile func(string) ([]byte, error)
}

// NewPackHandler creates a new PackHandler
func NewPackHandler(packService PackServiceInterface) *PackHandler {
	return &PackHandler{
		packService: packService,
		readFile:    os.ReadFile,
	}
}

// MakePack builds a migration pack and streams the archive back.
// The JSON body is optional; an empty body uses the configured defaults.
func (h *PackHandler) MakePack(w http.ResponseWriter, r *http.Request) {
	var req models.PackRequest
	if r.Body != nil && r.Body != http.NoBody {
		// Chunked requests report ContentLength -1 even when empty, so an
		// empty body is detected by the decoder.
		if err := utils.DecodeAndValidate(r, &req); err != nil && !errors.Is(err, io.EOF) {
			utils.ErrorFromAppError(w, utils.ParseError(err))
			return
		}
	}

	username, _ := auth.GetUsername(r)
	requestID, _ := auth.GetRequestID(r)
	logger := utils.RequestLogger(requestID, username, r.Method, r.URL.Path)
	logger.Info().Str("reason", req.Reason).Msg("Migration pack requested")

	result, err := h.packService.PackExportWith(r.Context(), req)
	if err != nil {
		utils.LogError(err, map[string]interface{}{
			constants.RequestIDContextKey: requestID,
			constants.UsernameContextKey:  username,
			"reason":                      req.Reason,
			"operation":                   "make_pack",
		})
		utils.ErrorFromAppError(w, packError(err))
		return
	}

	data, err := h.readFile(result.FilePath)
	if err != nil {
		logger.Error().Err(err).Str("archive", result.FilePath).Msg("Failed to read migration pack")
		utils.ErrorFromAppError(w, utils.NewPackError(err))
		return
	}

	logger.Info().
		Str("archive", result.FileName).
		Int("bytes", len(data)).
		Int("documents", result.Documents).
		Msg("Migration pack sent")

	utils.ZipFile(w, data, result.FileName)
}

// packError maps a pipeline failure to a response. Errors the CMS database
// raised keep their own status; everything else is a pack failure.
func packError(err error) *utils.AppError {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	parsed := utils.ParseError(err)
	if errors.Is(parsed.Err, utils.ErrSourceUnavailable) {
		return parsed
	}
	return utils.NewPackError(err)
}

// Discover answers route discovery probes with true.
func (h *PackHandler) Discover(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, constants.StatusOK, true)
}

// SystemHandler serves the health and version routes
type SystemHandler struct {
	db          HealthChecker
	version     string
	environment string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db HealthChecker, version, environment string) *SystemHandler {
	return &SystemHandler{
		db:          db,
		version:     version,
		environment: environment,
	}
}

// Health pings the CMS database.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		utils.Error(w, constants.StatusServiceUnavailable, constants.CodeSourceUnavailable, "Service is not healthy", nil)
		return
	}

	utils.JSON(w, constants.StatusOK, map[string]string{
		"status":  "healthy",
		"version": h.version,
	})
}

// Version reports the build version and environment.
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, constants.StatusOK, map[string]string{
		"version":     h.version,
		"environment": h.environment,
	})
}
