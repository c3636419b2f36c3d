package handlers

import (
	"bytes"
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/migrationpack/internal/models"
)

// MockPackService is a mock implementation of PackServiceInterface
type MockPackService struct {
	mock.Mock
}

func (m *MockPackService) PackExportWith(ctx context.Context, req models.PackRequest) (*models.PackResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PackResult), args.Error(1)
}

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) HealthCheck(context.Context) error { return m.err }

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newTestPackHandler(svc *MockPackService, files map[string][]byte) *PackHandler {
	h := NewPackHandler(svc)
	h.readFile = func(path string) ([]byte, error) {
		data, ok := files[path]
		if !ok {
			return nil, fmt.Errorf("open %s: no such file", path)
		}
		return data, nil
	}
	return h
}

var testResult = &models.PackResult{
	ID:        "run1",
	FilePath:  "/packs/migration_data_2024_01_02_030405.zip",
	FileName:  "migration_data_2024_01_02_030405.zip",
	Documents: 5,
}

func TestMakePack_Success(t *testing.T) {
	svc := new(MockPackService)
	svc.On("PackExportWith", mock.Anything, models.PackRequest{}).Return(testResult, nil)
	h := newTestPackHandler(svc, map[string][]byte{testResult.FilePath: []byte("PK\x03\x04data")})

	r := httptest.NewRequest(http.MethodPost, "/api/usync/packer/make-pack", nil)
	w := httptest.NewRecorder()
	h.MakePack(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/x-zip-compressed", w.Header().Get("Content-Type"))
	assert.Equal(t, "8", w.Header().Get("Content-Length"))
	assert.Equal(t, testResult.FileName, w.Header().Get("X-Filename"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="`+testResult.FileName+`"`)
	assert.Equal(t, "PK\x03\x04data", w.Body.String())
	svc.AssertExpectations(t)
}

func TestMakePack_WithBody(t *testing.T) {
	svc := new(MockPackService)
	publish := false
	svc.On("PackExportWith", mock.Anything, models.PackRequest{Publish: &publish, Reason: "nightly"}).Return(testResult, nil)
	h := newTestPackHandler(svc, map[string][]byte{testResult.FilePath: []byte("PK")})

	r := httptest.NewRequest(http.MethodPost, "/api/usync/packer/make-pack", strings.NewReader(`{"publish":false,"reason":"nightly"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.MakePack(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestMakePack_EmptyBodyUsesDefaults(t *testing.T) {
	tests := []struct {
		name          string
		contentLength int64
	}{
		{"chunked", -1},
		{"zero length", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPackService)
			svc.On("PackExportWith", mock.Anything, models.PackRequest{}).Return(testResult, nil)
			h := newTestPackHandler(svc, map[string][]byte{testResult.FilePath: []byte("PK")})

			r := httptest.NewRequest(http.MethodPost, "/api/usync/packer/make-pack", io.NopCloser(strings.NewReader("")))
			r.ContentLength = tt.contentLength
			w := httptest.NewRecorder()
			h.MakePack(w, r)

			assert.Equal(t, http.StatusOK, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestMakePack_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"reason":`},
		{"unknown field", `{"force":true}`},
		{"reason too long", `{"reason":"` + strings.Repeat("x", 201) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPackService)
			h := newTestPackHandler(svc, nil)

			r := httptest.NewRequest(http.MethodPost, "/api/usync/packer/make-pack", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.MakePack(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, decodeError(t, w).Success)
			svc.AssertNotCalled(t, "PackExportWith", mock.Anything, mock.Anything)
		})
	}
}

func TestMakePack_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "pipeline failure",
			err:        errors.New("failed to write users: failed to create export directory /secret/path: permission denied"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
		{
			name:       "lost database connection",
			err:        fmt.Errorf("failed to write members: %w", driver.ErrBadConn),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "source_unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPackService)
			svc.On("PackExportWith", mock.Anything, mock.Anything).Return(nil, tt.err)
			h := newTestPackHandler(svc, nil)

			r := httptest.NewRequest(http.MethodPost, "/api/usync/packer/make-pack", nil)
			w := httptest.NewRecorder()
			h.MakePack(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotContains(t, w.Body.String(), "/secret/path", "internal details stay out of the response")
		})
	}
}

func TestMakePack_FailureIsLogged(t *testing.T) {
	var logBuf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&logBuf)
	t.Cleanup(func() { log.Logger = original })

	svc := new(MockPackService)
	svc.On("PackExportWith", mock.Anything, mock.Anything).Return(nil, errors.New("failed to write users: disk full"))
	h := newTestPackHandler(svc, nil)

	r := httptest.NewRequest(http.MethodPost, "/api/usync/packer/make-pack", strings.NewReader(`{"reason":"nightly"}`))
	h.MakePack(httptest.NewRecorder(), r)

	logged := logBuf.String()
	assert.Contains(t, logged, "disk full")
	assert.Contains(t, logged, `"operation":"make_pack"`)
	assert.Contains(t, logged, `"reason":"nightly"`)
}

func TestMakePack_ArchiveUnreadable(t *testing.T) {
	svc := new(MockPackService)
	svc.On("PackExportWith", mock.Anything, mock.Anything).Return(testResult, nil)
	h := newTestPackHandler(svc, map[string][]byte{})

	r := httptest.NewRequest(http.MethodPost, "/api/usync/packer/make-pack", nil)
	w := httptest.NewRecorder()
	h.MakePack(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to create the migration pack", decodeError(t, w).Error.Message)
}

func TestDiscover(t *testing.T) {
	h := NewPackHandler(new(MockPackService))

	w := httptest.NewRecorder()
	h.Discover(w, httptest.NewRequest(http.MethodGet, "/api/usync/packer/api", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":true}`, w.Body.String())
}

func TestSystemHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewSystemHandler(&mockHealthChecker{}, "1.2.3", "testing")
		w := httptest.NewRecorder()
		h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"healthy"`)
		assert.Contains(t, w.Body.String(), `"version":"1.2.3"`)
	})

	t.Run("unhealthy", func(t *testing.T) {
		h := NewSystemHandler(&mockHealthChecker{err: errors.New("connection refused")}, "1.2.3", "testing")
		w := httptest.NewRecorder()
		h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "source_unavailable", decodeError(t, w).Error.Code)
	})

	t.Run("version", func(t *testing.T) {
		h := NewSystemHandler(&mockHealthChecker{}, "1.2.3", "testing")
		w := httptest.NewRecorder()
		h.Version(w, httptest.NewRequest(http.MethodGet, "/version", nil))

		assert.JSONEq(t, `{"success":true,"data":{"version":"1.2.3","environment":"testing"}}`, w.Body.String())
	})
}
