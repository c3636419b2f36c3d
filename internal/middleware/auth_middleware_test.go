package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/migrationpack/internal/auth"
	"github.com/yasinhessnawi1/migrationpack/internal/config"
	"github.com/yasinhessnawi1/migrationpack/internal/middleware"
)

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService(&config.JWTSettings{
		Secret: "middleware-test-secret",
		Expiry: time.Hour,
		Issuer: "migrationpack",
	})
	token, _, err := jwtService.GenerateAccessToken("deployer", 0)
	require.NoError(t, err)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.GetUsername(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.JWTAuth(jwtService)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{"valid token", "Bearer " + token, http.StatusOK, "deployer"},
		{"missing token", "", http.StatusUnauthorized, ""},
		{"tampered token", "Bearer " + token + "x", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			r := httptest.NewRequest(http.MethodPost, "/api/usync/packer/make-pack", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUser, seen)
		})
	}
}
