package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yasinhessnawi1/migrationpack/internal/config"
	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/middleware"
	"github.com/yasinhessnawi1/migrationpack/internal/utils"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
//   - Health check and version endpoints (unprotected)
//   - A description of the packer routes (unprotected)
//   - The packer endpoints, which require an operator token
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(corsMiddleware(s.Config.CORS))
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}
	r.Use(middleware.SecurityHeaders())

	// Set before any Route so the packer sub-router inherits them
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utils.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		utils.MethodNotAllowed(w)
	})

	r.Get(constants.HealthPath, s.Handlers.SystemHandler.Health)
	r.Get(constants.VersionPath, s.Handlers.SystemHandler.Version)
	r.Get(constants.APIBasePath+"/routes", s.GetAPIRoutes)

	r.Route(constants.APIBasePath+constants.PackerBasePath, func(r chi.Router) {
		r.Use(middleware.JWTAuth(s.jwtService))

		r.Get(constants.PackerAPIPath, s.Handlers.PackHandler.Discover)
		r.With(middleware.RateLimit(s.rateLimits, constants.RateLimitCategoryPack)).
			Post(constants.PackerMakePackPath, s.Handlers.PackHandler.MakePack)
	})

	s.router = r
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Accept, Authorization, Content-Type, X-Request-ID"
	corsMaxAge       = "300"
)

// corsMiddleware adds CORS headers for allowed origins and answers preflight
// requests. Requests from other origins pass through without CORS headers.
func corsMiddleware(cors config.CORSSettings) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !originAllowed(cors.AllowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if cors.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// GetAPIRoutes describes the packer endpoints.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	packer := constants.APIBasePath + constants.PackerBasePath
	auth := map[string]string{
		"Authorization": "Bearer <operator token>",
	}

	routes := map[string]interface{}{
		"packer": map[string]interface{}{
			"POST " + packer + constants.PackerMakePackPath: map[string]interface{}{
				"description": "Build a migration pack and download it as a zip archive",
				"headers":     auth,
				"body": map[string]string{
					"publish": "bool - optional, overrides whether the archive is uploaded",
					"reason":  "string - optional, recorded in the run log",
				},
				"response": "application/x-zip-compressed",
			},
			"GET " + packer + constants.PackerAPIPath: map[string]interface{}{
				"description": "Route discovery",
				"headers":     auth,
				"response":    map[string]interface{}{"success": true, "data": true},
			},
		},
		"system": map[string]interface{}{
			"GET " + constants.HealthPath:  "Database health check",
			"GET " + constants.VersionPath: "Build version and environment",
		},
	}

	utils.JSON(w, constants.StatusOK, routes)
}
