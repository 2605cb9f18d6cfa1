package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fasalseva/FasalSeva_Go/internal/auth"
	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/database"
	"github.com/fasalseva/FasalSeva_Go/internal/education"
	"github.com/fasalseva/FasalSeva_Go/internal/farm"
	"github.com/fasalseva/FasalSeva_Go/internal/handler"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/metrics"
	"github.com/fasalseva/FasalSeva_Go/internal/progression"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
	"github.com/fasalseva/FasalSeva_Go/internal/scenario"
	"github.com/fasalseva/FasalSeva_Go/internal/shop"
)

// Deps bundles everything the HTTP server needs
type Deps struct {
	DBPool             database.Pool
	UserRepo           repository.User
	Tokens             *auth.TokenManager
	Clock              clock.Clock
	AuthService        auth.Service
	FarmService        farm.Service
	ProgressionService progression.Service
	ScenarioService    scenario.Service
	EducationService   education.Service
	ShopService        shop.Service
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, deps Deps) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodySize))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Operational endpoints
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", handler.HandleSignup(deps.AuthService))
			r.Post("/login", handler.HandleLogin(deps.AuthService))
			r.Get("/username-available", handler.HandleUsernameAvailable(deps.AuthService))

			// Account endpoints that need a bearer token
			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(deps.Tokens, deps.UserRepo))
				r.Get("/me", handler.HandleMe(deps.AuthService))
				r.Put("/language", handler.HandleUpdateLanguage(deps.AuthService))
				r.Post("/claim-welcome-bonus", handler.HandleClaimWelcomeBonus(deps.AuthService))
			})
		})

		// Everything below requires a bearer token
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(deps.Tokens, deps.UserRepo))

			r.Route("/farm", func(r chi.Router) {
				r.Get("/status", handler.HandleFarmStatus(deps.FarmService))
				r.Post("/plant", handler.HandlePlantCrop(deps.FarmService, deps.EducationService))
				r.Post("/water/{id}", handler.HandleWaterCrop(deps.FarmService))
				r.Post("/fertilize/{id}", handler.HandleFertilizeCrop(deps.FarmService))
				r.Post("/harvest/{id}", handler.HandleHarvestCrop(deps.FarmService))
				r.Post("/simulate-time/{id}", handler.HandleSimulateTime(deps.FarmService))
				r.Get("/care-shop", handler.HandleCareShop(deps.FarmService))
				r.Get("/scorecard/{id}", handler.HandleScorecard(deps.FarmService))
			})

			r.Route("/farms", func(r chi.Router) {
				r.Get("/", handler.HandleListFarms(deps.FarmService))
				r.Post("/", handler.HandleCreateFarm(deps.FarmService))
			})

			r.Route("/farm-data", func(r chi.Router) {
				r.Get("/", handler.HandleFarmData(deps.FarmService))
				r.Get("/date-ranges", handler.HandleDateRanges(deps.Clock))
			})

			r.Route("/achievements", func(r chi.Router) {
				r.Get("/", handler.HandleAchievements(deps.ProgressionService))
				r.Get("/stats", handler.HandleAchievementStats(deps.ProgressionService))
				r.Post("/check", handler.HandleCheckAchievements(deps.ProgressionService))
			})

			r.Route("/challenges", func(r chi.Router) {
				r.Get("/", handler.HandleChallenges(deps.ProgressionService))
				r.Post("/{id}/complete", handler.HandleCompleteChallenge(deps.ProgressionService))
			})

			r.Get("/progress", handler.HandleProgress(deps.ProgressionService))
			r.Get("/leaderboard", handler.HandleLeaderboard(deps.ProgressionService))

			r.Route("/scenarios", func(r chi.Router) {
				r.Post("/generate/{cropID}", handler.HandleGenerateScenarios(deps.ScenarioService))
				r.Get("/active", handler.HandleActiveScenarios(deps.ScenarioService))
				r.Post("/{id}/complete", handler.HandleCompleteScenario(deps.ScenarioService))
			})

			r.Route("/educational", func(r chi.Router) {
				r.Post("/generate", handler.HandleGenerateContent(deps.EducationService))
				r.Get("/updates", handler.HandleContentUpdates(deps.EducationService))
				r.Post("/complete", handler.HandleCompleteContent(deps.EducationService))
			})

			r.Route("/shop", func(r chi.Router) {
				r.Get("/items", handler.HandleShopItems(deps.ShopService))
				r.Post("/purchase", handler.HandlePurchase(deps.ShopService))
				r.Get("/purchases", handler.HandlePurchaseHistory(deps.ShopService))
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{"[REDACTED]"}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
