// Package server provides the HTTP REST API for the skill builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peopleprotocol/skill-builder/internal/llm"
	"github.com/peopleprotocol/skill-builder/internal/recommend"
	"github.com/peopleprotocol/skill-builder/internal/roles"
	"github.com/peopleprotocol/skill-builder/internal/server/ratelimit"
	"github.com/peopleprotocol/skill-builder/internal/transform"
	"github.com/peopleprotocol/skill-builder/internal/types"
)

// Taxonomy is the catalog surface the handlers consume. The Lightcast
// gateway satisfies it; tests substitute a fake.
type Taxonomy interface {
	Search(ctx context.Context, query string, limit int) ([]types.SkillRecord, error)
	ListByType(ctx context.Context, typeID string, limit int) ([]types.SkillRecord, error)
	GetByID(ctx context.Context, id string) (*types.SkillRecord, error)
	ListTypes(ctx context.Context) ([]types.SkillType, json.RawMessage, error)
	CountsByType(ctx context.Context) ([]types.TypeCount, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	taxonomy    Taxonomy
	transformer *transform.Transformer
	roles       *roles.Generator
	recommender *recommend.Orchestrator
	rateLimiter *ratelimit.Limiter
	log         *logrus.Entry
}

// Config holds server configuration
type Config struct {
	Port                 int
	Taxonomy             Taxonomy
	Completion           llm.Client
	EnforceLevelMinimums bool
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		taxonomy:    cfg.Taxonomy,
		transformer: transform.New(cfg.Completion, cfg.EnforceLevelMinimums),
		roles:       roles.New(cfg.Completion),
		recommender: recommend.New(cfg.Completion, cfg.Taxonomy),
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		log:         logrus.WithField("component", "server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Taxonomy browsing. The literal /skills/types and /skills/counts
	// patterns win over /skills/{id}.
	mux.HandleFunc("GET /skills", s.handleSearchSkills)
	mux.HandleFunc("GET /skills/types", s.handleListTypes)
	mux.HandleFunc("GET /skills/counts", s.handleCountsByType)
	mux.HandleFunc("GET /skills/{id}", s.handleGetSkill)

	// Rubric transformation
	mux.HandleFunc("POST /transform", s.handleTransform)
	mux.HandleFunc("POST /transform/batch", s.handleTransformBatch)
	mux.HandleFunc("POST /transform/stream", s.handleTransformStream)

	// Advisory flows
	mux.HandleFunc("POST /roles", s.handleGenerateRoles)
	mux.HandleFunc("POST /recommend", s.handleRecommend)

	// Export
	mux.HandleFunc("POST /export", s.handleExport)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for batch transforms
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the middleware-wrapped mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Fatal("server error")
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging tags each request with an id and logs its timing.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		logger := s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		logger.Info("request started")
		next.ServeHTTP(w, r)
		logger.WithField("duration", time.Since(start).String()).Info("request completed")
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("encoding JSON response failed")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies the client for rate limiting. Uses the IP from
// RemoteAddr; X-Forwarded-For is deliberately ignored since it is spoofable
// without a trusted proxy in front.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.log.WithFields(logrus.Fields{
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}).Warn("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
