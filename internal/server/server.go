package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/workhive/workhive/internal/config"
	"github.com/workhive/workhive/internal/db"
	"github.com/workhive/workhive/internal/matching"
	"github.com/workhive/workhive/internal/server/middleware"
	"github.com/workhive/workhive/internal/server/ratelimit"
	"github.com/workhive/workhive/internal/skills"
	"github.com/workhive/workhive/internal/textgen"
)

// Matcher runs the resume-to-job matching pipeline.
type Matcher interface {
	Match(ctx context.Context, userID uuid.UUID, filters db.JobFilters, page, pageSize int) (*matching.Response, error)
}

// JobStore is the corpus surface the HTTP handlers need.
type JobStore interface {
	ListJobs(ctx context.Context, filters db.JobFilters, page db.JobPage) ([]db.Job, int, error)
	CreateJob(ctx context.Context, input *db.JobCreateInput) (*db.Job, error)
}

// ResumeWriter stores uploaded resume text.
type ResumeWriter interface {
	SetResumeText(ctx context.Context, userID uuid.UUID, text string) error
}

// Server is the Work Hive HTTP API.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	jobs        JobStore
	resumes     ResumeWriter
	matcher     Matcher
	userService *UserService
	jwtService  *JWTService
	authHandler *AuthHandler
	rateLimiter *ratelimit.Limiter
	validator   *validator.Validate
	textgen     textgen.Client
}

// New connects to the database, builds the matching pipeline, and wires up
// the router.
func New(ctx context.Context, cfg *config.AppConfig) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	client, err := textgen.NewClient(ctx, textgen.Config{
		Provider: textgen.Provider(cfg.SkillServiceProvider),
		BaseURL:  cfg.SkillServiceURL,
		APIKey:   cfg.GeminiAPIKey,
		Timeout:  cfg.SkillServiceTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create text generation client: %w", err)
	}

	extractor := skills.NewExtractor(client, skills.ExtractorConfig{
		Attempts: cfg.SkillServiceRetries,
		Timeout:  cfg.SkillServiceTimeout,
	})
	pipeline := matching.NewPipeline(database, database, extractor, matching.Config{
		Threshold: cfg.MatchThreshold,
		PageSize:  cfg.MatchPageSize,
		Workers:   cfg.MatchWorkers,
	})

	s := &Server{
		db:          database,
		jobs:        database,
		resumes:     database,
		matcher:     pipeline,
		validator:   validator.New(),
		textgen:     client,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}
	s.userService = NewUserService(database, passwordConfig)
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// routes builds the ServeMux. Resume and match endpoints require a valid
// session token; registration, login, health, and corpus reads do not.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.Handle("POST /jobs", authed(http.HandlerFunc(s.handleCreateJob)))

	mux.Handle("GET /users/me", authed(http.HandlerFunc(s.handleGetMe)))
	mux.Handle("POST /resume", authed(http.HandlerFunc(s.handleUploadResume)))
	mux.Handle("POST /resume/match", authed(http.HandlerFunc(s.handleMatch)))

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.textgen != nil {
		_ = s.textgen.Close()
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
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

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractClientID identifies the client for rate limiting. Uses the IP from
// RemoteAddr; X-Forwarded-For is deliberately not trusted here.
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
	response := map[string]interface{}{
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

	log.Printf("[rate-limit] limit=%d remaining=%d reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))
	writeJSON(w, http.StatusTooManyRequests, response)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
