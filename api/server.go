package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"shortsbot/storage"
)

// GenerationRunner starts a detached video job and returns its id.
type GenerationRunner interface {
	Start(topic string) (string, error)
}

// Authenticator drives the YouTube OAuth handshake.
type Authenticator interface {
	AuthURL() string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// ScheduleReporter exposes the active cron expression.
type ScheduleReporter interface {
	Schedule() string
}

// Server exposes the HTTP surface: generation triggers, job listing,
// automation toggles, and the OAuth handshake.
type Server struct {
	store      *storage.Store
	runner     GenerationRunner
	auth       Authenticator
	sched      ScheduleReporter
	httpServer *http.Server
}

// NewServer constructs the server and registers all routes.
func NewServer(store *storage.Store, runner GenerationRunner, auth Authenticator, sched ScheduleReporter, port int) *Server {
	s := &Server{
		store:  store,
		runner: runner,
		auth:   auth,
		sched:  sched,
	}

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router(),
	}
	return s
}

// router constructs a Gin engine with registered routes.
func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)

	apiGroup := r.Group("/api")
	apiGroup.POST("/generate", s.handleGenerate)
	apiGroup.GET("/jobs", s.handleJobs)

	cronGroup := apiGroup.Group("/cron")
	cronGroup.POST("/toggle", s.handleCronToggle)
	cronGroup.GET("/status", s.handleCronStatus)

	authGroup := apiGroup.Group("/auth/youtube")
	authGroup.GET("", s.handleAuth)
	authGroup.GET("/callback", s.handleAuthCallback)
	authGroup.GET("/status", s.handleAuthStatus)

	return r
}

// Start begins serving in the background. A listener failure terminates
// the process with a non-zero status.
func (s *Server) Start() {
	log.Printf("Starting server on %s", s.httpServer.Addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the route tree for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
