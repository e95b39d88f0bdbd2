package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shortsbot/pipeline"
)

type generateRequest struct {
	Topic string `json:"topic"`
}

type toggleRequest struct {
	Enable bool `json:"enable"`
}

// handleGenerate handles POST /api/generate. It responds as soon as the
// pending job is recorded; generation continues detached and its outcome
// is visible only through the job list.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON payload"})
			return
		}
	}

	jobID, err := s.runner.Start(req.Topic)
	if err != nil {
		if errors.Is(err, pipeline.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "YouTube not authenticated"})
			return
		}
		log.Printf("[api] generate error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "jobId": jobID})
}

// handleJobs handles GET /api/jobs.
func (s *Server) handleJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": s.store.Jobs()})
}

// handleCronToggle handles POST /api/cron/toggle.
func (s *Server) handleCronToggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON payload"})
		return
	}

	if err := s.store.SetCronEnabled(req.Enable); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "enabled": req.Enable})
}

// handleCronStatus handles GET /api/cron/status.
func (s *Server) handleCronStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"enabled":  s.store.CronEnabled(),
		"schedule": s.sched.Schedule(),
	})
}

// handleAuth handles GET /api/auth/youtube by redirecting to the consent
// page.
func (s *Server) handleAuth(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, s.auth.AuthURL())
}

// handleAuthCallback handles GET /api/auth/youtube/callback: exchanges the
// authorization code, persists the token set, and returns to the home page.
func (s *Server) handleAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No authorization code provided"})
		return
	}

	tokens, err := s.auth.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Printf("[api] YouTube auth callback error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.SetTokens(tokens); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// handleAuthStatus handles GET /api/auth/youtube/status.
func (s *Server) handleAuthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": s.store.Tokens() != nil})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
