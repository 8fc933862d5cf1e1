package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// askRequest is the inbound body for POST /ask. Providers is an optional
// ordered subset of registry names; empty means all of them.
type askRequest struct {
	Prompt    string   `json:"prompt"`
	Providers []string `json:"providers"`
}

func (s *Server) handleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if s.settings.RejectEmptyPrompt && strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt must not be empty"})
		return
	}

	// Adapter failures live inside each answer's text; this endpoint
	// answers 200 for every handled request.
	result := s.aggregator.Aggregate(c.Request.Context(), req.Prompt, req.Providers)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": s.registry.AllInfo()})
}

func (s *Server) handleDirectoryList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": s.directory.All()})
}

func (s *Server) handleDirectorySearch(c *gin.Context) {
	query := c.Query("q")
	results := s.directory.Search(query)
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) handleDirectoryReload(c *gin.Context) {
	count, err := s.directory.Reload()
	if err != nil {
		s.log.Error("directory reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": count})
}
