// Package server wires the HTTP routes: the fan-out ask endpoint, the
// provider listing, and the AI-directory lookup.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mmichie/askfleet/pkg/config"
	"github.com/mmichie/askfleet/pkg/directory"
	"github.com/mmichie/askfleet/pkg/fanout"
	"github.com/mmichie/askfleet/pkg/provider"
)

// Server holds the router and everything the handlers need.
type Server struct {
	engine     *gin.Engine
	settings   config.Settings
	aggregator *fanout.Aggregator
	registry   *provider.Registry
	directory  *directory.Store
	log        *zap.Logger
}

// New creates a Server with all routes registered.
func New(settings config.Settings, aggregator *fanout.Aggregator,
	registry *provider.Registry, store *directory.Store, log *zap.Logger) *Server {

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))

	s := &Server{
		engine:     engine,
		settings:   settings,
		aggregator: aggregator,
		registry:   registry,
		directory:  store,
		log:        log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.POST("/ask", s.handleAsk)
	s.engine.GET("/providers", s.handleProviders)

	s.engine.GET("/directory", s.handleDirectoryList)
	s.engine.GET("/directory/search", s.handleDirectorySearch)
	s.engine.POST("/directory/reload", s.handleDirectoryReload)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.settings.ListenAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.settings.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
