// Package server exposes the chat pipeline over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daleel-app/daleel/internal/model"
	"github.com/daleel-app/daleel/internal/pipeline"
	"github.com/daleel-app/daleel/internal/store"
	"github.com/daleel-app/daleel/internal/throttle"
)

// Server is the HTTP API surface
type Server struct {
	cfg      *model.Config
	pipeline *pipeline.Pipeline
	usage    store.UsageCounter
	counter  *throttle.Counter
	limiter  *throttle.Limiter
	engine   *gin.Engine
}

// New builds the server and its routes
func New(
	cfg *model.Config,
	p *pipeline.Pipeline,
	usage store.UsageCounter,
	counter *throttle.Counter,
	limiter *throttle.Limiter,
) *Server {
	s := &Server{
		cfg:      cfg,
		pipeline: p,
		usage:    usage,
		counter:  counter,
		limiter:  limiter,
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	engine.GET("/health", s.handleHealth)
	engine.POST("/chat", s.requireAuth(), s.handleChat)

	s.engine = engine
	return s
}

// Handler returns the underlying HTTP handler (used by tests)
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails
func (s *Server) Run() error {
	return s.engine.Run(s.cfg.Server.Addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
