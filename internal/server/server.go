// Package server exposes the ingestion pipeline over HTTP for the dashboard.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/insight-ingest/internal/pipeline"
)

// Server wraps a gin engine around one ingestion pipeline.
type Server struct {
	engine         *gin.Engine
	pipeline       *pipeline.Pipeline
	logger         *slog.Logger
	maxUploadBytes int64
}

// New builds the router. maxUploadBytes caps request bodies since the
// pipeline loads files fully into memory before parsing.
func New(p *pipeline.Pipeline, logger *slog.Logger, maxUploadBytes int64) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = 25 << 20
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:         engine,
		pipeline:       p,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
	engine.GET("/healthz", s.health)
	engine.POST("/v1/ingest", s.ingest)
	return s
}

// Handler returns the http.Handler for mounting in an http.Server.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
