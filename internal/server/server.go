// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/analysis"
	"github.com/joseph-ayodele/claims-triage/internal/common"
)

const requestIDHeader = "X-Request-ID"

// Analyzer is the subset of *analysis.Analyzer the handlers need.
type Analyzer interface {
	AnalyzeText(ctx context.Context, in analysis.Input, kind constants.DocumentKind) (analysis.TextResult, error)
	AnalyzeImages(ctx context.Context, in analysis.Input) (analysis.ImagesResult, error)
}

type Server struct {
	analyzer       Analyzer
	maxUploadBytes int64
	logger         *slog.Logger
}

func New(analyzer Analyzer, cfg common.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{analyzer: analyzer, maxUploadBytes: cfg.MaxUploadBytes, logger: logger}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1/analyze")
	{
		v1.POST("/claim", s.analyzeText(constants.KindClaim))
		v1.POST("/invoice", s.analyzeText(constants.KindInvoice))
		v1.POST("/images", s.analyzeImages)
	}
	return r
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http.request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", common.RequestIDFromContext(c.Request.Context()),
		)
	}
}
