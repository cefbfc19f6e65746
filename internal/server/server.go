package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agenthands/recon/internal/config"
	"github.com/agenthands/recon/internal/core"
	"github.com/agenthands/recon/internal/driver"
	"github.com/agenthands/recon/internal/llm"
	"github.com/agenthands/recon/internal/logging"
)

type Server struct {
	Engine *core.Engine
	Logger *zerolog.Logger
}

func NewServer(engine *core.Engine, logger *zerolog.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	return &Server{Engine: engine, Logger: logger}
}

// NewServerFromConfig connects the optional Memgraph and LLM backends named in
// cfg and registers its algorithms and models. The returned cleanup closes them.
func NewServerFromConfig(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	ctx = logging.WithLogger(ctx, logger)
	cleanup := func() {}

	var graphDriver driver.GraphDriver
	if cfg.Memgraph.URI != "" {
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
		if err != nil {
			return nil, cleanup, err
		}
		graphDriver = d
		cleanup = func() { _ = d.Close(context.Background()) }
	} else {
		logger.Info().Msg("No Memgraph URI configured, runs will not be persisted")
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	engine := core.NewEngine(graphDriver, cfg.Concurrency.Workers)
	if err := core.Configure(engine, cfg, llmClient); err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to configure engine: %w", err)
	}

	if graphDriver != nil {
		if err := engine.BuildIndices(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to build indices")
		}
	}

	return NewServer(engine, logger), cleanup, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.POST("/reconcile", s.Reconcile)
	r.POST("/similarity", s.Similarity)

	r.GET("/algorithms", s.ListAlgorithms)
	r.POST("/algorithms", s.RegisterAlgorithm)
	r.GET("/models", s.ListModels)
	r.POST("/models", s.RegisterModel)

	r.GET("/statistics", s.Statistics)

	r.GET("/runs/:id", s.GetRun)
	r.DELETE("/runs/:id", s.DeleteRun)
	r.GET("/records/:key/matches", s.RecordMatches)

	return r
}

// requestLogger puts the server logger on the request context and logs each request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLogger := s.Logger.With().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), &reqLogger))

		c.Next()

		reqLogger.Info().
			Int("status", c.Writer.Status()).
			Str("remote_addr", c.ClientIP()).
			Msg("HTTP request")
	}
}
