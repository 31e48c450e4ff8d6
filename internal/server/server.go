// Package server exposes the generation pipeline over HTTP. The routes are
// thin: they adapt form/JSON bodies into pipeline inputs and map value-level
// failures onto 400/500 responses.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rishav781/Test-Agent/internal/config"
	"github.com/rishav781/Test-Agent/internal/generator"
	"github.com/rishav781/Test-Agent/internal/logger"
	"github.com/rishav781/Test-Agent/internal/website"
)

// Server wires the HTTP surface to the generation pipeline.
type Server struct {
	config    *config.Config
	logger    *logger.Logger
	generator *generator.Generator
	analyzer  *website.Analyzer
}

// New creates a Server on explicitly constructed collaborators.
func New(cfg *config.Config, log *logger.Logger, gen *generator.Generator, analyzer *website.Analyzer) *Server {
	return &Server{
		config:    cfg,
		logger:    log,
		generator: gen,
		analyzer:  analyzer,
	}
}

// Router builds the gin engine with CORS and all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = 16 << 20

	corsConfig := cors.DefaultConfig()
	if len(s.config.Server.CORSOrigins) == 1 && s.config.Server.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.config.Server.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	router.Use(cors.New(corsConfig))
	router.Use(requestID())

	router.GET("/health", s.health)
	router.POST("/analyze", s.analyze)
	router.POST("/generate", s.generate)
	router.POST("/analyze_website", s.analyzeWebsite)
	router.POST("/generate_api_tests", s.generateAPITests)

	return router
}

// Run starts the HTTP server on the configured address.
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Printf("server listening on %s", addr)
	return s.Router().Run(addr)
}

// requestID tags every request with a correlation id for log lines.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
