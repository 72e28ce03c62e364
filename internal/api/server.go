package api

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yt-sponsor-estimator/internal/config"
	"github.com/yt-sponsor-estimator/internal/pricing"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server represents the web server
type Server struct {
	router    *gin.Engine
	estimator *Estimator
	logger    *slog.Logger
}

// estimateForm is the home page form submission
type estimateForm struct {
	ChannelURL string `form:"channel_url" binding:"required"`
}

// NewServer creates a new web server
func NewServer(cfg *config.Config, estimator *Estimator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.SetHTMLTemplate(loadTemplates())

	server := &Server{
		router:    router,
		estimator: estimator,
		logger:    logger,
	}

	server.setupRoutes(cfg.CORSOrigins)

	return server
}

func loadTemplates() *template.Template {
	funcs := template.FuncMap{
		"comma": humanize.Comma,
		"money": pricing.FormatAmount,
		"int64": func(f float64) int64 { return int64(f) },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// requestLogger logs one line per request
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes(corsOrigins []string) {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Pages
	s.router.GET("/", s.home)
	s.router.POST("/", s.estimate)
	s.router.GET("/about", s.about)

	// JSON API
	apiGroup := s.router.Group("/api")
	if len(corsOrigins) > 0 {
		apiGroup.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}
	apiGroup.GET("/estimate", s.estimateJSON)
}

// home renders the empty form
func (s *Server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{"channelURL": ""})
}

// about renders the informational page
func (s *Server) about(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{
		"baseCPM": pricing.BaseCPM,
	})
}

// estimate handles the form submission
func (s *Server) estimate(c *gin.Context) {
	var form estimateForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "home.html", gin.H{
			"error":      MsgInvalidURL,
			"channelURL": "",
		})
		return
	}

	result, err := s.estimator.Run(c.Request.Context(), form.ChannelURL)
	if err != nil {
		s.logger.Warn("estimate failed", slog.String("url", form.ChannelURL), slog.Any("error", err))
		c.HTML(statusFor(err), "home.html", gin.H{
			"error":      UserMessage(err),
			"channelURL": form.ChannelURL,
		})
		return
	}

	c.HTML(http.StatusOK, "result.html", gin.H{
		"stats":       result.Stats,
		"analytics":   result.Activity,
		"price":       result.Price,
		"explanation": result.Narration,
		"fallback":    result.NarrationFallback,
	})
}

// estimateJSON handles GET /api/estimate?url=...
func (s *Server) estimateJSON(c *gin.Context) {
	channelURL := c.Query("url")
	if channelURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "url query parameter is required",
		})
		return
	}

	result, err := s.estimator.Run(c.Request.Context(), channelURL)
	if err != nil {
		s.logger.Warn("estimate failed", slog.String("url", channelURL), slog.Any("error", err))
		c.JSON(statusFor(err), gin.H{
			"error": UserMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, ErrStatsUnavailable), errors.Is(err, ErrAnalyticsUnavailable):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server on the specified port
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}
