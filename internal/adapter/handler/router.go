package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voicepost-team/voicepost/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg          *config.Config
	draftHandler *Draft
	styleHandler *Style
	voiceHandler *Voice
	memoHandler  *Memo
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, draftHandler *Draft, styleHandler *Style, voiceHandler *Voice, memoHandler *Memo) *Router {
	return &Router{
		cfg:          cfg,
		draftHandler: draftHandler,
		styleHandler: styleHandler,
		voiceHandler: voiceHandler,
		memoHandler:  memoHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")

	rt.setupDraftRoutes(v1)
	rt.setupStyleRoutes(v1)
	rt.setupVoiceRoutes(v1)
	rt.setupMemoRoutes(v1)
}

func (rt *Router) setupDraftRoutes(g *echo.Group) {
	g.POST("/transcripts/structure", rt.draftHandler.Structure)
	g.POST("/drafts", rt.draftHandler.Generate)
}

func (rt *Router) setupStyleRoutes(g *echo.Group) {
	g.POST("/style/analyze", rt.styleHandler.Analyze)
}

func (rt *Router) setupVoiceRoutes(g *echo.Group) {
	voiceGroup := g.Group("/voice")
	voiceGroup.GET("/settings", rt.voiceHandler.GetSettings)
	voiceGroup.PUT("/settings", rt.voiceHandler.UpdateSettings)
}

func (rt *Router) setupMemoRoutes(g *echo.Group) {
	g.POST("/memos", rt.memoHandler.Upload)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
