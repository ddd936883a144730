package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/conn4/internal/service/game"
	"github.com/iamasit07/conn4/internal/transport/http/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	JWTSecret      string
	StaticDir      string
}

// NewRouter wires the game API, the websocket endpoint and, when StaticDir
// exists, the browser page.
func NewRouter(cfg RouterConfig, sm *game.SessionManager, gameHandler *GameHandler, wsHandler http.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/api/health", gameHandler.Health)
	router.POST("/api/game", gameHandler.CreateGame)

	protected := router.Group("/api/game")
	protected.Use(middleware.SessionMiddleware(cfg.JWTSecret, sm))
	{
		protected.GET("", gameHandler.GetGame)
		protected.DELETE("", gameHandler.EndGame)
		protected.POST("/move", gameHandler.DropPiece)
		protected.POST("/restart", gameHandler.RestartGame)
	}

	// WebSocket Route (auth handled inside the WS handler itself)
	router.GET("/ws", gin.WrapF(wsHandler))

	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
			serveStatic(router, cfg.StaticDir)
		}
	}

	return router
}

func serveStatic(router *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")
	router.Static("/static", dir)
	router.GET("/", func(c *gin.Context) {
		c.File(index)
	})

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(index)
	})
}
