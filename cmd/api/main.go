package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/conn4/internal/config"
	"github.com/iamasit07/conn4/internal/repository/redis"
	"github.com/iamasit07/conn4/internal/service/cleanup"
	"github.com/iamasit07/conn4/internal/service/game"
	transportHttp "github.com/iamasit07/conn4/internal/transport/http"
	"github.com/iamasit07/conn4/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Live session cache; without Redis sessions stay in memory only
	var store game.SnapshotStore = game.NopStore{}
	redisCtx, cancelRedis := context.WithTimeout(ctx, 5*time.Second)
	redisClient, redisEnabled := redis.InitRedis(redisCtx, cfg.RedisURL, cfg.RedisPassword)
	cancelRedis()
	if redisEnabled {
		defer redisClient.Close()
		store = redis.NewSnapshotCache(redisClient)
	}

	connManager := websocket.NewConnectionManager()
	sessionManager := game.NewSessionManager(store, connManager, game.Options{
		Rows:       cfg.BoardRows,
		Cols:       cfg.BoardCols,
		MaxRows:    cfg.MaxBoardRows,
		MaxCols:    cfg.MaxBoardCols,
		SessionTTL: cfg.SessionTTL,
	})

	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.FinishedTTL, cfg.SessionTTL)
	go cleanupWorker.Start(ctx)

	gameHandler := transportHttp.NewGameHandler(sessionManager, cfg.JWTSecret, cfg.SessionTTL, cfg.IsProduction())
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.JWTSecret, cfg.AllowedOrigins)

	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
		StaticDir:      cfg.StaticDir,
	}, sessionManager, gameHandler, wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (board %dx%d)", cfg.Port, cfg.BoardRows, cfg.BoardCols)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
