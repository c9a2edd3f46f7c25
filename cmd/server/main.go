package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signature-builder/internal/auth"
	"signature-builder/internal/autosave"
	"signature-builder/internal/config"
	"signature-builder/internal/db"
	"signature-builder/internal/logger"
	"signature-builder/internal/middleware"
	"signature-builder/internal/session"
	"signature-builder/internal/signature"
	"signature-builder/internal/user"
	"signature-builder/internal/worker"
	"signature-builder/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	autosaveKeyPrefix  = "signature-builder:autosave:"
	sessionSweepPeriod = time.Minute
	shutdownTimeout    = 5 * time.Second
)

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Setup(cfg.Environment, cfg.LogLevel)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Connect to database
	appDb, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close(appDb)

	if err := db.Migrate(appDb); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if cfg.Environment == "development" {
		db.SeedData(ctx, appDb)
	}

	// Redis backs the local autosave store and the listing cache
	redisClient := redis.InitRedis(ctx, cfg.RedisAddress)
	if redisClient != nil {
		defer redisClient.Close()
	}
	cache := redis.NewCache(redisClient)
	localStore := redis.NewLocalStore(redisClient, autosaveKeyPrefix)

	pool := worker.NewPool(cfg.WorkerPoolSize)
	signer := auth.NewSigner(cfg.JWTSecret)

	// Initialize repository
	userRepo := user.NewRepository(appDb)
	signatureRepo := signature.NewRepository(appDb)
	// Initialize service
	userService := user.NewService(userRepo)
	signatureService := signature.NewService(signatureRepo, cache)
	sessions := session.NewManager(localStore, signatureService, pool, session.Options{
		HistoryLimit: cfg.HistoryLimit,
		IdleTimeout:  cfg.SessionIdleTimeout,
		Autosave: autosave.Options{
			Debounce:       cfg.AutosaveDebounce,
			RemoteInterval: cfg.AutosaveRemoteInterval,
			StatusWindow:   cfg.AutosaveStatusWindow,
		},
	})
	go sessions.Run(ctx, sessionSweepPeriod)
	// Initialize handler
	userHandler := user.NewHandler(userService, signer, cfg.Environment == "production")
	signatureHandler := signature.NewHandler(signatureService)
	sessionHandler := session.NewHandler(sessions)

	authMiddleware := &middleware.Auth{UserService: userService, Signer: signer}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if cfg.Environment == "development" {
		// Allow any origin in development
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsConfig.AllowOrigins = []string{cfg.FrontendAddress}
	}
	router.Use(cors.New(corsConfig))

	// User routes
	router.POST("/register", userHandler.Register)
	router.POST("/login", userHandler.Login)
	router.POST("/refresh", userHandler.RefreshToken)
	router.DELETE("/logout", authMiddleware.AuthMiddleWare(), userHandler.Logout)
	router.GET("/profile", authMiddleware.AuthMiddleWare(), userHandler.GetProfile)

	// Saved signatures
	signatures := router.Group("/signatures", authMiddleware.AuthMiddleWare())
	signatures.GET("", signatureHandler.List)
	signatures.GET("/:id", signatureHandler.Show)
	signatures.PATCH("/:id", signatureHandler.Update)
	signatures.DELETE("/:id", signatureHandler.Delete)

	// Editor sessions; anonymous users only autosave locally
	editor := router.Group("/editor", authMiddleware.OptionalAuth())
	editor.GET("/templates", sessionHandler.Templates)
	editor.POST("/sessions", sessionHandler.Open)
	editor.GET("/sessions/:id", sessionHandler.Show)
	editor.POST("/sessions/:id/commands", sessionHandler.Command)
	editor.POST("/sessions/:id/template", sessionHandler.LoadTemplate)
	editor.GET("/sessions/:id/selection", sessionHandler.Selection)
	editor.DELETE("/sessions/:id", sessionHandler.Close)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	stop()
	sessions.CloseAll()
	pool.Shutdown(shutdownCtx)

	log.Info().Msg("server shutdown complete")
}
