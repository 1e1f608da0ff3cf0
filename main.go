package main

import (
	"log"
	"time"

	"corporate-site/config"
	"corporate-site/database"
	routes "corporate-site/internal/app/http"
	"corporate-site/internal/infra/logging"
	"corporate-site/internal/infra/uploads"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	logger, err := logging.New(config.Current.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	gin.SetMode(config.Current.GinMode)
	database.InitDB()

	r := gin.New()
	r.Use(logging.Middleware(logger), logging.Recovery(logger))

	// CORS must run before the routes are registered
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.Current.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	files := uploads.New(config.Current.UploadDir)
	r.Static("/media", files.Dir)
	routes.RegisterRoutes(r, files)

	logger.Info("listening", zap.String("port", config.PORT))
	if err := r.Run(":" + config.PORT); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
