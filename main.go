package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sneaker-shop/config"
	_ "sneaker-shop/docs"
	"sneaker-shop/libs"
	"sneaker-shop/middleware"
	"sneaker-shop/models"
	"sneaker-shop/routes"
)

// @title Sneaker Shop API
// @version 1.0
// @description REST API for the sneaker store: catalog, cart, users and AI chat.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()
	config.InitLogger(config.AppConfig.AppEnv)
	defer config.Logger.Sync()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()

	models.InitRedis()
	defer models.CloseRedis()

	if err := os.MkdirAll(config.AppConfig.UploadDir, os.ModePerm); err != nil {
		config.Logger.Fatal("Failed to create upload directory", zap.Error(err))
	}

	chatClient, err := libs.NewChatClient(context.Background(), config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		// Chat endpoints fail closed; the rest of the API still works.
		config.Logger.Warn("Chat client unavailable", zap.Error(err))
		chatClient = nil
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, chatClient)

	port := ":" + config.AppConfig.Port
	config.Logger.Info("Server starting",
		zap.String("port", config.AppConfig.Port),
		zap.String("env", config.AppConfig.AppEnv),
	)

	if err := router.Run(port); err != nil {
		config.Logger.Fatal("Failed to start server", zap.Error(err))
	}
}
