package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sneaker-shop/config"
	_ "sneaker-shop/docs"
	"sneaker-shop/libs"
	"sneaker-shop/middleware"
	"sneaker-shop/models"
	"sneaker-shop/routes"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		config.InitLogger(config.AppConfig.AppEnv)

		config.ConnectDB()
		models.InitRedis()

		chatClient, err := libs.NewChatClient(context.Background(), config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			config.Logger.Warn("Chat client unavailable", zap.Error(err))
			chatClient = nil
		}

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.RequestLogger())
		router.Use(middleware.CORSMiddleware())

		routes.SetupRoutes(router, chatClient)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
