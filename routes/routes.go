package routes

import (
	"sneaker-shop/config"
	"sneaker-shop/controllers"
	"sneaker-shop/libs"
	"sneaker-shop/middleware"
	"sneaker-shop/repositories"
	"sneaker-shop/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, chatClient *libs.ChatClient) {
	userRepo := repositories.NewUserRepository(config.DB)
	productRepo := repositories.NewProductRepository(config.DB)
	cartRepo := repositories.NewCartRepository(config.DB)

	// A typed nil would still satisfy the interface, so only assign
	// when the client actually exists.
	var responder services.ChatResponder
	if chatClient != nil {
		responder = chatClient
	}

	authCtrl := controllers.NewAuthController(services.NewAuthService(userRepo))
	userCtrl := controllers.NewUserController(services.NewUserService(userRepo))
	productCtrl := controllers.NewProductController(services.NewProductService(productRepo))
	cartCtrl := controllers.NewCartController(services.NewCartService(cartRepo, productRepo))
	chatCtrl := controllers.NewChatController(services.NewChatService(responder))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api")

	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)
	api.GET("/products", productCtrl.GetAllProducts)
	api.GET("/products/:id", productCtrl.GetProductByID)

	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/add", cartCtrl.AddItem)
		auth.PUT("/cart/update/:itemId", cartCtrl.UpdateItem)
		auth.DELETE("/cart/remove/:itemId", cartCtrl.RemoveItem)

		auth.POST("/chat", chatCtrl.Chat)
	}

	manager := api.Group("/")
	manager.Use(middleware.AuthMiddleware(), middleware.ManagerMiddleware())
	{
		manager.POST("/products", productCtrl.CreateProduct)
		manager.PUT("/products/:id", productCtrl.UpdateProduct)
		manager.DELETE("/products/:id", productCtrl.DeleteProduct)

		manager.GET("/users", userCtrl.GetAllUsers)
		manager.PUT("/users/:id", userCtrl.UpdateUser)
		manager.DELETE("/users/:id", userCtrl.DeleteUser)
	}

	router.Static("/uploads", config.AppConfig.UploadDir)
}
