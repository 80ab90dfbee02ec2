package router

import (
	"github.com/globalforge/marketplace/internal/config"
	publichandlers "github.com/globalforge/marketplace/internal/http/handlers/public"
	"github.com/globalforge/marketplace/internal/logger"
	"github.com/globalforge/marketplace/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.ListCategories)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", publicHandler.Login)
		}

		// 购物车接口（会话隔离，登录非必需）
		cartGroup := apiV1.Group("/cart")
		cartGroup.Use(CartSessionMiddleware(cfg.Session))
		{
			cartGroup.GET("", publicHandler.GetCart)
			cartGroup.POST("/items", publicHandler.AddCartItem)
			cartGroup.PUT("/items", publicHandler.UpdateCartItem)
			cartGroup.DELETE("/items/:product_id", publicHandler.DeleteCartItem)
			cartGroup.DELETE("", publicHandler.ClearCart)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Me)
			user.POST("/checkout", CartSessionMiddleware(cfg.Session), publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.PUT("/orders/:id/status", publicHandler.UpdateOrderStatus)
			user.GET("/seller/sold-items", publicHandler.ListSoldItems)
		}
	}

	return r
}
