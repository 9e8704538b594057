package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/controller"
	"ksap_backend_v1/internal/middleware"
)

// Controllers 路由需要的全部控制器
type Controllers struct {
	Health    *controller.HealthController
	Auth      *controller.AuthController
	User      *controller.UserController
	Store     *controller.StoreController
	Product   *controller.ProductController
	Order     *controller.OrderController
	Payment   *controller.PaymentController
	Proxy     *controller.ProxyController
	Social    *controller.SocialController
	Campaign  *controller.CampaignController
	Analytics *controller.AnalyticsController
	Research  *controller.ResearchController
}

// SetupRouter 建引擎并注册全部路由
func SetupRouter(c *Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	InitRoutes(r, c)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, c *Controllers) {
	// CORS 全放开，上层网关再收紧
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	}))

	// panic 统一转 500 信封
	r.Use(gin.CustomRecovery(func(ctx *gin.Context, _ interface{}) {
		response.AbortError(ctx, 500, response.CodeInternalError, "服务内部错误")
	}))

	// 未匹配路由也走统一信封
	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "接口不存在")
	})

	// 1. 公开路由
	r.GET("/", c.Health.Index)
	r.GET("/health", c.Health.Health)

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.Refresh)
	}

	// 2. 登录后路由
	protected := api.Group("")
	protected.Use(middleware.JWTAuth())
	{
		users := protected.Group("/users")
		{
			users.GET("/me", c.User.GetProfile)
			users.PUT("/me", c.User.UpdateProfile)
			users.DELETE("/me", c.User.DeleteAccount)
		}

		stores := protected.Group("/stores")
		{
			stores.POST("", c.Store.Create)
			stores.GET("", c.Store.List)
			stores.GET("/:id", c.Store.Get)
			stores.PUT("/:id", c.Store.Update)
			stores.PUT("/:id/credentials", c.Store.RefreshCredentials)
			stores.DELETE("/:id", c.Store.Delete)
		}

		products := protected.Group("/products")
		{
			products.POST("", c.Product.Create)
			products.GET("", c.Product.List)
			products.GET("/:id", c.Product.Get)
			products.PUT("/:id", c.Product.Update)
			products.DELETE("/:id", c.Product.Delete)
			products.POST("/:id/images", c.Product.UploadImage)
		}

		// 订单没有 DELETE，取消走状态
		orders := protected.Group("/orders")
		{
			orders.POST("", c.Order.Create)
			orders.GET("", c.Order.List)
			orders.GET("/:id", c.Order.Get)
			orders.PUT("/:id", c.Order.Update)
		}

		payments := protected.Group("/payments")
		{
			payments.POST("", c.Payment.Create)
			payments.GET("", c.Payment.List)
			payments.GET("/:id", c.Payment.Get)
			payments.PUT("/:id", c.Payment.Update)
			payments.DELETE("/:id", c.Payment.Delete)
		}

		proxies := protected.Group("/proxies")
		{
			proxies.POST("", c.Proxy.Create)
			proxies.GET("", c.Proxy.List)
			proxies.GET("/:id", c.Proxy.Get)
			proxies.PUT("/:id", c.Proxy.Update)
			proxies.DELETE("/:id", c.Proxy.Delete)
			proxies.POST("/:id/test", c.Proxy.Test)
		}

		social := protected.Group("/social")
		{
			social.POST("", c.Social.Create)
			social.GET("", c.Social.List)
			social.GET("/:id", c.Social.Get)
			social.PUT("/:id", c.Social.Update)
			social.DELETE("/:id", c.Social.Delete)
		}

		campaigns := protected.Group("/campaigns")
		{
			campaigns.POST("", c.Campaign.Create)
			campaigns.GET("", c.Campaign.List)
			campaigns.GET("/:id", c.Campaign.Get)
			campaigns.PUT("/:id", c.Campaign.Update)
			campaigns.DELETE("/:id", c.Campaign.Delete)
		}

		// 指标是追加型，没有修改删除
		analytics := protected.Group("/analytics")
		{
			analytics.POST("", c.Analytics.Append)
			analytics.POST("/batch", c.Analytics.AppendBatch)
			analytics.GET("", c.Analytics.List)
		}

		research := protected.Group("/research")
		{
			research.POST("", c.Research.Append)
			research.GET("", c.Research.List)
			research.GET("/:id", c.Research.Get)
			research.DELETE("/:id", c.Research.Delete)
		}
	}
}
