package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ksap_backend_v1/internal/controller"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/repository"
	"ksap_backend_v1/internal/router"
	"ksap_backend_v1/internal/service"
	"ksap_backend_v1/internal/task"
	"ksap_backend_v1/pkg/database"
	"ksap_backend_v1/pkg/supabase"
)

func main() {
	// 1. 初始化数据库并下发建表语句（逐条尽力而为）
	db := initDatabase()

	// 2. JWT 配置
	initJWT()

	// 3. 初始化依赖
	deps := initDependencies(db)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Supabase    *supabase.Client
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User      repository.UserRepository
	Store     repository.StoreRepository
	Product   repository.ProductRepository
	Order     repository.OrderRepository
	Payment   repository.PaymentProcessorRepository
	Proxy     repository.ProxyRepository
	Social    repository.SocialAccountRepository
	Campaign  repository.CampaignRepository
	Analytics repository.AnalyticsRepository
	Research  repository.ResearchRepository
}

// Services 服务集合
type Services struct {
	Auth      *service.AuthService
	User      *service.UserService
	Store     *service.StoreService
	Product   *service.ProductService
	Order     *service.OrderService
	Payment   *service.PaymentService
	Proxy     *service.ProxyService
	Social    *service.SocialService
	Campaign  *service.CampaignService
	Analytics *service.AnalyticsService
	Research  *service.ResearchService
	Storage   *service.StorageService
}

// ==================== 初始化函数 ====================

// initDatabase 连库并应用声明式 Schema
// 线上表和策略多半已就位，失败的语句只记日志不拦启动
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=ksap port=5432 sslmode=disable")
	db := database.InitDB(dsn)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if failed := database.CreateTables(ctx, db); failed > 0 {
		log.Printf("警告: %d 条建表语句未生效（已存在或权限不足）", failed)
	}
	return db
}

// initJWT 从环境变量装配 JWT 配置
func initJWT() {
	cfg := middleware.DefaultJWTConfig()
	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		cfg.SecretKey = secret
	} else {
		log.Println("警告: JWT_SECRET 未设置，使用内置默认密钥（仅限开发）")
	}
	middleware.SetJWTConfig(cfg)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- 外部客户端 --------
	sb := supabase.NewClient(supabase.Config{
		URL:        getEnv("SUPABASE_URL", ""),
		AnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
		ServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
	})

	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 存储服务 --------
	storageSvc := initStorageService()

	// -------- 业务服务 --------
	services := &Services{
		Auth:      service.NewAuthService(repos.User),
		User:      service.NewUserService(repos.User, sb),
		Store:     service.NewStoreService(repos.Store),
		Product:   service.NewProductService(repos.Product, repos.Store, storageSvc),
		Order:     service.NewOrderService(repos.Order, repos.Store),
		Payment:   service.NewPaymentService(repos.Payment),
		Proxy:     service.NewProxyService(repos.Proxy),
		Social:    service.NewSocialService(repos.Social, repos.Proxy),
		Campaign:  service.NewCampaignService(repos.Campaign, repos.Store, repos.Social),
		Analytics: service.NewAnalyticsService(repos.Analytics, repos.Store),
		Research:  service.NewResearchService(repos.Research),
		Storage:   storageSvc,
	}

	// -------- Controller 层 --------
	controllers := initControllers(services, sb)

	return &Dependencies{
		DB:          db,
		Supabase:    sb,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      repository.NewUserRepository(db),
		Store:     repository.NewStoreRepository(db),
		Product:   repository.NewProductRepository(db),
		Order:     repository.NewOrderRepository(db),
		Payment:   repository.NewPaymentProcessorRepository(db),
		Proxy:     repository.NewProxyRepository(db),
		Social:    repository.NewSocialAccountRepository(db),
		Campaign:  repository.NewCampaignRepository(db),
		Analytics: repository.NewAnalyticsRepository(db),
		Research:  repository.NewResearchRepository(db),
	}
}

// initStorageService 初始化对象存储
func initStorageService() *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "ksap"),
	})
	if err != nil {
		log.Printf("警告: 存储服务初始化失败: %v", err)
		return service.NewStorageServiceWith(nil)
	}
	return storageSvc
}

// initControllers 初始化所有控制器
func initControllers(svc *Services, sb *supabase.Client) *router.Controllers {
	return &router.Controllers{
		Health:    controller.NewHealthController(sb, getEnv("APP_ENV", "development")),
		Auth:      controller.NewAuthController(svc.Auth),
		User:      controller.NewUserController(svc.User),
		Store:     controller.NewStoreController(svc.Store),
		Product:   controller.NewProductController(svc.Product),
		Order:     controller.NewOrderController(svc.Order),
		Payment:   controller.NewPaymentController(svc.Payment),
		Proxy:     controller.NewProxyController(svc.Proxy),
		Social:    controller.NewSocialController(svc.Social),
		Campaign:  controller.NewCampaignController(svc.Campaign),
		Analytics: controller.NewAnalyticsController(svc.Analytics),
		Research:  controller.NewResearchController(svc.Research),
	}
}

// ==================== 定时任务 ====================

// initTasks 启动定时任务
func initTasks(deps *Dependencies) {
	// 代理巡检
	proxyMonitor := task.NewProxyMonitor(deps.Repos.Proxy, deps.Services.Proxy)
	proxyMonitor.Start()

	// 社媒 Token 巡检
	tokenTask := task.NewTokenTask(deps.Repos.Social)
	tokenTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
