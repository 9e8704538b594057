package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ksap_backend_v1/pkg/supabase"
)

// 对外报的版本号
const Version = "1.0.0"

// ==================== HealthController 健康检查 ====================

// HealthController /health 和根路径说明页
type HealthController struct {
	supabase    *supabase.Client
	environment string
}

// NewHealthController 创建健康检查控制器
func NewHealthController(sb *supabase.Client, environment string) *HealthController {
	return &HealthController{supabase: sb, environment: environment}
}

// Health 健康检查
// 存储侧可达 200，不可达 503；api 自身能响应就是 running
func (c *HealthController) Health(ctx *gin.Context) {
	storage := "connected"
	status := "healthy"
	httpStatus := http.StatusOK

	if !c.supabase.TestConnection(ctx.Request.Context()) {
		storage = "disconnected"
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	ctx.JSON(httpStatus, gin.H{
		"status":  status,
		"version": Version,
		"services": gin.H{
			"storage": storage,
			"api":     "running",
		},
		"environment": c.environment,
	})
}

// Index 根路径：静态说明 JSON
func (c *HealthController) Index(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "KSAP 电商管理平台 API",
		"version": Version,
		"endpoints": gin.H{
			"health":    "/health",
			"users":     "/api/v1/users",
			"stores":    "/api/v1/stores",
			"products":  "/api/v1/products",
			"orders":    "/api/v1/orders",
			"analytics": "/api/v1/analytics",
			"social":    "/api/v1/social",
		},
		"technologies": gin.H{
			"language":  "Go",
			"framework": "Gin",
			"database":  "PostgreSQL (Supabase)",
			"orm":       "GORM",
		},
	})
}
