package controller

import (
	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/service"
)

// ProxyController 代理管理
type ProxyController struct {
	proxyService *service.ProxyService
}

// NewProxyController 创建代理控制器
func NewProxyController(proxyService *service.ProxyService) *ProxyController {
	return &ProxyController{proxyService: proxyService}
}

// Create 录入代理
func (c *ProxyController) Create(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.CreateProxyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	proxy, err := c.proxyService.CreateProxy(ctx.Request.Context(), userID, &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.Created(ctx, proxy.ToMap(true))
}

// List 代理列表
func (c *ProxyController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	proxies, err := c.proxyService.ListProxies(ctx.Request.Context(), userID)
	if err != nil {
		handleErr(ctx, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(proxies))
	for i := range proxies {
		items = append(items, proxies[i].ToMap(false))
	}
	response.OK(ctx, items)
}

// Get 代理详情
func (c *ProxyController) Get(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	proxy, err := c.proxyService.GetProxy(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, proxy.ToMap(true))
}

// Update 更新代理
func (c *ProxyController) Update(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.UpdateProxyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	proxy, err := c.proxyService.UpdateProxy(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, proxy.ToMap(true))
}

// Delete 删除代理
func (c *ProxyController) Delete(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.proxyService.DeleteProxy(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, gin.H{"deleted": true})
}

// Test 手动触发一次连通性探测
func (c *ProxyController) Test(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	proxy, err := c.proxyService.TestProxy(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, proxy.ToMap(false))
}
