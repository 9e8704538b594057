package controller

import (
	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
	"ksap_backend_v1/internal/service"
)

// ==================== StoreController 店铺控制器 ====================

// StoreController 店铺管理
type StoreController struct {
	storeService *service.StoreService
}

// NewStoreController 创建店铺控制器
func NewStoreController(storeService *service.StoreService) *StoreController {
	return &StoreController{storeService: storeService}
}

// Create 创建店铺
// @Summary 创建店铺
// @Tags Store
// @Router /api/v1/stores [post]
func (c *StoreController) Create(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.CreateStoreReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	store, err := c.storeService.CreateStore(ctx.Request.Context(), userID, &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.Created(ctx, store.ToMap(true))
}

// List 店铺分页列表
// @Summary 店铺列表
// @Tags Store
// @Router /api/v1/stores [get]
func (c *StoreController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	page, pageSize := pageArgs(ctx)

	filter := repository.StoreFilter{
		Platform: ctx.Query("platform"),
		Status:   ctx.Query("status"),
		Name:     ctx.Query("name"),
		Page:     page,
		PageSize: pageSize,
	}

	stores, total, err := c.storeService.ListStores(ctx.Request.Context(), userID, filter)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.List(ctx, storeMaps(stores, false), total, page)
}

// Get 店铺详情
// @Summary 店铺详情
// @Tags Store
// @Router /api/v1/stores/:id [get]
func (c *StoreController) Get(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	store, err := c.storeService.GetStore(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, store.ToMap(true))
}

// Update 更新店铺
// @Summary 更新店铺
// @Tags Store
// @Router /api/v1/stores/:id [put]
func (c *StoreController) Update(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.UpdateStoreReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	store, err := c.storeService.UpdateStore(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, store.ToMap(true))
}

// RefreshCredentials 平台凭证换新
// @Summary 平台凭证换新
// @Tags Store
// @Router /api/v1/stores/:id/credentials [put]
func (c *StoreController) RefreshCredentials(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.RefreshCredentialsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	store, err := c.storeService.RefreshCredentials(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, store.ToMap(true))
}

// Delete 删除店铺
// @Summary 删除店铺
// @Tags Store
// @Router /api/v1/stores/:id [delete]
func (c *StoreController) Delete(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.storeService.DeleteStore(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, gin.H{"deleted": true})
}

func storeMaps(stores []model.Store, includeSensitive bool) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(stores))
	for i := range stores {
		out = append(out, stores[i].ToMap(includeSensitive))
	}
	return out
}
