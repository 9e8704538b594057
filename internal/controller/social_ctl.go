package controller

import (
	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/repository"
	"ksap_backend_v1/internal/service"
)

// SocialController 社媒账号管理
type SocialController struct {
	socialService *service.SocialService
}

// NewSocialController 创建社媒控制器
func NewSocialController(socialService *service.SocialService) *SocialController {
	return &SocialController{socialService: socialService}
}

// Create 绑定社媒账号
func (c *SocialController) Create(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.CreateSocialAccountReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	account, err := c.socialService.CreateAccount(ctx.Request.Context(), userID, &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.Created(ctx, account.ToMap(true))
}

// List 账号分页列表
func (c *SocialController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	page, pageSize := pageArgs(ctx)

	filter := repository.SocialFilter{
		Platform: ctx.Query("platform"),
		Status:   ctx.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	accounts, total, err := c.socialService.ListAccounts(ctx.Request.Context(), userID, filter)
	if err != nil {
		handleErr(ctx, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(accounts))
	for i := range accounts {
		items = append(items, accounts[i].ToMap(false))
	}
	response.List(ctx, items, total, page)
}

// Get 账号详情
func (c *SocialController) Get(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	account, err := c.socialService.GetAccount(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, account.ToMap(true))
}

// Update 更新账号
func (c *SocialController) Update(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.UpdateSocialAccountReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	account, err := c.socialService.UpdateAccount(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, account.ToMap(true))
}

// Delete 解绑账号
func (c *SocialController) Delete(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.socialService.DeleteAccount(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, gin.H{"deleted": true})
}
