package controller

import (
	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/repository"
	"ksap_backend_v1/internal/service"
)

// CampaignController 广告系列管理
type CampaignController struct {
	campaignService *service.CampaignService
}

// NewCampaignController 创建广告控制器
func NewCampaignController(campaignService *service.CampaignService) *CampaignController {
	return &CampaignController{campaignService: campaignService}
}

// Create 创建广告系列
func (c *CampaignController) Create(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.CreateCampaignReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	campaign, err := c.campaignService.CreateCampaign(ctx.Request.Context(), userID, &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.Created(ctx, campaign.ToMap(true))
}

// List 系列分页列表
func (c *CampaignController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	page, pageSize := pageArgs(ctx)

	filter := repository.CampaignFilter{
		StoreID:   ctx.Query("store_id"),
		Status:    ctx.Query("status"),
		Objective: ctx.Query("objective"),
		Page:      page,
		PageSize:  pageSize,
	}

	campaigns, total, err := c.campaignService.ListCampaigns(ctx.Request.Context(), userID, filter)
	if err != nil {
		handleErr(ctx, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, campaigns[i].ToMap(false))
	}
	response.List(ctx, items, total, page)
}

// Get 系列详情
func (c *CampaignController) Get(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	campaign, err := c.campaignService.GetCampaign(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, campaign.ToMap(true))
}

// Update 更新系列
func (c *CampaignController) Update(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.UpdateCampaignReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	campaign, err := c.campaignService.UpdateCampaign(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, campaign.ToMap(true))
}

// Delete 删除系列
func (c *CampaignController) Delete(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.campaignService.DeleteCampaign(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, gin.H{"deleted": true})
}
