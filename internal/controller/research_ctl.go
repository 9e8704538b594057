package controller

import (
	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/repository"
	"ksap_backend_v1/internal/service"
)

// ResearchController 市场调研数据归档
type ResearchController struct {
	researchService *service.ResearchService
}

// NewResearchController 创建调研控制器
func NewResearchController(researchService *service.ResearchService) *ResearchController {
	return &ResearchController{researchService: researchService}
}

// Append 归档一条调研结果
func (c *ResearchController) Append(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.AppendResearchReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	row, err := c.researchService.Append(ctx.Request.Context(), userID, &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.Created(ctx, row.ToMap(false))
}

// List 分页列表
func (c *ResearchController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	page, pageSize := pageArgs(ctx)

	filter := repository.ResearchFilter{
		ResearchType: ctx.Query("research_type"),
		Source:       ctx.Query("source"),
		Page:         page,
		PageSize:     pageSize,
	}

	rows, total, err := c.researchService.ListRecords(ctx.Request.Context(), userID, filter)
	if err != nil {
		handleErr(ctx, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToMap(false))
	}
	response.List(ctx, items, total, page)
}

// Get 单条详情
func (c *ResearchController) Get(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	row, err := c.researchService.GetRecord(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, row.ToMap(true))
}

// Delete 删除归档
func (c *ResearchController) Delete(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.researchService.DeleteRecord(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, gin.H{"deleted": true})
}
