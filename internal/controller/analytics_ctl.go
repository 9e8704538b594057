package controller

import (
	"time"

	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/repository"
	"ksap_backend_v1/internal/service"
)

// AnalyticsController 店铺指标写入和查询
type AnalyticsController struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsController 创建分析控制器
func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// Append 追加一条指标
func (c *AnalyticsController) Append(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.AppendAnalyticsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	row, err := c.analyticsService.Append(ctx.Request.Context(), userID, &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.Created(ctx, row.ToMap(false))
}

// AppendBatch 批量追加
func (c *AnalyticsController) AppendBatch(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.AppendAnalyticsBatchReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	rows, err := c.analyticsService.AppendBatch(ctx.Request.Context(), userID, &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToMap(false))
	}
	response.Created(ctx, items)
}

// List 指标查询
// from / to 按 2006-01-02 解析，非法值忽略
func (c *AnalyticsController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	page, pageSize := pageArgs(ctx)

	filter := repository.AnalyticsFilter{
		StoreID:    ctx.Query("store_id"),
		MetricType: ctx.Query("metric_type"),
		Page:       page,
		PageSize:   pageSize,
	}
	if v := ctx.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.From = &t
		}
	}
	if v := ctx.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.To = &t
		}
	}

	rows, total, err := c.analyticsService.List(ctx.Request.Context(), userID, filter)
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
