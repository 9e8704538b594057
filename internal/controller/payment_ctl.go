package controller

import (
	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/service"
)

// PaymentController 收款通道管理
type PaymentController struct {
	paymentService *service.PaymentService
}

// NewPaymentController 创建收款控制器
func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// Create 绑定收款通道
func (c *PaymentController) Create(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.CreatePaymentProcessorReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	processor, err := c.paymentService.CreateProcessor(ctx.Request.Context(), userID, &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.Created(ctx, processor.ToMap(true))
}

// List 通道列表
func (c *PaymentController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	processors, err := c.paymentService.ListProcessors(ctx.Request.Context(), userID)
	if err != nil {
		handleErr(ctx, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(processors))
	for i := range processors {
		items = append(items, processors[i].ToMap(false))
	}
	response.OK(ctx, items)
}

// Get 通道详情
func (c *PaymentController) Get(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	processor, err := c.paymentService.GetProcessor(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, processor.ToMap(true))
}

// Update 更新通道
func (c *PaymentController) Update(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.UpdatePaymentProcessorReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	processor, err := c.paymentService.UpdateProcessor(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, processor.ToMap(true))
}

// Delete 解绑通道
func (c *PaymentController) Delete(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.paymentService.DeleteProcessor(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, gin.H{"deleted": true})
}
