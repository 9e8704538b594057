package controller

import (
	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/repository"
	"ksap_backend_v1/internal/service"
)

// ==================== OrderController 订单控制器 ====================

// OrderController 订单录入和状态维护，没有删除接口
type OrderController struct {
	orderService *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Create 创建订单
// @Summary 创建订单
// @Tags Order
// @Router /api/v1/orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.CreateOrderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	order, err := c.orderService.CreateOrder(ctx.Request.Context(), userID, &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.Created(ctx, order.ToMap(true))
}

// List 订单分页列表
// @Summary 订单列表
// @Tags Order
// @Router /api/v1/orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	page, pageSize := pageArgs(ctx)

	filter := repository.OrderFilter{
		StoreID:       ctx.Query("store_id"),
		Status:        ctx.Query("status"),
		CustomerEmail: ctx.Query("customer_email"),
		Page:          page,
		PageSize:      pageSize,
	}

	orders, total, err := c.orderService.ListOrders(ctx.Request.Context(), userID, filter)
	if err != nil {
		handleErr(ctx, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(orders))
	for i := range orders {
		items = append(items, orders[i].ToMap(false))
	}
	response.List(ctx, items, total, page)
}

// Get 订单详情（带订单行）
// @Summary 订单详情
// @Tags Order
// @Router /api/v1/orders/:id [get]
func (c *OrderController) Get(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	order, err := c.orderService.GetOrder(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, order.ToMap(true))
}

// Update 更新订单状态和备注
// @Summary 更新订单
// @Tags Order
// @Router /api/v1/orders/:id [put]
func (c *OrderController) Update(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.UpdateOrderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	order, err := c.orderService.UpdateOrder(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, order.ToMap(true))
}
