package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
)

// ==================== OrderService 订单服务 ====================

// OrderService 订单录入和状态维护
type OrderService struct {
	orderRepo repository.OrderRepository
	storeRepo repository.StoreRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, storeRepo repository.StoreRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, storeRepo: storeRepo}
}

// CreateOrder 创建订单
// 行金额和订单总额全部服务端计算，客户端传的 subtotal/total 一律不认
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderReq) (*model.Order, error) {
	if _, err := s.storeRepo.GetByID(ctx, userID, req.StoreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotOwned
		}
		return nil, err
	}

	var subtotal float64
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		total := float64(it.Quantity) * it.Price
		subtotal += total
		items = append(items, model.OrderItem{
			ProductID:         it.ProductID,
			PlatformProductID: it.PlatformProductID,
			Title:             it.Title,
			SKU:               it.SKU,
			Quantity:          it.Quantity,
			Price:             it.Price,
			Total:             total,
			VariantTitle:      it.VariantTitle,
			Properties:        it.Properties,
		})
	}

	status := req.Status
	if status == "" {
		status = model.OrderStatusPending
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	order := &model.Order{
		StoreID:         req.StoreID,
		PlatformOrderID: req.PlatformOrderID,
		OrderNumber:     req.OrderNumber,
		CustomerEmail:   req.CustomerEmail,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
		Subtotal:        subtotal,
		TaxAmount:       req.TaxAmount,
		ShippingAmount:  req.ShippingAmount,
		TotalAmount:     subtotal + req.TaxAmount + req.ShippingAmount,
		Currency:        currency,
		Status:          status,
		Notes:           req.Notes,
		Tags:            req.Tags,
		Items:           items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder 订单详情（带订单行）
func (s *OrderService) GetOrder(ctx context.Context, userID, id string) (*model.Order, error) {
	return s.orderRepo.GetByID(ctx, userID, id)
}

// ListOrders 订单分页列表
func (s *OrderService) ListOrders(ctx context.Context, userID string, filter repository.OrderFilter) ([]model.Order, int64, error) {
	return s.orderRepo.List(ctx, userID, filter)
}

// UpdateOrder 更新订单，只改状态和备注类字段，行数据不可变
func (s *OrderService) UpdateOrder(ctx context.Context, userID, id string, req *dto.UpdateOrderReq) (*model.Order, error) {
	fields := map[string]interface{}{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.FulfillmentStatus != nil {
		fields["fulfillment_status"] = *req.FulfillmentStatus
	}
	if req.PaymentStatus != nil {
		fields["payment_status"] = *req.PaymentStatus
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if len(fields) > 0 {
		if err := s.orderRepo.UpdateFields(ctx, userID, id, fields); err != nil {
			return nil, err
		}
	}
	return s.orderRepo.GetByID(ctx, userID, id)
}

// UpdateStatus 只推状态
func (s *OrderService) UpdateStatus(ctx context.Context, userID, id, status string) (*model.Order, error) {
	if err := s.orderRepo.UpdateStatus(ctx, userID, id, status); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, userID, id)
}
