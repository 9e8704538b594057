package dto

import "gorm.io/datatypes"

// CreateOrderReq 创建订单请求（购买事件回传）
type CreateOrderReq struct {
	StoreID         string         `json:"store_id" binding:"required,uuid"`
	PlatformOrderID string         `json:"platform_order_id"`
	OrderNumber     string         `json:"order_number"`
	CustomerEmail   string         `json:"customer_email" binding:"omitempty,email"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	BillingAddress  datatypes.JSON `json:"billing_address"`
	ShippingAddress datatypes.JSON `json:"shipping_address"`
	TaxAmount       float64        `json:"tax_amount" binding:"omitempty,gte=0"`
	ShippingAmount  float64        `json:"shipping_amount" binding:"omitempty,gte=0"`
	Currency        string         `json:"currency"`
	Status          string         `json:"status" binding:"omitempty,oneof=pending paid fulfilled shipped delivered cancelled"`
	Notes           string         `json:"notes"`
	Tags            datatypes.JSON `json:"tags"`

	Items []OrderItemReq `json:"items" binding:"required,min=1,dive"`
}

// OrderItemReq 订单行，行金额服务端算，不信客户端
type OrderItemReq struct {
	ProductID         *string        `json:"product_id" binding:"omitempty,uuid"`
	PlatformProductID string         `json:"platform_product_id"`
	Title             string         `json:"title"`
	SKU               string         `json:"sku"`
	Quantity          int            `json:"quantity" binding:"required,gt=0"`
	Price             float64        `json:"price" binding:"gte=0"`
	VariantTitle      string         `json:"variant_title"`
	Properties        datatypes.JSON `json:"properties"`
}

// UpdateOrderReq 更新订单请求（状态和备注，行数据不可改）
type UpdateOrderReq struct {
	Status            *string `json:"status" binding:"omitempty,oneof=pending paid fulfilled shipped delivered cancelled"`
	FulfillmentStatus *string `json:"fulfillment_status"`
	PaymentStatus     *string `json:"payment_status"`
	Notes             *string `json:"notes"`
}
