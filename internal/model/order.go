package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order 订单状态常量
// 注意：结构上不做状态机约束，任何值之间都可以切换，
// 平台只忠实记录外部电商平台回传的状态
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusFulfilled = "fulfilled"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order 店铺订单，购买事件创建，随店铺删除
type Order struct {
	BaseModel
	StoreID string `gorm:"type:uuid;index;not null"` // 归属店铺（一跳回溯到账号）
	Store   *Store `gorm:"foreignKey:StoreID"`

	PlatformOrderID string `gorm:"size:255"`
	OrderNumber     string `gorm:"size:100"`

	// 客户联系信息
	CustomerEmail string `gorm:"size:255;index"`
	CustomerName  string `gorm:"size:255"`
	CustomerPhone string `gorm:"size:50"`

	// 地址直接存 JSON 块，不拆表
	BillingAddress  datatypes.JSON `gorm:"type:jsonb"`
	ShippingAddress datatypes.JSON `gorm:"type:jsonb"`

	// 金额
	Subtotal       float64 `gorm:"type:decimal(10,2)"`
	TaxAmount      float64 `gorm:"type:decimal(10,2)"`
	ShippingAmount float64 `gorm:"type:decimal(10,2)"`
	TotalAmount    float64 `gorm:"type:decimal(10,2)"`
	Currency       string  `gorm:"size:3;default:'USD'"`

	Status            string `gorm:"size:50;index"`
	FulfillmentStatus string `gorm:"size:50"`
	PaymentStatus     string `gorm:"size:50"`

	Notes string         `gorm:"type:text"`
	Tags  datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	// 订单行，随订单删除
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// ToMap 序列化为字段映射
func (o *Order) ToMap(includeSensitive bool) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, o.Items[i].ToMap(includeSensitive))
	}

	data := map[string]interface{}{
		"id":                 o.ID,
		"store_id":           o.StoreID,
		"order_number":       o.OrderNumber,
		"customer_email":     o.CustomerEmail,
		"customer_name":      o.CustomerName,
		"customer_phone":     o.CustomerPhone,
		"billing_address":    jsonOrEmpty(o.BillingAddress, "{}"),
		"shipping_address":   jsonOrEmpty(o.ShippingAddress, "{}"),
		"subtotal":           o.Subtotal,
		"tax_amount":         o.TaxAmount,
		"shipping_amount":    o.ShippingAmount,
		"total_amount":       o.TotalAmount,
		"currency":           o.Currency,
		"status":             o.Status,
		"fulfillment_status": o.FulfillmentStatus,
		"payment_status":     o.PaymentStatus,
		"notes":              o.Notes,
		"tags":               jsonOrEmpty(o.Tags, "[]"),
		"items":              items,
		"created_at":         formatTime(&o.CreatedAt),
		"updated_at":         formatTime(&o.UpdatedAt),
	}

	if includeSensitive {
		data["platform_order_id"] = o.PlatformOrderID
	}

	return data
}

// OrderItem 订单行，创建后不可变；建表侧无时间戳列
type OrderItem struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID string `gorm:"type:uuid;index;not null"`

	// 商品可空：商品删除后订单行保留历史快照，不级联
	ProductID         *string `gorm:"type:uuid"`
	PlatformProductID string  `gorm:"size:255"`

	Title        string         `gorm:"size:500"`
	SKU          string         `gorm:"size:255"`
	Quantity     int            `gorm:"not null"`
	Price        float64        `gorm:"type:decimal(10,2);not null"`
	Total        float64        `gorm:"type:decimal(10,2);not null"` // quantity * price，创建时算定
	VariantTitle string         `gorm:"size:255"`
	Properties   datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (it *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	return nil
}

// ToMap 序列化为字段映射
func (it *OrderItem) ToMap(includeSensitive bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":            it.ID,
		"order_id":      it.OrderID,
		"product_id":    it.ProductID,
		"title":         it.Title,
		"sku":           it.SKU,
		"quantity":      it.Quantity,
		"price":         it.Price,
		"total":         it.Total,
		"variant_title": it.VariantTitle,
		"properties":    jsonOrEmpty(it.Properties, "{}"),
	}

	if includeSensitive {
		data["platform_product_id"] = it.PlatformProductID
	}

	return data
}
