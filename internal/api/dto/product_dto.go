package dto

import "gorm.io/datatypes"

// CreateProductReq 创建商品请求
type CreateProductReq struct {
	StoreID           string         `json:"store_id" binding:"required,uuid"`
	PlatformProductID string         `json:"platform_product_id"`
	Title             string         `json:"title" binding:"required"`
	Description       string         `json:"description"`
	Price             float64        `json:"price" binding:"omitempty,gte=0"`
	CompareAtPrice    float64        `json:"compare_at_price" binding:"omitempty,gte=0"`
	CostPerItem       float64        `json:"cost_per_item" binding:"omitempty,gte=0"`
	SKU               string         `json:"sku"`
	Barcode           string         `json:"barcode"`
	InventoryQuantity int            `json:"inventory_quantity"`
	TrackInventory    *bool          `json:"track_inventory"`
	Weight            float64        `json:"weight"`
	Images            datatypes.JSON `json:"images"`
	Tags              datatypes.JSON `json:"tags"`
	Vendor            string         `json:"vendor"`
	ProductType       string         `json:"product_type"`
	Status            string         `json:"status" binding:"omitempty,oneof=active draft archived"`
}

// UpdateProductReq 更新商品请求
type UpdateProductReq struct {
	Title             *string        `json:"title"`
	Description       *string        `json:"description"`
	Price             *float64       `json:"price" binding:"omitempty,gte=0"`
	CompareAtPrice    *float64       `json:"compare_at_price"`
	CostPerItem       *float64       `json:"cost_per_item"`
	SKU               *string        `json:"sku"`
	Barcode           *string        `json:"barcode"`
	InventoryQuantity *int           `json:"inventory_quantity"`
	TrackInventory    *bool          `json:"track_inventory"`
	Weight            *float64       `json:"weight"`
	Images            datatypes.JSON `json:"images"`
	Tags              datatypes.JSON `json:"tags"`
	Vendor            *string        `json:"vendor"`
	ProductType       *string        `json:"product_type"`
	Status            *string        `json:"status" binding:"omitempty,oneof=active draft archived"`
}
