package model

import (
	"gorm.io/datatypes"
)

// Product 商品状态常量
const (
	ProductStatusActive   = "active"
	ProductStatusDraft    = "draft"
	ProductStatusArchived = "archived"
)

// Product 店铺商品，经店铺同步写入，随店铺删除
type Product struct {
	BaseModel
	StoreID string `gorm:"type:uuid;index;not null"` // 归属店铺（一跳回溯到账号）
	Store   *Store `gorm:"foreignKey:StoreID"`

	PlatformProductID string `gorm:"size:255"`
	Title             string `gorm:"size:500;not null"`
	Description       string `gorm:"type:text"`

	// 价格与成本
	Price          float64 `gorm:"type:decimal(10,2)"`
	CompareAtPrice float64 `gorm:"type:decimal(10,2)"`
	CostPerItem    float64 `gorm:"type:decimal(10,2)"`

	// 库存
	SKU               string  `gorm:"size:255;index"`
	Barcode           string  `gorm:"size:255"`
	InventoryQuantity int     `gorm:"default:0"`
	TrackInventory    bool    `gorm:"default:true"`
	Weight            float64 `gorm:"type:decimal(8,2)"`

	// 集合字段统一 JSONB，与建表定义保持一致
	Images datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Tags   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	Vendor      string `gorm:"size:255"`
	ProductType string `gorm:"size:255"`
	Status      string `gorm:"size:20;default:'active';index"`
}

func (Product) TableName() string {
	return "products"
}

// ToMap 序列化为字段映射
// 成本价和平台侧 ID 属于内部数据，默认不输出
func (p *Product) ToMap(includeSensitive bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":                 p.ID,
		"store_id":           p.StoreID,
		"title":              p.Title,
		"description":        p.Description,
		"price":              p.Price,
		"compare_at_price":   p.CompareAtPrice,
		"sku":                p.SKU,
		"barcode":            p.Barcode,
		"inventory_quantity": p.InventoryQuantity,
		"track_inventory":    p.TrackInventory,
		"weight":             p.Weight,
		"images":             jsonOrEmpty(p.Images, "[]"),
		"tags":               jsonOrEmpty(p.Tags, "[]"),
		"vendor":             p.Vendor,
		"product_type":       p.ProductType,
		"status":             p.Status,
		"created_at":         formatTime(&p.CreatedAt),
		"updated_at":         formatTime(&p.UpdatedAt),
	}

	if includeSensitive {
		data["platform_product_id"] = p.PlatformProductID
		data["cost_per_item"] = p.CostPerItem
	}

	return data
}
