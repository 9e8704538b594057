package model

import (
	"gorm.io/datatypes"
)

// Store 店铺状态常量
const (
	StoreStatusActive    = "active"
	StoreStatusInactive  = "inactive"
	StoreStatusSuspended = "suspended"
)

// Store 外部电商平台店铺
type Store struct {
	BaseModel
	UserID string `gorm:"type:uuid;index;not null"` // 归属账号（所有权链第一跳）
	User   *User  `gorm:"foreignKey:UserID"`

	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Domain      string `gorm:"size:255"`

	// 平台身份三件套，齐了才算接入成功（见 IsConnected）
	Platform        string         `gorm:"size:50;index"` // shopify / woocommerce / magento ...
	PlatformStoreID string         `gorm:"size:255"`
	APICredentials  datatypes.JSON `gorm:"type:jsonb"` // 加密后的平台密钥

	Status   string         `gorm:"size:20;default:'active';index"`
	Settings datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	// 关联关系（删店铺时商品/订单/分析数据级联清除，广告系列只解引用）
	Products      []Product       `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
	Orders        []Order         `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	AnalyticsData []AnalyticsData `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"analytics_data,omitempty"`
}

func (Store) TableName() string {
	return "stores"
}

// IsConnected 平台接入完成：platform + platform_store_id + api_credentials 三者齐备
func (s *Store) IsConnected() bool {
	return s.Platform != "" && s.PlatformStoreID != "" && len(s.APICredentials) > 0
}

// TotalProducts 已加载商品数
func (s *Store) TotalProducts() int {
	return len(s.Products)
}

// TotalOrders 已加载订单数
func (s *Store) TotalOrders() int {
	return len(s.Orders)
}

// ToMap 序列化为字段映射
// 默认不输出平台侧 ID 和密钥，includeSensitive 才带
func (s *Store) ToMap(includeSensitive bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":             s.ID,
		"user_id":        s.UserID,
		"name":           s.Name,
		"description":    s.Description,
		"domain":         s.Domain,
		"platform":       s.Platform,
		"status":         s.Status,
		"is_connected":   s.IsConnected(),
		"total_products": s.TotalProducts(),
		"total_orders":   s.TotalOrders(),
		"created_at":     formatTime(&s.CreatedAt),
		"updated_at":     formatTime(&s.UpdatedAt),
		"settings":       jsonOrEmpty(s.Settings, "{}"),
	}

	if includeSensitive {
		data["platform_store_id"] = s.PlatformStoreID
		data["api_credentials"] = s.APICredentials
	}

	return data
}
