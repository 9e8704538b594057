package model

import (
	"gorm.io/datatypes"
)

// PaymentProcessor 收款通道绑定（Stripe / PayPal 等）
type PaymentProcessor struct {
	BaseModel
	UserID string `gorm:"type:uuid;index;not null"` // 归属账号
	User   *User  `gorm:"foreignKey:UserID"`

	Name           string         `gorm:"size:100;not null"`
	Provider       string         `gorm:"size:50;not null"` // stripe / paypal / square ...
	APICredentials datatypes.JSON `gorm:"type:jsonb"`       // 加密后的密钥
	WebhookURL     string         `gorm:"size:500"`
	IsActive       bool           `gorm:"default:true"`
	Settings       datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

func (PaymentProcessor) TableName() string {
	return "payment_processors"
}

// ToMap 序列化为字段映射，密钥默认不输出
func (p *PaymentProcessor) ToMap(includeSensitive bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":          p.ID,
		"user_id":     p.UserID,
		"name":        p.Name,
		"provider":    p.Provider,
		"webhook_url": p.WebhookURL,
		"is_active":   p.IsActive,
		"settings":    jsonOrEmpty(p.Settings, "{}"),
		"created_at":  formatTime(&p.CreatedAt),
		"updated_at":  formatTime(&p.UpdatedAt),
	}

	if includeSensitive {
		data["api_credentials"] = p.APICredentials
	}

	return data
}
