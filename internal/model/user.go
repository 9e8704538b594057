package model

import (
	"time"

	"gorm.io/datatypes"
)

// User 平台账号，所有权链的根
// 主键与认证侧 auth.users(id) 同值
type User struct {
	BaseModel
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255"` // bcrypt，任何序列化都不输出
	FirstName    string `gorm:"size:100"`
	LastName     string `gorm:"size:100"`
	IsActive     bool   `gorm:"default:true"`  // 软禁用开关
	IsVerified   bool   `gorm:"default:false"` // 邮箱验证标记

	LastLogin *time.Time
	Settings  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	// ==============================
	// 关联关系（删账号时全部级联清除）
	// ==============================
	Stores            []Store              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"stores,omitempty"`
	PaymentProcessors []PaymentProcessor   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"payment_processors,omitempty"`
	SocialAccounts    []SocialMediaAccount `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"social_accounts,omitempty"`
	Proxies           []Proxy              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"proxies,omitempty"`
	AdCampaigns       []AdCampaign         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"ad_campaigns,omitempty"`
	ResearchData      []MarketResearchData `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"research_data,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// FullName 展示名：优先 first+last，退化到单名，再退化到邮箱
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.LastName != "" {
		return u.LastName
	}
	return u.Email
}

// ToMap 序列化为字段映射
// includeSensitive 仅控制关联数量等内部信息，密码哈希永远不输出
func (u *User) ToMap(includeSensitive bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":          u.ID,
		"email":       u.Email,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"full_name":   u.FullName(),
		"is_active":   u.IsActive,
		"is_verified": u.IsVerified,
		"created_at":  formatTime(&u.CreatedAt),
		"updated_at":  formatTime(&u.UpdatedAt),
		"last_login":  formatTime(u.LastLogin),
		"settings":    jsonOrEmpty(u.Settings, "{}"),
	}

	if includeSensitive {
		data["stores_count"] = len(u.Stores)
		data["payment_processors_count"] = len(u.PaymentProcessors)
		data["social_accounts_count"] = len(u.SocialAccounts)
	}

	return data
}

// jsonOrEmpty JSONB 列为空时给出默认 JSON 文本，避免序列化出 null
func jsonOrEmpty(j datatypes.JSON, empty string) datatypes.JSON {
	if len(j) == 0 {
		return datatypes.JSON(empty)
	}
	return j
}
