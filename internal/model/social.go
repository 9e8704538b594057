package model

import (
	"time"

	"gorm.io/datatypes"
)

// SocialMediaAccount 状态常量
const (
	SocialStatusActive    = "active"
	SocialStatusSuspended = "suspended"
	SocialStatusBanned    = "banned"
)

// 养号阶段常量
const (
	WarmupStatusNew     = "new"
	WarmupStatusWarming = "warming"
	WarmupStatusReady   = "ready"
	WarmupStatusFlagged = "flagged"
)

// SocialMediaAccount 社媒账号，OAuth 绑定产生
// 刷新 token 由外部投放侧完成，这里只存最新值和过期时间
type SocialMediaAccount struct {
	BaseModel
	UserID string `gorm:"type:uuid;index;not null"` // 归属账号
	User   *User  `gorm:"foreignKey:UserID"`

	Platform    string `gorm:"size:50;not null"` // facebook / instagram / tiktok ...
	AccountName string `gorm:"size:255"`
	AccountID   string `gorm:"size:255"`

	// Token（加密存储）
	AccessToken    string `gorm:"type:text"`
	RefreshToken   string `gorm:"type:text"`
	TokenExpiresAt *time.Time

	// 出口代理可选绑定，代理删除后置空不级联
	ProxyID *string `gorm:"type:uuid"`
	Proxy   *Proxy  `gorm:"foreignKey:ProxyID;constraint:OnDelete:SET NULL"`

	Status       string `gorm:"size:20;default:'active'"`
	WarmupStatus string `gorm:"size:50"`
}

func (SocialMediaAccount) TableName() string {
	return "social_media_accounts"
}

// IsTokenExpired token 是否已过期（没有过期时间视为未绑定，也算过期）
func (a *SocialMediaAccount) IsTokenExpired() bool {
	if a.TokenExpiresAt == nil {
		return true
	}
	return a.TokenExpiresAt.Before(time.Now())
}

// ToMap 序列化为字段映射，token 默认不输出
func (a *SocialMediaAccount) ToMap(includeSensitive bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":               a.ID,
		"user_id":          a.UserID,
		"platform":         a.Platform,
		"account_name":     a.AccountName,
		"account_id":       a.AccountID,
		"proxy_id":         a.ProxyID,
		"status":           a.Status,
		"warmup_status":    a.WarmupStatus,
		"token_expired":    a.IsTokenExpired(),
		"token_expires_at": formatTime(a.TokenExpiresAt),
		"created_at":       formatTime(&a.CreatedAt),
		"updated_at":       formatTime(&a.UpdatedAt),
	}

	if includeSensitive {
		data["access_token"] = a.AccessToken
		data["refresh_token"] = a.RefreshToken
	}

	return data
}

// AdCampaign 状态常量
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

// 预算类型常量
const (
	BudgetTypeDaily    = "daily"
	BudgetTypeLifetime = "lifetime"
)

// AdCampaign 广告系列；状态推进由外部投放侧回写
type AdCampaign struct {
	BaseModel
	UserID string `gorm:"type:uuid;index;not null"` // 归属账号
	User   *User  `gorm:"foreignKey:UserID"`

	// 可选关联，删除后置空不级联
	StoreID         *string             `gorm:"type:uuid"`
	SocialAccountID *string             `gorm:"type:uuid"`
	SocialAccount   *SocialMediaAccount `gorm:"foreignKey:SocialAccountID;constraint:OnDelete:SET NULL"`

	Name      string `gorm:"size:255;not null"`
	Objective string `gorm:"size:100"` // traffic / conversions / brand_awareness ...
	Status    string `gorm:"size:50"`

	// 预算与排期
	BudgetType   string  `gorm:"size:20"` // daily / lifetime
	BudgetAmount float64 `gorm:"type:decimal(10,2)"`
	StartDate    *time.Time
	EndDate      *time.Time

	// 定向和素材直接存 JSON 块
	TargetAudience datatypes.JSON `gorm:"type:jsonb"`
	Creatives      datatypes.JSON `gorm:"type:jsonb"`

	PlatformCampaignID string `gorm:"size:255"`
}

func (AdCampaign) TableName() string {
	return "ad_campaigns"
}

// IsRunning 状态为 active 且当前时间在排期窗口内
func (c *AdCampaign) IsRunning() bool {
	if c.Status != CampaignStatusActive {
		return false
	}
	now := time.Now()
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return false
	}
	return true
}

// ToMap 序列化为字段映射
func (c *AdCampaign) ToMap(includeSensitive bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":                c.ID,
		"user_id":           c.UserID,
		"store_id":          c.StoreID,
		"social_account_id": c.SocialAccountID,
		"name":              c.Name,
		"objective":         c.Objective,
		"status":            c.Status,
		"is_running":        c.IsRunning(),
		"budget_type":       c.BudgetType,
		"budget_amount":     c.BudgetAmount,
		"start_date":        formatTime(c.StartDate),
		"end_date":          formatTime(c.EndDate),
		"target_audience":   jsonOrEmpty(c.TargetAudience, "{}"),
		"creatives":         jsonOrEmpty(c.Creatives, "[]"),
		"created_at":        formatTime(&c.CreatedAt),
		"updated_at":        formatTime(&c.UpdatedAt),
	}

	if includeSensitive {
		data["platform_campaign_id"] = c.PlatformCampaignID
	}

	return data
}
