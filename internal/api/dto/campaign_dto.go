package dto

import (
	"time"

	"gorm.io/datatypes"
)

// CreateCampaignReq 创建广告系列请求
type CreateCampaignReq struct {
	Name            string         `json:"name" binding:"required"`
	StoreID         *string        `json:"store_id" binding:"omitempty,uuid"`
	SocialAccountID *string        `json:"social_account_id" binding:"omitempty,uuid"`
	Objective       string         `json:"objective"`
	Status          string         `json:"status" binding:"omitempty,oneof=draft active paused completed"`
	BudgetType      string         `json:"budget_type" binding:"omitempty,oneof=daily lifetime"`
	BudgetAmount    float64        `json:"budget_amount" binding:"omitempty,gte=0"`
	StartDate       *time.Time     `json:"start_date"`
	EndDate         *time.Time     `json:"end_date"`
	TargetAudience  datatypes.JSON `json:"target_audience"`
	Creatives       datatypes.JSON `json:"creatives"`
}

// UpdateCampaignReq 更新广告系列请求
type UpdateCampaignReq struct {
	Name           *string        `json:"name"`
	Objective      *string        `json:"objective"`
	Status         *string        `json:"status" binding:"omitempty,oneof=draft active paused completed"`
	BudgetType     *string        `json:"budget_type" binding:"omitempty,oneof=daily lifetime"`
	BudgetAmount   *float64       `json:"budget_amount" binding:"omitempty,gte=0"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	TargetAudience datatypes.JSON `json:"target_audience"`
	Creatives      datatypes.JSON `json:"creatives"`
}
