package dto

import "time"

// CreateSocialAccountReq 绑定社媒账号请求
type CreateSocialAccountReq struct {
	Platform       string     `json:"platform" binding:"required"`
	AccountName    string     `json:"account_name"`
	AccountID      string     `json:"account_id"`
	AccessToken    string     `json:"access_token"`
	RefreshToken   string     `json:"refresh_token"`
	TokenExpiresAt *time.Time `json:"token_expires_at"`
	ProxyID        *string    `json:"proxy_id" binding:"omitempty,uuid"`
	WarmupStatus   string     `json:"warmup_status" binding:"omitempty,oneof=new warming ready flagged"`
}

// UpdateSocialAccountReq 更新社媒账号请求
type UpdateSocialAccountReq struct {
	AccountName    *string    `json:"account_name"`
	AccessToken    *string    `json:"access_token"`
	RefreshToken   *string    `json:"refresh_token"`
	TokenExpiresAt *time.Time `json:"token_expires_at"`
	ProxyID        *string    `json:"proxy_id" binding:"omitempty,uuid"`
	Status         *string    `json:"status" binding:"omitempty,oneof=active suspended banned"`
	WarmupStatus   *string    `json:"warmup_status" binding:"omitempty,oneof=new warming ready flagged"`
}
