package dto

import "gorm.io/datatypes"

// CreateStoreReq 创建店铺请求
type CreateStoreReq struct {
	Name            string         `json:"name" binding:"required"`
	Description     string         `json:"description"`
	Domain          string         `json:"domain"`
	Platform        string         `json:"platform"`
	PlatformStoreID string         `json:"platform_store_id"`
	APICredentials  datatypes.JSON `json:"api_credentials"`
	Settings        datatypes.JSON `json:"settings"`
}

// UpdateStoreReq 更新店铺请求
type UpdateStoreReq struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Domain      *string        `json:"domain"`
	Status      *string        `json:"status" binding:"omitempty,oneof=active inactive suspended"`
	Settings    datatypes.JSON `json:"settings"`
}

// RefreshCredentialsReq 平台凭证换新请求
type RefreshCredentialsReq struct {
	Platform        string         `json:"platform" binding:"required"`
	PlatformStoreID string         `json:"platform_store_id" binding:"required"`
	APICredentials  datatypes.JSON `json:"api_credentials" binding:"required"`
}
