package dto

import "gorm.io/datatypes"

// CreatePaymentProcessorReq 绑定收款通道请求
type CreatePaymentProcessorReq struct {
	Name           string         `json:"name" binding:"required"`
	Provider       string         `json:"provider" binding:"required"`
	APICredentials datatypes.JSON `json:"api_credentials"`
	WebhookURL     string         `json:"webhook_url" binding:"omitempty,url"`
	Settings       datatypes.JSON `json:"settings"`
}

// UpdatePaymentProcessorReq 更新收款通道请求
type UpdatePaymentProcessorReq struct {
	Name           *string        `json:"name"`
	APICredentials datatypes.JSON `json:"api_credentials"`
	WebhookURL     *string        `json:"webhook_url" binding:"omitempty,url"`
	IsActive       *bool          `json:"is_active"`
	Settings       datatypes.JSON `json:"settings"`
}
