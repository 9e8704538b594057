package service

import (
	"context"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
)

// PaymentService 收款通道维护
type PaymentService struct {
	paymentRepo repository.PaymentProcessorRepository
}

// NewPaymentService 创建收款服务
func NewPaymentService(paymentRepo repository.PaymentProcessorRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// CreateProcessor 绑定收款通道
func (s *PaymentService) CreateProcessor(ctx context.Context, userID string, req *dto.CreatePaymentProcessorReq) (*model.PaymentProcessor, error) {
	processor := &model.PaymentProcessor{
		UserID:         userID,
		Name:           req.Name,
		Provider:       req.Provider,
		APICredentials: req.APICredentials,
		WebhookURL:     req.WebhookURL,
		IsActive:       true,
		Settings:       req.Settings,
	}
	if err := s.paymentRepo.Create(ctx, processor); err != nil {
		return nil, err
	}
	return processor, nil
}

// GetProcessor 通道详情
func (s *PaymentService) GetProcessor(ctx context.Context, userID, id string) (*model.PaymentProcessor, error) {
	return s.paymentRepo.GetByID(ctx, userID, id)
}

// ListProcessors 通道列表（数量少，不分页）
func (s *PaymentService) ListProcessors(ctx context.Context, userID string) ([]model.PaymentProcessor, error) {
	return s.paymentRepo.List(ctx, userID)
}

// UpdateProcessor 更新通道
func (s *PaymentService) UpdateProcessor(ctx context.Context, userID, id string, req *dto.UpdatePaymentProcessorReq) (*model.PaymentProcessor, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if len(req.APICredentials) > 0 {
		fields["api_credentials"] = req.APICredentials
	}
	if req.WebhookURL != nil {
		fields["webhook_url"] = *req.WebhookURL
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(req.Settings) > 0 {
		fields["settings"] = req.Settings
	}

	if len(fields) > 0 {
		if err := s.paymentRepo.UpdateFields(ctx, userID, id, fields); err != nil {
			return nil, err
		}
	}
	return s.paymentRepo.GetByID(ctx, userID, id)
}

// DeleteProcessor 解绑通道
func (s *PaymentService) DeleteProcessor(ctx context.Context, userID, id string) error {
	return s.paymentRepo.Delete(ctx, userID, id)
}
