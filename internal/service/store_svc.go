package service

import (
	"context"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
)

// ==================== StoreService 店铺服务 ====================

// StoreService 店铺 CRUD 和平台凭证维护
type StoreService struct {
	storeRepo repository.StoreRepository
}

// NewStoreService 创建店铺服务
func NewStoreService(storeRepo repository.StoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// CreateStore 创建店铺
func (s *StoreService) CreateStore(ctx context.Context, userID string, req *dto.CreateStoreReq) (*model.Store, error) {
	store := &model.Store{
		UserID:          userID,
		Name:            req.Name,
		Description:     req.Description,
		Domain:          req.Domain,
		Platform:        req.Platform,
		PlatformStoreID: req.PlatformStoreID,
		APICredentials:  req.APICredentials,
		Status:          model.StoreStatusActive,
		Settings:        req.Settings,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// GetStore 店铺详情（带商品订单计数）
func (s *StoreService) GetStore(ctx context.Context, userID, id string) (*model.Store, error) {
	return s.storeRepo.GetByIDWithRelations(ctx, userID, id)
}

// ListStores 店铺分页列表
func (s *StoreService) ListStores(ctx context.Context, userID string, filter repository.StoreFilter) ([]model.Store, int64, error) {
	return s.storeRepo.List(ctx, userID, filter)
}

// UpdateStore 更新店铺
func (s *StoreService) UpdateStore(ctx context.Context, userID, id string, req *dto.UpdateStoreReq) (*model.Store, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Domain != nil {
		fields["domain"] = *req.Domain
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(req.Settings) > 0 {
		fields["settings"] = req.Settings
	}

	if len(fields) > 0 {
		if err := s.storeRepo.UpdateFields(ctx, userID, id, fields); err != nil {
			return nil, err
		}
	}
	return s.storeRepo.GetByID(ctx, userID, id)
}

// RefreshCredentials 平台凭证换新，三个字段整体替换
func (s *StoreService) RefreshCredentials(ctx context.Context, userID, id string, req *dto.RefreshCredentialsReq) (*model.Store, error) {
	fields := map[string]interface{}{
		"platform":          req.Platform,
		"platform_store_id": req.PlatformStoreID,
		"api_credentials":   req.APICredentials,
	}
	if err := s.storeRepo.UpdateFields(ctx, userID, id, fields); err != nil {
		return nil, err
	}
	return s.storeRepo.GetByID(ctx, userID, id)
}

// DeleteStore 删除店铺，商品 / 订单 / 分析数据级联清除
func (s *StoreService) DeleteStore(ctx context.Context, userID, id string) error {
	return s.storeRepo.Delete(ctx, userID, id)
}
