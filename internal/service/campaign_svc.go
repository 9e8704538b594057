package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
)

var ErrSocialAccountNotOwned = errors.New("社媒账号不存在或不属于当前账号")

// ==================== CampaignService 广告系列服务 ====================

// CampaignService 广告系列维护
type CampaignService struct {
	campaignRepo repository.CampaignRepository
	storeRepo    repository.StoreRepository
	socialRepo   repository.SocialAccountRepository
}

// NewCampaignService 创建广告系列服务
func NewCampaignService(campaignRepo repository.CampaignRepository, storeRepo repository.StoreRepository, socialRepo repository.SocialAccountRepository) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		storeRepo:    storeRepo,
		socialRepo:   socialRepo,
	}
}

// CreateCampaign 创建广告系列
// 店铺和社媒账号都是可选关联，传了就必须归属当前账号
func (s *CampaignService) CreateCampaign(ctx context.Context, userID string, req *dto.CreateCampaignReq) (*model.AdCampaign, error) {
	if req.StoreID != nil {
		if _, err := s.storeRepo.GetByID(ctx, userID, *req.StoreID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStoreNotOwned
			}
			return nil, err
		}
	}
	if req.SocialAccountID != nil {
		if _, err := s.socialRepo.GetByID(ctx, userID, *req.SocialAccountID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSocialAccountNotOwned
			}
			return nil, err
		}
	}

	status := req.Status
	if status == "" {
		status = model.CampaignStatusDraft
	}
	campaign := &model.AdCampaign{
		UserID:          userID,
		StoreID:         req.StoreID,
		SocialAccountID: req.SocialAccountID,
		Name:            req.Name,
		Objective:       req.Objective,
		Status:          status,
		BudgetType:      req.BudgetType,
		BudgetAmount:    req.BudgetAmount,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TargetAudience:  req.TargetAudience,
		Creatives:       req.Creatives,
	}
	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// GetCampaign 系列详情
func (s *CampaignService) GetCampaign(ctx context.Context, userID, id string) (*model.AdCampaign, error) {
	return s.campaignRepo.GetByID(ctx, userID, id)
}

// ListCampaigns 系列分页列表
func (s *CampaignService) ListCampaigns(ctx context.Context, userID string, filter repository.CampaignFilter) ([]model.AdCampaign, int64, error) {
	return s.campaignRepo.List(ctx, userID, filter)
}

// UpdateCampaign 更新系列
func (s *CampaignService) UpdateCampaign(ctx context.Context, userID, id string, req *dto.UpdateCampaignReq) (*model.AdCampaign, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Objective != nil {
		fields["objective"] = *req.Objective
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.BudgetType != nil {
		fields["budget_type"] = *req.BudgetType
	}
	if req.BudgetAmount != nil {
		fields["budget_amount"] = *req.BudgetAmount
	}
	if req.StartDate != nil {
		fields["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		fields["end_date"] = *req.EndDate
	}
	if len(req.TargetAudience) > 0 {
		fields["target_audience"] = req.TargetAudience
	}
	if len(req.Creatives) > 0 {
		fields["creatives"] = req.Creatives
	}

	if len(fields) > 0 {
		if err := s.campaignRepo.UpdateFields(ctx, userID, id, fields); err != nil {
			return nil, err
		}
	}
	return s.campaignRepo.GetByID(ctx, userID, id)
}

// DeleteCampaign 删除系列
func (s *CampaignService) DeleteCampaign(ctx context.Context, userID, id string) error {
	return s.campaignRepo.Delete(ctx, userID, id)
}
