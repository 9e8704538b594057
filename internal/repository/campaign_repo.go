package repository

import (
	"context"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/model"
)

// CampaignRepository 广告系列仓储接口（直接 user_id 归属）
type CampaignRepository interface {
	Create(ctx context.Context, campaign *model.AdCampaign) error
	GetByID(ctx context.Context, userID, id string) (*model.AdCampaign, error)
	List(ctx context.Context, userID string, filter CampaignFilter) ([]model.AdCampaign, int64, error)
	UpdateFields(ctx context.Context, userID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
}

// CampaignFilter 广告系列过滤条件
type CampaignFilter struct {
	StoreID   string
	Status    string
	Objective string
	Page      int
	PageSize  int
}

type campaignRepo struct {
	db *gorm.DB
}

// NewCampaignRepository 创建广告系列仓储
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepo{db: db}
}

func (r *campaignRepo) Create(ctx context.Context, campaign *model.AdCampaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

func (r *campaignRepo) GetByID(ctx context.Context, userID, id string) (*model.AdCampaign, error) {
	var campaign model.AdCampaign
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&campaign).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepo) List(ctx context.Context, userID string, filter CampaignFilter) ([]model.AdCampaign, int64, error) {
	var campaigns []model.AdCampaign
	var total int64

	query := r.db.WithContext(ctx).Model(&model.AdCampaign{}).
		Where("user_id = ?", userID)

	if filter.StoreID != "" {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Objective != "" {
		query = query.Where("objective = ?", filter.Objective)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *campaignRepo) UpdateFields(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.AdCampaign{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *campaignRepo) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.AdCampaign{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
