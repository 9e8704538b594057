package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/model"
)

// SocialAccountRepository 社媒账号仓储接口（直接 user_id 归属）
type SocialAccountRepository interface {
	Create(ctx context.Context, account *model.SocialMediaAccount) error
	GetByID(ctx context.Context, userID, id string) (*model.SocialMediaAccount, error)
	List(ctx context.Context, userID string, filter SocialFilter) ([]model.SocialMediaAccount, int64, error)
	UpdateFields(ctx context.Context, userID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error

	// Token 巡检相关（内部任务，跨账号）
	FindTokenExpired(ctx context.Context, now time.Time) ([]model.SocialMediaAccount, error)
}

// SocialFilter 社媒账号过滤条件
type SocialFilter struct {
	Platform string
	Status   string
	Page     int
	PageSize int
}

type socialRepo struct {
	db *gorm.DB
}

// NewSocialAccountRepository 创建社媒账号仓储
func NewSocialAccountRepository(db *gorm.DB) SocialAccountRepository {
	return &socialRepo{db: db}
}

func (r *socialRepo) Create(ctx context.Context, account *model.SocialMediaAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *socialRepo) GetByID(ctx context.Context, userID, id string) (*model.SocialMediaAccount, error) {
	var account model.SocialMediaAccount
	err := r.db.WithContext(ctx).
		Preload("Proxy").
		Where("id = ? AND user_id = ?", id, userID).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *socialRepo) List(ctx context.Context, userID string, filter SocialFilter) ([]model.SocialMediaAccount, int64, error) {
	var accounts []model.SocialMediaAccount
	var total int64

	query := r.db.WithContext(ctx).Model(&model.SocialMediaAccount{}).
		Where("user_id = ?", userID)

	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

func (r *socialRepo) UpdateFields(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.SocialMediaAccount{}).
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

func (r *socialRepo) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.SocialMediaAccount{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindTokenExpired 已过期但状态还是 ready/warming 的账号，巡检任务回收
func (r *socialRepo) FindTokenExpired(ctx context.Context, now time.Time) ([]model.SocialMediaAccount, error) {
	var accounts []model.SocialMediaAccount
	err := r.db.WithContext(ctx).
		Where("token_expires_at IS NOT NULL AND token_expires_at < ?", now).
		Where("warmup_status IN ?", []string{model.WarmupStatusWarming, model.WarmupStatusReady}).
		Find(&accounts).Error
	return accounts, err
}
