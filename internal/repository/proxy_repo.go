package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/model"
)

// ProxyRepository 代理仓储接口（直接 user_id 归属）
// FindCheckList 是巡检任务专用，跨账号取全部启用代理
type ProxyRepository interface {
	Create(ctx context.Context, proxy *model.Proxy) error
	GetByID(ctx context.Context, userID, id string) (*model.Proxy, error)
	List(ctx context.Context, userID string) ([]model.Proxy, error)
	UpdateFields(ctx context.Context, userID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error

	// 巡检相关
	FindCheckList(ctx context.Context) ([]model.Proxy, error)
	RecordTestResult(ctx context.Context, id, result string, testedAt time.Time) error
}

type proxyRepo struct {
	db *gorm.DB
}

// NewProxyRepository 创建代理仓储
func NewProxyRepository(db *gorm.DB) ProxyRepository {
	return &proxyRepo{db: db}
}

func (r *proxyRepo) Create(ctx context.Context, proxy *model.Proxy) error {
	return r.db.WithContext(ctx).Create(proxy).Error
}

func (r *proxyRepo) GetByID(ctx context.Context, userID, id string) (*model.Proxy, error) {
	var proxy model.Proxy
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&proxy).Error
	if err != nil {
		return nil, err
	}
	return &proxy, nil
}

func (r *proxyRepo) List(ctx context.Context, userID string) ([]model.Proxy, error) {
	var proxies []model.Proxy
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&proxies).Error
	return proxies, err
}

func (r *proxyRepo) UpdateFields(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Proxy{}).
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

func (r *proxyRepo) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Proxy{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindCheckList 待巡检列表：只看启用中的代理
func (r *proxyRepo) FindCheckList(ctx context.Context) ([]model.Proxy, error) {
	var proxies []model.Proxy
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&proxies).Error
	return proxies, err
}

// RecordTestResult 回写巡检结果（内部任务调用，不走 user 范围）
func (r *proxyRepo) RecordTestResult(ctx context.Context, id, result string, testedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Proxy{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"test_result": result,
			"last_tested": &testedAt,
		}).Error
}
