package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/model"
)

// AnalyticsRepository 分析数据仓储接口
// 追加型时序表：只有写入和查询，没有修改删除
type AnalyticsRepository interface {
	Append(ctx context.Context, row *model.AnalyticsData) error
	AppendBatch(ctx context.Context, rows []model.AnalyticsData) error
	List(ctx context.Context, userID string, filter AnalyticsFilter) ([]model.AnalyticsData, int64, error)
}

// AnalyticsFilter 分析数据过滤条件
type AnalyticsFilter struct {
	StoreID    string
	MetricType string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

type analyticsRepo struct {
	db *gorm.DB
}

// NewAnalyticsRepository 创建分析数据仓储
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) ownedStores(ctx context.Context, userID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Store{}).
		Select("id").Where("user_id = ?", userID)
}

func (r *analyticsRepo) Append(ctx context.Context, row *model.AnalyticsData) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *analyticsRepo) AppendBatch(ctx context.Context, rows []model.AnalyticsData) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *analyticsRepo) List(ctx context.Context, userID string, filter AnalyticsFilter) ([]model.AnalyticsData, int64, error) {
	var rows []model.AnalyticsData
	var total int64

	query := r.db.WithContext(ctx).Model(&model.AnalyticsData{}).
		Where("store_id IN (?)", r.ownedStores(ctx, userID))

	if filter.StoreID != "" {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.MetricType != "" {
		query = query.Where("metric_type = ?", filter.MetricType)
	}
	if filter.From != nil {
		query = query.Where("date_recorded >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("date_recorded <= ?", filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	err := query.Order("date_recorded DESC, created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
