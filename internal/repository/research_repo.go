package repository

import (
	"context"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/model"
)

// ResearchRepository 市场调研数据仓储接口（直接 user_id 归属，追加型）
type ResearchRepository interface {
	Append(ctx context.Context, row *model.MarketResearchData) error
	GetByID(ctx context.Context, userID, id string) (*model.MarketResearchData, error)
	List(ctx context.Context, userID string, filter ResearchFilter) ([]model.MarketResearchData, int64, error)
	Delete(ctx context.Context, userID, id string) error
}

// ResearchFilter 调研数据过滤条件
type ResearchFilter struct {
	ResearchType string
	Source       string
	Page         int
	PageSize     int
}

type researchRepo struct {
	db *gorm.DB
}

// NewResearchRepository 创建调研数据仓储
func NewResearchRepository(db *gorm.DB) ResearchRepository {
	return &researchRepo{db: db}
}

func (r *researchRepo) Append(ctx context.Context, row *model.MarketResearchData) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *researchRepo) GetByID(ctx context.Context, userID, id string) (*model.MarketResearchData, error) {
	var row model.MarketResearchData
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *researchRepo) List(ctx context.Context, userID string, filter ResearchFilter) ([]model.MarketResearchData, int64, error) {
	var rows []model.MarketResearchData
	var total int64

	query := r.db.WithContext(ctx).Model(&model.MarketResearchData{}).
		Where("user_id = ?", userID)

	if filter.ResearchType != "" {
		query = query.Where("research_type = ?", filter.ResearchType)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *researchRepo) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.MarketResearchData{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
