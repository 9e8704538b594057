package repository

import (
	"context"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/model"
)

// ==================== 接口定义 ====================

// OrderRepository 订单仓储接口
// 订单经 stores 一跳回溯，订单行经 orders -> stores 两跳回溯。
// 订单不提供 Delete：取消用 status，行数据永久保留
type OrderRepository interface {
	// Create 订单和订单行**一个事务**落库
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, userID, id string) (*model.Order, error)
	List(ctx context.Context, userID string, filter OrderFilter) ([]model.Order, int64, error)
	UpdateFields(ctx context.Context, userID, id string, fields map[string]interface{}) error
	UpdateStatus(ctx context.Context, userID, id, status string) error
}

// ==================== 过滤条件 ====================

// OrderFilter 订单过滤条件
type OrderFilter struct {
	StoreID       string
	Status        string
	CustomerEmail string
	Page          int
	PageSize      int
}

// ==================== 仓储实现 ====================

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) ownedStores(ctx context.Context, userID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Store{}).
		Select("id").Where("user_id = ?", userID)
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	// gorm 会把 Items 随订单一起插入，整体包一个事务
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *orderRepo) GetByID(ctx context.Context, userID, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND store_id IN (?)", id, r.ownedStores(ctx, userID)).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, userID string, filter OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("store_id IN (?)", r.ownedStores(ctx, userID))

	if filter.StoreID != "" {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerEmail != "" {
		query = query.Where("customer_email = ?", filter.CustomerEmail)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepo) UpdateFields(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND store_id IN (?)", id, r.ownedStores(ctx, userID)).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, userID, id, status string) error {
	return r.UpdateFields(ctx, userID, id, map[string]interface{}{"status": status})
}
