package repository

import (
	"context"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/model"
)

// PaymentProcessorRepository 收款通道仓储接口（直接 user_id 归属）
type PaymentProcessorRepository interface {
	Create(ctx context.Context, processor *model.PaymentProcessor) error
	GetByID(ctx context.Context, userID, id string) (*model.PaymentProcessor, error)
	List(ctx context.Context, userID string) ([]model.PaymentProcessor, error)
	UpdateFields(ctx context.Context, userID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
}

type paymentRepo struct {
	db *gorm.DB
}

// NewPaymentProcessorRepository 创建收款通道仓储
func NewPaymentProcessorRepository(db *gorm.DB) PaymentProcessorRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, processor *model.PaymentProcessor) error {
	return r.db.WithContext(ctx).Create(processor).Error
}

func (r *paymentRepo) GetByID(ctx context.Context, userID, id string) (*model.PaymentProcessor, error) {
	var processor model.PaymentProcessor
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&processor).Error
	if err != nil {
		return nil, err
	}
	return &processor, nil
}

func (r *paymentRepo) List(ctx context.Context, userID string) ([]model.PaymentProcessor, error) {
	var processors []model.PaymentProcessor
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&processors).Error
	return processors, err
}

func (r *paymentRepo) UpdateFields(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.PaymentProcessor{}).
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

func (r *paymentRepo) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.PaymentProcessor{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
