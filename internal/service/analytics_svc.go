package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
)

// ==================== AnalyticsService 分析数据服务 ====================

// AnalyticsService 店铺指标写入和查询，只追加不修改
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	storeRepo     repository.StoreRepository
}

// NewAnalyticsService 创建分析数据服务
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, storeRepo repository.StoreRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo, storeRepo: storeRepo}
}

// Append 追加一条指标记录
func (s *AnalyticsService) Append(ctx context.Context, userID string, req *dto.AppendAnalyticsReq) (*model.AnalyticsData, error) {
	row, err := s.buildRow(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.analyticsRepo.Append(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// AppendBatch 批量追加，一条校验不过整批拒绝
func (s *AnalyticsService) AppendBatch(ctx context.Context, userID string, req *dto.AppendAnalyticsBatchReq) ([]model.AnalyticsData, error) {
	rows := make([]model.AnalyticsData, 0, len(req.Records))
	for i := range req.Records {
		row, err := s.buildRow(ctx, userID, &req.Records[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}
	if err := s.analyticsRepo.AppendBatch(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// List 指标查询
func (s *AnalyticsService) List(ctx context.Context, userID string, filter repository.AnalyticsFilter) ([]model.AnalyticsData, int64, error) {
	return s.analyticsRepo.List(ctx, userID, filter)
}

func (s *AnalyticsService) buildRow(ctx context.Context, userID string, req *dto.AppendAnalyticsReq) (*model.AnalyticsData, error) {
	if _, err := s.storeRepo.GetByID(ctx, userID, req.StoreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotOwned
		}
		return nil, err
	}

	row := &model.AnalyticsData{
		StoreID:    req.StoreID,
		MetricType: req.MetricType,
		MetricName: req.MetricName,
		Value:      req.Value,
		Dimensions: req.Dimensions,
	}
	if req.DateRecorded != "" {
		// 绑定层已校验过格式
		d, err := time.Parse("2006-01-02", req.DateRecorded)
		if err != nil {
			return nil, err
		}
		row.DateRecorded = &d
	}
	return row, nil
}
