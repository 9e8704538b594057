package service

import (
	"context"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
)

// ResearchService 市场调研数据归档
type ResearchService struct {
	researchRepo repository.ResearchRepository
}

// NewResearchService 创建调研数据服务
func NewResearchService(researchRepo repository.ResearchRepository) *ResearchService {
	return &ResearchService{researchRepo: researchRepo}
}

// Append 归档一条调研结果
func (s *ResearchService) Append(ctx context.Context, userID string, req *dto.AppendResearchReq) (*model.MarketResearchData, error) {
	row := &model.MarketResearchData{
		UserID:          userID,
		ResearchType:    req.ResearchType,
		QueryParameters: req.QueryParameters,
		Data:            req.Data,
		Source:          req.Source,
	}
	if err := s.researchRepo.Append(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// GetRecord 单条详情
func (s *ResearchService) GetRecord(ctx context.Context, userID, id string) (*model.MarketResearchData, error) {
	return s.researchRepo.GetByID(ctx, userID, id)
}

// ListRecords 分页列表
func (s *ResearchService) ListRecords(ctx context.Context, userID string, filter repository.ResearchFilter) ([]model.MarketResearchData, int64, error) {
	return s.researchRepo.List(ctx, userID, filter)
}

// DeleteRecord 删除归档（调研数据可清理，和指标表不同）
func (s *ResearchService) DeleteRecord(ctx context.Context, userID, id string) error {
	return s.researchRepo.Delete(ctx, userID, id)
}
