package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
)

var ErrProxyNotOwned = errors.New("代理不存在或不属于当前账号")

// ==================== SocialService 社媒账号服务 ====================

// SocialService 社媒账号维护
type SocialService struct {
	socialRepo repository.SocialAccountRepository
	proxyRepo  repository.ProxyRepository
}

// NewSocialService 创建社媒账号服务
func NewSocialService(socialRepo repository.SocialAccountRepository, proxyRepo repository.ProxyRepository) *SocialService {
	return &SocialService{socialRepo: socialRepo, proxyRepo: proxyRepo}
}

// CreateAccount 绑定社媒账号
// 出口代理可选，传了就必须是自己名下的
func (s *SocialService) CreateAccount(ctx context.Context, userID string, req *dto.CreateSocialAccountReq) (*model.SocialMediaAccount, error) {
	if req.ProxyID != nil {
		if err := s.checkProxy(ctx, userID, *req.ProxyID); err != nil {
			return nil, err
		}
	}

	warmup := req.WarmupStatus
	if warmup == "" {
		warmup = model.WarmupStatusNew
	}
	account := &model.SocialMediaAccount{
		UserID:         userID,
		Platform:       req.Platform,
		AccountName:    req.AccountName,
		AccountID:      req.AccountID,
		AccessToken:    req.AccessToken,
		RefreshToken:   req.RefreshToken,
		TokenExpiresAt: req.TokenExpiresAt,
		ProxyID:        req.ProxyID,
		Status:         model.SocialStatusActive,
		WarmupStatus:   warmup,
	}
	if err := s.socialRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount 账号详情
func (s *SocialService) GetAccount(ctx context.Context, userID, id string) (*model.SocialMediaAccount, error) {
	return s.socialRepo.GetByID(ctx, userID, id)
}

// ListAccounts 账号分页列表
func (s *SocialService) ListAccounts(ctx context.Context, userID string, filter repository.SocialFilter) ([]model.SocialMediaAccount, int64, error) {
	return s.socialRepo.List(ctx, userID, filter)
}

// UpdateAccount 更新账号
func (s *SocialService) UpdateAccount(ctx context.Context, userID, id string, req *dto.UpdateSocialAccountReq) (*model.SocialMediaAccount, error) {
	fields := map[string]interface{}{}
	if req.AccountName != nil {
		fields["account_name"] = *req.AccountName
	}
	if req.AccessToken != nil {
		fields["access_token"] = *req.AccessToken
	}
	if req.RefreshToken != nil {
		fields["refresh_token"] = *req.RefreshToken
	}
	if req.TokenExpiresAt != nil {
		fields["token_expires_at"] = *req.TokenExpiresAt
	}
	if req.ProxyID != nil {
		if err := s.checkProxy(ctx, userID, *req.ProxyID); err != nil {
			return nil, err
		}
		fields["proxy_id"] = *req.ProxyID
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.WarmupStatus != nil {
		fields["warmup_status"] = *req.WarmupStatus
	}

	if len(fields) > 0 {
		if err := s.socialRepo.UpdateFields(ctx, userID, id, fields); err != nil {
			return nil, err
		}
	}
	return s.socialRepo.GetByID(ctx, userID, id)
}

// DeleteAccount 解绑账号
func (s *SocialService) DeleteAccount(ctx context.Context, userID, id string) error {
	return s.socialRepo.Delete(ctx, userID, id)
}

func (s *SocialService) checkProxy(ctx context.Context, userID, proxyID string) error {
	if _, err := s.proxyRepo.GetByID(ctx, userID, proxyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProxyNotOwned
		}
		return err
	}
	return nil
}
