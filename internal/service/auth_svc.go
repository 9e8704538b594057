package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthService 注册 / 登录 / 换发 Token
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register 注册新账号
// 邮箱唯一；密码 bcrypt 入库后立刻发 Token 对，注册即登录
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterReq) (*dto.TokenResp, error) {
	// 1. 查重
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 3. 落库
	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Login 登录
func (s *AuthService) Login(ctx context.Context, req *dto.LoginReq) (*dto.TokenResp, error) {
	// 1. 查账号
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. 软禁用检查
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	// 3. 校验密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 4. 记录登录时间（失败不阻断登录）
	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)

	return s.issueTokens(user)
}

// Refresh 用 Refresh Token 换发新 Token 对
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshReq) (*dto.TokenResp, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	// 账号可能在 Token 有效期内被删或禁用，换发前回查
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *model.User) (*dto.TokenResp, error) {
	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResp{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToMap(false),
	}, nil
}
