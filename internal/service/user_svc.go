package service

import (
	"context"
	"log"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
	"ksap_backend_v1/pkg/supabase"
)

// ==================== UserService 账号服务 ====================

// UserService 个人资料和账号注销
type UserService struct {
	userRepo repository.UserRepository
	supabase *supabase.Client
}

// NewUserService 创建账号服务
func NewUserService(userRepo repository.UserRepository, sb *supabase.Client) *UserService {
	return &UserService{userRepo: userRepo, supabase: sb}
}

// GetProfile 带关联统计的个人资料
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.GetByIDWithRelations(ctx, userID)
}

// UpdateProfile 更新资料，指针为 nil 的字段不动
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileReq) (*model.User, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if len(req.Settings) > 0 {
		fields["settings"] = req.Settings
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetByID(ctx, userID)
}

// DeleteAccount 注销账号
// 业务库按外键级联清掉名下全部数据；认证侧的删除是尽力而为，
// 失败只记日志，不回滚业务库（认证侧残留可人工清理）
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if err := s.supabase.DeleteAuthUser(ctx, userID); err != nil {
		log.Printf("[user] 认证侧删除失败 user=%s: %v", userID, err)
	}
	return nil
}
