package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	return NewAuthService(userRepo), userRepo
}

func TestAuthService_RegisterIsLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterReq{Email: "alice@test.com", Password: "secret-pass-1", FirstName: "Alice"})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	// 注册即登录：两个 Token 都要发
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("注册后未发 Token 对")
	}
	if resp.User["email"] != "alice@test.com" {
		t.Fatalf("返回的用户信息不对: %v", resp.User)
	}
	// 明文密码和哈希都不能出现在响应里
	if _, ok := resp.User["password_hash"]; ok {
		t.Fatal("password_hash 泄漏到响应")
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	req := &dto.RegisterReq{Email: "alice@test.com", Password: "secret-pass-1"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("重复邮箱期望 ErrEmailExists，实际 %v", err)
	}
}

func TestAuthService_PasswordStoredHashed(t *testing.T) {
	svc, userRepo := newAuthService(t)
	ctx := context.Background()

	svc.Register(ctx, &dto.RegisterReq{Email: "alice@test.com", Password: "secret-pass-1"})

	user, err := userRepo.GetByEmail(ctx, "alice@test.com")
	if err != nil {
		t.Fatalf("读回账号失败: %v", err)
	}
	if user.PasswordHash == "secret-pass-1" || !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Fatal("密码没有以 bcrypt 形式入库")
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	svc.Register(ctx, &dto.RegisterReq{Email: "alice@test.com", Password: "secret-pass-1"})

	// 密码正确
	resp, err := svc.Login(ctx, &dto.LoginReq{Email: "alice@test.com", Password: "secret-pass-1"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("登录未发 Access Token")
	}

	// 密码错误
	if _, err := svc.Login(ctx, &dto.LoginReq{Email: "alice@test.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("错误密码期望 ErrInvalidCredentials，实际 %v", err)
	}

	// 账号不存在：同一个错误，不暴露邮箱是否注册过
	if _, err := svc.Login(ctx, &dto.LoginReq{Email: "nobody@test.com", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("不存在账号期望 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestAuthService_LoginDisabledUser(t *testing.T) {
	svc, userRepo := newAuthService(t)
	ctx := context.Background()

	resp, _ := svc.Register(ctx, &dto.RegisterReq{Email: "alice@test.com", Password: "secret-pass-1"})
	userID := resp.User["id"].(string)
	userRepo.UpdateFields(ctx, userID, map[string]interface{}{"is_active": false})

	if _, err := svc.Login(ctx, &dto.LoginReq{Email: "alice@test.com", Password: "secret-pass-1"}); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("禁用账号登录期望 ErrUserDisabled，实际 %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, _ := svc.Register(ctx, &dto.RegisterReq{Email: "alice@test.com", Password: "secret-pass-1"})

	// 用 Refresh Token 换新对
	resp, err := svc.Refresh(ctx, &dto.RefreshReq{RefreshToken: registered.RefreshToken})
	if err != nil {
		t.Fatalf("换发失败: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("换发未返回完整 Token 对")
	}

	// Access Token 当 Refresh Token 用：拒绝
	if _, err := svc.Refresh(ctx, &dto.RefreshReq{RefreshToken: registered.AccessToken}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Access Token 换发期望 ErrInvalidToken，实际 %v", err)
	}

	// 乱字符串：拒绝
	if _, err := svc.Refresh(ctx, &dto.RefreshReq{RefreshToken: "not-a-jwt"}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("非法字符串换发期望 ErrInvalidToken，实际 %v", err)
	}
}

func TestAuthService_RefreshAfterUserDeleted(t *testing.T) {
	svc, userRepo := newAuthService(t)
	ctx := context.Background()

	registered, _ := svc.Register(ctx, &dto.RegisterReq{Email: "alice@test.com", Password: "secret-pass-1"})
	userID := registered.User["id"].(string)
	userRepo.Delete(ctx, userID)

	if _, err := svc.Refresh(ctx, &dto.RefreshReq{RefreshToken: registered.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("删号后换发期望 ErrInvalidToken，实际 %v", err)
	}
}
