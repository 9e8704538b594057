package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/service"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 注册 / 登录 / 换发 Token
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController 创建认证控制器
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register 注册
// @Summary 注册新账号
// @Tags Auth
// @Router /api/v1/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			response.Error(ctx, http.StatusConflict, response.CodeConflict, err.Error())
			return
		}
		response.InternalError(ctx, err.Error())
		return
	}
	response.Created(ctx, resp)
}

// Login 登录
// @Summary 登录
// @Tags Auth
// @Router /api/v1/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserDisabled) {
			response.Error(ctx, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
			return
		}
		response.InternalError(ctx, err.Error())
		return
	}
	response.OK(ctx, resp)
}

// Refresh 换发 Token 对
// @Summary 换发 Token
// @Tags Auth
// @Router /api/v1/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.authService.Refresh(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrUserDisabled) {
			response.Error(ctx, http.StatusUnauthorized, response.CodeInvalidToken, err.Error())
			return
		}
		response.InternalError(ctx, err.Error())
		return
	}
	response.OK(ctx, resp)
}
