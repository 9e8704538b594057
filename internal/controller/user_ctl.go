package controller

import (
	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/service"
)

// ==================== UserController 账号控制器 ====================

// UserController 个人资料和账号注销
type UserController struct {
	userService *service.UserService
}

// NewUserController 创建账号控制器
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile 当前账号资料
// @Summary 个人资料
// @Tags User
// @Router /api/v1/users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	user, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, user.ToMap(true))
}

// UpdateProfile 更新资料
// @Summary 更新资料
// @Tags User
// @Router /api/v1/users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.UpdateProfileReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, user.ToMap(false))
}

// DeleteAccount 注销账号，名下数据级联清除
// @Summary 注销账号
// @Tags User
// @Router /api/v1/users/me [delete]
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.userService.DeleteAccount(ctx.Request.Context(), userID); err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, gin.H{"deleted": true})
}
