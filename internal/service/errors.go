package service

import "errors"

// ==================== 业务错误 ====================

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserDisabled       = errors.New("账号已禁用")
	ErrInvalidToken       = errors.New("Token 无效")
	ErrEmailExists        = errors.New("邮箱已注册")
	ErrStoreNotOwned      = errors.New("店铺不存在或不属于当前账号")
)
