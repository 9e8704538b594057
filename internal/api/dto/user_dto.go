package dto

import "gorm.io/datatypes"

// UpdateProfileReq 更新个人资料请求
// 指针字段区分"没传"和"传了空值"
type UpdateProfileReq struct {
	FirstName *string        `json:"first_name"`
	LastName  *string        `json:"last_name"`
	Settings  datatypes.JSON `json:"settings"`
}
