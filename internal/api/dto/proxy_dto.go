package dto

// CreateProxyReq 录入代理请求
type CreateProxyReq struct {
	Name     string `json:"name"`
	Host     string `json:"host" binding:"required"`
	Port     int    `json:"port" binding:"required,gt=0,lte=65535"`
	Username string `json:"username"`
	Password string `json:"password"`
	Protocol string `json:"protocol" binding:"omitempty,oneof=http https socks5"`
	Country  string `json:"country" binding:"omitempty,len=2"`
}

// UpdateProxyReq 更新代理请求
type UpdateProxyReq struct {
	Name     *string `json:"name"`
	Host     *string `json:"host"`
	Port     *int    `json:"port" binding:"omitempty,gt=0,lte=65535"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Protocol *string `json:"protocol" binding:"omitempty,oneof=http https socks5"`
	Country  *string `json:"country" binding:"omitempty,len=2"`
	IsActive *bool   `json:"is_active"`
}
