package model

import (
	"fmt"
	"time"
)

// Proxy 探测结果常量
const (
	ProxyResultSuccess = "success"
	ProxyResultFailed  = "failed"
	ProxyResultTimeout = "timeout"
)

// Proxy 代理 IP，社媒账号出口用；手工录入，周期巡检
// 建表侧无 updated_at 列，巡检只改 last_tested / test_result
type Proxy struct {
	AppendOnlyModel
	UserID string `gorm:"type:uuid;index;not null"` // 归属账号
	User   *User  `gorm:"foreignKey:UserID"`

	Name     string `gorm:"size:255"`
	Host     string `gorm:"size:255;not null"`
	Port     int    `gorm:"not null"`
	Username string `gorm:"size:255"`
	Password string `gorm:"size:255"` // 加密
	Protocol string `gorm:"size:10;default:'http'"` // http / https / socks5
	Country  string `gorm:"size:2"`
	IsActive bool   `gorm:"default:true"`

	// 巡检状态
	LastTested *time.Time
	TestResult string `gorm:"size:20"` // success / failed / timeout
}

func (Proxy) TableName() string {
	return "proxies"
}

// URL 拼出完整代理地址（凭证内嵌），探测和出口配置共用
func (p *Proxy) URL() string {
	auth := ""
	if p.Username != "" {
		auth = p.Username + ":" + p.Password + "@"
	}
	protocol := p.Protocol
	if protocol == "" {
		protocol = "http"
	}
	return fmt.Sprintf("%s://%s%s:%d", protocol, auth, p.Host, p.Port)
}

// ToMap 序列化为字段映射，连接凭证默认不输出
func (p *Proxy) ToMap(includeSensitive bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":          p.ID,
		"user_id":     p.UserID,
		"name":        p.Name,
		"host":        p.Host,
		"port":        p.Port,
		"protocol":    p.Protocol,
		"country":     p.Country,
		"is_active":   p.IsActive,
		"last_tested": formatTime(p.LastTested),
		"test_result": p.TestResult,
		"created_at":  formatTime(&p.CreatedAt),
	}

	if includeSensitive {
		data["username"] = p.Username
		data["password"] = p.Password
	}

	return data
}
