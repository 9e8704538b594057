package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== Supabase 客户端 ====================
//
// 平台 REST 接口的轻量封装。两个句柄：
//   - Client       anon key，受 RLS 限制的常规访问
//   - AdminClient  service key，绕过 RLS 的管理操作（注册、注销账号）
// 句柄懒加载：配置缺失在第一次使用时报错，不在进程启动时报错。
// 构造便宜且幂等，并发下重复构造无害，不做去重。

// Config 连接配置，全部来自环境变量
type Config struct {
	URL        string // SUPABASE_URL
	AnonKey    string // SUPABASE_ANON_KEY
	ServiceKey string // SUPABASE_SERVICE_KEY
}

type Client struct {
	cfg Config

	client      *resty.Client
	adminClient *resty.Client
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Rest 获取 anon key 客户端（受限访问）
func (c *Client) Rest() (*resty.Client, error) {
	if c.client == nil {
		if c.cfg.URL == "" || c.cfg.AnonKey == "" {
			return nil, errors.New("SUPABASE_URL 和 SUPABASE_ANON_KEY 未配置")
		}
		c.client = newRestClient(c.cfg.URL, c.cfg.AnonKey)
	}
	return c.client, nil
}

// AdminRest 获取 service key 客户端（管理操作）
func (c *Client) AdminRest() (*resty.Client, error) {
	if c.adminClient == nil {
		if c.cfg.URL == "" || c.cfg.ServiceKey == "" {
			return nil, errors.New("SUPABASE_URL 和 SUPABASE_SERVICE_KEY 未配置")
		}
		c.adminClient = newRestClient(c.cfg.URL, c.cfg.ServiceKey)
	}
	return c.adminClient, nil
}

func newRestClient(baseURL, key string) *resty.Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(10 * time.Second)
	client.SetHeader("apikey", key)
	client.SetHeader("Authorization", "Bearer "+key)
	return client
}

// TestConnection 探测平台可达性（/health 依赖这个判断 storage 状态）
func (c *Client) TestConnection(ctx context.Context) bool {
	client, err := c.Rest()
	if err != nil {
		return false
	}

	resp, err := client.R().SetContext(ctx).Get("/rest/v1/")
	if err != nil {
		return false
	}
	// REST 根路径对合法 apikey 返回 2xx/3xx，5xx 视为不可达
	return resp.StatusCode() < 500
}

// DeleteAuthUser 删除认证侧账号（service key 专用）
// public.users 的主键引用 auth.users(id)，认证侧删除后业务数据级联清空
func (c *Client) DeleteAuthUser(ctx context.Context, userID string) error {
	client, err := c.AdminRest()
	if err != nil {
		return err
	}

	resp, err := client.R().SetContext(ctx).
		Delete(fmt.Sprintf("/auth/v1/admin/users/%s", userID))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("删除认证账号失败: %s", resp.Status())
	}
	return nil
}
