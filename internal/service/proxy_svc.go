package service

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
)

// 探测目标：204 空响应，省流量且各地可达
const proxyProbeURL = "http://www.gstatic.com/generate_204"

// ==================== ProxyService 代理服务 ====================

// ProxyService 代理录入和连通性探测
type ProxyService struct {
	proxyRepo    repository.ProxyRepository
	probeTimeout time.Duration
}

// NewProxyService 创建代理服务
func NewProxyService(proxyRepo repository.ProxyRepository) *ProxyService {
	return &ProxyService{
		proxyRepo:    proxyRepo,
		probeTimeout: 10 * time.Second,
	}
}

// CreateProxy 录入代理
func (s *ProxyService) CreateProxy(ctx context.Context, userID string, req *dto.CreateProxyReq) (*model.Proxy, error) {
	protocol := req.Protocol
	if protocol == "" {
		protocol = "http"
	}
	proxy := &model.Proxy{
		UserID:   userID,
		Name:     req.Name,
		Host:     req.Host,
		Port:     req.Port,
		Username: req.Username,
		Password: req.Password,
		Protocol: protocol,
		Country:  req.Country,
		IsActive: true,
	}
	if err := s.proxyRepo.Create(ctx, proxy); err != nil {
		return nil, err
	}
	return proxy, nil
}

// GetProxy 代理详情
func (s *ProxyService) GetProxy(ctx context.Context, userID, id string) (*model.Proxy, error) {
	return s.proxyRepo.GetByID(ctx, userID, id)
}

// ListProxies 代理列表（数量少，不分页）
func (s *ProxyService) ListProxies(ctx context.Context, userID string) ([]model.Proxy, error) {
	return s.proxyRepo.List(ctx, userID)
}

// UpdateProxy 更新代理
func (s *ProxyService) UpdateProxy(ctx context.Context, userID, id string, req *dto.UpdateProxyReq) (*model.Proxy, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Host != nil {
		fields["host"] = *req.Host
	}
	if req.Port != nil {
		fields["port"] = *req.Port
	}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Password != nil {
		fields["password"] = *req.Password
	}
	if req.Protocol != nil {
		fields["protocol"] = *req.Protocol
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	if len(fields) > 0 {
		if err := s.proxyRepo.UpdateFields(ctx, userID, id, fields); err != nil {
			return nil, err
		}
	}
	return s.proxyRepo.GetByID(ctx, userID, id)
}

// DeleteProxy 删除代理
func (s *ProxyService) DeleteProxy(ctx context.Context, userID, id string) error {
	return s.proxyRepo.Delete(ctx, userID, id)
}

// TestProxy 手动触发一次探测并回写结果
func (s *ProxyService) TestProxy(ctx context.Context, userID, id string) (*model.Proxy, error) {
	proxy, err := s.proxyRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	result := s.Probe(ctx, proxy)
	if err := s.proxyRepo.RecordTestResult(ctx, proxy.ID, result, time.Now()); err != nil {
		return nil, err
	}
	return s.proxyRepo.GetByID(ctx, userID, id)
}

// Probe 通过该代理发一次探测请求，区分 success / failed / timeout
// 巡检任务复用此方法，不回写库
func (s *ProxyService) Probe(ctx context.Context, proxy *model.Proxy) string {
	client := resty.New().
		SetProxy(proxy.URL()).
		SetTimeout(s.probeTimeout).
		SetRetryCount(0)

	resp, err := client.R().SetContext(ctx).Get(proxyProbeURL)
	if err != nil {
		if isTimeout(err) {
			return model.ProxyResultTimeout
		}
		return model.ProxyResultFailed
	}
	if resp.StatusCode() >= 400 {
		return model.ProxyResultFailed
	}
	return model.ProxyResultSuccess
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Timeout()
	}
	return false
}
