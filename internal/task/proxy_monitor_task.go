package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
	"ksap_backend_v1/internal/service"
)

// ProxyMonitor 代理巡检任务
// 周期探测全部启用代理，结果回写 last_tested / test_result
type ProxyMonitor struct {
	proxyRepo    repository.ProxyRepository
	proxyService *service.ProxyService
	Cron         *cron.Cron

	// 控制并发探测数量，防止把本地带宽打满
	concurrencyLimit int
	sleepTime        time.Duration
}

// NewProxyMonitor 创建巡检任务
func NewProxyMonitor(proxyRepo repository.ProxyRepository, proxyService *service.ProxyService) *ProxyMonitor {
	return &ProxyMonitor{
		proxyRepo:        proxyRepo,
		proxyService:     proxyService,
		Cron:             cron.New(cron.WithSeconds()), // 支持秒级控制
		concurrencyLimit: 50,
		sleepTime:        50 * time.Millisecond, // 每个协程启动间隔，平滑波峰
	}
}

// Start 启动巡检
func (m *ProxyMonitor) Start() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		log.Println("[ProxyMonitor] 服务启动，正在执行首次巡检...")
		m.Execute(ctx)
	}()

	// 每 15 分钟一轮
	_, err := m.Cron.AddFunc("0 0/15 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		m.Execute(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动 ProxyMonitor: %v", err)
	}

	m.Cron.Start()
	log.Println("[ProxyMonitor] 巡检任务已启动 (每15分钟一轮)")
}

// Stop 停掉定时器，在途探测走完为止
func (m *ProxyMonitor) Stop() {
	<-m.Cron.Stop().Done()
}

// Execute 执行一轮完整巡检
func (m *ProxyMonitor) Execute(ctx context.Context) {
	proxies, err := m.proxyRepo.FindCheckList(ctx)
	if err != nil {
		log.Printf("[ProxyMonitor] 取代理列表失败: %v", err)
		return
	}
	if len(proxies) == 0 {
		return
	}

	// 信号量控制并发
	var wg sync.WaitGroup
	sem := make(chan struct{}, m.concurrencyLimit)

	for _, p := range proxies {
		select {
		case <-ctx.Done():
			log.Println("[ProxyMonitor] 巡检超时，提前收尾")
			return
		default:
		}

		wg.Add(1)
		sem <- struct{}{}
		time.Sleep(m.sleepTime)

		go func(proxy model.Proxy) {
			defer wg.Done()
			defer func() { <-sem }()

			result := m.proxyService.Probe(ctx, &proxy)
			if err := m.proxyRepo.RecordTestResult(ctx, proxy.ID, result, time.Now()); err != nil {
				log.Printf("[ProxyMonitor] 回写结果失败 proxy=%s: %v", proxy.ID, err)
			}
		}(p)
	}

	wg.Wait()
	log.Println("[ProxyMonitor] 本轮巡检结束")
}
