package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
)

// TokenTask 社媒 Token 巡检
// Token 刷新由外部投放侧完成，这里只负责把已过期的账号标出来，
// 避免投放任务拿着死 Token 去碰平台风控
type TokenTask struct {
	socialRepo repository.SocialAccountRepository
	Cron       *cron.Cron
}

// NewTokenTask 创建 Token 巡检任务
func NewTokenTask(socialRepo repository.SocialAccountRepository) *TokenTask {
	return &TokenTask{
		socialRepo: socialRepo,
		Cron:       cron.New(cron.WithSeconds()),
	}
}

// Start 启动巡检
func (t *TokenTask) Start() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		log.Println("[TokenTask] 服务启动，正在执行首次 Token 检查...")
		t.sweep(ctx)
	}()

	// 每 40 分钟一轮
	_, err := t.Cron.AddFunc("0 0/40 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.sweep(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动 TokenTask: %v", err)
	}

	t.Cron.Start()
	log.Println("[TokenTask] Token 巡检任务已启动 (每40分钟一轮)")
}

// Stop 停掉定时器
func (t *TokenTask) Stop() {
	<-t.Cron.Stop().Done()
}

// sweep 把过期账号的养号状态打回 flagged
func (t *TokenTask) sweep(ctx context.Context) {
	accounts, err := t.socialRepo.FindTokenExpired(ctx, time.Now())
	if err != nil {
		log.Printf("[TokenTask] 查询过期账号失败: %v", err)
		return
	}

	for i := range accounts {
		a := &accounts[i]
		err := t.socialRepo.UpdateFields(ctx, a.UserID, a.ID, map[string]interface{}{
			"warmup_status": model.WarmupStatusFlagged,
		})
		if err != nil {
			log.Printf("[TokenTask] 标记失败 account=%s: %v", a.ID, err)
			continue
		}
		log.Printf("[TokenTask] Token 过期，账号转 flagged: %s (%s)", a.AccountName, a.Platform)
	}

	if len(accounts) > 0 {
		log.Printf("[TokenTask] 本轮标记 %d 个过期账号", len(accounts))
	}
}
