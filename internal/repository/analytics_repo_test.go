package repository

import (
	"context"
	"testing"
	"time"

	"ksap_backend_v1/internal/model"
)

func TestAnalyticsRepo_AppendAndList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(db)

	alice := mustCreateUser(t, db, "alice@test.com")
	store := mustCreateStore(t, db, alice.ID, "shop")

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	row := &model.AnalyticsData{StoreID: store.ID, MetricType: "sales", MetricName: "daily_revenue", Value: 128.5, DateRecorded: &day}
	if err := repo.Append(ctx, row); err != nil {
		t.Fatalf("追加指标失败: %v", err)
	}

	rows, total, err := repo.List(ctx, alice.ID, AnalyticsFilter{StoreID: store.ID})
	if err != nil {
		t.Fatalf("查询指标失败: %v", err)
	}
	if total != 1 || rows[0].Value != 128.5 {
		t.Fatalf("指标读回不一致: total=%d", total)
	}
}

func TestAnalyticsRepo_AppendBatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(db)

	alice := mustCreateUser(t, db, "alice@test.com")
	store := mustCreateStore(t, db, alice.ID, "shop")

	rows := []model.AnalyticsData{
		{StoreID: store.ID, MetricType: "sales", Value: 1},
		{StoreID: store.ID, MetricType: "traffic", Value: 2},
		{StoreID: store.ID, MetricType: "conversion", Value: 3},
	}
	if err := repo.AppendBatch(ctx, rows); err != nil {
		t.Fatalf("批量追加失败: %v", err)
	}

	_, total, _ := repo.List(ctx, alice.ID, AnalyticsFilter{})
	if total != 3 {
		t.Fatalf("批量追加后期望 3 条，实际 %d", total)
	}
}

// 经 stores 一跳隔离：别人店铺的指标不可见
func TestAnalyticsRepo_CrossUserIsolation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(db)

	alice := mustCreateUser(t, db, "alice@test.com")
	bob := mustCreateUser(t, db, "bob@test.com")
	aliceStore := mustCreateStore(t, db, alice.ID, "alice-shop")

	repo.Append(ctx, &model.AnalyticsData{StoreID: aliceStore.ID, MetricType: "sales", Value: 99})

	_, total, err := repo.List(ctx, bob.ID, AnalyticsFilter{})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 0 {
		t.Fatalf("bob 不应看到 alice 店铺的指标，实际 %d 条", total)
	}

	// 指定别人的 store_id 也查不到
	_, total, _ = repo.List(ctx, bob.ID, AnalyticsFilter{StoreID: aliceStore.ID})
	if total != 0 {
		t.Fatalf("指定他人 store_id 查询应为空，实际 %d 条", total)
	}
}

func TestAnalyticsRepo_DateRangeFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAnalyticsRepository(db)

	alice := mustCreateUser(t, db, "alice@test.com")
	store := mustCreateStore(t, db, alice.ID, "shop")

	for _, d := range []string{"2026-03-01", "2026-03-05", "2026-03-10"} {
		day, _ := time.Parse("2006-01-02", d)
		repo.Append(ctx, &model.AnalyticsData{StoreID: store.ID, MetricType: "sales", Value: 1, DateRecorded: &day})
	}

	from, _ := time.Parse("2006-01-02", "2026-03-02")
	to, _ := time.Parse("2006-01-02", "2026-03-09")
	_, total, err := repo.List(ctx, alice.ID, AnalyticsFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("日期范围查询失败: %v", err)
	}
	if total != 1 {
		t.Fatalf("日期范围期望 1 条，实际 %d", total)
	}
}
