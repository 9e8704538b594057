package service

import (
	"context"
	"errors"
	"testing"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/repository"
)

func TestAnalyticsService_AppendParsesDate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewAnalyticsService(repository.NewAnalyticsRepository(db), repository.NewStoreRepository(db))

	alice := mustCreateUser(t, db, "alice@test.com")
	store := mustCreateStore(t, db, alice.ID, "shop")

	row, err := svc.Append(ctx, alice.ID, &dto.AppendAnalyticsReq{
		StoreID:      store.ID,
		MetricType:   "sales",
		MetricName:   "daily_revenue",
		Value:        256.75,
		DateRecorded: "2026-03-01",
	})
	if err != nil {
		t.Fatalf("追加指标失败: %v", err)
	}
	if row.DateRecorded == nil || row.DateRecorded.Format("2006-01-02") != "2026-03-01" {
		t.Fatal("date_recorded 解析不对")
	}
}

// 批量里混入别人店铺的行，整批拒绝，一条都不落库
func TestAnalyticsService_BatchAllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	analyticsRepo := repository.NewAnalyticsRepository(db)
	svc := NewAnalyticsService(analyticsRepo, repository.NewStoreRepository(db))

	alice := mustCreateUser(t, db, "alice@test.com")
	bob := mustCreateUser(t, db, "bob@test.com")
	aliceStore := mustCreateStore(t, db, alice.ID, "alice-shop")
	bobStore := mustCreateStore(t, db, bob.ID, "bob-shop")

	_, err := svc.AppendBatch(ctx, alice.ID, &dto.AppendAnalyticsBatchReq{
		Records: []dto.AppendAnalyticsReq{
			{StoreID: aliceStore.ID, MetricType: "sales", Value: 1},
			{StoreID: bobStore.ID, MetricType: "sales", Value: 2},
			{StoreID: aliceStore.ID, MetricType: "traffic", Value: 3},
		},
	})
	if !errors.Is(err, ErrStoreNotOwned) {
		t.Fatalf("混入他人店铺期望 ErrStoreNotOwned，实际 %v", err)
	}

	_, total, _ := analyticsRepo.List(ctx, alice.ID, repository.AnalyticsFilter{})
	if total != 0 {
		t.Fatalf("整批应被拒绝，但落库 %d 条", total)
	}
}

func TestAnalyticsService_BatchHappyPath(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewAnalyticsService(repository.NewAnalyticsRepository(db), repository.NewStoreRepository(db))

	alice := mustCreateUser(t, db, "alice@test.com")
	store := mustCreateStore(t, db, alice.ID, "shop")

	rows, err := svc.AppendBatch(ctx, alice.ID, &dto.AppendAnalyticsBatchReq{
		Records: []dto.AppendAnalyticsReq{
			{StoreID: store.ID, MetricType: "sales", Value: 1},
			{StoreID: store.ID, MetricType: "traffic", Value: 2},
		},
	})
	if err != nil {
		t.Fatalf("批量追加失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望返回 2 条，实际 %d", len(rows))
	}
}
