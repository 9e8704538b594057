package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/repository"
)

func TestOrderService_CreateComputesTotals(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewOrderService(repository.NewOrderRepository(db), repository.NewStoreRepository(db))

	alice := mustCreateUser(t, db, "alice@test.com")
	store := mustCreateStore(t, db, alice.ID, "shop")

	order, err := svc.CreateOrder(ctx, alice.ID, &dto.CreateOrderReq{
		StoreID:        store.ID,
		TaxAmount:      1.5,
		ShippingAmount: 4.0,
		Items: []dto.OrderItemReq{
			{Title: "widget", Quantity: 3, Price: 9.99},
			{Title: "gadget", Quantity: 1, Price: 5.01},
		},
	})
	if err != nil {
		t.Fatalf("创建订单失败: %v", err)
	}

	// 行金额 = 数量 × 单价
	if order.Items[0].Total != 3*9.99 {
		t.Fatalf("行金额期望 %v，实际 %v", 3*9.99, order.Items[0].Total)
	}
	// 小计 = 行金额之和
	wantSubtotal := 3*9.99 + 5.01
	if math.Abs(order.Subtotal-wantSubtotal) > 1e-9 {
		t.Fatalf("小计期望 %v，实际 %v", wantSubtotal, order.Subtotal)
	}
	// 总额 = 小计 + 税 + 运费
	if math.Abs(order.TotalAmount-(wantSubtotal+1.5+4.0)) > 1e-9 {
		t.Fatalf("总额期望 %v，实际 %v", wantSubtotal+1.5+4.0, order.TotalAmount)
	}
	// 默认值
	if order.Status != "pending" || order.Currency != "USD" {
		t.Fatalf("默认状态/币种不对: %s %s", order.Status, order.Currency)
	}
}

func TestOrderService_CreateRejectsForeignStore(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewOrderService(repository.NewOrderRepository(db), repository.NewStoreRepository(db))

	alice := mustCreateUser(t, db, "alice@test.com")
	bob := mustCreateUser(t, db, "bob@test.com")
	aliceStore := mustCreateStore(t, db, alice.ID, "alice-shop")

	_, err := svc.CreateOrder(ctx, bob.ID, &dto.CreateOrderReq{
		StoreID: aliceStore.ID,
		Items:   []dto.OrderItemReq{{Title: "widget", Quantity: 1, Price: 1}},
	})
	if !errors.Is(err, ErrStoreNotOwned) {
		t.Fatalf("挂别人店铺期望 ErrStoreNotOwned，实际 %v", err)
	}
}

func TestOrderService_UpdateOnlyStatusFields(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewOrderService(repository.NewOrderRepository(db), repository.NewStoreRepository(db))

	alice := mustCreateUser(t, db, "alice@test.com")
	store := mustCreateStore(t, db, alice.ID, "shop")
	order, _ := svc.CreateOrder(ctx, alice.ID, &dto.CreateOrderReq{
		StoreID: store.ID,
		Items:   []dto.OrderItemReq{{Title: "widget", Quantity: 2, Price: 10}},
	})

	status := "shipped"
	notes := "发货备注"
	updated, err := svc.UpdateOrder(ctx, alice.ID, order.ID, &dto.UpdateOrderReq{Status: &status, Notes: &notes})
	if err != nil {
		t.Fatalf("更新订单失败: %v", err)
	}
	if updated.Status != "shipped" || updated.Notes != "发货备注" {
		t.Fatalf("状态/备注未更新: %s %s", updated.Status, updated.Notes)
	}
	// 金额字段不受更新影响
	if updated.TotalAmount != order.TotalAmount {
		t.Fatal("更新不应改动订单金额")
	}
}
