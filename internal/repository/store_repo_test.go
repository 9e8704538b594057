package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/model"
)

// ==================== 归属隔离测试 ====================
//
// 核心约束：任何读写都带 userID，别人的行和不存在的行不可区分。

func TestStoreRepo_CrossUserIsolation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewStoreRepository(db)

	alice := mustCreateUser(t, db, "alice@test.com")
	bob := mustCreateUser(t, db, "bob@test.com")
	aliceStore := mustCreateStore(t, db, alice.ID, "alice-shop")

	// GetByID：别人的店等同不存在
	if _, err := repo.GetByID(ctx, bob.ID, aliceStore.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("跨用户读取应报 ErrRecordNotFound，实际 %v", err)
	}
	if _, err := repo.GetByID(ctx, alice.ID, aliceStore.ID); err != nil {
		t.Fatalf("本人读取失败: %v", err)
	}

	// UpdateFields：跨用户零行命中
	err := repo.UpdateFields(ctx, bob.ID, aliceStore.ID, map[string]interface{}{"name": "hacked"})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("跨用户更新应报 ErrRecordNotFound，实际 %v", err)
	}
	var check model.Store
	db.First(&check, "id = ?", aliceStore.ID)
	if check.Name != "alice-shop" {
		t.Fatal("跨用户更新改到了别人的行")
	}

	// Delete：跨用户零行命中，行保留
	if err := repo.Delete(ctx, bob.ID, aliceStore.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("跨用户删除应报 ErrRecordNotFound，实际 %v", err)
	}
	var count int64
	db.Model(&model.Store{}).Where("id = ?", aliceStore.ID).Count(&count)
	if count != 1 {
		t.Fatal("跨用户删除删掉了别人的行")
	}
}

func TestStoreRepo_ListOnlyOwn(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewStoreRepository(db)

	alice := mustCreateUser(t, db, "alice@test.com")
	bob := mustCreateUser(t, db, "bob@test.com")
	mustCreateStore(t, db, alice.ID, "a1")
	mustCreateStore(t, db, alice.ID, "a2")
	mustCreateStore(t, db, bob.ID, "b1")

	stores, total, err := repo.List(ctx, alice.ID, StoreFilter{})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 2 || len(stores) != 2 {
		t.Fatalf("期望 2 家店，实际 total=%d len=%d", total, len(stores))
	}
	for _, s := range stores {
		if s.UserID != alice.ID {
			t.Fatalf("列表混入了他人店铺: %s", s.Name)
		}
	}
}

func TestStoreRepo_ListFilterAndPaging(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewStoreRepository(db)

	alice := mustCreateUser(t, db, "alice@test.com")
	for i := 0; i < 3; i++ {
		s := mustCreateStore(t, db, alice.ID, "shopify-store")
		db.Model(s).Update("platform", "shopify")
	}
	mustCreateStore(t, db, alice.ID, "woo-store")

	stores, total, err := repo.List(ctx, alice.ID, StoreFilter{Platform: "shopify", PageSize: 2})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 3 {
		t.Fatalf("platform 过滤后期望 total=3，实际 %d", total)
	}
	if len(stores) != 2 {
		t.Fatalf("page_size=2 期望返回 2 条，实际 %d", len(stores))
	}

	// 越界分页参数回退默认值
	if _, _, err := repo.List(ctx, alice.ID, StoreFilter{Page: -1, PageSize: 10000}); err != nil {
		t.Fatalf("异常分页参数不应报错: %v", err)
	}
}

func TestStoreRepo_NameSearch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewStoreRepository(db)

	alice := mustCreateUser(t, db, "alice@test.com")
	mustCreateStore(t, db, alice.ID, "Summer Sale Shop")
	mustCreateStore(t, db, alice.ID, "Winter Store")

	stores, _, err := repo.List(ctx, alice.ID, StoreFilter{Name: "Summer"})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(stores) != 1 || stores[0].Name != "Summer Sale Shop" {
		t.Fatalf("模糊搜索结果不对: %+v", stores)
	}
}

// 删店铺级联清掉商品和订单
func TestStoreRepo_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewStoreRepository(db)

	alice := mustCreateUser(t, db, "alice@test.com")
	store := mustCreateStore(t, db, alice.ID, "shop")
	db.Create(&model.Product{StoreID: store.ID, Title: "p1"})
	db.Create(&model.Order{StoreID: store.ID, OrderNumber: "1001"})

	if err := repo.Delete(ctx, alice.ID, store.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	var products, orders int64
	db.Model(&model.Product{}).Where("store_id = ?", store.ID).Count(&products)
	db.Model(&model.Order{}).Where("store_id = ?", store.ID).Count(&orders)
	if products != 0 || orders != 0 {
		t.Fatalf("级联未生效: products=%d orders=%d", products, orders)
	}
}
