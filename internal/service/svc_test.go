package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ksap_backend_v1/internal/model"
)

// setupTestDB 内存库，服务层直接挂真实仓储跑
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(
		&model.User{},
		&model.Store{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.PaymentProcessor{},
		&model.Proxy{},
		&model.SocialMediaAccount{},
		&model.AdCampaign{},
		&model.AnalyticsData{},
		&model.MarketResearchData{},
	)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "x", IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试账号失败: %v", err)
	}
	return user
}

func mustCreateStore(t *testing.T, db *gorm.DB, userID, name string) *model.Store {
	t.Helper()
	store := &model.Store{UserID: userID, Name: name, Platform: "etsy", Status: model.StoreStatusActive}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("创建测试店铺失败: %v", err)
	}
	return store
}
