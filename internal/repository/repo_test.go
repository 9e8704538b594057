package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ksap_backend_v1/internal/model"
)

// ==================== 测试辅助 ====================

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	// sqlite 默认不开外键，级联测试依赖它
	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(
		&model.User{}, &model.Store{}, &model.Product{},
		&model.Order{}, &model.OrderItem{}, &model.PaymentProcessor{},
		&model.Proxy{}, &model.SocialMediaAccount{}, &model.AdCampaign{},
		&model.AnalyticsData{}, &model.MarketResearchData{},
	)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, IsActive: true}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return u
}

func mustCreateStore(t *testing.T, db *gorm.DB, userID, name string) *model.Store {
	t.Helper()
	s := &model.Store{UserID: userID, Name: name, Status: model.StoreStatusActive}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}
	return s
}
