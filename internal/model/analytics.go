package model

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsData 店铺指标时序行，只追加不修改
type AnalyticsData struct {
	AppendOnlyModel
	StoreID string `gorm:"type:uuid;index;not null"` // 归属店铺（一跳回溯到账号）
	Store   *Store `gorm:"foreignKey:StoreID"`

	MetricType string  `gorm:"size:100;index"` // sales / traffic / conversion ...
	MetricName string  `gorm:"size:100"`
	Value      float64 `gorm:"type:decimal(15,4)"`

	// 附加维度（date / product_id 等）
	Dimensions   datatypes.JSON `gorm:"type:jsonb"`
	DateRecorded *time.Time     `gorm:"type:date;index"`
}

func (AnalyticsData) TableName() string {
	return "analytics_data"
}

// ToMap 序列化为字段映射（无敏感字段，参数保留是为了接口统一）
func (a *AnalyticsData) ToMap(includeSensitive bool) map[string]interface{} {
	return map[string]interface{}{
		"id":            a.ID,
		"store_id":      a.StoreID,
		"metric_type":   a.MetricType,
		"metric_name":   a.MetricName,
		"value":         a.Value,
		"dimensions":    jsonOrEmpty(a.Dimensions, "{}"),
		"date_recorded": formatDate(a.DateRecorded),
		"created_at":    formatTime(&a.CreatedAt),
	}
}

func formatDate(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.Format("2006-01-02")
}
