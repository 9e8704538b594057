package model

import (
	"gorm.io/datatypes"
)

// 调研类型常量
const (
	ResearchTypeCompetitorAd    = "competitor_ad"
	ResearchTypeTrendAnalysis   = "trend_analysis"
	ResearchTypeProductResearch = "product_research"
)

// MarketResearchData 市场调研结果行，只追加不修改
// data 为外部工具（广告库、趋势接口）抓取的原始 JSON
type MarketResearchData struct {
	AppendOnlyModel
	UserID string `gorm:"type:uuid;index;not null"` // 归属账号
	User   *User  `gorm:"foreignKey:UserID"`

	ResearchType    string         `gorm:"size:50"`
	QueryParameters datatypes.JSON `gorm:"type:jsonb"`
	Data            datatypes.JSON `gorm:"type:jsonb;not null"`
	Source          string         `gorm:"size:100"` // facebook_ad_library / google_trends ...
}

func (MarketResearchData) TableName() string {
	return "market_research_data"
}

// ToMap 序列化为字段映射
func (r *MarketResearchData) ToMap(includeSensitive bool) map[string]interface{} {
	return map[string]interface{}{
		"id":               r.ID,
		"user_id":          r.UserID,
		"research_type":    r.ResearchType,
		"query_parameters": jsonOrEmpty(r.QueryParameters, "{}"),
		"data":             jsonOrEmpty(r.Data, "{}"),
		"source":           r.Source,
		"created_at":       formatTime(&r.CreatedAt),
	}
}
