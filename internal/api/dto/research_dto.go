package dto

import "gorm.io/datatypes"

// AppendResearchReq 追加一条调研记录请求
type AppendResearchReq struct {
	ResearchType    string         `json:"research_type" binding:"omitempty,oneof=competitor_ad trend_analysis product_research"`
	QueryParameters datatypes.JSON `json:"query_parameters"`
	Data            datatypes.JSON `json:"data" binding:"required"`
	Source          string         `json:"source"`
}
