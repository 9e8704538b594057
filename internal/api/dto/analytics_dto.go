package dto

import "gorm.io/datatypes"

// AppendAnalyticsReq 追加一条指标记录请求
type AppendAnalyticsReq struct {
	StoreID      string         `json:"store_id" binding:"required,uuid"`
	MetricType   string         `json:"metric_type" binding:"required"`
	MetricName   string         `json:"metric_name"`
	Value        float64        `json:"value"`
	Dimensions   datatypes.JSON `json:"dimensions"`
	DateRecorded string         `json:"date_recorded" binding:"omitempty,datetime=2006-01-02"`
}

// AppendAnalyticsBatchReq 批量追加指标记录请求
type AppendAnalyticsBatchReq struct {
	Records []AppendAnalyticsReq `json:"records" binding:"required,min=1,dive"`
}
