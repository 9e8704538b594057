package database

import (
	"sort"
	"sync"
	"testing"

	"gorm.io/gorm/schema"

	"ksap_backend_v1/internal/model"
)

// 声明式表结构和 gorm 实体是两套定义，这里强制两边列集合一致，
// 防止改了一边忘了另一边
func TestModelColumnsMatchSchema(t *testing.T) {
	models := map[string]interface{}{
		"users":                 &model.User{},
		"stores":                &model.Store{},
		"products":              &model.Product{},
		"orders":                &model.Order{},
		"order_items":           &model.OrderItem{},
		"payment_processors":    &model.PaymentProcessor{},
		"proxies":               &model.Proxy{},
		"social_media_accounts": &model.SocialMediaAccount{},
		"ad_campaigns":          &model.AdCampaign{},
		"analytics_data":        &model.AnalyticsData{},
		"market_research_data":  &model.MarketResearchData{},
	}

	cache := &sync.Map{}
	for table, m := range models {
		tbl, ok := FindTable(table)
		if !ok {
			t.Errorf("声明式结构里缺表 %s", table)
			continue
		}

		parsed, err := schema.Parse(m, cache, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("解析实体 %s 失败: %v", table, err)
		}
		if parsed.Table != table {
			t.Errorf("实体表名 %s != 声明表名 %s", parsed.Table, table)
		}

		got := append([]string{}, parsed.DBNames...)
		want := tbl.ColumnNames()
		sort.Strings(got)
		sort.Strings(want)

		if len(got) != len(want) {
			t.Errorf("%s: 实体 %d 列 vs 声明 %d 列\n实体: %v\n声明: %v",
				table, len(got), len(want), got, want)
			continue
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("%s: 列不一致，实体 %q vs 声明 %q", table, got[i], want[i])
			}
		}
	}
}
