package database

import (
	"fmt"
	"strings"
)

// ==================== 声明式表结构 ====================
//
// 全部表结构的唯一定义源（single source of truth）。
// 建表 DDL、RLS 策略、索引、updated_at 触发器都从这里生成，
// internal/model 里的 gorm 实体由 schema_check_test 校验与此处一致，
// 防止两套定义各改各的漂移。

// ColumnDef 列定义，DDL 为列类型+约束的原文
type ColumnDef struct {
	Name string
	DDL  string
}

// PolicyDef RLS 策略定义
// Using 对应 USING 子句，Check 对应 WITH CHECK 子句（INSERT 专用）
type PolicyDef struct {
	Name    string
	Command string // SELECT / INSERT / UPDATE / DELETE
	Using   string
	Check   string
}

// IndexDef 索引定义
type IndexDef struct {
	Name    string
	Columns string
}

// TableDef 表定义
type TableDef struct {
	Name             string
	Columns          []ColumnDef
	Policies         []PolicyDef
	Indexes          []IndexDef
	UpdatedAtTrigger bool // 是否挂 updated_at 触发器
}

// ==================== 所有权谓词 ====================
//
// 权限链规则：要么行上直接有 user_id，要么最多经过两跳外键
// EXISTS 到 stores.user_id，绝不允许更深的递归 join。

// ownDirect 直接归属：行上的列 = 当前身份
func ownDirect(column string) string {
	return fmt.Sprintf("auth.uid() = %s", column)
}

// ownViaStore 一跳归属：经 stores 表回溯到账号
func ownViaStore(table string) string {
	return fmt.Sprintf(`EXISTS (
            SELECT 1 FROM public.stores
            WHERE stores.id = %s.store_id
            AND stores.user_id = auth.uid()
        )`, table)
}

// ownViaOrder 两跳归属：order_items -> orders -> stores
func ownViaOrder(table string) string {
	return fmt.Sprintf(`EXISTS (
            SELECT 1 FROM public.orders
            JOIN public.stores ON stores.id = orders.store_id
            WHERE orders.id = %s.order_id
            AND stores.user_id = auth.uid()
        )`, table)
}

// ownerPolicies 生成标准四条策略（select/insert/update/delete 同一谓词）
func ownerPolicies(noun, predicate string, commands ...string) []PolicyDef {
	if len(commands) == 0 {
		commands = []string{"SELECT", "INSERT", "UPDATE", "DELETE"}
	}
	verbs := map[string]string{
		"SELECT": "view",
		"INSERT": "insert",
		"UPDATE": "update",
		"DELETE": "delete",
	}
	var policies []PolicyDef
	for _, cmd := range commands {
		p := PolicyDef{
			Name:    fmt.Sprintf("Users can %s own %s", verbs[cmd], noun),
			Command: cmd,
		}
		if cmd == "INSERT" {
			p.Check = predicate
		} else {
			p.Using = predicate
		}
		policies = append(policies, p)
	}
	return policies
}

// ==================== 表定义（依赖顺序） ====================
//
// 注意顺序：被引用的表在前，建表按此顺序执行，删表按逆序。

// Tables 平台全部 11 张表
var Tables = []TableDef{
	{
		// users 扩展 Supabase auth.users，主键直接引用认证侧
		Name: "users",
		Columns: []ColumnDef{
			{"id", "UUID REFERENCES auth.users(id) ON DELETE CASCADE PRIMARY KEY"},
			{"email", "VARCHAR(255) UNIQUE NOT NULL"},
			{"password_hash", "VARCHAR(255)"},
			{"first_name", "VARCHAR(100)"},
			{"last_name", "VARCHAR(100)"},
			{"is_active", "BOOLEAN DEFAULT true"},
			{"is_verified", "BOOLEAN DEFAULT false"},
			{"created_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
			{"updated_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
			{"last_login", "TIMESTAMP WITH TIME ZONE"},
			{"settings", "JSONB DEFAULT '{}'::jsonb"},
		},
		// 账号表只开放本人查看和修改，注册/注销走 service key
		Policies: []PolicyDef{
			{Name: "Users can view own profile", Command: "SELECT", Using: ownDirect("id")},
			{Name: "Users can update own profile", Command: "UPDATE", Using: ownDirect("id")},
		},
		Indexes: []IndexDef{
			{"idx_users_email", "email"},
			{"idx_users_created_at", "created_at"},
		},
		UpdatedAtTrigger: true,
	},
	{
		Name: "stores",
		Columns: []ColumnDef{
			{"id", "UUID DEFAULT gen_random_uuid() PRIMARY KEY"},
			{"user_id", "UUID REFERENCES public.users(id) ON DELETE CASCADE NOT NULL"},
			{"name", "VARCHAR(255) NOT NULL"},
			{"description", "TEXT"},
			{"domain", "VARCHAR(255)"},
			{"platform", "VARCHAR(50)"}, // shopify / woocommerce / magento ...
			{"platform_store_id", "VARCHAR(255)"},
			{"api_credentials", "JSONB"}, // 加密后的平台密钥
			{"status", "VARCHAR(20) DEFAULT 'active'"},
			{"settings", "JSONB DEFAULT '{}'::jsonb"},
			{"created_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
			{"updated_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
		},
		Policies: ownerPolicies("stores", ownDirect("user_id")),
		Indexes: []IndexDef{
			{"idx_stores_user_id", "user_id"},
			{"idx_stores_platform", "platform"},
			{"idx_stores_status", "status"},
		},
		UpdatedAtTrigger: true,
	},
	{
		Name: "products",
		Columns: []ColumnDef{
			{"id", "UUID DEFAULT gen_random_uuid() PRIMARY KEY"},
			{"store_id", "UUID REFERENCES public.stores(id) ON DELETE CASCADE NOT NULL"},
			{"platform_product_id", "VARCHAR(255)"},
			{"title", "VARCHAR(500) NOT NULL"},
			{"description", "TEXT"},
			{"price", "DECIMAL(10,2)"},
			{"compare_at_price", "DECIMAL(10,2)"},
			{"cost_per_item", "DECIMAL(10,2)"},
			{"sku", "VARCHAR(255)"},
			{"barcode", "VARCHAR(255)"},
			{"inventory_quantity", "INTEGER DEFAULT 0"},
			{"track_inventory", "BOOLEAN DEFAULT true"},
			{"weight", "DECIMAL(8,2)"},
			{"images", "JSONB DEFAULT '[]'::jsonb"},
			{"tags", "JSONB DEFAULT '[]'::jsonb"},
			{"vendor", "VARCHAR(255)"},
			{"product_type", "VARCHAR(255)"},
			{"status", "VARCHAR(20) DEFAULT 'active'"},
			{"created_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
			{"updated_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
		},
		Policies: ownerPolicies("store products", ownViaStore("products")),
		Indexes: []IndexDef{
			{"idx_products_store_id", "store_id"},
			{"idx_products_sku", "sku"},
			{"idx_products_status", "status"},
		},
		UpdatedAtTrigger: true,
	},
	{
		Name: "orders",
		Columns: []ColumnDef{
			{"id", "UUID DEFAULT gen_random_uuid() PRIMARY KEY"},
			{"store_id", "UUID REFERENCES public.stores(id) ON DELETE CASCADE NOT NULL"},
			{"platform_order_id", "VARCHAR(255)"},
			{"order_number", "VARCHAR(100)"},
			{"customer_email", "VARCHAR(255)"},
			{"customer_name", "VARCHAR(255)"},
			{"customer_phone", "VARCHAR(50)"},
			{"billing_address", "JSONB"},
			{"shipping_address", "JSONB"},
			{"subtotal", "DECIMAL(10,2)"},
			{"tax_amount", "DECIMAL(10,2)"},
			{"shipping_amount", "DECIMAL(10,2)"},
			{"total_amount", "DECIMAL(10,2)"},
			{"currency", "VARCHAR(3) DEFAULT 'USD'"},
			{"status", "VARCHAR(50)"}, // pending/paid/fulfilled/shipped/delivered/cancelled
			{"fulfillment_status", "VARCHAR(50)"},
			{"payment_status", "VARCHAR(50)"},
			{"notes", "TEXT"},
			{"tags", "JSONB DEFAULT '[]'::jsonb"},
			{"created_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
			{"updated_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
		},
		// 订单不开放删除，取消走 status
		Policies: ownerPolicies("store orders", ownViaStore("orders"),
			"SELECT", "INSERT", "UPDATE"),
		Indexes: []IndexDef{
			{"idx_orders_store_id", "store_id"},
			{"idx_orders_status", "status"},
			{"idx_orders_created_at", "created_at"},
			{"idx_orders_customer_email", "customer_email"},
		},
		UpdatedAtTrigger: true,
	},
	{
		// 订单行，创建后不可变；product_id 可空且不级联（商品下架不动历史订单）
		Name: "order_items",
		Columns: []ColumnDef{
			{"id", "UUID DEFAULT gen_random_uuid() PRIMARY KEY"},
			{"order_id", "UUID REFERENCES public.orders(id) ON DELETE CASCADE NOT NULL"},
			{"product_id", "UUID REFERENCES public.products(id) ON DELETE SET NULL"},
			{"platform_product_id", "VARCHAR(255)"},
			{"title", "VARCHAR(500)"},
			{"sku", "VARCHAR(255)"},
			{"quantity", "INTEGER NOT NULL"},
			{"price", "DECIMAL(10,2) NOT NULL"},
			{"total", "DECIMAL(10,2) NOT NULL"},
			{"variant_title", "VARCHAR(255)"},
			{"properties", "JSONB DEFAULT '{}'::jsonb"},
		},
		Policies: ownerPolicies("store order items", ownViaOrder("order_items"),
			"SELECT", "INSERT", "UPDATE"),
	},
	{
		Name: "payment_processors",
		Columns: []ColumnDef{
			{"id", "UUID DEFAULT gen_random_uuid() PRIMARY KEY"},
			{"user_id", "UUID REFERENCES public.users(id) ON DELETE CASCADE NOT NULL"},
			{"name", "VARCHAR(100) NOT NULL"},
			{"provider", "VARCHAR(50) NOT NULL"}, // stripe / paypal / square ...
			{"api_credentials", "JSONB"},
			{"webhook_url", "VARCHAR(500)"},
			{"is_active", "BOOLEAN DEFAULT true"},
			{"settings", "JSONB DEFAULT '{}'::jsonb"},
			{"created_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
			{"updated_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
		},
		Policies:         ownerPolicies("payment processors", ownDirect("user_id")),
		UpdatedAtTrigger: true,
	},
	{
		// proxies 必须先于 social_media_accounts（后者外键引用）
		Name: "proxies",
		Columns: []ColumnDef{
			{"id", "UUID DEFAULT gen_random_uuid() PRIMARY KEY"},
			{"user_id", "UUID REFERENCES public.users(id) ON DELETE CASCADE NOT NULL"},
			{"name", "VARCHAR(255)"},
			{"host", "VARCHAR(255) NOT NULL"},
			{"port", "INTEGER NOT NULL"},
			{"username", "VARCHAR(255)"},
			{"password", "VARCHAR(255)"},
			{"protocol", "VARCHAR(10) DEFAULT 'http'"}, // http / https / socks5
			{"country", "VARCHAR(2)"},
			{"is_active", "BOOLEAN DEFAULT true"},
			{"last_tested", "TIMESTAMP WITH TIME ZONE"},
			{"test_result", "VARCHAR(20)"}, // success / failed / timeout
			{"created_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
		},
		Policies: ownerPolicies("proxies", ownDirect("user_id")),
	},
	{
		Name: "social_media_accounts",
		Columns: []ColumnDef{
			{"id", "UUID DEFAULT gen_random_uuid() PRIMARY KEY"},
			{"user_id", "UUID REFERENCES public.users(id) ON DELETE CASCADE NOT NULL"},
			{"platform", "VARCHAR(50) NOT NULL"}, // facebook / instagram / tiktok ...
			{"account_name", "VARCHAR(255)"},
			{"account_id", "VARCHAR(255)"},
			{"access_token", "TEXT"},
			{"refresh_token", "TEXT"},
			{"token_expires_at", "TIMESTAMP WITH TIME ZONE"},
			{"proxy_id", "UUID REFERENCES public.proxies(id) ON DELETE SET NULL"},
			{"status", "VARCHAR(20) DEFAULT 'active'"}, // active / suspended / banned
			{"warmup_status", "VARCHAR(50)"},           // new / warming / ready / flagged
			{"created_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
			{"updated_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
		},
		Policies:         ownerPolicies("social accounts", ownDirect("user_id")),
		UpdatedAtTrigger: true,
	},
	{
		Name: "ad_campaigns",
		Columns: []ColumnDef{
			{"id", "UUID DEFAULT gen_random_uuid() PRIMARY KEY"},
			{"user_id", "UUID REFERENCES public.users(id) ON DELETE CASCADE NOT NULL"},
			{"store_id", "UUID REFERENCES public.stores(id) ON DELETE SET NULL"},
			{"social_account_id", "UUID REFERENCES public.social_media_accounts(id) ON DELETE SET NULL"},
			{"name", "VARCHAR(255) NOT NULL"},
			{"objective", "VARCHAR(100)"}, // traffic / conversions / brand_awareness ...
			{"status", "VARCHAR(50)"},     // draft / active / paused / completed
			{"budget_type", "VARCHAR(20)"},
			{"budget_amount", "DECIMAL(10,2)"},
			{"start_date", "TIMESTAMP WITH TIME ZONE"},
			{"end_date", "TIMESTAMP WITH TIME ZONE"},
			{"target_audience", "JSONB"},
			{"creatives", "JSONB"},
			{"platform_campaign_id", "VARCHAR(255)"},
			{"created_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
			{"updated_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
		},
		Policies:         ownerPolicies("ad campaigns", ownDirect("user_id")),
		UpdatedAtTrigger: true,
	},
	{
		// 追加型时序数据，只开放查询和写入
		Name: "analytics_data",
		Columns: []ColumnDef{
			{"id", "UUID DEFAULT gen_random_uuid() PRIMARY KEY"},
			{"store_id", "UUID REFERENCES public.stores(id) ON DELETE CASCADE NOT NULL"},
			{"metric_type", "VARCHAR(100)"}, // sales / traffic / conversion ...
			{"metric_name", "VARCHAR(100)"},
			{"value", "DECIMAL(15,4)"},
			{"dimensions", "JSONB"},
			{"date_recorded", "DATE"},
			{"created_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
		},
		Policies: ownerPolicies("store analytics", ownViaStore("analytics_data"),
			"SELECT", "INSERT"),
		Indexes: []IndexDef{
			{"idx_analytics_store_id", "store_id"},
			{"idx_analytics_metric_type", "metric_type"},
			{"idx_analytics_date_recorded", "date_recorded"},
		},
	},
	{
		Name: "market_research_data",
		Columns: []ColumnDef{
			{"id", "UUID DEFAULT gen_random_uuid() PRIMARY KEY"},
			{"user_id", "UUID REFERENCES public.users(id) ON DELETE CASCADE NOT NULL"},
			{"research_type", "VARCHAR(50)"}, // competitor_ad / trend_analysis / product_research
			{"query_parameters", "JSONB"},
			{"data", "JSONB NOT NULL"},
			{"source", "VARCHAR(100)"}, // facebook_ad_library / google_trends ...
			{"created_at", "TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP"},
		},
		Policies: ownerPolicies("research data", ownDirect("user_id")),
	},
}

// ==================== DDL 生成 ====================

// CreateSQL 生成该表全部建表语句（建表 + 开 RLS + 策略 + 索引）
// 所有语句都是 IF NOT EXISTS / OR REPLACE 语义，重复执行无害
func (t TableDef) CreateSQL() []string {
	var stmts []string

	var cols []string
	for _, c := range t.Columns {
		cols = append(cols, fmt.Sprintf("    %s %s", c.Name, c.DDL))
	}
	stmts = append(stmts, fmt.Sprintf("CREATE TABLE IF NOT EXISTS public.%s (\n%s\n);",
		t.Name, strings.Join(cols, ",\n")))

	stmts = append(stmts, fmt.Sprintf("ALTER TABLE public.%s ENABLE ROW LEVEL SECURITY;", t.Name))

	for _, p := range t.Policies {
		// CREATE POLICY 没有 IF NOT EXISTS，先 DROP 再 CREATE 保证幂等
		stmts = append(stmts, fmt.Sprintf("DROP POLICY IF EXISTS %q ON public.%s;", p.Name, t.Name))
		clause := fmt.Sprintf("USING (%s)", p.Using)
		if p.Command == "INSERT" {
			clause = fmt.Sprintf("WITH CHECK (%s)", p.Check)
		}
		stmts = append(stmts, fmt.Sprintf("CREATE POLICY %q ON public.%s\n    FOR %s %s;",
			p.Name, t.Name, p.Command, clause))
	}

	for _, idx := range t.Indexes {
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON public.%s(%s);",
			idx.Name, t.Name, idx.Columns))
	}

	return stmts
}

// UpdatedAtFunctionSQL 共享的 updated_at 维护函数
func UpdatedAtFunctionSQL() string {
	return `CREATE OR REPLACE FUNCTION handle_updated_at()
RETURNS TRIGGER AS $$
BEGIN
    NEW.updated_at = CURRENT_TIMESTAMP;
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;`
}

// TriggerSQL 生成该表的 updated_at 触发器语句（无触发器返回 nil）
func (t TableDef) TriggerSQL() []string {
	if !t.UpdatedAtTrigger {
		return nil
	}
	name := fmt.Sprintf("trigger_%s_updated_at", t.Name)
	return []string{
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON public.%s;", name, t.Name),
		fmt.Sprintf(`CREATE TRIGGER %s
    BEFORE UPDATE ON public.%s
    FOR EACH ROW EXECUTE FUNCTION handle_updated_at();`, name, t.Name),
	}
}

// DropSQL 删表语句
func (t TableDef) DropSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS public.%s CASCADE;", t.Name)
}

// ColumnNames 声明的列名集合（供一致性校验用）
func (t TableDef) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// FindTable 按表名查定义
func FindTable(name string) (TableDef, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableDef{}, false
}
