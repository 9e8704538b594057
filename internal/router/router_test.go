package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ksap_backend_v1/internal/controller"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
	"ksap_backend_v1/internal/service"
	"ksap_backend_v1/pkg/supabase"
)

// newTestApp 完整路由 + 内存库，走真实服务和仓储
func newTestApp(t *testing.T, sb *supabase.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
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

	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentProcessorRepository(db)
	proxyRepo := repository.NewProxyRepository(db)
	socialRepo := repository.NewSocialAccountRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	researchRepo := repository.NewResearchRepository(db)

	if sb == nil {
		sb = supabase.NewClient(supabase.Config{})
	}
	storage := service.NewStorageServiceWith(nil)

	ctls := &Controllers{
		Health:    controller.NewHealthController(sb, "test"),
		Auth:      controller.NewAuthController(service.NewAuthService(userRepo)),
		User:      controller.NewUserController(service.NewUserService(userRepo, sb)),
		Store:     controller.NewStoreController(service.NewStoreService(storeRepo)),
		Product:   controller.NewProductController(service.NewProductService(productRepo, storeRepo, storage)),
		Order:     controller.NewOrderController(service.NewOrderService(orderRepo, storeRepo)),
		Payment:   controller.NewPaymentController(service.NewPaymentService(paymentRepo)),
		Proxy:     controller.NewProxyController(service.NewProxyService(proxyRepo)),
		Social:    controller.NewSocialController(service.NewSocialService(socialRepo, proxyRepo)),
		Campaign:  controller.NewCampaignController(service.NewCampaignService(campaignRepo, storeRepo, socialRepo)),
		Analytics: controller.NewAnalyticsController(service.NewAnalyticsService(analyticsRepo, storeRepo)),
		Research:  controller.NewResearchController(service.NewResearchService(researchRepo)),
	}

	r := gin.New()
	InitRoutes(r, ctls)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("序列化请求失败: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("响应不是 JSON: %v (%s)", err, w.Body.String())
		}
	}
	return w, parsed
}

func registerAndToken(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": "secret-pass-1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("注册失败: %d %s", w.Code, w.Body.String())
	}
	data := body["data"].(map[string]interface{})
	return data["access_token"].(string)
}

func respErrCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("响应缺少 error 信封: %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

// ==================== 认证流程 ====================

func TestAPI_RegisterLoginRefresh(t *testing.T) {
	r := newTestApp(t, nil)

	// 注册 201，带 Token 对
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "alice@test.com", "password": "secret-pass-1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("注册期望 201，实际 %d: %s", w.Code, w.Body.String())
	}
	data := body["data"].(map[string]interface{})
	refreshToken := data["refresh_token"].(string)

	// 重复注册 409 CONFLICT
	w, body = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "alice@test.com", "password": "secret-pass-1",
	})
	if w.Code != http.StatusConflict || respErrCode(t, body) != "CONFLICT" {
		t.Fatalf("重复注册期望 409/CONFLICT，实际 %d/%s", w.Code, respErrCode(t, body))
	}

	// 错密码登录 401 UNAUTHORIZED
	w, body = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@test.com", "password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized || respErrCode(t, body) != "UNAUTHORIZED" {
		t.Fatalf("错密码期望 401/UNAUTHORIZED，实际 %d/%s", w.Code, respErrCode(t, body))
	}

	// 正常登录
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@test.com", "password": "secret-pass-1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("登录期望 200，实际 %d", w.Code)
	}

	// 换发
	w, body = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refresh_token": refreshToken,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("换发期望 200，实际 %d: %s", w.Code, w.Body.String())
	}
	if body["data"].(map[string]interface{})["access_token"] == "" {
		t.Fatal("换发未返回新 Access Token")
	}
}

func TestAPI_ProtectedRouteRequiresToken(t *testing.T) {
	r := newTestApp(t, nil)

	w, body := doJSON(t, r, http.MethodGet, "/api/v1/stores", "", nil)
	if w.Code != http.StatusUnauthorized || respErrCode(t, body) != "INVALID_TOKEN" {
		t.Fatalf("无 Token 期望 401/INVALID_TOKEN，实际 %d/%s", w.Code, respErrCode(t, body))
	}
}

// ==================== 店铺 CRUD 走 HTTP ====================

func TestAPI_StoreCRUD(t *testing.T) {
	r := newTestApp(t, nil)
	token := registerAndToken(t, r, "alice@test.com")

	// 创建
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/stores", token, gin.H{
		"name": "My Etsy Shop", "platform": "etsy",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建店铺期望 201，实际 %d: %s", w.Code, w.Body.String())
	}
	storeID := body["data"].(map[string]interface{})["id"].(string)

	// 列表
	w, body = doJSON(t, r, http.MethodGet, "/api/v1/stores", token, nil)
	if w.Code != http.StatusOK || body["total"].(float64) != 1 {
		t.Fatalf("列表期望 total=1，实际 %d %v", w.Code, body["total"])
	}
	// 列表行不含凭证
	first := body["data"].([]interface{})[0].(map[string]interface{})
	if _, ok := first["api_credentials"]; ok {
		t.Fatal("列表不应携带 api_credentials")
	}

	// 详情含凭证字段
	w, body = doJSON(t, r, http.MethodGet, "/api/v1/stores/"+storeID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("详情期望 200，实际 %d", w.Code)
	}
	if _, ok := body["data"].(map[string]interface{})["api_credentials"]; !ok {
		t.Fatal("详情应携带 api_credentials")
	}

	// 更新
	w, body = doJSON(t, r, http.MethodPut, "/api/v1/stores/"+storeID, token, gin.H{
		"name": "Renamed Shop",
	})
	if w.Code != http.StatusOK || body["data"].(map[string]interface{})["name"] != "Renamed Shop" {
		t.Fatalf("更新失败: %d %s", w.Code, w.Body.String())
	}

	// 删除
	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/stores/"+storeID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("删除期望 200，实际 %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/stores/"+storeID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("删除后详情期望 404，实际 %d", w.Code)
	}
}

// 跨用户访问一律 404，不暴露资源是否存在
func TestAPI_CrossUserReturns404(t *testing.T) {
	r := newTestApp(t, nil)
	aliceToken := registerAndToken(t, r, "alice@test.com")
	bobToken := registerAndToken(t, r, "bob@test.com")

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/stores", aliceToken, gin.H{
		"name": "Alice Shop", "platform": "etsy",
	})
	storeID := body["data"].(map[string]interface{})["id"].(string)

	w, body = doJSON(t, r, http.MethodGet, "/api/v1/stores/"+storeID, bobToken, nil)
	if w.Code != http.StatusNotFound || respErrCode(t, body) != "NOT_FOUND" {
		t.Fatalf("跨用户读期望 404/NOT_FOUND，实际 %d/%s", w.Code, respErrCode(t, body))
	}

	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/stores/"+storeID, bobToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("跨用户删期望 404，实际 %d", w.Code)
	}

	// alice 的店还在
	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/stores/"+storeID, aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("资源不应被误删: %d", w.Code)
	}
}

// 挂别人店铺的订单：400
func TestAPI_OrderForeignStoreRejected(t *testing.T) {
	r := newTestApp(t, nil)
	aliceToken := registerAndToken(t, r, "alice@test.com")
	bobToken := registerAndToken(t, r, "bob@test.com")

	_, body := doJSON(t, r, http.MethodPost, "/api/v1/stores", aliceToken, gin.H{
		"name": "Alice Shop", "platform": "etsy",
	})
	storeID := body["data"].(map[string]interface{})["id"].(string)

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/orders", bobToken, gin.H{
		"store_id": storeID,
		"items":    []gin.H{{"title": "widget", "quantity": 1, "price": 9.99}},
	})
	if w.Code != http.StatusBadRequest || respErrCode(t, body) != "BAD_REQUEST" {
		t.Fatalf("挂他人店铺期望 400/BAD_REQUEST，实际 %d/%s", w.Code, respErrCode(t, body))
	}
}

func TestAPI_ValidationErrors(t *testing.T) {
	r := newTestApp(t, nil)
	token := registerAndToken(t, r, "alice@test.com")

	// 缺必填字段
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/stores", token, gin.H{"platform": "etsy"})
	if w.Code != http.StatusBadRequest || respErrCode(t, body) != "BAD_REQUEST" {
		t.Fatalf("缺 name 期望 400/BAD_REQUEST，实际 %d/%s", w.Code, respErrCode(t, body))
	}

	// 订单至少一行
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/orders", token, gin.H{
		"store_id": "00000000-0000-0000-0000-000000000000",
		"items":    []gin.H{},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("空订单行期望 400，实际 %d", w.Code)
	}
}

// ==================== 健康检查与兜底 ====================

func TestAPI_NoRouteEnvelope(t *testing.T) {
	r := newTestApp(t, nil)

	w, body := doJSON(t, r, http.MethodGet, "/no/such/path", "", nil)
	if w.Code != http.StatusNotFound || respErrCode(t, body) != "NOT_FOUND" {
		t.Fatalf("未知路由期望 404/NOT_FOUND，实际 %d/%s", w.Code, respErrCode(t, body))
	}
}

func TestAPI_HealthDegradedWithoutPlatform(t *testing.T) {
	r := newTestApp(t, nil)

	w, body := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("平台不可达期望 503，实际 %d", w.Code)
	}
	if body["status"] != "degraded" {
		t.Fatalf("状态期望 degraded，实际 %v", body["status"])
	}
}

func TestAPI_HealthyWithReachablePlatform(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	sb := supabase.NewClient(supabase.Config{URL: upstream.URL, AnonKey: "anon"})
	r := newTestApp(t, sb)

	w, body := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("平台可达期望 200，实际 %d: %s", w.Code, w.Body.String())
	}
	if body["status"] != "healthy" {
		t.Fatalf("状态期望 healthy，实际 %v", body["status"])
	}
}

func TestAPI_IndexEndpoint(t *testing.T) {
	r := newTestApp(t, nil)

	w, body := doJSON(t, r, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("根路径期望 200，实际 %d", w.Code)
	}
	if body["version"] == nil || body["endpoints"] == nil {
		t.Fatalf("根路径响应缺字段: %v", body)
	}
}
