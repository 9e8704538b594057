package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "email": GetEmail(c)})
	})
	return r
}

func doAuthRequest(t *testing.T, r *gin.Engine, authHeader string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是 JSON: %v", err)
	}
	return w, body
}

func errCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("响应缺少 error 信封: %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := newAuthTestRouter()
	w, body := doAuthRequest(t, r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("无 Authorization 头期望 401，实际 %d", w.Code)
	}
	if errCode(t, body) != "INVALID_TOKEN" {
		t.Fatalf("错误码期望 INVALID_TOKEN，实际 %s", errCode(t, body))
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	r := newAuthTestRouter()
	for _, header := range []string{"garbage", "Basic abc", "Bearer not.a.jwt"} {
		w, body := doAuthRequest(t, r, header)
		if w.Code != http.StatusUnauthorized || errCode(t, body) != "INVALID_TOKEN" {
			t.Fatalf("头 %q 期望 401/INVALID_TOKEN，实际 %d/%s", header, w.Code, errCode(t, body))
		}
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	old := GetJWTConfig()
	SetJWTConfig(&JWTConfig{
		SecretKey:       old.SecretKey,
		AccessTokenTTL:  -time.Minute, // 签出即过期
		RefreshTokenTTL: old.RefreshTokenTTL,
		Issuer:          old.Issuer,
	})
	defer SetJWTConfig(old)

	token, err := GenerateAccessToken("u-1", "a@test.com")
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	r := newAuthTestRouter()
	w, body := doAuthRequest(t, r, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("过期 token 期望 401，实际 %d", w.Code)
	}
	if errCode(t, body) != "TOKEN_EXPIRED" {
		t.Fatalf("过期 token 错误码期望 TOKEN_EXPIRED，实际 %s", errCode(t, body))
	}
}

// Refresh Token 有效但不能用于业务接口
func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	token, err := GenerateRefreshToken("u-1", "a@test.com")
	if err != nil {
		t.Fatalf("生成 refresh token 失败: %v", err)
	}

	r := newAuthTestRouter()
	w, body := doAuthRequest(t, r, "Bearer "+token)
	if w.Code != http.StatusUnauthorized || errCode(t, body) != "INVALID_TOKEN" {
		t.Fatalf("refresh token 上业务接口期望 401/INVALID_TOKEN，实际 %d/%s", w.Code, errCode(t, body))
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token, err := GenerateAccessToken("u-42", "alice@test.com")
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	r := newAuthTestRouter()
	w, body := doAuthRequest(t, r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("有效 token 期望 200，实际 %d: %s", w.Code, w.Body.String())
	}
	if body["user_id"] != "u-42" || body["email"] != "alice@test.com" {
		t.Fatalf("Context 注入不对: %v", body)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _ := GenerateAccessToken("u-1", "a@test.com")

	old := GetJWTConfig()
	SetJWTConfig(&JWTConfig{SecretKey: "another-secret", AccessTokenTTL: old.AccessTokenTTL, RefreshTokenTTL: old.RefreshTokenTTL, Issuer: old.Issuer})
	defer SetJWTConfig(old)

	if _, err := ParseToken(token); err == nil {
		t.Fatal("换密钥后旧 token 不应通过验签")
	}
}
