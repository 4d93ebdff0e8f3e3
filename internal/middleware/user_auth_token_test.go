package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/pkg/app"
	"github.com/labnote/labnote-service/pkg/code"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const authTestSecret = "middleware-test-secret"

// newAuthTestRouter 构造带认证门的测试路由，处理器回显当前主体
func newAuthTestRouter(lookup PrincipalLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", UserAuthTokenWithLookup(authTestSecret, lookup), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"code":     0,
			"uid":      app.GetUID(c),
			"username": app.GetUsername(c),
		})
	})
	return r
}

func authTestRequest(t *testing.T, r *gin.Engine, token string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return w.Code, body
}

func mintAuthTestToken(t *testing.T, expiry time.Duration) string {
	t.Helper()
	tm := app.NewTokenManager(app.TokenConfig{SecretKey: authTestSecret, Expiry: expiry})
	token, err := tm.Generate(1, "alice", app.DisplayClaims{})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// 验签通过后主体以用户行为准，改名后旧 Token 携带的用户名被覆盖
func TestUserAuthToken_RebindsPrincipalFromUserRow(t *testing.T) {
	r := newAuthTestRouter(func(ctx context.Context, uid int64) (*domain.User, error) {
		return &domain.User{UID: uid, Username: "alice_renamed"}, nil
	})

	status, body := authTestRequest(t, r, mintAuthTestToken(t, time.Hour))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["username"] != "alice_renamed" {
		t.Errorf("expected principal from user row, got %v", body["username"])
	}
	if body["uid"] != float64(1) {
		t.Errorf("expected uid 1, got %v", body["uid"])
	}
}

// 已注销账户的 Token 在有效期内也不可用
func TestUserAuthToken_DeletedAccountRejected(t *testing.T) {
	r := newAuthTestRouter(func(ctx context.Context, uid int64) (*domain.User, error) {
		return nil, gorm.ErrRecordNotFound
	})

	status, body := authTestRequest(t, r, mintAuthTestToken(t, time.Hour))
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if int(body["code"].(float64)) != code.ErrorInvalidUserAuthToken.Code() {
		t.Errorf("expected invalid token code, got %v", body["code"])
	}
}

// 过期与格式错误是不同错误码，均返回 401
func TestUserAuthToken_ExpiredAndMalformed(t *testing.T) {
	r := newAuthTestRouter(func(ctx context.Context, uid int64) (*domain.User, error) {
		t.Error("lookup must not run for an unverified token")
		return nil, gorm.ErrRecordNotFound
	})

	status, body := authTestRequest(t, r, mintAuthTestToken(t, -time.Second))
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", status)
	}
	if int(body["code"].(float64)) != code.ErrorExpiredUserAuthToken.Code() {
		t.Errorf("expected expired token code, got %v", body["code"])
	}

	status, body = authTestRequest(t, r, "not.a.token")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", status)
	}
	if int(body["code"].(float64)) != code.ErrorInvalidUserAuthToken.Code() {
		t.Errorf("expected invalid token code, got %v", body["code"])
	}
}

// Token 缺失返回专用错误码
func TestUserAuthToken_MissingToken(t *testing.T) {
	r := newAuthTestRouter(func(ctx context.Context, uid int64) (*domain.User, error) {
		return &domain.User{UID: uid}, nil
	})

	status, body := authTestRequest(t, r, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if int(body["code"].(float64)) != code.ErrorNotUserAuthToken.Code() {
		t.Errorf("expected missing token code, got %v", body["code"])
	}
}
