package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ihome/config"
	"ihome/internal/auth"
	"ihome/internal/cache"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.GlobalConfig = &config.Config{
		Session: config.SessionConfig{Secret: "test-secret", Expire: 3600},
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", cache.ErrNil
	}
	return val, nil
}

func (m *memCache) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memCache) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func newRouter(mgr *auth.SessionManager) *gin.Engine {
	r := gin.New()
	r.GET("/user", AuthMiddleware(mgr), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint64("user_id"), "name": c.GetString("name")})
	})
	return r
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	mgr := auth.NewSessionManager(&memCache{data: map[string]string{}}, time.Hour)
	r := newRouter(mgr)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["errno"] != "4101" {
		t.Fatalf("expected errno 4101, got %v", body["errno"])
	}
}

func TestAuthMiddlewareRejectsDestroyedSession(t *testing.T) {
	mgr := auth.NewSessionManager(&memCache{data: map[string]string{}}, time.Hour)
	ctx := context.Background()
	token, err := mgr.Create(ctx, 7, "小明", "13800138000")
	if err != nil {
		t.Fatal(err)
	}
	if err := mgr.Destroy(ctx, token); err != nil {
		t.Fatal(err)
	}

	r := newRouter(mgr)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["errno"] != "4101" {
		t.Fatalf("expected errno 4101, got %v", body["errno"])
	}
}

func TestAuthMiddlewareInjectsIdentity(t *testing.T) {
	mgr := auth.NewSessionManager(&memCache{data: map[string]string{}}, time.Hour)
	token, err := mgr.Create(context.Background(), 7, "小明", "13800138000")
	if err != nil {
		t.Fatal(err)
	}

	r := newRouter(mgr)

	// cookie 与 Authorization 头两种携带方式都应可用
	for _, attach := range []func(*http.Request){
		func(req *http.Request) { req.AddCookie(&http.Cookie{Name: CookieName, Value: token}) },
		func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) },
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		attach(req)
		r.ServeHTTP(w, req)

		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["user_id"] != float64(7) || body["name"] != "小明" {
			t.Fatalf("identity not injected: %v", body)
		}
	}
}
