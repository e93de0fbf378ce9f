package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payslip/internal/middleware"
	"go-payslip/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", testSecret)

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/me", middleware.AuthMiddleware(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"user_id":     c.GetString("user_id"),
				"employee_id": c.GetString("employee_id"),
				"company_id":  c.GetString("company_id"),
				"ctx_user":    contextutil.GetUserID(c.Request.Context()),
			})
		})
		return r
	}

	t.Run("valid bearer token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id":     "u1",
			"company_id":  "c1",
			"employee_id": "e1",
			"exp":         time.Now().Add(time.Hour).Unix(),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"u1","employee_id":"e1","company_id":"c1","ctx_user":"u1"}`, w.Body.String())
	})

	t.Run("cookie token without employee id", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"user_id": "u1", "company_id": "c1"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()

		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id":    "u1",
			"company_id": "c1",
			"exp":        time.Now().Add(-time.Hour).Unix(),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token has expired")
	})

	t.Run("missing company claim", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"user_id": "u1"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const cacheKey = "idemp:/slips:c1:u1:abc"

	newRouter := func(t *testing.T, handlerCalled *bool) (*gin.Engine, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set("company_id", "c1")
			c.Set("user_id", "u1")
			c.Next()
		})
		r.POST("/slips", middleware.Idempotency(rdb), func(c *gin.Context) {
			*handlerCalled = true
			assert.Equal(t, cacheKey, c.GetString("idempotency_cache_key"))
			assert.Equal(t, cacheKey+":lock", c.GetString("idempotency_lock_key"))
			c.Status(http.StatusCreated)
		})
		return r, mock
	}

	post := func(key string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/slips", nil)
		if key != "" {
			req.Header.Set(middleware.HeaderIdempotencyKey, key)
		}
		return req
	}

	t.Run("first request takes the lock", func(t *testing.T) {
		called := false
		r, mock := newRouter(t, &called)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, post("abc"))

		assert.True(t, called)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("completed request is replayed", func(t *testing.T) {
		called := false
		r, mock := newRouter(t, &called)
		mock.ExpectGet(cacheKey).SetVal(`{"slip_number":"SLIP-000001"}`)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, post("abc"))

		assert.False(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "SLIP-000001")
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
	})

	t.Run("in-flight duplicate conflicts", func(t *testing.T) {
		called := false
		r, mock := newRouter(t, &called)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, post("abc"))

		assert.False(t, called)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("no key passes through", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		r := gin.New()
		called := false
		r.POST("/slips", middleware.Idempotency(rdb), func(c *gin.Context) {
			called = true
			c.Status(http.StatusCreated)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, post(""))

		assert.True(t, called)
	})
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", middleware.RateLimitByIP(1, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ContextLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	t.Run("propagates caller id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.HeaderRequestID, "rid-1")

		r.ServeHTTP(w, req)

		assert.Equal(t, "rid-1", w.Body.String())
		assert.Equal(t, "rid-1", w.Header().Get(middleware.HeaderRequestID))
	})

	t.Run("mints an id", func(t *testing.T) {
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get(middleware.HeaderRequestID))
	})
}
