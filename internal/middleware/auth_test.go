package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campuslearn_backend/internal/config"
	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToken(t *testing.T, secret string, role model.UserRole) string {
	t.Helper()
	user := &model.User{Email: "t@campuslearn.test", Role: role}
	user.ID = 1
	token, err := util.GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)
	return token
}

func testLive(secret string) *config.Live {
	return config.NewLive(&config.Config{JWT: config.JWTConfig{Secret: secret}})
}

func testRouter(live *config.Live, roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/", AuthMiddleware(live))
	if len(roles) > 0 {
		group.Use(RoleMiddleware(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	router := testRouter(testLive("test-secret"))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", authHeader: "Bearer " + testToken(t, "test-secret", model.Student), wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	router := testRouter(testLive("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/ping?token="+testToken(t, "test-secret", model.Student), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareSecretRotation(t *testing.T) {
	live := testLive("old-secret")
	router := testRouter(live)

	oldToken := testToken(t, "old-secret", model.Student)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+oldToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	live.Store(&config.Config{JWT: config.JWTConfig{Secret: "new-secret"}})

	// Old tokens stop validating the moment the secret rotates.
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+oldToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, "new-secret", model.Student))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTryAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", TryAuthMiddleware(testLive("test-secret")), func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, string(claims.Role))
	})

	tests := []struct {
		name       string
		authHeader string
		wantBody   string
	}{
		{name: "anonymous passes through", wantBody: "anonymous"},
		{name: "garbage token is ignored", authHeader: "Bearer nope", wantBody: "anonymous"},
		{name: "valid token attaches principal", authHeader: "Bearer " + testToken(t, "test-secret", model.Student), wantBody: string(model.Student)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	router := testRouter(testLive("test-secret"), model.Lecturer, model.Tutor)

	tests := []struct {
		name       string
		role       model.UserRole
		wantStatus int
	}{
		{name: "student blocked", role: model.Student, wantStatus: http.StatusForbidden},
		{name: "tutor allowed", role: model.Tutor, wantStatus: http.StatusOK},
		{name: "lecturer allowed", role: model.Lecturer, wantStatus: http.StatusOK},
		{name: "admin bypasses", role: model.Admin, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Authorization", "Bearer "+testToken(t, "test-secret", tt.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRoleMiddlewareLecturerOnly(t *testing.T) {
	router := testRouter(testLive("test-secret"), model.Lecturer)

	tests := []struct {
		name       string
		role       model.UserRole
		wantStatus int
	}{
		{name: "student blocked", role: model.Student, wantStatus: http.StatusForbidden},
		{name: "tutor blocked", role: model.Tutor, wantStatus: http.StatusForbidden},
		{name: "lecturer allowed", role: model.Lecturer, wantStatus: http.StatusOK},
		{name: "admin bypasses", role: model.Admin, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Authorization", "Bearer "+testToken(t, "test-secret", tt.role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
