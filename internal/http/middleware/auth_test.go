package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func authTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", handlers...)
	return r
}

func TestRequireAuth_AcceptsValidTokenAndExposesContext(t *testing.T) {
	var got domain.RequestContext
	r := authTestRouter(RequireAuth(testSecret), func(c *gin.Context) {
		got = GetRequestContext(c)
		c.Status(http.StatusOK)
	})

	token := signedToken(t, jwt.MapClaims{
		"user_id": 3,
		"email":   "rahim@example.com",
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if got.UserID != 3 || got.Email != "rahim@example.com" || got.Role != domain.RoleUser {
		t.Fatalf("context not populated: %+v", got)
	}
}

func TestRequireAuth_RejectsBadTokens(t *testing.T) {
	r := authTestRouter(RequireAuth(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	expired := signedToken(t, jwt.MapClaims{
		"user_id": 3, "email": "rahim@example.com", "role": "user",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}, testSecret)
	wrongKey := signedToken(t, jwt.MapClaims{
		"user_id": 3, "email": "rahim@example.com", "role": "user",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, []byte("other-secret"))
	badRole := signedToken(t, jwt.MapClaims{
		"user_id": 3, "email": "rahim@example.com", "role": "superadmin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	cases := map[string]string{
		"no header":     "",
		"not bearer":    "Basic abc",
		"expired":       "Bearer " + expired,
		"wrong secret":  "Bearer " + wrongKey,
		"unknown role":  "Bearer " + badRole,
		"garbage token": "Bearer not.a.jwt",
	}
	for name, header := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, w.Code)
		}
	}
}

func TestRequireRoles_EnforcesAllowedSet(t *testing.T) {
	r := authTestRouter(RequireAuth(testSecret), RequireRoles(domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	userToken := signedToken(t, jwt.MapClaims{
		"user_id": 3, "email": "rahim@example.com", "role": "user",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)
	adminToken := signedToken(t, jwt.MapClaims{
		"user_id": 1, "email": "admin@example.com", "role": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("user hitting admin route: expected 403, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin hitting admin route: expected 200, got %d", w.Code)
	}
}
