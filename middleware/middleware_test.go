package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/callsoso/callsoso/config"
	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeValidator map[string]*dto.TokenClaims

func (f fakeValidator) ValidateToken(token string) (*dto.TokenClaims, error) {
	if claims, ok := f[token]; ok {
		return claims, nil
	}
	return nil, errors.New("bad token")
}

type fakeUsers map[uint]models.User

func (f fakeUsers) FindByID(id uint) (models.User, error) {
	if user, ok := f[id]; ok {
		return user, nil
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id, "staff": IsStaff(c)})
	})
	r.Any("/", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	validator := fakeValidator{
		"user-token":    {UserID: 7, Role: "user"},
		"deleted-token": {UserID: 99, Role: "user"},
	}
	users := fakeUsers{7: {ID: 7, Username: "maker", Role: models.RoleUser}}

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"no credentials", func(r *http.Request) {}, http.StatusUnauthorized},
		{"bearer token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer user-token") }, http.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: "user-token"}) }, http.StatusOK},
		{"invalid token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"deleted user", func(r *http.Request) { r.Header.Set("Authorization", "Bearer deleted-token") }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(AuthMiddleware(validator, users))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	validator := fakeValidator{
		"user-token":    {UserID: 7, Role: "user"},
		"admin-token":   {UserID: 1, Role: "admin"},
		"demoted-token": {UserID: 2, Role: "admin"},
	}
	users := fakeUsers{
		1: {ID: 1, Username: "staff", Role: models.RoleAdmin},
		2: {ID: 2, Username: "former-staff", Role: models.RoleUser},
		7: {ID: 7, Username: "maker", Role: models.RoleUser},
	}
	r := newEngine(AuthMiddleware(validator, users), AdminMiddleware())

	for token, want := range map[string]int{
		"user-token":    http.StatusForbidden,
		"admin-token":   http.StatusOK,
		"demoted-token": http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, token)
	}
}

func TestRequestIDAndLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := newEngine(RequestID(), RequestLogger(logger))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "3f2b8c1e-0a4d-4c55-9a7e-2b1f3c4d5e6f")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "3f2b8c1e-0a4d-4c55-9a7e-2b1f3c4d5e6f", w.Header().Get(RequestIDHeader))
}

func TestTrustedOrigins(t *testing.T) {
	r := newEngine(TrustedOrigins([]string{"https://callsoso.org"}))

	tests := []struct {
		name   string
		method string
		origin string
		cookie bool
		bearer bool
		status int
	}{
		{"safe method", http.MethodGet, "https://evil.example", true, false, http.StatusOK},
		{"no session cookie", http.MethodPost, "https://evil.example", false, false, http.StatusOK},
		{"bearer auth", http.MethodPost, "https://evil.example", true, true, http.StatusOK},
		{"trusted origin", http.MethodPost, "https://callsoso.org", true, false, http.StatusOK},
		{"same host", http.MethodPost, "http://example.com", true, false, http.StatusOK},
		{"untrusted origin", http.MethodPost, "https://evil.example", true, false, http.StatusForbidden},
		{"missing origin", http.MethodPost, "", true, false, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.cookie {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: "x"})
			}
			if tt.bearer {
				req.Header.Set("Authorization", "Bearer x")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSecurity(t *testing.T) {
	cfg := config.Default()
	cfg.Debug = false
	cfg.AllowedHosts = []string{"callsoso.org"}
	cfg.Security.SSLRedirect = false
	cfg.Security.FrameOptions = "deny"

	r := newEngine(Security(cfg))

	req := httptest.NewRequest(http.MethodGet, "http://callsoso.org/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	req = httptest.NewRequest(http.MethodGet, "http://evil.example/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSecurity_DebugIsNoop(t *testing.T) {
	cfg := config.Default()
	cfg.Debug = true
	r := newEngine(Security(cfg))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://anything/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Frame-Options"))
}
