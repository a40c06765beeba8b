package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/policy"
	"github.com/plmining/licensing-backend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthenticator struct {
	sessions map[string]*utils.JWTClaims
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*utils.JWTClaims, error) {
	if claims, ok := f.sessions[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

func newAuthenticator() *fakeAuthenticator {
	return &fakeAuthenticator{sessions: map[string]*utils.JWTClaims{
		"admin":   {UserID: uuid.NewString(), Email: "admin@mining.gov", Role: string(policy.RoleSuperAdmin)},
		"officer": {UserID: uuid.NewString(), Email: "officer@mining.gov", Role: string(policy.RoleOfficer)},
		"bogus":   {UserID: uuid.NewString(), Role: "JANITOR"},
	}}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthRequired(t *testing.T) {
	r := gin.New()
	r.GET("/api/me", AuthRequired(newAuthenticator(), "session_token"), func(c *gin.Context) {
		role, _ := utils.GetRoleFromContext(c)
		claims, ok := GetClaims(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"role": role, "email": claims.Email})
	})

	tests := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{"missing token", "", "", http.StatusUnauthorized},
		{"malformed header", "Token admin", "", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", "", http.StatusUnauthorized},
		{"unknown role", "Bearer bogus", "", http.StatusUnauthorized},
		{"bearer token", "Bearer admin", "", http.StatusOK},
		{"session cookie", "", "officer", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session_token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				resp := decode(t, w)
				assert.False(t, resp.Success)
				require.NotNil(t, resp.Error)
				assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
			}
		})
	}
}

func TestRequireAction(t *testing.T) {
	auth := newAuthenticator()
	r := gin.New()
	r.GET("/api/users", AuthRequired(auth, ""), RequireAction(policy.ActionUserManage), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer officer")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{string(policy.RoleSuperAdmin)}, details["allowed_roles"])

	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer admin")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	r := gin.New()
	r.GET("/api/verify-license", OptionalAuth(newAuthenticator(), "session_token"), func(c *gin.Context) {
		userID, _ := utils.GetUserIDFromContext(c)
		c.String(http.StatusOK, userID)
	})

	tests := []struct {
		name     string
		header   string
		wantUser bool
	}{
		{"anonymous", "", false},
		{"invalid token", "Bearer nope", false},
		{"staff session", "Bearer officer", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/verify-license", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			if tt.wantUser {
				assert.NotEmpty(t, w.Body.String())
			} else {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestRouteGuard(t *testing.T) {
	r := gin.New()
	r.Use(RouteGuard(newAuthenticator(), "session_token"))
	r.NoRoute(func(c *gin.Context) { c.String(http.StatusOK, "page") })

	tests := []struct {
		name     string
		path     string
		cookie   string
		status   int
		location string
	}{
		{"no session redirects to login", "/users", "", http.StatusFound, "/login"},
		{"no session on dashboard", "/", "", http.StatusFound, "/login"},
		{"officer kept out of users", "/users", "officer", http.StatusFound, "/?error=unauthorized"},
		{"officer kept out of nested users", "/users/123/edit", "officer", http.StatusFound, "/?error=unauthorized"},
		{"super admin allowed", "/users", "admin", http.StatusOK, ""},
		{"officer may open licenses", "/licenses", "officer", http.StatusOK, ""},
		{"login is public", "/login", "", http.StatusOK, ""},
		{"reset link is public", "/reset-password/abc", "", http.StatusOK, ""},
		{"assets are public", "/_next/static/app.js", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session_token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
		})
	}
}

func TestResolveLanguage(t *testing.T) {
	assert.Equal(t, "en", resolveLanguage("", "en"))
	assert.Equal(t, "so", resolveLanguage("so-SO,so;q=0.9,en;q=0.8", "en"))
	assert.Equal(t, "en", resolveLanguage("fr-FR,en;q=0.5", "so"))
	assert.Equal(t, "so", resolveLanguage("de", "so"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)
	r := gin.New()
	r.GET("/ping", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	now := time.Now()
	rl := &RateLimiter{visitors: map[string]*visitor{}, rate: rate.Every(time.Second), burst: 1, idle: time.Minute, now: func() time.Time { return now }}

	rl.getVisitor("10.0.0.1")
	now = now.Add(2 * time.Minute)
	rl.getVisitor("10.0.0.2")
	rl.evictIdle()

	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

type recordingAuditor struct {
	mu      sync.Mutex
	entries []*models.AuditLog
	done    chan struct{}
}

func (r *recordingAuditor) Record(_ context.Context, entry *models.AuditLog) {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func TestAuditLogMiddleware(t *testing.T) {
	auditor := &recordingAuditor{done: make(chan struct{}, 1)}
	id := uuid.New()

	r := gin.New()
	r.Use(AuditLogMiddleware(auditor))
	r.GET("/api/licenses/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.PATCH("/api/licenses/:id/status", func(c *gin.Context) {
		var body map[string]interface{}
		require.NoError(t, c.ShouldBindJSON(&body))
		assert.Equal(t, "APPROVED", body["status"])
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/licenses/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPatch, "/api/licenses/"+id.String()+"/status", bytes.NewBufferString(`{"status":"APPROVED"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	select {
	case <-auditor.done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry was not recorded")
	}

	auditor.mu.Lock()
	defer auditor.mu.Unlock()
	require.Len(t, auditor.entries, 1)
	entry := auditor.entries[0]
	assert.Equal(t, "PATCH /api/licenses/:id/status", entry.Action)
	assert.Equal(t, "licenses", entry.ResourceType)
	assert.Equal(t, http.StatusOK, entry.StatusCode)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, id, *entry.ResourceID)
	assert.Equal(t, "APPROVED", entry.NewValues["status"])
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/licenses/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/licenses/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
