package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJwt() *services.JwtWrapper {
	return &services.JwtWrapper{SecretKey: "middleware-test-secret", Issuer: "test", TTL: time.Hour}
}

func tokenFor(t *testing.T, id uint, role entity.Role) string {
	t.Helper()
	u := &entity.User{Role: role}
	u.ID = id
	signed, err := newJwt().GenerateToken(u)
	require.NoError(t, err)
	return signed
}

// gatedRouter mounts a probe endpoint behind Authorizes + RequireRole(min).
func gatedRouter(min entity.Role) *gin.Engine {
	r := gin.New()
	r.GET("/probe", Authorizes(newJwt()), RequireRole(min), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CallerID(c), "role": CallerRole(c)})
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthorizesRejectsMissingToken(t *testing.T) {
	w := get(gatedRouter(entity.RoleUser), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token provided")
}

func TestAuthorizesRejectsInvalidToken(t *testing.T) {
	w := get(gatedRouter(entity.RoleUser), "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthorizesRejectsExpiredToken(t *testing.T) {
	expired := &services.JwtWrapper{SecretKey: "middleware-test-secret", Issuer: "test", TTL: -time.Minute}
	u := &entity.User{Role: entity.RoleUser}
	u.ID = 1
	signed, err := expired.GenerateToken(u)
	require.NoError(t, err)

	w := get(gatedRouter(entity.RoleUser), signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Every pair (caller, gate) in the rank order: callers below the gate get
// 403, callers at or above pass.
func TestRequireRoleMatrix(t *testing.T) {
	roles := []entity.Role{entity.RoleUser, entity.RoleAdmin, entity.RoleSuperAdmin}

	for _, min := range roles {
		for _, caller := range roles {
			r := gatedRouter(min)
			w := get(r, tokenFor(t, 7, caller))
			if caller.Rank() >= min.Rank() {
				assert.Equal(t, http.StatusOK, w.Code, "caller %s should pass gate %s", caller, min)
			} else {
				assert.Equal(t, http.StatusForbidden, w.Code, "caller %s should fail gate %s", caller, min)
			}
		}
	}
}

func TestRoleRanksAreExhaustive(t *testing.T) {
	assert.Equal(t, 1, entity.RoleUser.Rank())
	assert.Equal(t, 2, entity.RoleAdmin.Rank())
	assert.Equal(t, 3, entity.RoleSuperAdmin.Rank())
	assert.Equal(t, 0, entity.Role("owner").Rank())
	assert.False(t, entity.Role("owner").Valid())
}

func TestOwnerOrRole(t *testing.T) {
	const owner = uint(9)
	r := gin.New()
	r.GET("/res", Authorizes(newJwt()), func(c *gin.Context) {
		if !OwnerOrRole(c, owner, entity.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Status(http.StatusOK)
	})

	do := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/res", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do(tokenFor(t, 9, entity.RoleUser)), "owner passes")
	assert.Equal(t, http.StatusOK, do(tokenFor(t, 3, entity.RoleAdmin)), "admin passes")
	assert.Equal(t, http.StatusOK, do(tokenFor(t, 3, entity.RoleSuperAdmin)), "super_admin passes")
	assert.Equal(t, http.StatusForbidden, do(tokenFor(t, 3, entity.RoleUser)), "stranger fails")
}

func TestSurfaceTag(t *testing.T) {
	r := gin.New()
	v1 := r.Group("/api", TagSurface(SurfaceDefault))
	v2 := r.Group("/api/v2", TagSurface(SurfaceV2))
	handler := func(c *gin.Context) { c.String(http.StatusOK, Surface(c)) }
	v1.GET("/who", handler)
	v2.GET("/who", handler)

	for path, want := range map[string]string{"/api/who": SurfaceDefault, "/api/v2/who": SurfaceV2} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Body.String())
	}
}
