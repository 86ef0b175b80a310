package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/models"
	"jobforge_backend/internal/repositories"
)

type stubUserRepo struct {
	repositories.UserRepository
	user *models.User
}

func (r *stubUserRepo) FindByID(id string) (*models.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, repositories.ErrUserNotFound
	}
	return r.user, nil
}

func gateEngine(codec *auth.TokenCodec, users repositories.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(AuthGate(codec, users, func(method, routePath string) bool { return false }))
	engine.GET("/guarded", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func TestAuthGateAcceptsValidToken(t *testing.T) {
	codec := auth.NewTokenCodec("secret-key", 15*time.Minute)
	user := &models.User{Email: "jane@example.com", Role: models.RoleCandidate}
	user.ID = "user-1"
	engine := gateEngine(codec, &stubUserRepo{user: user})

	token, err := codec.Issue(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthGateRejectsUnknownRoleClaim(t *testing.T) {
	codec := auth.NewTokenCodec("secret-key", 15*time.Minute)
	user := &models.User{Email: "jane@example.com", Role: models.RoleCandidate}
	user.ID = "user-1"
	engine := gateEngine(codec, &stubUserRepo{user: user})

	token, err := codec.Issue(user.ID, user.Email, "SUPERUSER")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_USER_ROLE")
}

func TestAuthGateRequiresToken(t *testing.T) {
	codec := auth.NewTokenCodec("secret-key", 15*time.Minute)
	engine := gateEngine(codec, &stubUserRepo{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTHENTICATION_REQUIRED")
}
