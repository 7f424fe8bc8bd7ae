package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AndrianinaH/cyberzone-finance/internal/models"
	"github.com/AndrianinaH/cyberzone-finance/internal/util"
)

const testJWTSecret = "test-secret"

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB, *models.User, *AuthHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.Session{}))

	user := &models.User{Name: "Hery", Email: "hery@example.mg", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	authHandler := NewAuthHandler(db, testJWTSecret, 24, 12)

	r := gin.New()
	api := r.Group("/api", fakeAuth(user))
	api.POST("/auth/logout", authHandler.Logout)

	return r, db, user, authHandler
}

func createSessionToken(t *testing.T, db *gorm.DB, user *models.User) (string, string) {
	t.Helper()
	session := models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&session).Error)

	token, err := util.GenerateToken(testJWTSecret, user.ID, session.ID, time.Hour)
	require.NoError(t, err)
	return token, session.ID
}

func sessionRevoked(t *testing.T, db *gorm.DB, sessionID string) bool {
	t.Helper()
	var session models.Session
	require.NoError(t, db.First(&session, "id = ?", sessionID).Error)
	return session.Revoked
}

func TestLogout_RevokesSessionFromHeader(t *testing.T) {
	r, db, user, _ := setupAuthRouter(t)
	token, sessionID := createSessionToken(t, db, user)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, sessionRevoked(t, db, sessionID))
}

func TestLogout_RevokesSessionFromCookie(t *testing.T) {
	r, db, user, _ := setupAuthRouter(t)
	token, sessionID := createSessionToken(t, db, user)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "czf_token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, sessionRevoked(t, db, sessionID))
}
