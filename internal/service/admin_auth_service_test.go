package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"spacecityrentals/internal/repository/memory"
)

func TestAdminLogin(t *testing.T) {
	store := memory.NewStore()
	svc := NewAdminAuthService(store.Admins(), "test-secret")

	assert.NoError(t, svc.CreateAdmin("admin@spacecityrentals.com", "hunter22"))

	token, err := svc.Login("admin@spacecityrentals.com", "hunter22")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin@spacecityrentals.com", claims["email"])
}

func TestAdminLoginEmailCaseInsensitive(t *testing.T) {
	store := memory.NewStore()
	svc := NewAdminAuthService(store.Admins(), "test-secret")

	assert.NoError(t, svc.CreateAdmin("admin@spacecityrentals.com", "hunter22"))

	_, err := svc.Login("Admin@SpaceCityRentals.com", "hunter22")
	assert.NoError(t, err)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	store := memory.NewStore()
	svc := NewAdminAuthService(store.Admins(), "test-secret")

	assert.NoError(t, svc.CreateAdmin("admin@spacecityrentals.com", "hunter22"))

	_, err := svc.Login("admin@spacecityrentals.com", "wrong")
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.Login("nobody@spacecityrentals.com", "hunter22")
	assert.EqualError(t, err, "invalid credentials")
}

func TestCreateAdminRequiresEmailAndPassword(t *testing.T) {
	store := memory.NewStore()
	svc := NewAdminAuthService(store.Admins(), "test-secret")

	assert.Error(t, svc.CreateAdmin("", "hunter22"))
	assert.Error(t, svc.CreateAdmin("admin@spacecityrentals.com", ""))
}
