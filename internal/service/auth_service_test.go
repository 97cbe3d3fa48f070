package service

import (
	"context"
	"testing"

	"prodtrack/internal/apperr"
	"prodtrack/internal/config"
	"prodtrack/internal/dto"
	"prodtrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func seedLoginUser(t *testing.T, users *stubUserRepo, username, password, role string) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := users.add(username, role)
	for i := range users.users {
		if users.users[i].ID == u.ID {
			users.users[i].PasswordHash = string(hash)
			users.users[i].FirstName = "John"
			users.users[i].LastName = "Doe"
		}
	}
	return u
}

func TestLoginSuccess(t *testing.T) {
	users := newStubUserRepo()
	seedLoginUser(t, users, "johndoe", "secret", model.RoleProductionManager)
	svc := NewAuthService(users, testAuthConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "johndoe", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "johndoe", resp.User.Username)
	assert.Equal(t, model.RoleProductionManager, resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newStubUserRepo()
	seedLoginUser(t, users, "johndoe", "secret", model.RoleProductionManager)
	svc := NewAuthService(users, testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "johndoe", Password: "wrong"})
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "secret"})
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

func TestRefreshRoundTrip(t *testing.T) {
	users := newStubUserRepo()
	seedLoginUser(t, users, "johndoe", "secret", model.RoleProductionManager)
	svc := NewAuthService(users, testAuthConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "johndoe", Password: "secret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "johndoe", refreshed.User.Username)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testAuthConfig())

	_, err := svc.Refresh(context.Background(), "not.a.token")
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

func TestRefreshRejectsWrongSecret(t *testing.T) {
	users := newStubUserRepo()
	seedLoginUser(t, users, "johndoe", "secret", model.RoleProductionManager)

	issuer := NewAuthService(users, &config.Config{JWTSecret: "other-secret", JWTExpirationHours: 1, JWTRefreshHours: 24})
	login, err := issuer.Login(context.Background(), dto.LoginRequest{Username: "johndoe", Password: "secret"})
	require.NoError(t, err)

	svc := NewAuthService(users, testAuthConfig())
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

func TestRefreshDeletedUser(t *testing.T) {
	users := newStubUserRepo()
	u := seedLoginUser(t, users, "johndoe", "secret", model.RoleProductionManager)
	svc := NewAuthService(users, testAuthConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "johndoe", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, users.Delete(context.Background(), u.ID))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}
