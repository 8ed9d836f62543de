package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authsvc "stayhub/internal/app/auth"
	"stayhub/internal/domain/authz"
	domainauth "stayhub/internal/domain/auth"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra/security"
	"stayhub/internal/infra/storage/memory"
)

var adminActor = authz.Actor{ID: "admin-1", Roles: []user.Role{user.RoleAdmin}}

func newService() *authsvc.Service {
	return &authsvc.Service{
		Users:      memory.NewUserRepository(),
		Sessions:   memory.NewSessionStore(),
		Passwords:  security.NewBcryptHasher(4),
		Tokens:     security.NewRandomTokenGenerator(16),
		SessionTTL: time.Hour,
	}
}

func register(t *testing.T, svc *authsvc.Service) *authsvc.AuthResult {
	t.Helper()
	result, err := svc.Register(context.Background(), authsvc.RegisterParams{
		Email:    "sam@example.com",
		Name:     "Sam",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return result
}

func TestRegisterIssuesSession(t *testing.T) {
	svc := newService()
	result := register(t, svc)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "sam@example.com", result.User.Email)
	assert.True(t, result.User.HasRole(user.RoleGuest))
	assert.False(t, result.User.HasRole(user.RoleHost))

	resolved, err := svc.ResolveToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, resolved.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService()
	register(t, svc)

	_, err := svc.Register(context.Background(), authsvc.RegisterParams{
		Email:    "SAM@example.com",
		Name:     "Other",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyUsed, "emails are case-insensitive")

	_, err = svc.Register(context.Background(), authsvc.RegisterParams{
		Email:    "new@example.com",
		Name:     "New",
		Password: "short",
	})
	assert.ErrorIs(t, err, authsvc.ErrPasswordTooShort)
}

func TestLogin(t *testing.T) {
	svc := newService()
	register(t, svc)

	result, err := svc.Login(context.Background(), authsvc.LoginParams{
		Email:    "sam@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(context.Background(), authsvc.LoginParams{
		Email:    "sam@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), authsvc.LoginParams{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newService()
	result := register(t, svc)

	require.NoError(t, svc.Logout(context.Background(), result.Token))
	_, err := svc.ResolveToken(context.Background(), result.Token)
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestBanCutsAccessImmediately(t *testing.T) {
	svc := newService()
	result := register(t, svc)

	_, err := svc.SetBanned(context.Background(), result.User.ID, true, adminActor)
	require.NoError(t, err)

	_, err = svc.ResolveToken(context.Background(), result.Token)
	assert.Error(t, err, "banned user's sessions stop resolving")

	_, err = svc.Login(context.Background(), authsvc.LoginParams{
		Email:    "sam@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, authsvc.ErrUserBanned)

	// unban restores login
	_, err = svc.SetBanned(context.Background(), result.User.ID, false, adminActor)
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), authsvc.LoginParams{
		Email:    "sam@example.com",
		Password: "correct-horse",
	})
	assert.NoError(t, err)
}

func TestSetBannedIsAdminOnly(t *testing.T) {
	svc := newService()
	result := register(t, svc)

	_, err := svc.SetBanned(context.Background(), result.User.ID, true, authz.Actor{ID: "user-2", Roles: []user.Role{user.RoleGuest}})
	assert.ErrorIs(t, err, authz.ErrForbidden)
}
