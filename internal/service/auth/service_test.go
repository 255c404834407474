package auth

import (
	"context"
	"testing"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/auth"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/user"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func newLoginFixture(t *testing.T) (auth.AuthService, *fakeUserRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	repo := &fakeUserRepo{users: map[string]user.User{
		"admin@example.com": {
			ID:           "user-1",
			Email:        "admin@example.com",
			PasswordHash: &hashStr,
			IsAdmin:      true,
		},
	}}
	svc := NewAuthService(repo, jwt.NewJWTService("test-secret-key", "15m"))
	return svc, repo
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newLoginFixture(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	svc, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_PasswordlessAccountRejected(t *testing.T) {
	svc, repo := newLoginFixture(t)
	repo.users["sso@example.com"] = user.User{ID: "user-2", Email: "sso@example.com"}

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "sso@example.com",
		Password: "anything",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_ValidationErrors(t *testing.T) {
	svc, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email", Password: ""})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}
