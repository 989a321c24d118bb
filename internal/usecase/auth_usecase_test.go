package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-directory/config"
	"hospital-directory/internal/delivery/dto"
	"hospital-directory/internal/domain/entity"
	"hospital-directory/pkg/jwt"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	uc        AuthUsecase
	users     *fakeUserRepo
	directory *fakeDirectory
	tokens    *memTokenStore
	audit     *fakeAuditService
	jwt       *jwt.JWTService
}

func newAuthFixture() *authFixture {
	log, _ := logtest.NewNullLogger()
	f := &authFixture{
		users:     &fakeUserRepo{},
		directory: newFakeDirectory(),
		tokens:    newMemTokenStore(),
		audit:     &fakeAuditService{},
		jwt: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: time.Hour,
		}),
	}
	f.uc = NewAuthUsecase(log, f.users, f.directory, f.jwt, f.tokens, f.audit, nil)
	return f
}

func (f *authFixture) register(t *testing.T, email string) *dto.UserResponse {
	t.Helper()
	user, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
		Name:        "Test User",
		Email:       email,
		Password:    "secret123",
		PhoneNumber: "5550100",
	})
	require.NoError(t, err)
	f.directory.add(user.ExternalID, nil)
	return user
}

func TestRegister_CreatesUserWithoutRole(t *testing.T) {
	f := newAuthFixture()

	user, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
		Name:        "Asha",
		Email:       "Asha@Example.com",
		Password:    "secret123",
		PhoneNumber: "5550100",
	})

	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Nil(t, user.Role)
	_, err = uuid.Parse(user.ExternalID)
	assert.NoError(t, err, "generated external id")
	assert.NotEqual(t, "secret123", f.users.users[0].Password)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, entity.AuditActionUserRegister, f.audit.entries[0].action)
}

func TestRegister_KeepsProvidedExternalID(t *testing.T) {
	f := newAuthFixture()

	user, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
		ExternalID: "firebase-uid-1", Name: "Ben", Email: "ben@example.com", Password: "secret123", PhoneNumber: "5550101",
	})

	require.NoError(t, err)
	assert.Equal(t, "firebase-uid-1", user.ExternalID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "dup@example.com")

	_, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Other", Email: "DUP@example.com", Password: "secret123", PhoneNumber: "5550102",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_DuplicateExternalID(t *testing.T) {
	f := newAuthFixture()
	req := &dto.RegisterRequest{ExternalID: "uid-1", Name: "A", Email: "a@example.com", Password: "secret123", PhoneNumber: "5550103"}
	_, err := f.uc.Register(context.Background(), req)
	require.NoError(t, err)

	req.Email = "b@example.com"
	_, err = f.uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrExternalIDAlreadyExists)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "user@example.com")

	_, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.uc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmbedsRoleClaim(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "admin@example.com")
	f.directory.add(user.ExternalID, strPtr(entity.RoleHospitalAdmin))

	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, int64(900), tokens.ExpiresIn)

	claims, err := f.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleHospitalAdmin, claims.Role)
	assert.Equal(t, user.ExternalID, claims.ExternalID)

	ok, err := f.tokens.Exists(context.Background(), claims.UserID, jwt.AccessToken, claims.TokenID)
	require.NoError(t, err)
	assert.True(t, ok)

	refresh, err := f.jwt.ValidateToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Empty(t, refresh.Role)
}

func TestLogin_AccountUnknownToDirectoryHasNoRole(t *testing.T) {
	f := newAuthFixture()
	_, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Ghost", Email: "ghost@example.com", Password: "secret123", PhoneNumber: "5550104",
	})
	require.NoError(t, err)

	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	require.NoError(t, err)

	claims, err := f.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Empty(t, claims.Role)
}

func TestLogin_DirectoryFailure(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "user@example.com")
	f.directory.getErr = errors.New("directory down")

	_, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "user@example.com", Password: "secret123"})
	assert.EqualError(t, err, "directory down")
}

func TestRefreshToken_RotatesAndPicksUpRoleChanges(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "member@example.com")

	first, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "member@example.com", Password: "secret123"})
	require.NoError(t, err)

	f.directory.add(user.ExternalID, strPtr(entity.RoleMember))

	second, err := f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)

	claims, err := f.jwt.ValidateToken(second.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, claims.Role)

	// the old refresh token was consumed
	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshToken_RejectsAccessTokensAndGarbage(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "user@example.com")
	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "user@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesTokens(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "user@example.com")
	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "user@example.com", Password: "secret123"})
	require.NoError(t, err)

	access, err := f.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	refresh, err := f.jwt.ValidateToken(tokens.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(context.Background(), access.UserID, access.TokenID, refresh.TokenID))

	ok, _ := f.tokens.Exists(context.Background(), access.UserID, jwt.AccessToken, access.TokenID)
	assert.False(t, ok)
	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestGetCurrentUser(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "me@example.com")
	f.directory.add(user.ExternalID, strPtr(entity.RoleMember))

	got, err := f.uc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Role)
	assert.Equal(t, entity.RoleMember, *got.Role)

	_, err = f.uc.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRegister_GrantsBootstrapAdmin(t *testing.T) {
	f := newAuthFixture()
	log, _ := logtest.NewNullLogger()
	admins := NewAdminBootstrap(log, f.directory, f.audit, []string{"root-1"})
	f.uc = NewAuthUsecase(log, f.users, f.directory, f.jwt, f.tokens, f.audit, admins)
	f.directory.add("root-1", nil)
	f.directory.add("other-1", nil)

	root, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
		ExternalID: "root-1", Name: "Root", Email: "root@example.com", Password: "secret123", PhoneNumber: "5550199",
	})
	require.NoError(t, err)
	require.NotNil(t, root.Role)
	assert.Equal(t, entity.RoleHospitalAdmin, *root.Role)

	other, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
		ExternalID: "other-1", Name: "Other", Email: "other@example.com", Password: "secret123", PhoneNumber: "5550198",
	})
	require.NoError(t, err)
	assert.Nil(t, other.Role)

	tokens, err := f.uc.Login(context.Background(), &dto.LoginRequest{Email: "root@example.com", Password: "secret123"})
	require.NoError(t, err)
	claims, err := f.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleHospitalAdmin, claims.Role)
}

func TestRegister_AuditFailureIsLoggedNotReturned(t *testing.T) {
	f := newAuthFixture()
	log, hook := logtest.NewNullLogger()
	f.uc = NewAuthUsecase(log, f.users, f.directory, f.jwt, f.tokens, failingAuditService{}, nil)

	user, err := f.uc.Register(context.Background(), &dto.RegisterRequest{
		ExternalID: "uid-9", Name: "Asha", Email: "asha@example.com", Password: "secret123", PhoneNumber: "5550100",
	})

	require.NoError(t, err)
	assert.Equal(t, "uid-9", user.ExternalID)
	require.Len(t, f.users.users, 1)
	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "uid-9", last.Data["external_id"])
	assert.Contains(t, last.Message, "audit down")
}
