package usecase

import (
	"context"
	"errors"
	"strings"

	"hospital-directory/internal/converter"
	"hospital-directory/internal/delivery/dto"
	"hospital-directory/internal/domain/entity"
	"hospital-directory/internal/domain/repository"
	"hospital-directory/internal/service"
	"hospital-directory/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrExternalIDAlreadyExists = errors.New("external id already exists")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrTokenRevoked            = errors.New("token has been revoked")
	ErrUserNotFound            = errors.New("user not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	roles        repository.RoleReader
	jwtService   *jwt.JWTService
	tokens       service.TokenStore
	auditService service.AuditService
	admins       *AdminBootstrap
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roles repository.RoleReader,
	jwtService *jwt.JWTService,
	tokens service.TokenStore,
	auditService service.AuditService,
	admins *AdminBootstrap,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		userRepo:     userRepo,
		roles:        roles,
		jwtService:   jwtService,
		tokens:       tokens,
		auditService: auditService,
		admins:       admins,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	externalID := strings.TrimSpace(req.ExternalID)
	if externalID == "" {
		externalID = uuid.NewString()
	}

	// New accounts start without a role
	user := &entity.User{
		ExternalID:  externalID,
		Name:        req.Name,
		Email:       strings.ToLower(req.Email),
		Password:    string(hashedPassword),
		PhoneNumber: req.PhoneNumber,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "external_id") {
			return nil, ErrExternalIDAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	granted, err := u.admins.GrantIfListed(ctx, user.ExternalID)
	if err != nil {
		// the account exists; an admin can still assign the role later
		u.log.WithField("external_id", user.ExternalID).Warnf("Failed to grant bootstrap admin on register: %+v", err)
	}
	if granted {
		role := entity.RoleHospitalAdmin
		user.Role = &role
	}

	resp := converter.UserToResponse(user)
	// registration stands even when the audit row cannot be written
	if err := u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserRegister, "user", user.ExternalID, resp); err != nil {
		u.log.WithField("external_id", user.ExternalID).Warnf("User registered without audit record: %+v", err)
	}

	return resp, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	if err := u.tokens.Revoke(ctx, userID, jwt.AccessToken, accessTokenID); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	if refreshTokenID != "" {
		if err := u.tokens.Revoke(ctx, userID, jwt.RefreshToken, refreshTokenID); err != nil {
			u.log.Warnf("Failed to revoke refresh token: %+v", err)
			return err
		}
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	exists, err := u.tokens.Exists(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	// Delete old refresh token
	if err := u.tokens.Revoke(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	role, err := u.currentRole(ctx, user)
	if err != nil {
		return nil, err
	}
	user.Role = role

	return converter.UserToResponse(user), nil
}

// currentRole reads the role claim from the directory. An account the
// directory does not know holds no role.
func (u *authUsecase) currentRole(ctx context.Context, user *entity.User) (*string, error) {
	role, err := u.roles.GetRole(ctx, user.ExternalID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			u.log.WithField("external_id", user.ExternalID).Warn("Account missing from role directory")
			return nil, nil
		}
		u.log.Warnf("Failed to read role claim: %+v", err)
		return nil, err
	}
	return role, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	role, err := u.currentRole(ctx, user)
	if err != nil {
		return nil, err
	}

	sub := jwt.Subject{
		UserID:     user.ID,
		ExternalID: user.ExternalID,
		Email:      user.Email,
	}
	if role != nil {
		sub.Role = *role
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(sub)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(sub)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokens.Store(ctx, user.ID, jwt.AccessToken, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	if err := u.tokens.Store(ctx, user.ID, jwt.RefreshToken, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
