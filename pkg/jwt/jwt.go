package jwt

import (
	"errors"
	"time"

	"hospital-directory/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims is the session token payload. Role mirrors the identity provider's
// role claim at the time the token was issued and is empty when the account has none.
type Claims struct {
	UserID     uuid.UUID `json:"user_id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role,omitempty"`
	TokenType  TokenType `json:"token_type"`
	TokenID    string    `json:"token_id"`
	jwt.RegisteredClaims
}

// Subject identifies the account a token is issued for.
type Subject struct {
	UserID     uuid.UUID
	ExternalID string
	Email      string
	Role       string
}

type JWTService struct {
	config config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

func (s *JWTService) GenerateAccessToken(sub Subject) (string, string, error) {
	return s.generate(sub, AccessToken, s.config.AccessExpiry)
}

// GenerateRefreshToken issues a refresh token. Refresh tokens never carry the
// role; it is re-read from the directory on every refresh.
func (s *JWTService) GenerateRefreshToken(sub Subject) (string, string, error) {
	sub.Role = ""
	return s.generate(sub, RefreshToken, s.config.RefreshExpiry)
}

func (s *JWTService) generate(sub Subject, tokenType TokenType, expiry time.Duration) (string, string, error) {
	tokenID := uuid.New().String()
	now := time.Now()
	claims := Claims{
		UserID:     sub.UserID,
		ExternalID: sub.ExternalID,
		Email:      sub.Email,
		Role:       sub.Role,
		TokenType:  tokenType,
		TokenID:    tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.ExternalID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", err
	}

	return signedToken, tokenID, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (s *JWTService) GetAccessExpiry() time.Duration {
	return s.config.AccessExpiry
}

func (s *JWTService) GetRefreshExpiry() time.Duration {
	return s.config.RefreshExpiry
}
