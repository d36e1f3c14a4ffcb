package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	adminRole       = "admin"
	accessTokenType = "access"
)

// AdminTokenService emite y valida los access tokens de administracion.
type AdminTokenService struct {
	secret    []byte
	accessTTL time.Duration
	issuer    string
}

type AdminToken struct {
	AccessToken string `json:"token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AdminClaims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

func NewAdminTokenService(secret string, accessTTL time.Duration) *AdminTokenService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &AdminTokenService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		issuer:    "ratemyrep",
	}
}

func (s *AdminTokenService) Issue(email string) (AdminToken, error) {
	if len(s.secret) == 0 {
		return AdminToken{}, ErrJWTInvalid
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return AdminToken{}, ErrJWTInvalid
	}
	now := time.Now().UTC()
	claims := AdminClaims{
		Email:     email,
		Role:      adminRole,
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *AdminTokenService) ParseAccessToken(accessToken string) (AdminClaims, error) {
	if len(s.secret) == 0 {
		return AdminClaims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(accessToken) == "" {
		return AdminClaims{}, ErrJWTInvalid
	}
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return AdminClaims{}, err
	}
	if !s.isValidClaims(claims) {
		return AdminClaims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (s *AdminTokenService) parseToken(tokenString string) (AdminClaims, error) {
	var claims AdminClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AdminClaims{}, ErrJWTExpired
		}
		return AdminClaims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (s *AdminTokenService) isValidClaims(claims AdminClaims) bool {
	if claims.TokenType != accessTokenType || claims.Role != adminRole {
		return false
	}
	if strings.TrimSpace(claims.Email) == "" || claims.Subject != claims.Email {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
