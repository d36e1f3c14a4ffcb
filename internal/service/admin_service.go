package service

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminService valida la credencial unica de administracion definida por entorno.
type AdminService struct {
	logger       *zap.Logger
	email        string
	passwordHash []byte
	tokens       *AdminTokenService
}

func NewAdminService(logger *zap.Logger, email, passwordHash string, tokens *AdminTokenService) *AdminService {
	return &AdminService{
		logger:       logger,
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
	}
}

func (s *AdminService) Enabled() bool {
	return s != nil && s.email != "" && len(s.passwordHash) > 0 && s.tokens != nil
}

// Login valida la contraseña con bcrypt y emite un access token.
func (s *AdminService) Login(email, password string) (AdminToken, error) {
	if !s.Enabled() {
		return AdminToken{}, ErrAdminDisabled
	}
	if strings.ToLower(strings.TrimSpace(email)) != s.email || password == "" {
		return AdminToken{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.logger.Warn("admin login rejected", zap.String("email", s.email))
		return AdminToken{}, ErrInvalidCredentials
	}
	return s.tokens.Issue(s.email)
}
