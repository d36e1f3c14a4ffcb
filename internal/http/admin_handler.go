package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ratemyrep/internal/service"
)

type AdminHandler struct {
	logger *zap.Logger
	admin  *service.AdminService
}

func NewAdminHandler(logger *zap.Logger, admin *service.AdminService) *AdminHandler {
	return &AdminHandler{logger: logger, admin: admin}
}

// Login maneja POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid admin login request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	token, err := h.admin.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrAdminDisabled):
		respondError(c, http.StatusServiceUnavailable, "admin login not configured")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	case err != nil:
		h.logger.Error("admin login failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not issue token")
		return
	}
	c.JSON(http.StatusOK, token)
}
