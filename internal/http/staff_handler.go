package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ratemyrep/internal/service"
)

type StaffHandler struct {
	logger *zap.Logger
	staff  *service.StaffService
}

func NewStaffHandler(logger *zap.Logger, staff *service.StaffService) *StaffHandler {
	return &StaffHandler{logger: logger, staff: staff}
}

// List maneja GET /api/staff.
func (h *StaffHandler) List(c *gin.Context) {
	q := service.StaffQuery{
		OfficialID: c.Query("officialId"),
		BioguideID: c.Query("bioguideId"),
		Office:     c.Query("office"),
		Limit:      queryInt(c, "limit"),
	}
	res := h.staff.List(c.Request.Context(), q)
	if res.Fallback {
		c.JSON(http.StatusOK, gin.H{
			"success":  false,
			"error":    "Failed to fetch staff data",
			"staff":    res.Staff,
			"grouped":  res.Grouped,
			"count":    res.Count,
			"fallback": true,
		})
		return
	}

	cacheFor(c, 1800)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"staff":   res.Staff,
		"grouped": res.Grouped,
		"count":   res.Count,
		"filters": gin.H{
			"officialId": nullable(q.OfficialID),
			"bioguideId": nullable(q.BioguideID),
			"office":     nullable(q.Office),
		},
	})
}

type createStaffRequest struct {
	StaffID        string `json:"staffId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	FullName       string `json:"fullName"`
	JobTitle       string `json:"jobTitle"`
	Phone          string `json:"phone"`
	Email          string `json:"email" binding:"omitempty,email"`
	OfficeLocation string `json:"officeLocation"`
	// PolicyAreas acepta una lista separada por comas.
	PolicyAreas  string `json:"policyAreas"`
	OfficialLink string `json:"officialLink"`
	BioguideID   string `json:"bioguideId"`
}

// Create maneja POST /api/staff (admin).
func (h *StaffHandler) Create(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create staff request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	member, err := h.staff.Create(c.Request.Context(), service.CreateStaffInput{
		StaffID:        req.StaffID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		FullName:       req.FullName,
		JobTitle:       req.JobTitle,
		Phone:          req.Phone,
		Email:          req.Email,
		OfficeLocation: req.OfficeLocation,
		PolicyAreas:    []string{req.PolicyAreas},
		OfficialLink:   req.OfficialLink,
		BioguideID:     req.BioguideID,
	})
	if msg, ok := validationMessage(err); ok {
		respondError(c, http.StatusBadRequest, msg)
		return
	}
	if err != nil {
		h.logger.Error("create staff failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to create staff member")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "staff": member})
}

func nullable(s string) any {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return s
}
