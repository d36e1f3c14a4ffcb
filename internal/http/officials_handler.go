package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ratemyrep/internal/domain"
	"ratemyrep/internal/service"
)

// OfficialsHandler es el unico handler de funcionarios.
type OfficialsHandler struct {
	logger    *zap.Logger
	officials *service.OfficialsService
}

func NewOfficialsHandler(logger *zap.Logger, officials *service.OfficialsService) *OfficialsHandler {
	return &OfficialsHandler{logger: logger, officials: officials}
}

// List maneja GET /api/officials. Las fallas del store responden 200 con datos de ejemplo.
func (h *OfficialsHandler) List(c *gin.Context) {
	coords, err := coordinatesFromQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.officials.List(c.Request.Context(), service.OfficialsQuery{
		BioguideID:  c.Query("bioguideId"),
		ZIP:         c.Query("zip"),
		State:       c.Query("state"),
		Coordinates: coords,
		Limit:       queryInt(c, "limit"),
	})
	if msg, ok := validationMessage(err); ok {
		respondError(c, http.StatusBadRequest, msg)
		return
	}
	if err != nil {
		h.logger.Error("list officials failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch officials data")
		return
	}

	if res.Fallback {
		c.JSON(http.StatusOK, gin.H{
			"success":         false,
			"error":           "Failed to fetch officials data",
			"representatives": res.Officials,
			"count":           res.Count,
			"fallback":        true,
		})
		return
	}

	cacheFor(c, 3600)
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"representatives": res.Officials,
		"count":           res.Count,
		"location":        res.Location,
	})
}

type createOfficialRequest struct {
	OfficialID  string             `json:"officialId"`
	BioguideID  string             `json:"bioguideId"`
	FirstName   string             `json:"firstName"`
	LastName    string             `json:"lastName"`
	FullName    string             `json:"fullName"`
	Party       string             `json:"party"`
	State       string             `json:"state" binding:"omitempty,len=2"`
	District    string             `json:"district"`
	Chamber     string             `json:"chamber"`
	OfficeLevel string             `json:"officeLevel"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email" binding:"omitempty,email"`
	Website     string             `json:"website" binding:"omitempty,url"`
	PhotoURL    string             `json:"photoUrl" binding:"omitempty,url"`
	KeyIssues   []string           `json:"keyIssues"`
	SocialMedia domain.SocialMedia `json:"socialMedia"`
}

// Create maneja POST /api/officials (admin).
func (h *OfficialsHandler) Create(c *gin.Context) {
	var req createOfficialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create official request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	official, err := h.officials.Create(c.Request.Context(), service.CreateOfficialInput{
		OfficialID:  req.OfficialID,
		BioguideID:  req.BioguideID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		FullName:    req.FullName,
		Party:       req.Party,
		State:       req.State,
		District:    req.District,
		Chamber:     req.Chamber,
		OfficeLevel: req.OfficeLevel,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		PhotoURL:    req.PhotoURL,
		KeyIssues:   req.KeyIssues,
		SocialMedia: req.SocialMedia,
	})
	if msg, ok := validationMessage(err); ok {
		respondError(c, http.StatusBadRequest, msg)
		return
	}
	if err != nil {
		h.logger.Error("create official failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to create official")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "official": official})
}
