package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ratemyrep/internal/domain"
	"ratemyrep/internal/location"
	"ratemyrep/internal/service"
)

// LocationHandler maneja la resolucion de ubicacion y la ubicacion guardada por sesion.
type LocationHandler struct {
	logger    *zap.Logger
	locations *service.LocationService
}

func NewLocationHandler(logger *zap.Logger, locations *service.LocationService) *LocationHandler {
	return &LocationHandler{logger: logger, locations: locations}
}

// Get maneja GET /api/location.
func (h *LocationHandler) Get(c *gin.Context) {
	coords, err := coordinatesFromQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	loc := h.locations.Resolve(location.Query{
		Coordinates: coords,
		ZIP:         c.Query("zip"),
		StateCode:   c.Query("state"),
		Headers:     location.HeadersFromRequest(c.Request),
	})

	if loc.Source == location.SourceProvided {
		cacheFor(c, 3600)
	} else {
		cacheFor(c, 1800)
	}
	c.JSON(http.StatusOK, locationBody(loc))
}

func locationBody(loc domain.Location) gin.H {
	body := gin.H{
		"success":   true,
		"lat":       loc.Lat,
		"lng":       loc.Lng,
		"city":      loc.City,
		"state":     loc.State,
		"stateCode": loc.StateCode,
		"country":   loc.Country,
		"source":    loc.Source,
	}
	if loc.Timezone != "" {
		body["timezone"] = loc.Timezone
	}
	return body
}

// GetSaved maneja GET /api/session/location.
func (h *LocationHandler) GetSaved(c *gin.Context) {
	id := sessionID(c)
	saved, err := h.locations.Load(id)
	if errors.Is(err, service.ErrSessionNotFound) {
		respondError(c, http.StatusNotFound, "no saved location")
		return
	}
	if err != nil {
		h.logger.Error("load saved location failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not load saved location")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessionId": id, "zip": saved.ZIP, "location": saved.Location})
}

// PutSaved maneja PUT /api/session/location. Sin sesion previa crea una nueva.
func (h *LocationHandler) PutSaved(c *gin.Context) {
	var req struct {
		ZIP      string           `json:"zip"`
		Location *domain.Location `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save location request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	id, saved, err := h.locations.Save(sessionID(c), service.SaveLocationInput{ZIP: req.ZIP, Location: req.Location})
	if msg, ok := validationMessage(err); ok {
		respondError(c, http.StatusBadRequest, msg)
		return
	}
	if err != nil {
		h.logger.Error("save location failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not save location")
		return
	}
	c.Header(sessionHeader, id)
	c.JSON(http.StatusOK, gin.H{"success": true, "sessionId": id, "zip": saved.ZIP, "location": saved.Location})
}

// DeleteSaved maneja DELETE /api/session/location ("cambiar ubicacion").
func (h *LocationHandler) DeleteSaved(c *gin.Context) {
	err := h.locations.Clear(sessionID(c))
	if errors.Is(err, service.ErrSessionNotFound) {
		respondError(c, http.StatusNotFound, "no session")
		return
	}
	if err != nil {
		h.logger.Error("clear location failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not clear location")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
