package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ratemyrep/internal/domain"
	"ratemyrep/internal/service"
)

type RatingHandler struct {
	logger  *zap.Logger
	ratings *service.RatingService
}

func NewRatingHandler(logger *zap.Logger, ratings *service.RatingService) *RatingHandler {
	return &RatingHandler{logger: logger, ratings: ratings}
}

type submitRatingRequest struct {
	OfficialID string              `json:"officialId"`
	BioguideID string              `json:"bioguideId"`
	Rating     *float64            `json:"rating"`
	Direction  string              `json:"direction"`
	Comment    string              `json:"comment"`
	Location   *domain.Coordinates `json:"location"`
}

// Submit maneja POST /api/rate.
func (h *RatingHandler) Submit(c *gin.Context) {
	var req submitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid rating request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request")
		return
	}

	event, err := h.ratings.Submit(c.Request.Context(), service.SubmitRatingInput{
		OfficialID: req.OfficialID,
		BioguideID: req.BioguideID,
		Rating:     req.Rating,
		Direction:  req.Direction,
		Comment:    req.Comment,
		Location:   req.Location,
		ClientIP:   clientIP(c),
		UserAgent:  c.GetHeader("User-Agent"),
	})
	if msg, ok := validationMessage(err); ok {
		respondError(c, http.StatusBadRequest, msg)
		return
	}
	if errors.Is(err, service.ErrRateLimited) {
		c.Header("Retry-After", "60")
		respondError(c, http.StatusTooManyRequests, "Too many ratings, slow down")
		return
	}
	if err != nil {
		h.logger.Error("submit rating failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to submit rating")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"rating": gin.H{
			"id":         event.ID,
			"officialId": event.TargetKey(),
			"rating":     event.Score,
			"direction":  event.Direction,
			"timestamp":  event.CreatedAt,
		},
	})
}

// Stats maneja GET /api/rate.
func (h *RatingHandler) Stats(c *gin.Context) {
	res, err := h.ratings.Stats(c.Request.Context(), service.StatsQuery{
		OfficialID: c.Query("officialId"),
		BioguideID: c.Query("bioguideId"),
		Days:       queryInt(c, "days"),
	})
	if err != nil {
		h.logger.Error("rating stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch ratings",
			"stats":   domain.RatingStats{},
		})
		return
	}

	cacheFor(c, 300)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   res.Stats,
		"ratings": res.Ratings,
		"count":   res.Count,
		"period":  res.Period(),
	})
}
