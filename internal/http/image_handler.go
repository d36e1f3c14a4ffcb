package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ratemyrep/internal/sharecard"
)

const svgContentType = "image/svg+xml"

// ImageHandler sirve las imagenes Open Graph y las tarjetas para compartir.
type ImageHandler struct {
	logger *zap.Logger
	cards  *sharecard.Generator
}

func NewImageHandler(logger *zap.Logger, cards *sharecard.Generator) *ImageHandler {
	return &ImageHandler{logger: logger, cards: cards}
}

// OGImage maneja GET /api/og-image. Parametros numericos invalidos dan la imagen generica.
func (h *ImageHandler) OGImage(c *gin.Context) {
	rating, errRating := parseOptionalFloat(c.Query("rating"))
	total, errTotal := parseOptionalInt(c.Query("totalRatings"))
	if errRating != nil || errTotal != nil {
		h.logger.Warn("og image with invalid params, serving fallback",
			zap.String("rating", c.Query("rating")),
			zap.String("total_ratings", c.Query("totalRatings")),
		)
		cacheFor(c, 3600)
		c.Data(http.StatusOK, svgContentType, []byte(sharecard.FallbackOGImage()))
		return
	}

	svg := sharecard.OGImage(sharecard.OGInput{
		BioguideID:   strings.TrimSpace(c.Query("bioguideId")),
		Name:         c.Query("name"),
		Party:        c.Query("party"),
		State:        c.Query("state"),
		Rating:       rating,
		TotalRatings: total,
		Template:     c.Query("template"),
	})
	cacheFor(c, 86400)
	c.Data(http.StatusOK, svgContentType, []byte(svg))
}

// ShareCard maneja GET /api/share-card. Sin score el puntaje es sintetico y se marca.
func (h *ImageHandler) ShareCard(c *gin.Context) {
	in := sharecard.CardInput{
		Name:     c.Query("name"),
		Party:    c.Query("party"),
		State:    c.Query("state"),
		District: c.Query("district"),
		Platform: c.Query("platform"),
	}
	if raw := strings.TrimSpace(c.Query("score")); raw != "" {
		score, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "score must be an integer")
			return
		}
		in.Score = &score
	}

	card := h.cards.Render(in)
	c.Header("X-Share-Score", strconv.Itoa(card.Score))
	c.Header("X-Score-Synthetic", strconv.FormatBool(card.Synthetic))
	if card.Synthetic {
		c.Header("Cache-Control", "no-store")
	} else {
		cacheFor(c, 3600)
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"platform":  card.Platform,
			"width":     card.Width,
			"height":    card.Height,
			"score":     card.Score,
			"synthetic": card.Synthetic,
			"shareText": card.ShareText,
			"svg":       card.SVG,
		})
		return
	}
	c.Data(http.StatusOK, svgContentType, []byte(card.SVG))
}

func parseOptionalFloat(raw string) (float64, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func parseOptionalInt(raw string) (int, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
