package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ratemyrep/internal/domain"
	"ratemyrep/internal/service"
)

const sessionHeader = "X-Session-ID"

var errBadCoordinates = errors.New("lat and lng must be numbers")

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// validationMessage devuelve el mensaje de un ValidationError, si err lo es.
func validationMessage(err error) (string, bool) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Message, true
	}
	return "", false
}

func cacheFor(c *gin.Context, seconds int) {
	c.Header("Cache-Control", "public, max-age="+strconv.Itoa(seconds))
}

// coordinatesFromQuery solo considera coordenadas si vienen lat y lng juntos.
func coordinatesFromQuery(c *gin.Context) (*domain.Coordinates, error) {
	rawLat, rawLng := strings.TrimSpace(c.Query("lat")), strings.TrimSpace(c.Query("lng"))
	if rawLat == "" || rawLng == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, errBadCoordinates
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return nil, errBadCoordinates
	}
	return &domain.Coordinates{Lat: lat, Lng: lng}, nil
}

// queryInt es tolerante: valores ausentes o invalidos devuelven 0 y el servicio aplica el default.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return v
}

// clientIP prefiere el header del edge, despues X-Forwarded-For, despues la conexion.
func clientIP(c *gin.Context) string {
	if ip := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if fwd := strings.TrimSpace(c.GetHeader("X-Forwarded-For")); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return c.ClientIP()
}

func sessionID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(sessionHeader)); id != "" {
		return id
	}
	return strings.TrimSpace(c.Query("session"))
}
