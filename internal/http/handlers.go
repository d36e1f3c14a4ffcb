package http

import (
	"go.uber.org/zap"

	"ratemyrep/internal/service"
	"ratemyrep/internal/sharecard"
)

// Handlers agrupa los handlers y el servicio de tokens que usa el router.
type Handlers struct {
	Location  *LocationHandler
	Officials *OfficialsHandler
	Ratings   *RatingHandler
	Staff     *StaffHandler
	Images    *ImageHandler
	Admin     *AdminHandler
	Tokens    *service.AdminTokenService
}

// Services son las dependencias de dominio de la API.
type Services struct {
	Locations *service.LocationService
	Officials *service.OfficialsService
	Ratings   *service.RatingService
	Staff     *service.StaffService
	Admin     *service.AdminService
	Tokens    *service.AdminTokenService
	Cards     *sharecard.Generator
}

// NewHandlers crea una instancia de Handlers con las dependencias necesarias.
func NewHandlers(logger *zap.Logger, s Services) Handlers {
	return Handlers{
		Location:  NewLocationHandler(logger, s.Locations),
		Officials: NewOfficialsHandler(logger, s.Officials),
		Ratings:   NewRatingHandler(logger, s.Ratings),
		Staff:     NewStaffHandler(logger, s.Staff),
		Images:    NewImageHandler(logger, s.Cards),
		Admin:     NewAdminHandler(logger, s.Admin),
		Tokens:    s.Tokens,
	}
}
