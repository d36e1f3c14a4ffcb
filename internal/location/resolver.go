package location

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"ratemyrep/internal/domain"
)

const (
	SourceProvided = "provided"
	SourceZIP      = "zip"
	SourceState    = "state"
	SourceHeaders  = "cloudflare-headers"
	SourceDefault  = "default"

	defaultCountry  = "US"
	defaultTimezone = "America/New_York"
)

// Headers son los datos gruesos de geolocalizacion por IP que agrega el edge.
type Headers struct {
	Country  string
	Region   string
	City     string
	Timezone string
}

func (h Headers) present() bool {
	return strings.TrimSpace(h.Region) != ""
}

// HeadersFromRequest lee los headers de geolocalizacion de Cloudflare.
func HeadersFromRequest(r *http.Request) Headers {
	return Headers{
		Country:  strings.TrimSpace(r.Header.Get("CF-IPCountry")),
		Region:   strings.TrimSpace(r.Header.Get("CF-IPStateProvince")),
		City:     strings.TrimSpace(r.Header.Get("CF-IPCity")),
		Timezone: strings.TrimSpace(r.Header.Get("CF-Timezone")),
	}
}

// Query agrupa todas las pistas de ubicacion que puede traer un request.
type Query struct {
	Coordinates *domain.Coordinates
	ZIP         string
	StateCode   string
	Headers     Headers
}

// Resolver traduce pistas de ubicacion a una Location usando tablas estaticas.
// No tiene estado de error: toda rama termina en una ubicacion concreta.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve aplica la prioridad coordenadas > ZIP > estado > headers > default.
func (r *Resolver) Resolve(q Query) domain.Location {
	if q.Coordinates != nil && validCoordinates(q.Coordinates.Lat, q.Coordinates.Lng) {
		return r.fromCoordinates(q.Coordinates.Lat, q.Coordinates.Lng)
	}
	if zip := strings.TrimSpace(q.ZIP); zip != "" {
		loc := r.fromStateCode(r.StateForZIP(zip))
		loc.Source = SourceZIP
		return loc
	}
	if code := strings.ToUpper(strings.TrimSpace(q.StateCode)); code != "" {
		if _, ok := stateNames[code]; ok {
			loc := r.fromStateCode(code)
			loc.Source = SourceState
			return loc
		}
	}
	if q.Headers.present() {
		return r.fromHeaders(q.Headers)
	}
	return DefaultLocation()
}

// DefaultLocation es Washington, DC.
func DefaultLocation() domain.Location {
	return domain.Location{
		Lat:       defaultPoint.lat,
		Lng:       defaultPoint.lng,
		City:      "Washington",
		State:     "District of Columbia",
		StateCode: "DC",
		Country:   defaultCountry,
		Timezone:  defaultTimezone,
		Source:    SourceDefault,
	}
}

// StateForZIP nunca devuelve vacio. ZIPs malformados caen en DC.
func (r *Resolver) StateForZIP(zip string) string {
	zip = strings.TrimSpace(zip)
	if code, ok := zipDirect[zip]; ok {
		return code
	}
	if !IsValidZIP(zip) {
		return "DC"
	}
	n, err := strconv.Atoi(zip)
	if err != nil {
		return "DC"
	}
	for _, rg := range zipRanges {
		if n >= rg.low && n <= rg.high {
			return rg.state
		}
	}
	return "DC"
}

// StateForCoordinates devuelve el codigo del centroide estatal mas cercano.
func (r *Resolver) StateForCoordinates(lat, lng float64) string {
	if !validCoordinates(lat, lng) {
		return "DC"
	}
	closest := "DC"
	minDistance := math.Inf(1)
	for _, c := range stateCentroids {
		d := distance(lat, lng, c.point)
		if d < minDistance {
			minDistance = d
			closest = c.code
		}
	}
	return closest
}

// IsValidZIP valida el formato de cinco digitos.
func IsValidZIP(zip string) bool {
	if len(zip) != 5 {
		return false
	}
	for _, ch := range zip {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// StateName expande un codigo de estado; si no lo conoce devuelve el codigo.
func StateName(code string) string {
	if name, ok := stateNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

// IsStateCode indica si code es uno de los 50 estados o DC.
func IsStateCode(code string) bool {
	_, ok := stateNames[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// StateCodeFromName es la inversa de StateName. Devuelve "" si no hay match.
func StateCodeFromName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for code, full := range stateNames {
		if strings.ToLower(full) == name {
			return code
		}
	}
	return ""
}

func (r *Resolver) fromCoordinates(lat, lng float64) domain.Location {
	closest := referenceCities[0]
	minDistance := math.Inf(1)
	for _, c := range referenceCities {
		d := distance(lat, lng, c.point)
		if d < minDistance {
			minDistance = d
			closest = c
		}
	}
	return domain.Location{
		Lat:       lat,
		Lng:       lng,
		City:      closest.city,
		State:     closest.state,
		StateCode: closest.stateCode,
		Country:   defaultCountry,
		Timezone:  defaultTimezone,
		Source:    SourceProvided,
	}
}

func (r *Resolver) fromStateCode(code string) domain.Location {
	capitalCity, ok := stateCapitals[code]
	if !ok {
		return DefaultLocation()
	}
	return domain.Location{
		Lat:       capitalCity.lat,
		Lng:       capitalCity.lng,
		City:      capitalCity.city,
		State:     StateName(code),
		StateCode: code,
		Country:   defaultCountry,
		Timezone:  defaultTimezone,
	}
}

func (r *Resolver) fromHeaders(h Headers) domain.Location {
	country := h.Country
	if country == "" {
		country = defaultCountry
	}
	timezone := h.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}
	region := strings.ToUpper(h.Region)
	state := region
	if country == defaultCountry {
		state = StateName(region)
	}

	coords := defaultPoint
	if p, ok := cityCoordinates[h.City+"-"+region]; ok && country == defaultCountry {
		coords = p
	} else if c, ok := stateCapitals[region]; ok && country == defaultCountry {
		coords = c.point
	}

	city := h.City
	if city == "" {
		city = "Unknown"
	}
	return domain.Location{
		Lat:       coords.lat,
		Lng:       coords.lng,
		City:      city,
		State:     state,
		StateCode: region,
		Country:   country,
		Timezone:  timezone,
		Source:    SourceHeaders,
	}
}

// distance es euclidiana en grados. Alcanza para atribuir una ciudad, no para medir.
func distance(lat, lng float64, p point) float64 {
	return math.Sqrt(math.Pow(lat-p.lat, 2) + math.Pow(lng-p.lng, 2))
}

func validCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
