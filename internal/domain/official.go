package domain

import (
	"fmt"
	"strings"
)

// Party es el partido politico normalizado de un funcionario.
type Party string

const (
	PartyDemocratic  Party = "Democratic"
	PartyRepublican  Party = "Republican"
	PartyIndependent Party = "Independent"
	PartyOther       Party = "Other"
)

// ParseParty normaliza valores libres ("D", "democrat", "GOP") al enum.
func ParseParty(raw string) Party {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "democratic", "democrat", "d", "dem":
		return PartyDemocratic
	case "republican", "r", "rep", "gop":
		return PartyRepublican
	case "independent", "i", "ind":
		return PartyIndependent
	case "":
		return PartyIndependent
	default:
		return PartyOther
	}
}

// OfficeLevel es el nivel jurisdiccional del cargo.
type OfficeLevel string

const (
	OfficeLevelFederal OfficeLevel = "Federal"
	OfficeLevelState   OfficeLevel = "State"
	OfficeLevelLocal   OfficeLevel = "Local"
)

func ParseOfficeLevel(raw string) OfficeLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "state":
		return OfficeLevelState
	case "local":
		return OfficeLevelLocal
	default:
		return OfficeLevelFederal
	}
}

type SocialMedia struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// Official es la copia de lectura de un funcionario electo. El registro
// autoritativo vive en el store externo.
type Official struct {
	ID           string      `json:"id"`
	OfficialID   string      `json:"officialId,omitempty"`
	BioguideID   string      `json:"bioguideId,omitempty"`
	Name         string      `json:"name"`
	FirstName    string      `json:"firstName,omitempty"`
	LastName     string      `json:"lastName,omitempty"`
	MiddleName   string      `json:"middleName,omitempty"`
	Party        Party       `json:"party"`
	State        string      `json:"state"`
	District     string      `json:"district,omitempty"`
	Chamber      string      `json:"chamber,omitempty"`
	OfficeLevel  OfficeLevel `json:"officeLevel"`
	Bio          string      `json:"bio,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Email        string      `json:"email,omitempty"`
	Website      string      `json:"website,omitempty"`
	PhotoURL     string      `json:"photoUrl,omitempty"`
	Images       []string    `json:"images,omitempty"`
	KeyIssues    []string    `json:"keyIssues"`
	Rating       float64     `json:"rating"`
	TotalRatings int         `json:"totalRatings"`
	SocialMedia  SocialMedia `json:"socialMedia"`
	LastUpdated  string      `json:"lastUpdated,omitempty"`
}

// Aggregate es el promedio acumulado de calificaciones de un funcionario.
type Aggregate struct {
	Average        float64 `json:"averageRating"`
	Total          int     `json:"totalRatings"`
	LastRatingDate string  `json:"lastRatingDate,omitempty"`
}

// PhotoURL arma la URL de la foto oficial del bioguide. Vacio si no hay id.
func PhotoURL(bioguideID string) string {
	if bioguideID == "" {
		return ""
	}
	return fmt.Sprintf("https://bioguide.congress.gov/bioguide/photo/%s/%s.jpg", bioguideID[:1], bioguideID)
}
