package sharecard

import (
	"fmt"
	"math"
	"strings"

	"ratemyrep/internal/domain"
)

const (
	TemplateDefault = "default"
	TemplateMinimal = "minimal"

	ogWidth  = 1200
	ogHeight = 630
)

// OGInput son los parametros de GET /api/og-image.
type OGInput struct {
	BioguideID   string
	Name         string
	Party        string
	State        string
	Rating       float64
	TotalRatings int
	Template     string
}

type partyColors struct {
	primary, secondary string
}

var ogPartyColors = map[domain.Party]partyColors{
	domain.PartyDemocratic:  {"#0084ff", "#4fb3ff"},
	domain.PartyRepublican:  {"#ff0000", "#ff4d4d"},
	domain.PartyIndependent: {"#8b5cf6", "#a78bfa"},
}

func colorsFor(party domain.Party) partyColors {
	if c, ok := ogPartyColors[party]; ok {
		return c
	}
	return ogPartyColors[domain.PartyIndependent]
}

// RatingColor: verde desde 60, ambar desde 40, rojo debajo.
func RatingColor(rating float64) string {
	switch {
	case rating >= 60:
		return "#10b981"
	case rating >= 40:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

// Stars convierte 0-100 en una fila de cinco estrellas.
func Stars(rating float64) string {
	n := int(math.Round(rating / 20))
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func normalizeOG(in OGInput) OGInput {
	if strings.TrimSpace(in.Name) == "" {
		in.Name = "Representative"
	}
	if strings.TrimSpace(in.State) == "" {
		in.State = "US"
	}
	if math.IsNaN(in.Rating) || math.IsInf(in.Rating, 0) {
		in.Rating = 0
	}
	if in.TotalRatings < 0 {
		in.TotalRatings = 0
	}
	return in
}

// OGImage dibuja la imagen Open Graph de un funcionario.
func OGImage(in OGInput) string {
	in = normalizeOG(in)
	party := domain.ParseParty(in.Party)
	colors := colorsFor(party)
	display := strings.TrimSuffix(fmt.Sprintf("%.1f", math.Round(in.Rating*10)/10), ".0")

	if strings.EqualFold(in.Template, TemplateMinimal) {
		return ogMinimal(in, party, colors, display)
	}
	return ogDefault(in, party, colors, display)
}

func ogMinimal(in OGInput, party domain.Party, colors partyColors, display string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, ogWidth, ogHeight)
	fmt.Fprintf(&b, `<defs><linearGradient id="bg" x1="0%%" y1="0%%" x2="100%%" y2="100%%">`+
		`<stop offset="0%%" style="stop-color:%s;stop-opacity:1"/><stop offset="100%%" style="stop-color:%s;stop-opacity:1"/>`+
		`</linearGradient></defs>`, colors.primary, colors.secondary)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="url(#bg)"/>`, ogWidth, ogHeight)
	fmt.Fprintf(&b, `<text x="600" y="200" font-family="Arial, sans-serif" font-size="48" font-weight="bold" fill="white" text-anchor="middle">Rate %s</text>`, esc(in.Name))
	fmt.Fprintf(&b, `<text x="600" y="260" font-family="Arial, sans-serif" font-size="32" fill="white" text-anchor="middle" opacity="0.9">%s • %s</text>`, esc(string(party)), esc(in.State))
	fmt.Fprintf(&b, `<text x="600" y="350" font-family="Arial, sans-serif" font-size="72" font-weight="bold" fill="white" text-anchor="middle">%s%%</text>`, display)
	fmt.Fprintf(&b, `<text x="600" y="410" font-family="Arial, sans-serif" font-size="24" fill="white" text-anchor="middle" opacity="0.8">%d ratings • %s</text>`, in.TotalRatings, Stars(in.Rating))
	b.WriteString(`<text x="600" y="500" font-family="Arial, sans-serif" font-size="28" font-weight="bold" fill="white" text-anchor="middle">RateMyRep.com</text>`)
	b.WriteString(`</svg>`)
	return b.String()
}

func ogDefault(in OGInput, party domain.Party, colors partyColors, display string) string {
	badge := strings.ToUpper(string(party))
	if len(badge) > 3 {
		badge = badge[:3]
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, ogWidth, ogHeight)
	b.WriteString(`<defs><linearGradient id="bg" x1="0%" y1="0%" x2="100%" y2="100%">` +
		`<stop offset="0%" style="stop-color:#667eea;stop-opacity:1"/><stop offset="100%" style="stop-color:#764ba2;stop-opacity:1"/>` +
		`</linearGradient><filter id="shadow" x="-50%" y="-50%" width="200%" height="200%">` +
		`<feDropShadow dx="0" dy="4" stdDeviation="8" flood-color="rgba(0,0,0,0.3)"/></filter></defs>`)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="url(#bg)"/>`, ogWidth, ogHeight)
	b.WriteString(`<g opacity="0.1"><circle cx="100" cy="100" r="50" fill="white"/><circle cx="1100" cy="530" r="80" fill="white"/>` +
		`<circle cx="200" cy="500" r="30" fill="white"/><circle cx="1000" cy="150" r="40" fill="white"/></g>`)
	b.WriteString(`<rect x="80" y="80" width="1040" height="470" rx="20" fill="white" filter="url(#shadow)"/>`)
	fmt.Fprintf(&b, `<rect x="120" y="120" width="200" height="250" rx="15" fill="%s"/>`, colors.primary)
	if in.BioguideID != "" {
		fmt.Fprintf(&b, `<image x="120" y="120" width="200" height="250" preserveAspectRatio="xMidYMid slice" href="%s"/>`, esc(domain.PhotoURL(in.BioguideID)))
	} else {
		b.WriteString(`<text x="220" y="260" font-family="Arial, sans-serif" font-size="16" fill="white" text-anchor="middle">OFFICIAL</text>`)
		b.WriteString(`<text x="220" y="280" font-family="Arial, sans-serif" font-size="16" fill="white" text-anchor="middle">PHOTO</text>`)
	}
	fmt.Fprintf(&b, `<text x="360" y="180" font-family="Arial, sans-serif" font-size="48" font-weight="bold" fill="#1f2937">%s</text>`, esc(in.Name))
	fmt.Fprintf(&b, `<rect x="360" y="200" width="120" height="35" rx="17" fill="%s"/>`, colors.primary)
	fmt.Fprintf(&b, `<text x="420" y="222" font-family="Arial, sans-serif" font-size="16" font-weight="bold" fill="white" text-anchor="middle">%s</text>`, esc(badge))
	fmt.Fprintf(&b, `<text x="500" y="222" font-family="Arial, sans-serif" font-size="18" fill="#6b7280">%s</text>`, esc(in.State))
	b.WriteString(`<text x="360" y="290" font-family="Arial, sans-serif" font-size="24" font-weight="bold" fill="#374151">Approval Rating</text>`)
	fmt.Fprintf(&b, `<text x="360" y="340" font-family="Arial, sans-serif" font-size="64" font-weight="bold" fill="%s">%s%%</text>`, RatingColor(in.Rating), display)
	fmt.Fprintf(&b, `<text x="360" y="370" font-family="Arial, sans-serif" font-size="18" fill="#6b7280">%s (%d ratings)</text>`, Stars(in.Rating), in.TotalRatings)
	fmt.Fprintf(&b, `<rect x="360" y="400" width="200" height="50" rx="25" fill="%s"/>`, colors.primary)
	b.WriteString(`<text x="460" y="430" font-family="Arial, sans-serif" font-size="18" font-weight="bold" fill="white" text-anchor="middle">Rate Now</text>`)
	b.WriteString(`<text x="1040" y="520" font-family="Arial, sans-serif" font-size="32" font-weight="bold" fill="#667eea" text-anchor="end">RateMyRep</text>`)
	b.WriteString(`<text x="120" y="510" font-family="Arial, sans-serif" font-size="16" fill="#6b7280">Rate and review your elected officials • Share your political opinions</text>`)
	b.WriteString(`</svg>`)
	return b.String()
}

// FallbackOGImage es la imagen generica cuando no se puede dibujar la del funcionario.
func FallbackOGImage() string {
	return `<svg width="1200" height="630" xmlns="http://www.w3.org/2000/svg">` +
		`<defs><linearGradient id="fallbackBg" x1="0%" y1="0%" x2="100%" y2="100%">` +
		`<stop offset="0%" style="stop-color:#667eea;stop-opacity:1"/><stop offset="100%" style="stop-color:#764ba2;stop-opacity:1"/>` +
		`</linearGradient></defs>` +
		`<rect width="1200" height="630" fill="url(#fallbackBg)"/>` +
		`<text x="600" y="250" font-family="Arial, sans-serif" font-size="64" font-weight="bold" fill="white" text-anchor="middle">RateMyRep</text>` +
		`<text x="600" y="320" font-family="Arial, sans-serif" font-size="32" fill="white" text-anchor="middle" opacity="0.9">Rate Your Elected Officials</text>` +
		`<text x="600" y="400" font-family="Arial, sans-serif" font-size="24" fill="white" text-anchor="middle" opacity="0.8">Swipe • Rate • Share • Engage</text>` +
		`<text x="300" y="350" font-family="Arial, sans-serif" font-size="32" fill="white" opacity="0.7">★★★★★</text>` +
		`<text x="900" y="350" font-family="Arial, sans-serif" font-size="32" fill="white" opacity="0.7">★★★★★</text>` +
		`</svg>`
}
