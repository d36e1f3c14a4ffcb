package sharecard

import (
	"fmt"
	"html"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"ratemyrep/internal/domain"
)

const (
	PlatformTwitter   = "twitter"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"

	// SampleLabel aparece en toda tarjeta cuyo puntaje no vino del cliente.
	SampleLabel = "Sample score"

	DefaultSiteURL = "https://ratemyrep.com"
)

type size struct {
	width, height int
}

var platformSizes = map[string]size{
	PlatformTwitter:   {1200, 675},
	PlatformFacebook:  {1200, 630},
	PlatformInstagram: {1080, 1080},
}

// CardInput describe la tarjeta a compartir. Score nil pide un puntaje sintetico.
type CardInput struct {
	Name     string
	Party    string
	State    string
	District string
	Score    *int
	Platform string
}

type Card struct {
	SVG       string
	Width     int
	Height    int
	Platform  string
	Score     int
	Synthetic bool
	ShareText string
}

// Generator dibuja tarjetas SVG. El rand inyectado solo se usa para puntajes sinteticos.
type Generator struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	siteURL string
}

func NewGenerator(src rand.Source, siteURL string) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	if strings.TrimSpace(siteURL) == "" {
		siteURL = DefaultSiteURL
	}
	return &Generator{rnd: rand.New(src), siteURL: strings.TrimRight(siteURL, "/")}
}

// PlatformSize devuelve las dimensiones; plataformas desconocidas usan las de twitter.
func PlatformSize(platform string) (string, int, int) {
	p := strings.ToLower(strings.TrimSpace(platform))
	s, ok := platformSizes[p]
	if !ok {
		p = PlatformTwitter
		s = platformSizes[p]
	}
	return p, s.width, s.height
}

func (g *Generator) Render(in CardInput) Card {
	platform, width, height := PlatformSize(in.Platform)

	card := Card{Width: width, Height: height, Platform: platform}
	if in.Score != nil {
		card.Score = clampScore(*in.Score)
	} else {
		card.Score = g.syntheticScore(domain.ParseParty(in.Party))
		card.Synthetic = true
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Representative"
	}
	card.ShareText = shareText(platform, name, card.Score, g.siteURL)
	card.SVG = renderCard(in, name, card)
	return card
}

// syntheticScore: republicanos 75-95, el resto 25-45.
func (g *Generator) syntheticScore(party domain.Party) int {
	g.mu.Lock()
	offset := g.rnd.Float64() * 20
	g.mu.Unlock()
	base := 25.0
	if party == domain.PartyRepublican {
		base = 75
	}
	return int(math.Round(base + offset))
}

func clampScore(v int) int {
	if v < domain.MinScore {
		return domain.MinScore
	}
	if v > domain.MaxScore {
		return domain.MaxScore
	}
	return v
}

func shareText(platform, name string, score int, siteURL string) string {
	switch platform {
	case PlatformFacebook:
		return fmt.Sprintf("I just rated %s on RateMyRep. See how your representatives score: %s", name, siteURL)
	case PlatformInstagram:
		return fmt.Sprintf("Swipe to see %s's score 👀 %s", name, siteURL)
	default:
		return fmt.Sprintf("%s scores %d%% on RateMyRep. Check their record: %s", name, score, siteURL)
	}
}

func sliderColor(score int) string {
	switch {
	case score > 70:
		return "#22c55e"
	case score > 40:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

func renderCard(in CardInput, name string, card Card) string {
	w, h := card.Width, card.Height
	sliderY := h - 200
	sliderWidth := w - 120
	fill := int(math.Round(float64(card.Score) / 100 * float64(sliderWidth)))

	subtitle := strings.TrimSpace(string(domain.ParseParty(in.Party)) + " • " + strings.TrimSpace(in.State+" "+in.District))

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, w, h, w, h)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#000000"/>`, w, h)
	fmt.Fprintf(&b, `<text x="60" y="80" font-family="Arial, sans-serif" font-size="48" font-weight="bold" fill="#ffffff">%s</text>`, esc(name))
	fmt.Fprintf(&b, `<text x="60" y="120" font-family="Arial, sans-serif" font-size="32" fill="#9ca3af">%s</text>`, esc(subtitle))
	fmt.Fprintf(&b, `<text x="%d" y="150" font-family="Arial, sans-serif" font-size="120" font-weight="bold" fill="#ef4444" text-anchor="end">%d%%</text>`, w-60, card.Score)
	fmt.Fprintf(&b, `<text x="%d" y="180" font-family="Arial, sans-serif" font-size="28" fill="#ffffff" text-anchor="end">Score</text>`, w-60)
	if card.Synthetic {
		fmt.Fprintf(&b, `<text x="%d" y="215" font-family="Arial, sans-serif" font-size="22" fill="#fbbf24" text-anchor="end">%s</text>`, w-60, SampleLabel)
	}
	fmt.Fprintf(&b, `<rect x="60" y="%d" width="%d" height="20" fill="#374151"/>`, sliderY, sliderWidth)
	fmt.Fprintf(&b, `<rect x="60" y="%d" width="%d" height="20" fill="%s"/>`, sliderY, fill, sliderColor(card.Score))
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="Arial, sans-serif" font-size="32" font-weight="bold" fill="#ffffff" text-anchor="middle">I rated my rep! See how yours scores</text>`, w/2, h-120)
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="Arial, sans-serif" font-size="24" fill="#6366f1" text-anchor="middle">RateMyRep.com</text>`, w/2, h-40)
	b.WriteString(`</svg>`)
	return b.String()
}

func esc(s string) string {
	return html.EscapeString(s)
}
