package sharecard

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestRender_PlatformSizes(t *testing.T) {
	g := NewGenerator(rand.NewSource(1), "")
	cases := []struct {
		platform      string
		width, height int
		want          string
	}{
		{"twitter", 1200, 675, PlatformTwitter},
		{"Facebook", 1200, 630, PlatformFacebook},
		{"instagram", 1080, 1080, PlatformInstagram},
		{"myspace", 1200, 675, PlatformTwitter},
		{"", 1200, 675, PlatformTwitter},
	}
	for _, tc := range cases {
		card := g.Render(CardInput{Name: "Alma Adams", Party: "Democratic", Score: intPtr(84), Platform: tc.platform})
		if card.Width != tc.width || card.Height != tc.height || card.Platform != tc.want {
			t.Fatalf("%q: expected %dx%d %s, got %dx%d %s", tc.platform, tc.width, tc.height, tc.want, card.Width, card.Height, card.Platform)
		}
		if !strings.Contains(card.SVG, `width="`+strconv.Itoa(tc.width)+`"`) {
			t.Fatalf("%q: svg does not carry width", tc.platform)
		}
	}
}

func TestRender_ProvidedScoreIsNotLabelled(t *testing.T) {
	g := NewGenerator(rand.NewSource(1), "https://example.org/")
	card := g.Render(CardInput{Name: "Alma Adams", Party: "D", State: "NC", District: "12th District", Score: intPtr(84)})
	if card.Synthetic || card.Score != 84 {
		t.Fatalf("unexpected card %+v", card)
	}
	if strings.Contains(card.SVG, SampleLabel) {
		t.Fatalf("provided score must not be labelled as sample")
	}
	if !strings.Contains(card.SVG, "84%") || !strings.Contains(card.SVG, "Democratic • NC 12th District") {
		t.Fatalf("missing score or subtitle in svg")
	}
	if !strings.HasSuffix(card.ShareText, "https://example.org") {
		t.Fatalf("unexpected share text %q", card.ShareText)
	}

	clamped := g.Render(CardInput{Name: "X", Score: intPtr(140)})
	if clamped.Score != 100 {
		t.Fatalf("expected clamp to 100, got %d", clamped.Score)
	}
}

func TestRender_SyntheticScoreRanges(t *testing.T) {
	g := NewGenerator(rand.NewSource(42), "")
	for i := 0; i < 200; i++ {
		rep := g.Render(CardInput{Name: "R", Party: "Republican"})
		if !rep.Synthetic || rep.Score < 75 || rep.Score > 95 {
			t.Fatalf("republican synthetic score out of range: %+v", rep.Score)
		}
		if !strings.Contains(rep.SVG, SampleLabel) {
			t.Fatalf("synthetic card must be labelled")
		}
		dem := g.Render(CardInput{Name: "D", Party: "Democratic"})
		if dem.Score < 25 || dem.Score > 45 {
			t.Fatalf("non-republican synthetic score out of range: %d", dem.Score)
		}
	}
}

func TestRender_EscapesUserText(t *testing.T) {
	g := NewGenerator(rand.NewSource(1), "")
	card := g.Render(CardInput{Name: `<script>alert("x")</script>`, State: "A&B", Score: intPtr(50)})
	if strings.Contains(card.SVG, "<script>") {
		t.Fatalf("name was not escaped")
	}
	if !strings.Contains(card.SVG, "&lt;script&gt;") || !strings.Contains(card.SVG, "A&amp;B") {
		t.Fatalf("expected escaped entities in svg")
	}
}

func TestOGImage_Templates(t *testing.T) {
	def := OGImage(OGInput{BioguideID: "A000370", Name: "Alma Adams", Party: "Democratic", State: "NC", Rating: 84.26, TotalRatings: 1847})
	for _, want := range []string{"84.3%", "#10b981", "★★★★☆", "(1847 ratings)", "DEM", "photo/A/A000370.jpg", "#0084ff"} {
		if !strings.Contains(def, want) {
			t.Fatalf("default template missing %q", want)
		}
	}

	minimal := OGImage(OGInput{Name: "Tom & Co", Party: "Republican", Rating: 35, Template: "minimal"})
	for _, want := range []string{"Rate Tom &amp; Co", "Republican • US", "35%", "0 ratings • ★★☆☆☆"} {
		if !strings.Contains(minimal, want) {
			t.Fatalf("minimal template missing %q", want)
		}
	}
	if !strings.Contains(minimal, "#ff0000") {
		t.Fatalf("expected republican gradient")
	}

	blank := OGImage(OGInput{})
	if !strings.Contains(blank, "Representative") || !strings.Contains(blank, "#8b5cf6") {
		t.Fatalf("expected defaults for empty input")
	}
}

func TestRatingHelpers(t *testing.T) {
	if RatingColor(60) != "#10b981" || RatingColor(40) != "#f59e0b" || RatingColor(39.9) != "#ef4444" {
		t.Fatalf("unexpected rating colors")
	}
	if Stars(0) != "☆☆☆☆☆" || Stars(100) != "★★★★★" || Stars(150) != "★★★★★" {
		t.Fatalf("unexpected stars")
	}
	if !strings.Contains(FallbackOGImage(), "Rate Your Elected Officials") {
		t.Fatalf("unexpected fallback image")
	}
}

