package location

import (
	"fmt"
	"math"
	"net/http/httptest"
	"testing"

	"ratemyrep/internal/domain"
)

func TestStateForZIP_EveryFiveDigitZIPHasState(t *testing.T) {
	r := NewResolver()
	for n := 0; n <= 99999; n++ {
		zip := fmt.Sprintf("%05d", n)
		if code := r.StateForZIP(zip); code == "" {
			t.Fatalf("expected state for zip %s", zip)
		}
	}
}

func TestStateForZIP_DirectAndRanges(t *testing.T) {
	r := NewResolver()
	cases := map[string]string{
		"27713": "NC",
		"35801": "AL",
		"80301": "CO",
		"02139": "MA",
		"10027": "NY",
		"19104": "PA",
		"20001": "DC",
		"30303": "GA",
		"60614": "IL",
		"75201": "TX",
		"94103": "CA",
		"96813": "HI",
		"99701": "AK",
		"00501": "DC",
	}
	for zip, want := range cases {
		if got := r.StateForZIP(zip); got != want {
			t.Fatalf("zip %s: expected %s, got %s", zip, want, got)
		}
	}
}

func TestStateForZIP_MalformedFallsBackToDC(t *testing.T) {
	r := NewResolver()
	for _, zip := range []string{"", "abcde", "1234", "123456", "27-13", " "} {
		if got := r.StateForZIP(zip); got != "DC" {
			t.Fatalf("zip %q: expected DC, got %s", zip, got)
		}
	}
}

func TestZIPRangesDoNotOverlap(t *testing.T) {
	for i := 1; i < len(zipRanges); i++ {
		prev, cur := zipRanges[i-1], zipRanges[i]
		if cur.low <= prev.high {
			t.Fatalf("range %d-%d overlaps %d-%d", cur.low, cur.high, prev.low, prev.high)
		}
		if cur.low > cur.high {
			t.Fatalf("range %d-%d is inverted", cur.low, cur.high)
		}
	}
}

func TestZIPRangesCoverEveryState(t *testing.T) {
	seen := map[string]bool{}
	for _, rg := range zipRanges {
		seen[rg.state] = true
	}
	for code := range stateNames {
		if !seen[code] {
			t.Fatalf("no zip range for %s", code)
		}
	}
}

func TestResolve_Coordinates(t *testing.T) {
	r := NewResolver()
	loc := r.Resolve(Query{Coordinates: &domain.Coordinates{Lat: 40.70, Lng: -74.01}})
	if loc.StateCode != "NY" || loc.City != "New York" {
		t.Fatalf("expected New York, got %+v", loc)
	}
	if loc.Source != SourceProvided {
		t.Fatalf("expected provided source, got %s", loc.Source)
	}
	if loc.Lat != 40.70 || loc.Lng != -74.01 {
		t.Fatalf("expected provided coordinates to be echoed, got %v,%v", loc.Lat, loc.Lng)
	}

	loc = r.Resolve(Query{Coordinates: &domain.Coordinates{Lat: 47.0, Lng: -122.0}})
	if loc.StateCode != "WA" {
		t.Fatalf("expected WA, got %s", loc.StateCode)
	}
}

func TestResolve_CoordinatesWinOverZIP(t *testing.T) {
	r := NewResolver()
	loc := r.Resolve(Query{
		Coordinates: &domain.Coordinates{Lat: 25.76, Lng: -80.19},
		ZIP:         "27713",
	})
	if loc.StateCode != "FL" {
		t.Fatalf("expected coordinates to take priority, got %s", loc.StateCode)
	}
}

func TestResolve_InvalidCoordinatesFallThrough(t *testing.T) {
	r := NewResolver()
	loc := r.Resolve(Query{
		Coordinates: &domain.Coordinates{Lat: math.NaN(), Lng: 10},
		ZIP:         "27713",
	})
	if loc.StateCode != "NC" || loc.Source != SourceZIP {
		t.Fatalf("expected zip resolution, got %+v", loc)
	}
}

func TestResolve_ZIP(t *testing.T) {
	r := NewResolver()
	loc := r.Resolve(Query{ZIP: "27713"})
	if loc.StateCode != "NC" || loc.State != "North Carolina" {
		t.Fatalf("expected North Carolina, got %+v", loc)
	}
	if loc.Lat != 35.771 || loc.Lng != -78.638 {
		t.Fatalf("expected capital coordinates, got %v,%v", loc.Lat, loc.Lng)
	}
}

func TestResolve_StateCode(t *testing.T) {
	r := NewResolver()
	loc := r.Resolve(Query{StateCode: "tx"})
	if loc.StateCode != "TX" || loc.City != "Austin" || loc.Source != SourceState {
		t.Fatalf("unexpected state resolution: %+v", loc)
	}

	loc = r.Resolve(Query{StateCode: "ZZ"})
	if loc.Source != SourceDefault {
		t.Fatalf("expected unknown state code to fall back to default, got %+v", loc)
	}
}

func TestResolve_Headers(t *testing.T) {
	r := NewResolver()

	loc := r.Resolve(Query{Headers: Headers{Country: "US", Region: "TX", City: "Dallas"}})
	if loc.State != "Texas" || loc.Lat != 32.7767 || loc.Source != SourceHeaders {
		t.Fatalf("expected Dallas coordinates, got %+v", loc)
	}

	loc = r.Resolve(Query{Headers: Headers{Country: "US", Region: "NC", City: "Durham"}})
	if loc.City != "Durham" || loc.Lat != 35.771 {
		t.Fatalf("expected capital fallback, got %+v", loc)
	}

	loc = r.Resolve(Query{Headers: Headers{Country: "CA", Region: "ON", City: "Toronto"}})
	if loc.State != "ON" || loc.Country != "CA" || loc.Lat != defaultPoint.lat {
		t.Fatalf("expected non-US region passthrough with default coordinates, got %+v", loc)
	}

	loc = r.Resolve(Query{Headers: Headers{Region: "GA"}})
	if loc.City != "Unknown" || loc.Country != "US" || loc.Timezone != defaultTimezone {
		t.Fatalf("expected header defaults, got %+v", loc)
	}
}

func TestResolve_NothingGivesDefault(t *testing.T) {
	r := NewResolver()
	loc := r.Resolve(Query{})
	if loc != DefaultLocation() {
		t.Fatalf("expected default location, got %+v", loc)
	}
}

func TestHeadersFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/location", nil)
	req.Header.Set("CF-IPCountry", "US")
	req.Header.Set("CF-IPStateProvince", " CO ")
	req.Header.Set("CF-IPCity", "Denver")
	h := HeadersFromRequest(req)
	if h.Country != "US" || h.Region != "CO" || h.City != "Denver" {
		t.Fatalf("unexpected headers: %+v", h)
	}
}

func TestStateForCoordinates(t *testing.T) {
	r := NewResolver()
	if got := r.StateForCoordinates(35.9, -78.9); got != "NC" {
		t.Fatalf("expected NC, got %s", got)
	}
	if got := r.StateForCoordinates(math.Inf(1), 0); got != "DC" {
		t.Fatalf("expected DC for invalid coordinates, got %s", got)
	}
}

func TestStateCodeFromName(t *testing.T) {
	if got := StateCodeFromName("north carolina"); got != "NC" {
		t.Fatalf("expected NC, got %s", got)
	}
	if got := StateCodeFromName("Atlantis"); got != "" {
		t.Fatalf("expected empty, got %s", got)
	}
}
