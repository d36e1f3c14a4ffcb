package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"ratemyrep/internal/airtable"
	"ratemyrep/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *airtable.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return airtable.NewClient(srv.URL, "appTest", "key", zap.NewNop())
}

func TestAirtableOfficials_ListDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("filterByFormula") != `{Bioguide_ID} = "A000370"` {
			t.Errorf("unexpected formula %q", q.Get("filterByFormula"))
		}
		if q.Get("maxRecords") != "20" {
			t.Errorf("expected default limit, got %q", q.Get("maxRecords"))
		}
		_, _ = io.WriteString(w, `{"records":[{"id":"rec1","fields":{
			"Official_ID":"OFF_0001","Bioguide_ID":"A000370","Full_Name":"Alma Adams",
			"Party":"Democrat","State":"NC","Office_Level":"Federal","Key_Issues":"Education, Healthcare",
			"Average_Rating":84.5,"Total_Ratings":10,"Twitter_Handle":"@RepAdams","Last_Updated":"2025-07-08"}}]}`)
	})
	repo := NewAirtableOfficialRepository(client, "Officials")

	got, err := repo.List(context.Background(), OfficialFilter{BioguideID: "A000370", State: "NC"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 official, got %d", len(got))
	}
	o := got[0]
	if o.ID != "rec1" || o.Party != domain.PartyDemocratic || o.Rating != 84.5 || o.TotalRatings != 10 {
		t.Fatalf("unexpected official %+v", o)
	}
	if len(o.KeyIssues) != 2 || o.SocialMedia.Twitter != "@RepAdams" {
		t.Fatalf("unexpected decoded details %+v", o)
	}
}

func TestAirtableOfficials_MissingNameFailsFast(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"records":[{"id":"recBad","fields":{"State":"NC"}}]}`)
	})
	repo := NewAirtableOfficialRepository(client, "Officials")

	_, err := repo.List(context.Background(), OfficialFilter{State: "NC"})
	var decodeErr *airtable.DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.RecordID != "recBad" {
		t.Fatalf("expected DecodeError for recBad, got %v", err)
	}
}

func TestAirtableOfficials_ApplyRatingReadModifyWrite(t *testing.T) {
	var patched map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if got := r.URL.Query().Get("filterByFormula"); got != `{Official_ID} = "OFF_0001"` {
				t.Errorf("expected lookup by Official_ID, got %q", got)
			}
			_, _ = io.WriteString(w, `{"records":[{"id":"rec1","fields":{"Full_Name":"A","Average_Rating":80,"Total_Ratings":3}}]}`)
		case http.MethodPatch:
			if !strings.HasSuffix(r.URL.Path, "/rec1") {
				t.Errorf("unexpected patch path %s", r.URL.Path)
			}
			var body struct {
				Fields map[string]any `json:"fields"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			patched = body.Fields
			_, _ = io.WriteString(w, `{"id":"rec1","fields":{}}`)
		}
	})
	repo := NewAirtableOfficialRepository(client, "Officials")

	agg, err := repo.ApplyRating(context.Background(), "OFF_0001", 20, time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("apply rating: %v", err)
	}
	if agg.Total != 4 || agg.Average != 65 {
		t.Fatalf("unexpected aggregate %+v", agg)
	}
	if patched["Average_Rating"] != float64(65) || patched["Total_Ratings"] != float64(4) || patched["Last_Rating_Date"] != "2025-07-09" {
		t.Fatalf("unexpected patch body %+v", patched)
	}
}

func TestAirtableOfficials_ApplyRatingUnknownOfficial(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filterByFormula"); got != `{Bioguide_ID} = "Z000001"` {
			t.Errorf("expected lookup by Bioguide_ID, got %q", got)
		}
		_, _ = io.WriteString(w, `{"records":[]}`)
	})
	repo := NewAirtableOfficialRepository(client, "Officials")

	if _, err := repo.ApplyRating(context.Background(), "Z000001", 50, time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAirtableRatings_CreateAndList(t *testing.T) {
	var created map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var body struct {
				Fields map[string]any `json:"fields"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			created = body.Fields
			_, _ = io.WriteString(w, `{"id":"recR1","fields":{}}`)
		case http.MethodGet:
			want := `AND({Bioguide_ID} = "A000370", {Date_Created} >= "2025-06-09")`
			if got := r.URL.Query().Get("filterByFormula"); got != want {
				t.Errorf("unexpected formula %q", got)
			}
			_, _ = io.WriteString(w, `{"records":[
				{"id":"recR1","fields":{"Rating":80,"Direction":"like","Timestamp":"2025-07-09T10:00:00Z","Location_Lat":"35.9","Location_Lng":"-78.9"}},
				{"id":"recR2","fields":{"Rating":"30","Timestamp":"2025-07-08T10:00:00Z","Location_Lat":"","Location_Lng":""}}]}`)
		}
	})
	repo := NewAirtableRatingRepository(client, "Ratings")
	ctx := context.Background()

	event, err := repo.Create(ctx, domain.RatingEvent{
		BioguideID: "A000370",
		Score:      80,
		Direction:  domain.DirectionLike,
		Location:   &domain.Coordinates{Lat: 35.9, Lng: -78.9},
		ClientIP:   "203.0.113.7",
		CreatedAt:  time.Date(2025, 7, 9, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.ID != "recR1" {
		t.Fatalf("expected record id, got %q", event.ID)
	}
	if created["Location_Lat"] != "35.9" || created["Date_Created"] != "2025-07-09" || created["Client_IP"] != "203.0.113.7" {
		t.Fatalf("unexpected created fields %+v", created)
	}

	events, err := repo.List(ctx, RatingFilter{BioguideID: "A000370", Since: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Location == nil || events[0].Location.Lat != 35.9 {
		t.Fatalf("expected decoded location, got %+v", events[0].Location)
	}
	if events[1].Location != nil || events[1].Direction != domain.DirectionDislike || events[1].Score != 30 {
		t.Fatalf("unexpected second event %+v", events[1])
	}
}

func TestAirtableStaff_OfficeSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("filterByFormula"); got != `SEARCH("Charlotte", {Office_Location}) > 0` {
			t.Errorf("unexpected formula %q", got)
		}
		if q.Get("sort[0][field]") != "Job_Title" || q.Get("sort[0][direction]") != "asc" {
			t.Errorf("expected job title sort, got %v", q)
		}
		_, _ = io.WriteString(w, `{"records":[{"id":"recS1","fields":{"Full_Name":"David Thompson","Job_Title":"District Director","Policy_Areas":"Constituent Services, Local Issues"}}]}`)
	})
	repo := NewAirtableStaffRepository(client, "Staff")

	got, err := repo.List(context.Background(), StaffFilter{Office: "Charlotte"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || len(got[0].PolicyAreas) != 2 {
		t.Fatalf("unexpected staff %+v", got)
	}
}

func TestEncodeStaffDefaultsDataSource(t *testing.T) {
	fields := EncodeStaffFields(domain.StaffMember{FullName: "A B", PolicyAreas: []string{"x", "y"}})
	if fields["Data_Source"] != "Manual Entry" || fields["Policy_Areas"] != "x, y" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}
