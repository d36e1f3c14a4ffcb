package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ratemyrep/internal/domain"
	"ratemyrep/internal/swipe"
)

func TestClient_Officials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/officials" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("zip") != "27713" || r.URL.Query().Get("limit") != "5" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		if r.URL.Query().Has("state") {
			t.Fatalf("empty params must be omitted")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":         true,
			"count":           1,
			"representatives": []map[string]any{{"id": "rec1", "name": "Alma Adams", "state": "NC", "bioguideId": "A000370"}},
		})
	}))
	defer srv.Close()

	page, err := New(srv.URL+"/").Officials(context.Background(), OfficialsParams{ZIP: "27713", Limit: 5})
	if err != nil {
		t.Fatalf("officials: %v", err)
	}
	if page.Count != 1 || page.Representatives[0].BioguideID != "A000370" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestClient_Location(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") != "35.9" || r.URL.Query().Get("lng") != "-78.9" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"success":true,"lat":35.9,"lng":-78.9,"city":"Raleigh","state":"North Carolina","stateCode":"NC","country":"US","source":"provided"}`))
	}))
	defer srv.Close()

	loc, err := New(srv.URL).Location(context.Background(), LocationParams{Coordinates: &domain.Coordinates{Lat: 35.9, Lng: -78.9}})
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.StateCode != "NC" || loc.City != "Raleigh" {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestClient_SubmitVote(t *testing.T) {
	var got RatingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/rate" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"rating":{"id":"r1","rating":80,"direction":"like"}}`))
	}))
	defer srv.Close()

	var _ swipe.Submitter = (*Client)(nil)
	err := New(srv.URL).SubmitVote(context.Background(), swipe.Vote{BioguideID: "A000370", Rating: 80, Direction: domain.DirectionLike})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.BioguideID != "A000370" || got.Rating != 80 || got.Direction != "like" {
		t.Fatalf("unexpected request body %+v", got)
	}
}

func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"success":false,"error":"Too many ratings, slow down"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).SubmitRating(context.Background(), RatingRequest{OfficialID: "OFF_0001", Rating: 50})
	var herr *HTTPError
	if !errors.As(err, &herr) || herr.StatusCode != http.StatusTooManyRequests || herr.Message != "Too many ratings, slow down" {
		t.Fatalf("expected HTTPError 429, got %v", err)
	}
}
