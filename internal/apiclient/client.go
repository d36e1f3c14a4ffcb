package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ratemyrep/internal/domain"
	"ratemyrep/internal/swipe"
)

// HTTPError es una respuesta no-2xx del API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status=%d: %s", e.StatusCode, e.Message)
}

// Client consume el API HTTP de RateMyRep.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 10 * time.Second},
		userAgent: "ratemyrep-swipe/1.0",
	}
}

type LocationParams struct {
	Coordinates *domain.Coordinates
	ZIP         string
	State       string
}

type locationResponse struct {
	Success bool `json:"success"`
	domain.Location
}

func (c *Client) Location(ctx context.Context, p LocationParams) (domain.Location, error) {
	q := url.Values{}
	if p.Coordinates != nil {
		q.Set("lat", strconv.FormatFloat(p.Coordinates.Lat, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(p.Coordinates.Lng, 'f', -1, 64))
	}
	setIf(q, "zip", p.ZIP)
	setIf(q, "state", p.State)

	var out locationResponse
	if err := c.do(ctx, http.MethodGet, "/api/location", q, nil, &out); err != nil {
		return domain.Location{}, err
	}
	return out.Location, nil
}

type OfficialsParams struct {
	BioguideID  string
	ZIP         string
	State       string
	Coordinates *domain.Coordinates
	Limit       int
}

type OfficialsPage struct {
	Success         bool              `json:"success"`
	Representatives []domain.Official `json:"representatives"`
	Count           int               `json:"count"`
	Fallback        bool              `json:"fallback,omitempty"`
}

func (c *Client) Officials(ctx context.Context, p OfficialsParams) (OfficialsPage, error) {
	q := url.Values{}
	setIf(q, "bioguideId", p.BioguideID)
	setIf(q, "zip", p.ZIP)
	setIf(q, "state", p.State)
	if p.Coordinates != nil {
		q.Set("lat", strconv.FormatFloat(p.Coordinates.Lat, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(p.Coordinates.Lng, 'f', -1, 64))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}

	var out OfficialsPage
	if err := c.do(ctx, http.MethodGet, "/api/officials", q, nil, &out); err != nil {
		return OfficialsPage{}, err
	}
	return out, nil
}

type RatingRequest struct {
	OfficialID string              `json:"officialId,omitempty"`
	BioguideID string              `json:"bioguideId,omitempty"`
	Rating     float64             `json:"rating"`
	Direction  string              `json:"direction,omitempty"`
	Comment    string              `json:"comment,omitempty"`
	Location   *domain.Coordinates `json:"location,omitempty"`
}

type ratingResponse struct {
	Success bool               `json:"success"`
	Rating  domain.RatingEvent `json:"rating"`
}

func (c *Client) SubmitRating(ctx context.Context, r RatingRequest) (domain.RatingEvent, error) {
	var out ratingResponse
	if err := c.do(ctx, http.MethodPost, "/api/rate", nil, r, &out); err != nil {
		return domain.RatingEvent{}, err
	}
	return out.Rating, nil
}

// SubmitVote adapta un voto de la tarjeta a POST /api/rate.
func (c *Client) SubmitVote(ctx context.Context, v swipe.Vote) error {
	_, err := c.SubmitRating(ctx, RatingRequest{
		OfficialID: v.OfficialID,
		BioguideID: v.BioguideID,
		Rating:     float64(v.Rating),
		Direction:  string(v.Direction),
		Location:   v.Location,
	})
	return err
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &envelope)
		return &HTTPError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func setIf(q url.Values, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		q.Set(key, v)
	}
}
