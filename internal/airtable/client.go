package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.airtable.com/v0"
	// MaxBatchSize es el limite de registros por request de escritura.
	MaxBatchSize = 10
)

var ErrNotConfigured = errors.New("airtable client not configured")

// APIError representa una respuesta no-2xx de la API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("airtable http error: status=%d type=%s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("airtable http error: status=%d type=%s", e.StatusCode, e.Type)
}

type SortField struct {
	Field     string
	Direction string // "asc" | "desc"
}

type ListOptions struct {
	Filter     string
	MaxRecords int
	Sort       []SortField
}

// Client habla con la API REST de Airtable para una base concreta. No reintenta.
type Client struct {
	baseURL string
	baseID  string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient construye un cliente; baseURL vacio usa la API publica.
func NewClient(baseURL, baseID, apiKey string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		baseID:  baseID,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// List trae todas las paginas que matchean las opciones.
func (c *Client) List(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	var (
		records []Record
		offset  string
	)
	for {
		params := url.Values{}
		if opts.Filter != "" {
			params.Set("filterByFormula", opts.Filter)
		}
		if opts.MaxRecords > 0 {
			params.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
		}
		for i, s := range opts.Sort {
			params.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
			dir := s.Direction
			if dir == "" {
				dir = "asc"
			}
			params.Set(fmt.Sprintf("sort[%d][direction]", i), dir)
		}
		if offset != "" {
			params.Set("offset", offset)
		}

		var page listResponse
		if err := c.do(ctx, http.MethodGet, c.tableURL(table)+"?"+params.Encode(), nil, &page); err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		if opts.MaxRecords > 0 && len(records) >= opts.MaxRecords {
			return records[:opts.MaxRecords], nil
		}
		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

// Create inserta un registro y devuelve el registro creado.
func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (Record, error) {
	var rec Record
	err := c.do(ctx, http.MethodPost, c.tableURL(table), writeRequest{Fields: fields, Typecast: true}, &rec)
	return rec, err
}

// CreateBatch inserta hasta MaxBatchSize registros en un solo request.
func (c *Client) CreateBatch(ctx context.Context, table string, batch []map[string]any) ([]Record, error) {
	if len(batch) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d exceeds limit of %d", len(batch), MaxBatchSize)
	}
	body := batchRequest{Typecast: true}
	for _, fields := range batch {
		body.Records = append(body.Records, writeRequest{Fields: fields})
	}
	var resp listResponse
	if err := c.do(ctx, http.MethodPost, c.tableURL(table), body, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// Update hace PATCH parcial de un registro.
func (c *Client) Update(ctx context.Context, table, id string, fields map[string]any) (Record, error) {
	var rec Record
	err := c.do(ctx, http.MethodPatch, c.tableURL(table)+"/"+url.PathEscape(id), writeRequest{Fields: fields, Typecast: true}, &rec)
	return rec, err
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c == nil || c.apiKey == "" || c.baseID == "" {
		return ErrNotConfigured
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
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := parseAPIError(resp.StatusCode, respBody)
		c.logger.Warn("airtable error",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
			zap.String("type", apiErr.Type),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// parseAPIError acepta las dos formas de error: {"error":"NOT_FOUND"} y {"error":{"type":..,"message":..}}.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return apiErr
	}
	var typ string
	if err := json.Unmarshal(envelope.Error, &typ); err == nil {
		apiErr.Type = typ
		return apiErr
	}
	var detailed struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &detailed); err == nil {
		apiErr.Type = detailed.Type
		apiErr.Message = detailed.Message
	}
	return apiErr
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type writeRequest struct {
	Fields   map[string]any `json:"fields"`
	Typecast bool           `json:"typecast,omitempty"`
}

type batchRequest struct {
	Records  []writeRequest `json:"records"`
	Typecast bool           `json:"typecast,omitempty"`
}
