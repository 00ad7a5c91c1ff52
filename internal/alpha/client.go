// Package alpha is the gateway to the hosted alpha table. It speaks the
// PostgREST wire shape the table is served over: a single full-table
// select returning a JSON array of flat records.
package alpha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"platewatch/internal/registry"
)

// Fetcher defines the interface for fetching the alpha table.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchRows(ctx context.Context) (registry.Snapshot, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the hosted table's query endpoint.
type Client struct {
	baseURL   *url.URL
	key       string
	http      *http.Client
	userAgent string
}

const (
	tablePath        = "/rest/v1/alpha"
	selectColumns    = "id,plate_number,call_sign"
	defaultUserAgent = "platewatch/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for the given endpoint URL and access key.
// Both are required; the gateway is unusable without them.
func NewClient(endpoint, key string) (*Client, error) {
	base, err := parseBaseURL(endpoint)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("access key is required")
	}
	return &Client{
		baseURL: base,
		key:     strings.TrimSpace(key),
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchRows issues one full-table read and maps the records into a
// Snapshot. A remote table with zero rows yields an empty Snapshot, not
// an error.
func (c *Client) FetchRows(ctx context.Context) (registry.Snapshot, error) {
	if c == nil {
		return registry.Snapshot{}, fmt.Errorf("client is nil")
	}
	rel := &url.URL{
		Path:     tablePath,
		RawQuery: url.Values{"select": {selectColumns}, "order": {"id.asc"}}.Encode(),
	}
	var records []map[string]json.RawMessage
	if err := c.doURL(ctx, rel, &records); err != nil {
		return registry.Snapshot{}, err
	}

	rows := make([]registry.Row, 0, len(records))
	for i, rec := range records {
		row, err := mapRecord(rec)
		if err != nil {
			return registry.Snapshot{}, fmt.Errorf("record %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return registry.Snapshot{Rows: rows, CapturedAt: time.Now()}, nil
}

// mapRecord converts one flat record into a Row. Every selected column
// must be present; a null value reads as the zero value.
func mapRecord(rec map[string]json.RawMessage) (registry.Row, error) {
	var row registry.Row
	if err := decodeColumn(rec, "id", &row.ID); err != nil {
		return registry.Row{}, err
	}
	if err := decodeColumn(rec, "plate_number", &row.PlateNumber); err != nil {
		return registry.Row{}, err
	}
	if err := decodeColumn(rec, "call_sign", &row.CallSign); err != nil {
		return registry.Row{}, err
	}
	return row, nil
}

func decodeColumn[T any](rec map[string]json.RawMessage, column string, dest *T) error {
	raw, ok := rec[column]
	if !ok {
		return fmt.Errorf("column %q missing from response", column)
	}
	if string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("column %q: %w", column, err)
	}
	return nil
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("table endpoint %s returned status %d", rel.Path, resp.StatusCode)
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("endpoint URL is required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
