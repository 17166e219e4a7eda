// Package moex provides market data from the Moscow Exchange ISS API.
//
// Intraday quotes are kept in memory for a short time, reference data (names,
// bond schedules) is cached on disk for the day.
package moex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public ISS endpoint.
const DefaultBaseURL = "https://iss.moex.com/iss"

// Config configures a Client.
type Config struct {
	BaseURL  string        // defaults to DefaultBaseURL
	Timeout  time.Duration // per request, zero means no timeout
	CacheTTL time.Duration // lifetime of intraday quotes, defaults to one minute
	// CacheDir holds the daily cache of reference data. Empty disables it.
	CacheDir string
}

// Client queries the ISS API. It is safe for concurrent use.
type Client struct {
	base   string
	quotes *http.Client // never cached on disk
	daily  *http.Client
	cache  *cache.Cache
	log    *zap.Logger
}

// NewClient returns a Client. A nil log discards logs.
func NewClient(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	transport := &logTransport{base: http.DefaultTransport, log: log}
	c := &Client{
		base:   cfg.BaseURL,
		quotes: &http.Client{Timeout: cfg.Timeout, Transport: transport},
		daily:  &http.Client{Timeout: cfg.Timeout, Transport: transport},
		cache:  cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		log:    log,
	}
	if cfg.CacheDir != "" {
		c.daily.Transport = &diskCache{base: transport, dir: cfg.CacheDir, log: log}
	}
	return c
}

// jwget performs an HTTP GET request on the ISS path and returns the decoded JSON document.
func (c *Client) jwget(ctx context.Context, client *http.Client, path string, query url.Values) (any, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("iss.meta", "off")
	addr := c.base + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(buf.Bytes(), &jobj); err != nil {
		return nil, fmt.Errorf("invalid json from %v: %w", resp.Request.URL.Path, err)
	}
	return jobj, nil
}

// issTable is an ISS data block: named columns and rows of values.
type issTable struct {
	columns map[string]int
	rows    [][]any
}

// table extracts the ISS block at path, e.g. "$.marketdata".
func table(jobj any, path string) (*issTable, error) {
	jcols, err := jsonpath.Get(path+".columns", jobj)
	if err != nil {
		return nil, fmt.Errorf("no %s columns: %w", path, err)
	}
	jrows, err := jsonpath.Get(path+".data", jobj)
	if err != nil {
		return nil, fmt.Errorf("no %s data: %w", path, err)
	}
	cols, ok := jcols.([]any)
	if !ok {
		return nil, fmt.Errorf("%s columns is not a list: %v", path, jcols)
	}
	rows, ok := jrows.([]any)
	if !ok {
		return nil, fmt.Errorf("%s data is not a list: %v", path, jrows)
	}

	t := &issTable{columns: make(map[string]int, len(cols))}
	for i, col := range cols {
		if name, ok := col.(string); ok {
			t.columns[name] = i
		}
	}
	for _, r := range rows {
		if row, ok := r.([]any); ok {
			t.rows = append(t.rows, row)
		}
	}
	return t, nil
}

// value returns the cell of row in column, nil if either is missing.
func (t *issTable) value(row []any, column string) any {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return nil
	}
	return row[i]
}
