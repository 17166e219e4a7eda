package moex

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/statements/date"
	"go.uber.org/zap"
)

// logTransport logs every request that reaches the network.
type logTransport struct {
	base http.RoundTripper
	log  *zap.Logger
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Warn("http request failed", zap.String("url", req.URL.String()), zap.Error(err))
		return nil, err
	}
	t.log.Debug("http request", zap.String("method", req.Method), zap.String("url", req.URL.String()), zap.Int("status", resp.StatusCode))
	return resp, nil
}

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
	dir  string
	log  *zap.Logger
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskcache implements a unique key per day, so the local files expire every day.
	key := fmt.Sprintf("%s %s %s", date.Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		c.log.Debug("http cache hit", zap.String("url", req.URL.String()))
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache
	if err := c.put(key, resp); err != nil {
		c.log.Warn("cache write error (ignored)", zap.Error(err))
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	// DumpResponse reads the body and replaces it with an in-memory copy.
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}
