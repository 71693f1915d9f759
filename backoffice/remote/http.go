package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"encore.app/backoffice/apperr"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second

	maxResponseBytes = 8 << 20
)

type HTTPClient struct {
	base         *url.URL
	endpoint     Endpoint
	http         *http.Client
	token        string
	readTimeout  time.Duration
	writeTimeout time.Duration
	extractors   []apperr.Extractor
}

type Option func(*HTTPClient)

func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(h *HTTPClient) { h.token = token }
}

// WithTimeouts bounds list calls by read and mutations by write.
func WithTimeouts(read, write time.Duration) Option {
	return func(h *HTTPClient) {
		if read > 0 {
			h.readTimeout = read
		}
		if write > 0 {
			h.writeTimeout = write
		}
	}
}

// WithExtractors replaces the error message extractors.
func WithExtractors(extractors ...apperr.Extractor) Option {
	return func(h *HTTPClient) { h.extractors = extractors }
}

func NewHTTPClient(baseURL string, endpoint Endpoint, opts ...Option) (*HTTPClient, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &HTTPClient{
		base:         base,
		endpoint:     endpoint,
		http:         http.DefaultClient,
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) List(ctx context.Context, params url.Values) (any, error) {
	return c.do(ctx, "list", http.MethodGet, c.endpoint.Path, params, nil, c.readTimeout)
}

func (c *HTTPClient) Create(ctx context.Context, body map[string]any) (any, error) {
	return c.do(ctx, "create", http.MethodPost, c.endpoint.Path, nil, body, c.writeTimeout)
}

func (c *HTTPClient) Update(ctx context.Context, id int64, body map[string]any) (any, error) {
	return c.do(ctx, "update", http.MethodPut, c.itemPath(id)+c.endpoint.UpdateSuffix, nil, body, c.writeTimeout)
}

func (c *HTTPClient) Remove(ctx context.Context, id int64) (any, error) {
	return c.do(ctx, "remove", http.MethodDelete, c.itemPath(id), nil, nil, c.writeTimeout)
}

func (c *HTTPClient) Action(ctx context.Context, name string, query url.Values, body map[string]any) (any, error) {
	return c.do(ctx, name, http.MethodPost, c.endpoint.Path+"/"+url.PathEscape(name), query, body, c.writeTimeout)
}

func (c *HTTPClient) itemPath(id int64) string {
	return c.endpoint.Path + "/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) do(
	ctx context.Context,
	op, method, path string,
	query url.Values,
	body map[string]any,
	timeout time.Duration,
) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &apperr.TransportError{
			Op:       op,
			Resource: string(c.endpoint.Resource),
			Timeout:  isTimeout(err),
			Err:      err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &apperr.TransportError{
			Op:       op,
			Resource: string(c.endpoint.Resource),
			Status:   resp.StatusCode,
			Timeout:  isTimeout(err),
			Err:      fmt.Errorf("read body: %w", err),
		}
	}
	decoded := decodeBody(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperr.TransportError{
			Op:       op,
			Resource: string(c.endpoint.Resource),
			Status:   resp.StatusCode,
			Message:  apperr.ExtractMessage(decoded, c.extractors...),
		}
	}
	return decoded, nil
}

// decodeBody returns nil for an empty body and the trimmed text for a body that
// is not JSON.
func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(trimmed)
	}
	return v
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
