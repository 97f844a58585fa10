package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/tada/internal/model"
)

// DefaultURL serves the demo todo list of user 1.
const DefaultURL = "https://jsonplaceholder.typicode.com/users/1/todos"

// ResponseError is returned for non-2xx replies.
type ResponseError struct {
	StatusCode int
	Status     string
}

func (e *ResponseError) Error() string {
	if e.Status != "" {
		return "request failed with status " + e.Status
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return fmt.Sprintf("request failed with status %d %s", e.StatusCode, text)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client issues a single GET per call and decodes the JSON body.
// No retries are attempted.
type Client struct {
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }
func WithUserAgent(ua string) Option        { return func(c *Client) { c.userAgent = ua } }
func WithLogger(l zerolog.Logger) Option    { return func(c *Client) { c.log = l } }

func NewClient(opts ...Option) *Client {
	c := &Client{http: http.DefaultClient, log: zerolog.Nop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GetJSON fetches url and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer res.Body.Close()

	c.log.Debug().Str("url", url).Int("status", res.StatusCode).Msg("http response")
	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return &ResponseError{StatusCode: res.StatusCode, Status: res.Status}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Todos returns a Loader reading the todo array served at url. A payload
// repeating an id is rejected.
func (c *Client) Todos(url string) Loader[[]model.Item] {
	return func(ctx context.Context) ([]model.Item, error) {
		var items []model.Item
		if err := c.GetJSON(ctx, url, &items); err != nil {
			return nil, err
		}
		if err := model.ValidateIDs(items); err != nil {
			return nil, fmt.Errorf("payload: %w", err)
		}
		if items == nil {
			items = []model.Item{}
		}
		return items, nil
	}
}
