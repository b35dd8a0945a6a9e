package serviceability

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ssroyels/Trendex/pkg/httpclient"
)

// httpDoer is the client surface used to reach the pincode API. Satisfied by
// both httpclient.Client and httpclient.CircuitBreakerClient.
type httpDoer interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Client checks whether a pincode is within deliverable range by querying
// the external pincode list API.
type Client struct {
	http   httpDoer
	url    string
	logger *slog.Logger
}

// NewClient builds a serviceability client. The pincode API is an external
// dependency, so callers wrap the HTTP client in a circuit breaker.
func NewClient(httpClient httpDoer, url string, logger *slog.Logger) *Client {
	return &Client{http: httpClient, url: url, logger: logger}
}

// NewDefaultClient builds a client with the standard retrying HTTP client
// wrapped in a circuit breaker.
func NewDefaultClient(url string, logger *slog.Logger) *Client {
	inner := httpclient.New(httpclient.DefaultConfig())
	cb := httpclient.NewCircuitBreakerClient(inner, httpclient.DefaultCircuitBreakerConfig("pincode-api"), logger)
	return NewClient(cb, url, logger)
}

// IsServiceable reports whether the given pincode appears in the deliverable
// list. The upstream API returns a JSON array of pincodes, historically a
// mix of numbers and strings, so values are compared as strings.
func (c *Client) IsServiceable(ctx context.Context, pincode string) (bool, error) {
	resp, err := c.http.Get(ctx, c.url)
	if err != nil {
		return false, fmt.Errorf("fetch pincode list: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, httpclient.ParseResponseError(resp, "pincode-api")
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var pins []any
	if err := dec.Decode(&pins); err != nil {
		return false, fmt.Errorf("decode pincode list: %w", err)
	}

	for _, pin := range pins {
		var s string
		switch v := pin.(type) {
		case json.Number:
			s = v.String()
		case string:
			s = v
		default:
			continue
		}
		if s == pincode {
			return true, nil
		}
	}

	c.logger.DebugContext(ctx, "pincode not serviceable", slog.String("pincode", pincode))
	return false, nil
}
