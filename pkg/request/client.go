package request

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/henvic/httpretty"
	"go.uber.org/zap"
)

// ClientName identifies this tool in the headers it always sends.
const ClientName = "htty"

// Client performs a single HTTP round-trip per invocation. It is configured
// once and read-only afterwards.
type Client struct {
	rc *resty.Client
}

type clientConfig struct {
	userAgent string
	timeout   time.Duration
	trace     bool
	log       *zap.SugaredLogger
}

type Option func(*clientConfig)

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithTimeout sets an overall request timeout. Zero means the transport's
// own defaults apply.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithTrace dumps the outgoing request on stderr.
func WithTrace(enabled bool) Option {
	return func(c *clientConfig) {
		c.trace = enabled
	}
}

// WithLogger wires a logger into the underlying HTTP client.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *clientConfig) {
		c.log = log
	}
}

// NewClient builds the process-wide client with its fixed default headers.
func NewClient(opts ...Option) *Client {
	cfg := clientConfig{
		userAgent: ClientName,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	rc := resty.New()
	rc.SetHeader("X-POWERED-BY", ClientName)
	rc.SetHeader("User-Agent", cfg.userAgent)
	if cfg.timeout > 0 {
		rc.SetTimeout(cfg.timeout)
	}
	if cfg.log != nil {
		rc.SetLogger(cfg.log)
	}
	if cfg.trace {
		pretty := &httpretty.Logger{
			Time:          true,
			TLS:           true,
			RequestHeader: true,
			RequestBody:   true,
			Colors:        true,
		}
		pretty.SetOutput(os.Stderr)
		rc.SetTransport(pretty.RoundTripper(http.DefaultTransport))
	}

	return &Client{rc: rc}
}

// Get issues a GET request and blocks until the response arrives.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	resp, err := c.rc.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	return newResponse(resp), nil
}

// Post issues a POST request with body serialized as a JSON object and
// blocks until the response arrives.
func (c *Client) Post(ctx context.Context, url string, body map[string]string) (*Response, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", url, err)
	}
	return newResponse(resp), nil
}

func newResponse(r *resty.Response) *Response {
	proto := ""
	if r.RawResponse != nil {
		proto = r.RawResponse.Proto
	}
	return &Response{
		Proto:        proto,
		StatusCode:   r.StatusCode(),
		StatusPhrase: http.StatusText(r.StatusCode()),
		Headers:      Header(r.Header()),
		Body:         r.Body(),
	}
}
