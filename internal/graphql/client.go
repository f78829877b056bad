package graphql

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const DefaultUserAgent = "charview"

// Client is an explicitly constructed GraphQL client bound to one endpoint.
// It is built once at startup and read-only afterwards.
type Client struct {
	Endpoint *url.URL
	HTTP     *http.Client

	userAgent string
	// inner is the transport chain below the auth layer, kept so idle
	// connections can be released even when oauth2 wraps it.
	inner http.RoundTripper
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	if c == nil {
		return
	}
	closeIdle(c.inner)
}

type options struct {
	token     string
	logger    *zap.Logger
	base      http.RoundTripper
	userAgent string
}

type Option func(*options)

// WithToken sends the token as an OAuth2 bearer credential on every request.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = strings.TrimSpace(token)
	}
}

// WithVerbose logs one line per request and response (including latency).
// A nil logger disables request logging.
func WithVerbose(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTransport replaces the base transport (http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.base = rt
	}
}

func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// loggingRoundTripper wraps an underlying transport and emits one debug entry
// per request and response. Fetch failures are left to the caller.
type loggingRoundTripper struct {
	base   http.RoundTripper
	logger *zap.Logger
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	reqID := req.Header.Get(HeaderRequestID)
	t.logger.Debug("graphql request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("request_id", reqID))

	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start).Truncate(time.Millisecond)
	if err != nil {
		t.logger.Debug("graphql transport error",
			zap.String("request_id", reqID),
			zap.Duration("elapsed", dur),
			zap.Error(err))
		return resp, err
	}
	t.logger.Debug("graphql response",
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", dur))
	return resp, nil
}

// requestIDRoundTripper stamps every outgoing request with a fresh id so
// server-side logs can be correlated with verbose client logs.
type requestIDRoundTripper struct {
	base http.RoundTripper
}

func (t *requestIDRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(HeaderRequestID) != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set(HeaderRequestID, uuid.NewString())
	return t.base.RoundTrip(clone)
}

const HeaderRequestID = "X-Request-Id"

type closeIdler interface {
	CloseIdleConnections()
}

func closeIdle(rt http.RoundTripper) {
	if c, ok := rt.(closeIdler); ok {
		c.CloseIdleConnections()
	}
}

func (t *loggingRoundTripper) CloseIdleConnections()   { closeIdle(t.base) }
func (t *requestIDRoundTripper) CloseIdleConnections() { closeIdle(t.base) }

func NewClient(ctx context.Context, endpoint string, opts ...Option) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("graphql client: ctx is nil")
	}

	u, err := ParseEndpoint(endpoint)
	if err != nil {
		return nil, fmt.Errorf("graphql client: %w", err)
	}

	o := &options{userAgent: DefaultUserAgent}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}

	transport := o.base
	if transport == nil {
		transport = http.DefaultTransport
	}
	if o.logger != nil {
		transport = &loggingRoundTripper{base: transport, logger: o.logger}
	}
	transport = &requestIDRoundTripper{base: transport}
	inner := transport
	if o.token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}

	return &Client{
		Endpoint:  u,
		HTTP:      &http.Client{Transport: transport},
		userAgent: o.userAgent,
		inner:     inner,
	}, nil
}

// ParseEndpoint validates that raw is an absolute http(s) URL.
func ParseEndpoint(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: missing host", raw)
	}
	u.Fragment = ""
	return u, nil
}
