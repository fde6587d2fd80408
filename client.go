package meteolux

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Version is reported in the default User-Agent.
const Version = "0.1.0"

// Client is an explicit session against the MeteoLux API: one base address
// and one shared transport. It is safe for concurrent use and is released
// once with Close.
type Client struct {
	baseURL   string
	hc        *http.Client
	log       zerolog.Logger
	metrics   *collector
	userAgent string

	closeOnce sync.Once
}

type options struct {
	baseURL   string
	hc        *http.Client
	timeout   time.Duration
	log       zerolog.Logger
	reg       prometheus.Registerer
	userAgent string
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL overrides the API root address.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient supplies a caller-owned transport. Its settings, including
// timeouts, stay the caller's responsibility; WithTimeout does not apply to
// it.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.hc = hc }
}

// WithTimeout overrides the default 10 second per-request timeout of the
// built-in transport.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger attaches a logger. One event is emitted per request.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.reg = reg }
}

// New builds a Client. Without options it talks to the production API with
// a 10 second timeout, no logging and no metrics.
func New(opts ...Option) (*Client, error) {
	o := options{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		log:       zerolog.Nop(),
		userAgent: "meteolux-go/" + Version,
	}
	for _, opt := range opts {
		opt(&o)
	}

	base := strings.TrimSuffix(o.baseURL, "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("meteolux: invalid base url %q: %w", o.baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("meteolux: invalid base url %q", o.baseURL)
	}

	hc := o.hc
	if hc == nil {
		hc = &http.Client{Timeout: o.timeout}
	}

	c := &Client{
		baseURL:   base,
		hc:        hc,
		log:       o.log,
		userAgent: o.userAgent,
	}
	if o.reg != nil {
		c.metrics = newCollector(o.reg)
	}
	return c, nil
}

// NewFromConfig builds a Client from cfg. Options still apply on top.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	base := make([]Option, 0, 3+len(opts))
	if cfg.BaseURL != "" {
		base = append(base, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		base = append(base, WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		base = append(base, WithUserAgent(cfg.UserAgent))
	}
	return New(append(base, opts...)...)
}

// BaseURL returns the normalized API root this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle transport connections. It is safe to call more than
// once; it must not be called while requests are still in flight.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hc.CloseIdleConnections()
	})
}
