// Package govtrack is a client for the GovTrack v2 API. It can record live
// responses and later replay them from a cache file with no network access.
package govtrack

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/govtrack/cache"
)

const (
	DefaultBaseURL   = "https://www.govtrack.us/api/v2/"
	DefaultUserAgent = "RealTimeWeb GovTrack library for educational purposes"

	modeOnline  = "online"
	modeOffline = "offline"
)

// Client talks to GovTrack, or to its replay cache while disconnected.
// It is safe for concurrent use.
type Client struct {
	http      *http.Client
	timeout   time.Duration
	baseURL   string
	userAgent string

	cache   cache.ReplayCache
	offline atomic.Bool

	logger  zerolog.Logger
	metrics *MetricsCollector
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURL(raw string) Option {
	return func(c *Client) { c.baseURL = raw }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds each live request, whatever HTTP client ends up in use.
// Zero leaves the HTTP client's own setting alone.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithCache replaces the default in-memory store
func WithCache(rc cache.ReplayCache) Option {
	return func(c *Client) { c.cache = rc }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(mc *MetricsCollector) Option {
	return func(c *Client) { c.metrics = mc }
}

// New returns a connected client with an empty cache.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		http:      http.DefaultClient,
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		cache:     cache.NewStore(),
		logger:    zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}

	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", c.baseURL)
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	return c, nil
}

// Cache exposes the replay cache the client records into and reads from.
func (c *Client) Cache() cache.ReplayCache {
	return c.cache
}

// Online reports whether fetches go to the network.
func (c *Client) Online() bool {
	return !c.offline.Load()
}

// Mode returns "online" or "offline".
func (c *Client) Mode() string {
	if c.Online() {
		return modeOnline
	}
	return modeOffline
}

// Connect switches to live requests. Loaded cache contents are kept.
func (c *Client) Connect() {
	c.offline.Store(false)
	c.logger.Info().Msg("govtrack connected")
}

// GoOffline switches to replaying from the cache without loading anything.
func (c *Client) GoOffline() {
	c.offline.Store(true)
	c.logger.Info().Msg("govtrack disconnected")
}

// LoadCache replaces the cache contents with the file at path. On failure
// the current contents are kept.
func (c *Client) LoadCache(path string) error {
	if err := c.cache.Load(path); err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("cache load failed")
		c.metrics.RecordError(KindCacheLoad)
		return newError(KindCacheLoad, err, "the cache file %q was not found or is unreadable", path)
	}
	c.logger.Info().Str("path", path).Msg("cache loaded")
	return nil
}

// Disconnect loads the cache file at path and then goes offline. The mode is
// unchanged if the file cannot be loaded.
func (c *Client) Disconnect(path string) error {
	if err := c.LoadCache(path); err != nil {
		return err
	}
	c.GoOffline()
	return nil
}

// BeginRecording appends every successful live response to the cache.
func (c *Client) BeginRecording(policy cache.Policy) {
	c.cache.BeginRecording(policy)
	c.logger.Info().Str("policy", string(policy)).Msg("recording started")
}

func (c *Client) EndRecording() {
	c.cache.EndRecording()
	c.logger.Info().Msg("recording stopped")
}

// SaveCache writes the cache contents to path.
func (c *Client) SaveCache(path string) error {
	if err := c.cache.Save(path); err != nil {
		return fmt.Errorf("save cache %s: %w", path, err)
	}
	c.logger.Info().Str("path", path).Msg("cache saved")
	return nil
}
