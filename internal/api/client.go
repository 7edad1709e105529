package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/raphi011/brewlog/internal/fetchcache"
	"github.com/raphi011/brewlog/internal/log"
)

// Defaults for Config fields left zero.
const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "brewlog"
	DefaultAITries   = 2
	DefaultAITimeout = 10 * time.Second
)

// Cache lifetimes per resource.
const (
	DefaultCoffeeTTL     = 60 * time.Second
	DefaultCoffeeListTTL = 60 * time.Second
	DefaultBrewLogTTL    = 10 * time.Second
	DefaultBrewLogsTTL   = 30 * time.Second
)

// TokenSource supplies the bearer token for outgoing requests.
// An empty token means the request is sent anonymously.
type TokenSource interface {
	Token() string
}

// UnauthorizedHandler is told when an authenticated request gets a 401.
type UnauthorizedHandler interface {
	HandleUnauthorized(ctx context.Context)
}

// TTLs holds the cache lifetime per resource.
type TTLs struct {
	Coffee     time.Duration
	CoffeeList time.Duration
	BrewLog    time.Duration
	BrewLogs   time.Duration
}

// Config configures a Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// RateLimit caps requests per second. Zero disables limiting.
	RateLimit float64
	TTL       TTLs
	AITries   int
	AITimeout time.Duration

	HTTPClient *http.Client
	Cache      *fetchcache.Cache
	Clock      clockwork.Clock
}

// Client talks to the brew log service.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
	ttl       TTLs
	aiTries   int
	aiTimeout time.Duration
	cache     *fetchcache.Cache
	clock     clockwork.Clock
	tokens    TokenSource

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

// New creates a client. tokens may be nil for a client that never
// authenticates.
func New(cfg Config, tokens TokenSource) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", raw)
	}

	c := &Client{
		base:      base,
		http:      cfg.HTTPClient,
		userAgent: cfg.UserAgent,
		ttl:       cfg.TTL,
		aiTries:   cfg.AITries,
		aiTimeout: cfg.AITimeout,
		cache:     cfg.Cache,
		clock:     cfg.Clock,
		tokens:    tokens,
	}
	if c.http == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	if c.ttl.Coffee <= 0 {
		c.ttl.Coffee = DefaultCoffeeTTL
	}
	if c.ttl.CoffeeList <= 0 {
		c.ttl.CoffeeList = DefaultCoffeeListTTL
	}
	if c.ttl.BrewLog <= 0 {
		c.ttl.BrewLog = DefaultBrewLogTTL
	}
	if c.ttl.BrewLogs <= 0 {
		c.ttl.BrewLogs = DefaultBrewLogsTTL
	}
	if c.aiTries <= 0 {
		c.aiTries = DefaultAITries
	}
	if c.aiTimeout <= 0 {
		c.aiTimeout = DefaultAITimeout
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.cache == nil {
		c.cache = fetchcache.New(fetchcache.WithClock(c.clock), fetchcache.WithFetchTimeout(c.http.Timeout))
	}
	return c, nil
}

// SetUnauthorizedHandler installs the handler told about 401 responses.
func (c *Client) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

// Cache returns the response cache.
func (c *Client) Cache() *fetchcache.Cache {
	return c.cache
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// requestURI renders path plus query as used for cache keys.
func requestURI(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// do sends a request and returns the response body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := c.token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	done := log.FromContext(ctx).Request(method, requestURI(path, query))
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		done(0, time.Since(start))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	done(resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			c.mu.RLock()
			h := c.onUnauthorized
			c.mu.RUnlock()
			if h != nil {
				h.HandleUnauthorized(ctx)
			}
		}
		return nil, newStatusError(method, path, requestID, resp.StatusCode, data)
	}
	return data, nil
}

// send runs a non-GET request and decodes the response into out, which
// may be nil.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	data, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	return decode(method, path, data, out)
}

// get fetches path through the cache and decodes it into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, opts fetchcache.Options, out any) error {
	data, err := c.cache.Get(ctx, requestURI(path, query), opts, func(ctx context.Context) ([]byte, error) {
		return c.do(ctx, http.MethodGet, path, query, nil)
	})
	if err != nil {
		return err
	}
	return decode(http.MethodGet, path, data, out)
}

func decode(method, path string, data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
