package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is where the client is in its request cycle
type State int

const (
	Idle State = iota
	Loading
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	// DefaultEndpoint is where the suggestion service listens in development
	DefaultEndpoint = "http://localhost:5000/api/suggest-recipes"
	// DefaultTimeout bounds a single request so a hung service cannot pin the client in Loading
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 4 << 20
)

var (
	// ErrRequestInFlight is returned by Submit while a previous request is still loading
	ErrRequestInFlight = errors.New("a suggestion request is already in flight")
	// ErrFetchFailed wraps transport faults and non-2xx answers
	ErrFetchFailed = errors.New("failed to fetch recipes")
	// ErrDiscarded is returned when Reset ran while the request was in flight
	ErrDiscarded = errors.New("suggestion response discarded after reset")
)

// Snapshot is a copy of the client's observable state
type Snapshot struct {
	State   State
	Recipes []Recipe // nil until the first successful request
	Err     string
}

// Loading reports whether a request is outstanding
func (s Snapshot) Loading() bool {
	return s.State == Loading
}

// Client posts ingredient lists to the suggestion service and keeps the latest
// outcome. At most one request is outstanding at a time.
type Client struct {
	endpoint       string
	http           *http.Client
	logger         *zap.Logger
	clearOnFailure bool

	mu         sync.Mutex
	state      State
	recipes    []Recipe
	err        string
	generation uint64
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout; zero disables it
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithClearOnFailure drops previously displayed recipes when a request fails.
// By default a failure leaves the last successful result in place.
func WithClearOnFailure() Option {
	return func(c *Client) {
		c.clearOnFailure = true
	}
}

// NewClient creates a client for the service at endpoint
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the service URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Snapshot returns a copy of the current state
func (c *Client) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:   c.state,
		Recipes: cloneRecipes(c.recipes),
		Err:     c.err,
	}
}

// Reset returns the client to Idle and drops results. A request in flight is
// allowed to finish but its response is discarded.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.state = Idle
	c.recipes = nil
	c.err = ""
}

// Submit sends the draft's non-empty ingredients. The draft is read before
// Submit returns control to the network, so callers editing it from another
// goroutine should use SubmitRequest with a request built on their own goroutine.
func (c *Client) Submit(ctx context.Context, d *Draft) ([]Recipe, error) {
	return c.SubmitRequest(ctx, d.Request())
}

// SubmitRequest sends req and blocks until the outcome is recorded. It returns
// ErrRequestInFlight without side effects when another request is loading.
func (c *Client) SubmitRequest(ctx context.Context, req Request) ([]Recipe, error) {
	gen, ok := c.begin()
	if !ok {
		c.logger.Debug("ignoring submission while loading")
		return nil, ErrRequestInFlight
	}

	c.logger.Debug("requesting suggestions",
		zap.String("endpoint", c.endpoint),
		zap.Int("ingredients", len(req.Ingredients)),
	)

	recipes, err := c.fetch(ctx, req)
	if !c.finish(gen, recipes, err) {
		return nil, ErrDiscarded
	}
	if err != nil {
		c.logger.Warn("suggestion request failed", zap.Error(err))
		return nil, err
	}
	c.logger.Debug("suggestions received", zap.Int("recipes", len(recipes)))
	return cloneRecipes(recipes), nil
}

func (c *Client) begin() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Loading {
		return 0, false
	}
	c.generation++
	c.state = Loading
	c.err = ""
	return c.generation, true
}

// finish records the outcome of request gen. It reports false when the request
// was superseded by Reset.
func (c *Client) finish(gen uint64, recipes []Recipe, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	if err != nil {
		c.state = Failed
		c.err = err.Error()
		if c.clearOnFailure {
			c.recipes = nil
		}
		return true
	}
	c.state = Success
	c.recipes = recipes
	return true
}

func (c *Client) fetch(ctx context.Context, req Request) ([]Recipe, error) {
	if req.Ingredients == nil {
		req.Ingredients = []string{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetchFailed, err)
	}

	return DecodeResponse(data)
}

func cloneRecipes(in []Recipe) []Recipe {
	if in == nil {
		return nil
	}
	out := make([]Recipe, len(in))
	for i, r := range in {
		out[i] = r
		if r.Ingredients != nil {
			out[i].Ingredients = make([]Ingredient, len(r.Ingredients))
			copy(out[i].Ingredients, r.Ingredients)
		}
	}
	return out
}
