package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kbukum/httpflow/admission"
	"github.com/kbukum/httpflow/logger"
	"github.com/kbukum/httpflow/mapper"
	"github.com/kbukum/httpflow/resilience"
)

// Client is an immutable HTTP client. Every configuration method
// returns a derived copy; the receiver is never changed, so clients can
// be shared freely across goroutines and layered: configure a base
// client once, then derive per-endpoint variants from it.
//
// Derived clients share the admission pool of the client they came
// from, so a concurrency cap spans the whole family. MaxConcurrency
// starts a new family with its own pool.
type Client struct {
	cfg     Config
	hc      *http.Client
	scope   *admission.Scope
	limiter *resilience.RateLimiter
	log     *logger.Logger

	req     Request
	factory mapper.Factory
	bodyMap BodyMapper
}

// New creates a client from the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := admission.NewPool(cfg.MaxConcurrency)
	if err != nil {
		return nil, NewConfigError(err.Error())
	}

	var limiter *resilience.RateLimiter
	if cfg.RateLimit != nil {
		limiter = resilience.NewRateLimiter(*cfg.RateLimit)
	}

	req := newRequest(cfg.BaseURL)
	for k, v := range cfg.Headers {
		req = req.setHeader(k, closed(v))
	}

	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		scope:   pool.Scope(),
		limiter: limiter,
		log:     logger.New(&cfg.Logging, "httpflow").WithComponent("client"),
		req:     req,
		factory: mapper.Void(),
		bodyMap: JSONBody(),
	}, nil
}

// NewDefault creates a client with default configuration.
func NewDefault() *Client {
	c, err := New(Config{})
	if err != nil {
		// the zero config always validates
		panic(err)
	}
	return c
}

// clone returns a copy sharing the pool, transport, and logger.
func (c *Client) clone() *Client {
	dup := *c
	return &dup
}

// --- request configuration ---

// Method sets the HTTP method.
func (c *Client) Method(method string) *Client {
	dup := c.clone()
	dup.req = dup.req.withMethod(method)
	return dup
}

// URL replaces the base URL. Path and query embedded in the URL are
// split out and replace any previously configured path and query.
func (c *Client) URL(rawURL string) *Client {
	dup := c.clone()
	dup.req = dup.req.withURL(rawURL)
	return dup
}

// Path replaces the request path. Segments of the form {name} are
// templates filled by PathParam.
func (c *Client) Path(path string) *Client {
	dup := c.clone()
	dup.req = dup.req.withPath(path)
	return dup
}

// AppendPath appends a segment to the request path.
func (c *Client) AppendPath(segment string) *Client {
	dup := c.clone()
	dup.req = dup.req.appendPath(segment)
	return dup
}

// PathParam binds a {name} path template to a value.
func (c *Client) PathParam(key string, val any) *Client {
	return c.PathParamLazy(key, closed(val))
}

// PathParamLazy binds a {name} path template to a supplier resolved
// once per execution.
func (c *Client) PathParamLazy(key string, val Supplier) *Client {
	dup := c.clone()
	dup.req = dup.req.withPathParam(key, val)
	return dup
}

// QueryParam sets a query parameter, replacing previous values for the
// same key.
func (c *Client) QueryParam(key string, val any) *Client {
	return c.QueryParamLazy(key, closed(val))
}

// QueryParamLazy sets a query parameter from a supplier resolved once
// per execution.
func (c *Client) QueryParamLazy(key string, val Supplier) *Client {
	dup := c.clone()
	dup.req = dup.req.setQuery(key, val)
	return dup
}

// AddQueryParam appends a query parameter, keeping previous values for
// the same key.
func (c *Client) AddQueryParam(key string, val any) *Client {
	return c.AddQueryParamLazy(key, closed(val))
}

// AddQueryParamLazy appends a query parameter from a supplier.
func (c *Client) AddQueryParamLazy(key string, val Supplier) *Client {
	dup := c.clone()
	dup.req = dup.req.addQuery(key, val)
	return dup
}

// Header sets a header, replacing previous values for the same key.
func (c *Client) Header(key string, val any) *Client {
	return c.HeaderLazy(key, closed(val))
}

// HeaderLazy sets a header from a supplier resolved once per execution.
func (c *Client) HeaderLazy(key string, val Supplier) *Client {
	dup := c.clone()
	dup.req = dup.req.setHeader(key, val)
	return dup
}

// AddHeader appends a header, keeping previous values for the same key.
func (c *Client) AddHeader(key string, val any) *Client {
	return c.AddHeaderLazy(key, closed(val))
}

// AddHeaderLazy appends a header from a supplier.
func (c *Client) AddHeaderLazy(key string, val Supplier) *Client {
	dup := c.clone()
	dup.req = dup.req.addHeader(key, val)
	return dup
}

// --- response handling ---

// WithMapper sets the response handler factory.
func (c *Client) WithMapper(f mapper.Factory) *Client {
	dup := c.clone()
	dup.factory = f
	return dup
}

// StatusOnly configures the client to return the response status code
// as an int without reading the body, accepting any status.
func (c *Client) StatusOnly() *Client {
	return c.WithMapper(mapper.Status())
}

// StringBody configures the client to return the body as a string
// regardless of status.
func (c *Client) StringBody() *Client {
	return c.WithMapper(mapper.String())
}

// VoidBody configures the client to discard the body, returning nil on
// success and an invalid-status error otherwise. This is the default.
func (c *Client) VoidBody() *Client {
	return c.WithMapper(mapper.Void())
}

// RawBody configures the client to return a *mapper.Response with the
// full body bytes, accepting any status.
func (c *Client) RawBody() *Client {
	return c.WithMapper(mapper.Raw())
}

// JSON configures the client to decode response bodies into *T using
// the client's streaming cutoff. An empty successful body yields a
// typed nil.
func JSON[T any](c *Client) *Client {
	return c.WithMapper(mapper.JSON[T](mapper.Options{
		Cutoff: c.cfg.StreamingCutoff,
		Log:    c.log.GetLogger(),
	}))
}

// WithBodyMapper sets the request body encoder.
func (c *Client) WithBodyMapper(m BodyMapper) *Client {
	dup := c.clone()
	dup.bodyMap = m
	return dup
}

// Form configures the client to send form-encoded request bodies.
func (c *Client) Form() *Client {
	return c.WithBodyMapper(FormBody())
}

// --- concurrency ---

// MaxConcurrency returns a client with its own admission pool of n
// permits. The new client and its descendants no longer share the
// receiver's pool.
func (c *Client) MaxConcurrency(n int) *Client {
	dup := c.clone()
	pool, err := admission.NewPool(n)
	if err != nil {
		dup.req.err = NewConfigError(fmt.Sprintf("max concurrency: %v", err))
		return dup
	}
	dup.cfg.MaxConcurrency = n
	dup.scope = pool.Scope()
	return dup
}

// AwaitSlot blocks until the pool could start a request immediately, or
// the context is cancelled.
func (c *Client) AwaitSlot(ctx context.Context) error {
	return c.scope.Pool().AwaitSlot(ctx)
}

// AwaitDrain blocks until the pool is idle (no in-flight or queued
// requests), or the context is cancelled.
func (c *Client) AwaitDrain(ctx context.Context) error {
	return c.scope.Pool().AwaitDrain(ctx)
}

// InFlight returns the number of requests currently executing in the
// client's pool.
func (c *Client) InFlight() int {
	return c.scope.Pool().InFlight()
}

// Backlog returns the number of requests queued in the client's pool.
func (c *Client) Backlog() int {
	return c.scope.Pool().Backlog()
}

// Close releases the client's admission scope. Queued requests that
// have not started resolve with an error; in-flight requests finish.
func (c *Client) Close() {
	c.scope.Close()
}

// --- execution ---

// ExecuteAsync submits the request to the admission pool and returns
// immediately. If the pool has a free permit the request dispatches on
// the calling goroutine; otherwise it queues in FIFO order.
func (c *Client) ExecuteAsync(ctx context.Context, body any) *admission.Result {
	if err := c.precheck(); err != nil {
		return admission.Resolved(nil, err)
	}
	return c.scope.Submit(func(done admission.DoneFunc) {
		go c.perform(ctx, body, done)
	})
}

// Execute submits the request and waits for the materialized result.
func (c *Client) Execute(ctx context.Context, body any) (any, error) {
	return c.ExecuteAsync(ctx, body).Wait(ctx)
}

// precheck surfaces deferred configuration errors before submission.
func (c *Client) precheck() error {
	if c.req.err != nil {
		return c.req.err
	}
	if !c.req.urlSet() {
		return NewConfigError("url has not been set")
	}
	return nil
}

// Get executes a GET request.
func (c *Client) Get(ctx context.Context) (any, error) {
	return c.Method(http.MethodGet).Execute(ctx, nil)
}

// GetAsync submits a GET request.
func (c *Client) GetAsync(ctx context.Context) *admission.Result {
	return c.Method(http.MethodGet).ExecuteAsync(ctx, nil)
}

// Post executes a POST request with the given body.
func (c *Client) Post(ctx context.Context, body any) (any, error) {
	return c.Method(http.MethodPost).Execute(ctx, body)
}

// PostAsync submits a POST request with the given body.
func (c *Client) PostAsync(ctx context.Context, body any) *admission.Result {
	return c.Method(http.MethodPost).ExecuteAsync(ctx, body)
}

// Put executes a PUT request with the given body.
func (c *Client) Put(ctx context.Context, body any) (any, error) {
	return c.Method(http.MethodPut).Execute(ctx, body)
}

// Patch executes a PATCH request with the given body.
func (c *Client) Patch(ctx context.Context, body any) (any, error) {
	return c.Method(http.MethodPatch).Execute(ctx, body)
}

// Delete executes a DELETE request.
func (c *Client) Delete(ctx context.Context) (any, error) {
	return c.Method(http.MethodDelete).Execute(ctx, nil)
}

// Head executes a HEAD request, returning the status code.
func (c *Client) Head(ctx context.Context) (any, error) {
	return c.Method(http.MethodHead).StatusOnly().Execute(ctx, nil)
}

// String renders the configured request as "METHOD url", resolving
// suppliers to do so.
func (c *Client) String() string {
	return c.req.String()
}

// Await waits for an async result and asserts it to *T. A nil result
// value (an empty response body) yields a typed nil without error.
func Await[T any](ctx context.Context, r *admission.Result) (*T, error) {
	v, err := r.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	out, ok := v.(*T)
	if !ok {
		return nil, NewDecodeError(fmt.Errorf("unexpected result type %T", v))
	}
	return out, nil
}
