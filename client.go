// Package gocommex is a REST client for the CommEX spot and futures APIs.
//
// Every operation builds an ordered parameter set, validates it against the market's
// endpoint catalog, signs it when the endpoint is private and dispatches it once. Response
// bodies are returned verbatim; decoding them is left to the caller.
package gocommex

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/evdnx/gocommex/cache"
	"github.com/evdnx/gocommex/catalog"
	"github.com/evdnx/gocommex/internal/logutil"
	"github.com/evdnx/gocommex/rest"
	"github.com/evdnx/gohttpcl"
	"github.com/evdnx/golog"
	metrics "github.com/evdnx/gotrademetrics"
)

const clientComponent = "commex_client"

// Client executes catalog operations of one market.
// It is safe for concurrent use; calls share nothing but the HTTP connection pool.
type Client struct {
	market     catalog.Market
	builder    *rest.Builder
	dispatcher *rest.Dispatcher
	cache      *cache.Cache
	cacheCfg   cache.Config
	logger     *golog.Logger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL       string
	identity      *rest.Identity
	apiKey        string
	apiSecret     string
	hasCreds      bool
	timeout       time.Duration
	recvWindow    time.Duration
	hasRecvWindow bool
	logger        *golog.Logger
	metrics       *metrics.Metrics
	service       string
	httpClient    *gohttpcl.Client
	cacheCfg      cache.Config
	clock         func() time.Time
}

// WithCredentials sets the API key and secret used for signed endpoints.
func WithCredentials(apiKey, apiSecret string) Option {
	return func(o *options) {
		o.apiKey = apiKey
		o.apiSecret = apiSecret
		o.hasCreds = true
	}
}

// WithIdentity uses an identity built elsewhere, e.g. loaded from a credential store.
func WithIdentity(identity *rest.Identity) Option {
	return func(o *options) { o.identity = identity }
}

// WithBaseURL overrides the exchange host (scheme and authority, without market path).
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithTimeout bounds each HTTP exchange.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRecvWindow sets the recvWindow sent with signed calls. Zero omits it.
func WithRecvWindow(d time.Duration) Option {
	return func(o *options) {
		o.recvWindow = d
		o.hasRecvWindow = true
	}
}

// WithLogger sets the logger used by the client and its dispatcher.
func WithLogger(logger *golog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records HTTP metrics under the given service name. An empty name keeps
// the configured one.
func WithMetrics(m *metrics.Metrics, service string) Option {
	return func(o *options) {
		o.metrics = m
		if service != "" {
			o.service = service
		}
	}
}

func withMetricsService(service string) Option {
	return func(o *options) { o.service = service }
}

// WithHTTPClient shares an existing gohttpcl client. The client should not retry.
func WithHTTPClient(client *gohttpcl.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithCache enables the response cache for public endpoints that declare a TTL.
func WithCache(cfg cache.Config) Option {
	return func(o *options) { o.cacheCfg = cfg }
}

// WithClock replaces the time source of the timestamp parameter.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// NewClient creates a client for market.
func NewClient(market catalog.Market, opts ...Option) (*Client, error) {
	o := options{baseURL: catalog.DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logutil.Default()
	}

	identity := o.identity
	if identity == nil && o.hasCreds {
		var err error
		identity, err = rest.NewIdentity(o.apiKey, o.apiSecret)
		if err != nil {
			return nil, fmt.Errorf("commex %s client: %w", market.Name, err)
		}
	}

	builderOpts := []rest.BuilderOption{rest.WithClock(o.clock)}
	if identity != nil {
		builderOpts = append(builderOpts, rest.WithIdentity(identity))
	}
	if o.hasRecvWindow {
		builderOpts = append(builderOpts, rest.WithRecvWindow(o.recvWindow))
	}
	host := strings.TrimRight(strings.TrimSpace(o.baseURL), "/")
	if host == "" {
		return nil, fmt.Errorf("commex %s client: %w", market.Name,
			rest.NewConfigurationError("base_url_missing", "base URL must not be empty"))
	}
	builder, err := rest.NewBuilder(host+market.BasePath, builderOpts...)
	if err != nil {
		return nil, fmt.Errorf("commex %s client: %w", market.Name, err)
	}

	dispatcherOpts := []rest.DispatcherOption{rest.WithLogger(o.logger), rest.WithTimeout(o.timeout)}
	if o.httpClient != nil {
		dispatcherOpts = append(dispatcherOpts, rest.WithHTTPClient(o.httpClient))
	}
	if o.metrics != nil {
		dispatcherOpts = append(dispatcherOpts, rest.WithMetrics(o.metrics, o.service))
	}

	c := &Client{
		market:     market,
		builder:    builder,
		dispatcher: rest.NewDispatcher(dispatcherOpts...),
		cacheCfg:   o.cacheCfg,
		logger:     o.logger,
	}
	if o.cacheCfg.Enabled {
		c.cache = cache.New(o.cacheCfg)
	}

	c.logger.Debug(
		fmt.Sprintf("created %s client for %s", market.Name, builder.BaseURL()),
		golog.String("component", clientComponent),
		golog.String("market", string(market.Name)),
	)
	return c, nil
}

// Market returns the market this client talks to.
func (c *Client) Market() catalog.MarketName { return c.market.Name }

// BaseURL returns the URL prefix of every request, market path included.
func (c *Client) BaseURL() string { return c.builder.BaseURL() }

// HasIdentity reports whether signed operations are available.
func (c *Client) HasIdentity() bool { return c.builder.HasIdentity() }

// Close releases background resources. The client stays usable without its cache.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Stop()
	}
}

// Call runs the named catalog operation with params. A nil params is an empty set.
//
// Invalid input, unknown operations and missing credentials fail before any network
// activity. Failures are *rest.ExchangeError values wrapped with the operation name.
func (c *Client) Call(ctx context.Context, operation string, params *rest.Params) (*rest.Response, error) {
	endpoint, ok := c.market.Endpoint(operation)
	if !ok {
		return nil, c.wrap(operation, rest.NewInvalidArgumentError("unknown_operation",
			fmt.Sprintf("%s market has no operation %q", c.market.Name, operation)))
	}

	req, err := c.builder.Build(endpoint, params)
	if err != nil {
		return nil, c.wrap(operation, err)
	}

	cacheable := c.cache != nil && endpoint.CacheTTL > 0 && !endpoint.Auth
	var key string
	if cacheable {
		key = cache.Key(req.Method, req.URL)
		if item, hit := c.cache.Get(key); hit {
			return &rest.Response{StatusCode: item.StatusCode, Body: item.Body}, nil
		}
	}

	resp, err := c.dispatcher.Execute(ctx, req)
	if err != nil {
		return nil, c.wrap(operation, err)
	}
	if cacheable {
		c.cache.Set(key, resp.StatusCode, resp.Body, c.cacheCfg.TTL(endpoint.CacheTTL))
	}
	return resp, nil
}

// call is Call returning only the body.
func (c *Client) call(ctx context.Context, operation string, params *rest.Params) (string, error) {
	resp, err := c.Call(ctx, operation, params)
	if err != nil {
		return "", err
	}
	return resp.Body, nil
}

func (c *Client) wrap(operation string, err error) error {
	return fmt.Errorf("%s %s: %w", c.market.Name, operation, err)
}
