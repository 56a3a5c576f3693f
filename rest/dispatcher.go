package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/evdnx/gocommex/internal/logutil"
	"github.com/evdnx/gohttpcl"
	"github.com/evdnx/golog"
	metrics "github.com/evdnx/gotrademetrics"
)

// DefaultTimeout bounds a single HTTP exchange when no other timeout is configured.
const DefaultTimeout = 10 * time.Second

const dispatcherComponent = "rest_dispatcher"

// Response is the successful outcome of a call: any 2xx status, body returned verbatim.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       string
}

// Dispatcher executes signed requests over a shared HTTP client. The client's connection
// pool is safe for concurrent use; a Dispatcher holds no per-call state.
type Dispatcher struct {
	httpClient *gohttpcl.Client
	timeout    time.Duration
	logger     *golog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*dispatcherOptions)

type dispatcherOptions struct {
	httpClient *gohttpcl.Client
	timeout    time.Duration
	logger     *golog.Logger
	metrics    *metrics.Metrics
	service    string
}

// WithHTTPClient uses an existing gohttpcl client instead of creating one.
func WithHTTPClient(client *gohttpcl.Client) DispatcherOption {
	return func(o *dispatcherOptions) { o.httpClient = client }
}

// WithTimeout bounds each HTTP exchange.
func WithTimeout(d time.Duration) DispatcherOption {
	return func(o *dispatcherOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the dispatcher logger.
func WithLogger(logger *golog.Logger) DispatcherOption {
	return func(o *dispatcherOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records request counts, failures and latency for service.
func WithMetrics(m *metrics.Metrics, service string) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.metrics = m
		o.service = service
	}
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	o := dispatcherOptions{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logutil.Default()
	}
	if o.httpClient == nil {
		o.httpClient = newHTTPClient(o.timeout, o.metrics, o.service)
	}
	return &Dispatcher{
		httpClient: o.httpClient,
		timeout:    o.timeout,
		logger:     o.logger,
	}
}

// newHTTPClient creates the shared transport. Retries are disabled: a failed call is
// reported once and retry policy belongs to the caller.
func newHTTPClient(timeout time.Duration, m *metrics.Metrics, service string) *gohttpcl.Client {
	opts := []gohttpcl.Option{
		gohttpcl.WithMaxRetries(0),
		gohttpcl.WithTimeout(timeout),
	}
	if collector := newHTTPMetricsCollector(m, service); collector != nil {
		opts = append(opts, gohttpcl.WithMetrics(collector))
	}
	return gohttpcl.New(opts...)
}

// Execute sends req and waits for the full response body.
func (d *Dispatcher) Execute(ctx context.Context, req *SignedRequest) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return nil, NewInvalidArgumentError("nil_request", "request must not be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, NewCancelledError(fmt.Sprintf("%s cancelled before dispatch", req.Endpoint), err)
	}

	start := time.Now()
	options := headerOptions(req.Header)
	var (
		resp *http.Response
		err  error
	)
	switch req.Method {
	case http.MethodGet:
		resp, err = d.httpClient.Get(ctx, req.URL, d.timeout, nil, options...)
	case http.MethodPost:
		resp, err = d.httpClient.Post(ctx, req.URL, strings.NewReader(req.Body), d.timeout, nil, options...)
	case http.MethodPut:
		resp, err = d.httpClient.Put(ctx, req.URL, strings.NewReader(req.Body), d.timeout, nil, options...)
	case http.MethodDelete:
		resp, err = d.httpClient.Delete(ctx, req.URL, d.timeout, nil, options...)
	default:
		return nil, NewInvalidArgumentError("unsupported_method", fmt.Sprintf("unsupported HTTP method %s", req.Method))
	}
	if err != nil {
		return nil, d.transportFailure(ctx, req, err)
	}
	defer resp.Body.Close()

	payload, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, d.transportFailure(ctx, req, readErr)
	}

	d.logger.Debug(
		fmt.Sprintf("%s %s -> %d in %v", req.Method, req.Endpoint, resp.StatusCode, time.Since(start)),
		golog.String("component", dispatcherComponent),
		golog.String("endpoint", req.Endpoint),
		golog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		rejected := NewExchangeRejectedError(resp.StatusCode, payload)
		d.logger.Warn(
			fmt.Sprintf("%s rejected by exchange: %s", req.Endpoint, rejected.Code),
			golog.String("component", dispatcherComponent),
			golog.String("endpoint", req.Endpoint),
			golog.Int("status", resp.StatusCode),
		)
		return nil, rejected
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       string(payload),
	}, nil
}

// transportFailure classifies an error raised before a complete response was read.
// The caller's context takes precedence so a cancelled call never reports a network fault.
func (d *Dispatcher) transportFailure(ctx context.Context, req *SignedRequest, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return NewCancelledError(fmt.Sprintf("%s cancelled", req.Endpoint), ctxErr)
	}
	d.logger.Warn(
		// err may embed the signed URL, so only its type is logged.
		fmt.Sprintf("%s transport failure (%T)", req.Endpoint, err),
		golog.String("component", dispatcherComponent),
		golog.String("endpoint", req.Endpoint),
	)
	return NewTransportError(fmt.Sprintf("%s %s failed", req.Method, req.Endpoint), err)
}

func headerOptions(header http.Header) []gohttpcl.ReqOption {
	if len(header) == 0 {
		return nil
	}
	options := make([]gohttpcl.ReqOption, 0, len(header))
	for k := range header {
		options = append(options, gohttpcl.WithHeader(k, header.Get(k)))
	}
	return options
}
