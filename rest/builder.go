package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// HeaderAPIKey carries the public API key on signed calls.
	HeaderAPIKey = "X-MBX-APIKEY"

	contentTypeForm = "application/x-www-form-urlencoded"

	// DefaultRecvWindow is the acceptance window sent with every signed call.
	DefaultRecvWindow = 5 * time.Second
	// MaxRecvWindow is the largest window the exchange accepts.
	MaxRecvWindow = 60 * time.Second
)

// SignedRequest is a fully formed request, ready for a single dispatch.
type SignedRequest struct {
	Endpoint string
	Method   string
	URL      string
	Header   http.Header
	// Body is the form-encoded parameter string for POST and PUT, empty otherwise.
	Body string
}

// Builder turns an endpoint descriptor and a parameter set into a SignedRequest.
// A Builder is immutable after construction and safe for concurrent use.
type Builder struct {
	baseURL    string
	identity   *Identity
	recvWindow time.Duration
	now        func() time.Time
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithIdentity sets the credentials used for signed endpoints.
func WithIdentity(identity *Identity) BuilderOption {
	return func(b *Builder) { b.identity = identity }
}

// WithRecvWindow sets the recvWindow appended to signed calls. Zero omits the parameter.
func WithRecvWindow(d time.Duration) BuilderOption {
	return func(b *Builder) { b.recvWindow = d }
}

// WithClock replaces the time source used for the timestamp parameter.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder creates a builder for endpoints rooted at baseURL (scheme, host and market
// base path, e.g. "https://api.commex.com/api").
func NewBuilder(baseURL string, opts ...BuilderOption) (*Builder, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, NewConfigurationError("base_url_missing", "base URL must not be empty")
	}
	b := &Builder{
		baseURL:    baseURL,
		recvWindow: DefaultRecvWindow,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.recvWindow < 0 || b.recvWindow > MaxRecvWindow {
		return nil, NewConfigurationError("invalid_recv_window", "recvWindow must be between 0 and 60s")
	}
	return b, nil
}

// BaseURL returns the URL prefix of every built request.
func (b *Builder) BaseURL() string { return b.baseURL }

// HasIdentity reports whether signed endpoints can be built.
func (b *Builder) HasIdentity() bool { return b.identity != nil }

// Build validates params against the endpoint and produces the request. Signed endpoints get
// recvWindow, timestamp and signature appended, in that order, after the caller's pairs.
func (b *Builder) Build(endpoint Endpoint, params *Params) (*SignedRequest, error) {
	if endpoint.Auth && b.identity == nil {
		return nil, NewAuthenticationRequiredError(endpoint.Name)
	}
	if params == nil {
		params = NewParams()
	}
	if err := endpoint.Validate(params); err != nil {
		return nil, err
	}

	header := make(http.Header)
	canonical := params.Encode()
	if endpoint.Auth {
		pairs := params.Pairs()
		if b.recvWindow > 0 {
			pairs = append(pairs, Pair{Name: ParamRecvWindow, Value: strconv.FormatInt(b.recvWindow.Milliseconds(), 10)})
		}
		pairs = append(pairs, Pair{Name: ParamTimestamp, Value: strconv.FormatInt(b.now().UnixMilli(), 10)})
		canonical = Canonicalize(pairs)
		signature, err := b.identity.Sign(canonical)
		if err != nil {
			return nil, err
		}
		canonical += "&" + ParamSignature + "=" + signature
		header.Set(HeaderAPIKey, b.identity.APIKey())
	}

	req := &SignedRequest{
		Endpoint: endpoint.Name,
		Method:   endpoint.Method,
		URL:      b.baseURL + endpoint.Path,
		Header:   header,
	}
	switch {
	case endpoint.SendsBody():
		req.Body = canonical
		header.Set("Content-Type", contentTypeForm)
	case canonical != "":
		req.URL += "?" + canonical
	}
	return req, nil
}
