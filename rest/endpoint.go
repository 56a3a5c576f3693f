package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the wire type of a catalog parameter.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindDecimal
	KindEnum
	KindTimestamp
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindEnum:
		return "enum"
	case KindTimestamp:
		return "timestamp"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// ParamSpec describes one recognized parameter of an endpoint.
type ParamSpec struct {
	Name     string
	Kind     Kind
	Required bool
	// Values lists the accepted wire strings of a KindEnum parameter.
	Values []string
	// Min and Max bound a KindInteger parameter when Max > 0.
	Min int64
	Max int64
}

// Endpoint is the static descriptor of one operation.
type Endpoint struct {
	Name   string
	Method string
	// Path is relative to the market base path, e.g. "/v1/klines".
	Path string
	Auth bool
	// Params lists every recognized parameter in the order callers are expected to add them.
	Params []ParamSpec
	// CacheTTL > 0 marks public responses that may be served from a response cache.
	CacheTTL time.Duration
}

// SendsBody reports whether signed parameters travel in a form body instead of the URL.
func (e Endpoint) SendsBody() bool {
	return e.Method == http.MethodPost || e.Method == http.MethodPut
}

// Param returns the spec of the named parameter.
func (e Endpoint) Param(name string) (ParamSpec, bool) {
	for _, spec := range e.Params {
		if spec.Name == name {
			return spec, true
		}
	}
	return ParamSpec{}, false
}

// Validate checks params against the endpoint's parameter list. It performs no I/O.
func (e Endpoint) Validate(params *Params) error {
	if err := params.Err(); err != nil {
		return err
	}
	for _, pair := range params.Pairs() {
		switch pair.Name {
		case ParamTimestamp, ParamSignature, ParamRecvWindow:
			return NewInvalidArgumentError("reserved_parameter",
				fmt.Sprintf("parameter %q is added by the client and must not be set on %s", pair.Name, e.Name))
		}
		spec, ok := e.Param(pair.Name)
		if !ok {
			return NewInvalidArgumentError("unknown_parameter",
				fmt.Sprintf("parameter %q is not recognized by %s", pair.Name, e.Name))
		}
		if err := spec.check(e.Name, pair.Value); err != nil {
			return err
		}
	}
	for _, spec := range e.Params {
		if !spec.Required {
			continue
		}
		if _, ok := params.Get(spec.Name); !ok {
			return NewInvalidArgumentError("missing_parameter",
				fmt.Sprintf("parameter %q is required by %s", spec.Name, e.Name))
		}
	}
	return nil
}

func (s ParamSpec) check(endpoint, value string) error {
	invalid := func(format string, args ...interface{}) error {
		return NewInvalidArgumentError("invalid_value",
			fmt.Sprintf("%s: parameter %q ", endpoint, s.Name)+fmt.Sprintf(format, args...))
	}
	switch s.Kind {
	case KindString:
		if value == "" {
			return invalid("must not be empty")
		}
	case KindInteger:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return invalid("must be an integer, got %q", value)
		}
		if s.Max > 0 && (n < s.Min || n > s.Max) {
			return NewInvalidArgumentError("out_of_range",
				fmt.Sprintf("%s: parameter %q must be between %d and %d, got %d", endpoint, s.Name, s.Min, s.Max, n))
		}
	case KindTimestamp:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return invalid("must be a non-negative Unix millisecond timestamp, got %q", value)
		}
	case KindDecimal:
		if strings.ContainsAny(value, "eE") {
			return invalid("must be a plain decimal without exponent, got %q", value)
		}
		if _, err := decimal.NewFromString(value); err != nil {
			return invalid("must be a decimal, got %q", value)
		}
	case KindEnum:
		for _, allowed := range s.Values {
			if value == allowed {
				return nil
			}
		}
		return invalid("must be one of %s, got %q", strings.Join(s.Values, ", "), value)
	case KindBool:
		if value != "true" && value != "false" {
			return invalid("must be true or false, got %q", value)
		}
	}
	return nil
}
