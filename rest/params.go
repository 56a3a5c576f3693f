package rest

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Names appended by the builder on signed calls. Callers may not set them.
const (
	ParamTimestamp  = "timestamp"
	ParamSignature  = "signature"
	ParamRecvWindow = "recvWindow"
)

// Pair is one name/value entry of a parameter set.
type Pair struct {
	Name  string
	Value string
}

// Params is an ordered parameter set for a single call. Insertion order is preserved and
// determines the canonical string, and therefore the signature.
//
// A name may appear only once. Adding a name a second time keeps the first value and
// records an invalid-argument error that Err (and the builder) reports.
type Params struct {
	pairs []Pair
	index map[string]int
	err   error
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{index: make(map[string]int)}
}

// Add appends name=value. The value is used verbatim.
func (p *Params) Add(name, value string) *Params {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if name == "" {
		p.fail(NewInvalidArgumentError("empty_parameter_name", "parameter name must not be empty"))
		return p
	}
	if _, exists := p.index[name]; exists {
		p.fail(NewInvalidArgumentError("duplicate_parameter", fmt.Sprintf("parameter %q set more than once", name)))
		return p
	}
	p.index[name] = len(p.pairs)
	p.pairs = append(p.pairs, Pair{Name: name, Value: value})
	return p
}

// AddInt appends an integer in base 10.
func (p *Params) AddInt(name string, v int) *Params {
	return p.Add(name, strconv.Itoa(v))
}

// AddInt64 appends a 64-bit integer in base 10.
func (p *Params) AddInt64(name string, v int64) *Params {
	return p.Add(name, strconv.FormatInt(v, 10))
}

// AddDecimal appends a fixed-point decimal without exponent notation.
func (p *Params) AddDecimal(name string, v decimal.Decimal) *Params {
	return p.Add(name, v.String())
}

// AddFloat appends a float using its shortest fixed-point decimal form.
// NaN and infinities are recorded as invalid-argument errors.
func (p *Params) AddFloat(name string, v float64) *Params {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		p.fail(NewInvalidArgumentError("invalid_value", fmt.Sprintf("parameter %q must be a finite number, got %v", name, v)))
		return p
	}
	return p.AddDecimal(name, decimal.NewFromFloat(v))
}

// AddEnum appends the symbolic wire name of an enum value.
func (p *Params) AddEnum(name string, v fmt.Stringer) *Params {
	return p.Add(name, v.String())
}

// AddTime appends a timestamp as Unix milliseconds.
func (p *Params) AddTime(name string, t time.Time) *Params {
	return p.AddInt64(name, t.UnixMilli())
}

// AddBool appends "true" or "false".
func (p *Params) AddBool(name string, v bool) *Params {
	return p.Add(name, strconv.FormatBool(v))
}

// OptString appends the value only when it is not empty.
func (p *Params) OptString(name, v string) *Params {
	if v == "" {
		return p
	}
	return p.Add(name, v)
}

// OptInt appends the value only when v is not nil.
func (p *Params) OptInt(name string, v *int) *Params {
	if v == nil {
		return p
	}
	return p.AddInt(name, *v)
}

// OptInt64 appends the value only when v is not nil.
func (p *Params) OptInt64(name string, v *int64) *Params {
	if v == nil {
		return p
	}
	return p.AddInt64(name, *v)
}

// OptDecimal appends the value only when v is not nil.
func (p *Params) OptDecimal(name string, v *decimal.Decimal) *Params {
	if v == nil {
		return p
	}
	return p.AddDecimal(name, *v)
}

// OptTime appends the value only when t is not the zero time.
func (p *Params) OptTime(name string, t time.Time) *Params {
	if t.IsZero() {
		return p
	}
	return p.AddTime(name, t)
}

// OptEnum appends the value only when its wire name is not empty.
func (p *Params) OptEnum(name string, v fmt.Stringer) *Params {
	if v == nil || v.String() == "" {
		return p
	}
	return p.AddEnum(name, v)
}

// OptBool appends the value only when v is not nil.
func (p *Params) OptBool(name string, v *bool) *Params {
	if v == nil {
		return p
	}
	return p.AddBool(name, *v)
}

func (p *Params) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Err returns the first error recorded while assembling the set.
func (p *Params) Err() error {
	if p == nil {
		return nil
	}
	return p.err
}

// Get returns the value stored under name.
func (p *Params) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	i, ok := p.index[name]
	if !ok {
		return "", false
	}
	return p.pairs[i].Value, true
}

// Len returns the number of pairs.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.pairs)
}

// Pairs returns a copy of the pairs in insertion order.
func (p *Params) Pairs() []Pair {
	if p == nil {
		return nil
	}
	out := make([]Pair, len(p.pairs))
	copy(out, p.pairs)
	return out
}

// Encode returns the canonical string of the set.
func (p *Params) Encode() string {
	if p == nil {
		return ""
	}
	return Canonicalize(p.pairs)
}

// Canonicalize joins pairs as name=value separated by '&', in the given order.
// Each name and value is query-escaped once; unreserved characters pass through unchanged,
// so the result is both the wire query string and the signature input.
func Canonicalize(pairs []Pair) string {
	if len(pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, pair := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}
	return b.String()
}
