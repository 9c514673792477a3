package form

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a money value. It parses into a decimal but serializes back
// exactly as submitted, so "250000.50" keeps its trailing zero.
type Amount struct {
	decimal.Decimal
	raw []byte
}

// UnmarshalJSON accepts a JSON number or a numeric string
func (a *Amount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	text := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &text); err != nil {
			return &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(Amount{})}
		}
	} else if len(b) > 0 && (b[0] == '{' || b[0] == '[' || b[0] == 't' || b[0] == 'f') {
		return &json.UnmarshalTypeError{Value: jsonKind(b[0]), Type: reflect.TypeOf(Amount{})}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + string(b), Type: reflect.TypeOf(Amount{})}
	}
	a.Decimal = d
	a.raw = append([]byte(nil), b...)
	return nil
}

// MarshalJSON implements json.Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	return json.Marshal(a.Decimal.String())
}

// String is the amount as submitted
func (a Amount) String() string {
	if len(a.raw) == 0 {
		return a.Decimal.String()
	}
	var s string
	if err := json.Unmarshal(a.raw, &s); err == nil {
		return s
	}
	return string(a.raw)
}

func jsonKind(c byte) string {
	switch c {
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "bool"
	}
}
