package form

import (
	"bytes"
	"encoding/json"
	"reflect"
	"time"
)

// DateLayout is the wire format of Date
const DateLayout = "2006-01-02"

// Date is a calendar date exchanged as YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate returns the Date of y-m-d in UTC
func NewDate(y int, m time.Month, d int) Date {
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON implements json.Unmarshaler. Bad input is reported as a
// *json.UnmarshalTypeError so the decoder attaches the field path.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &json.UnmarshalTypeError{Value: "non-string " + string(b), Type: reflect.TypeOf(Date{})}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + string(b), Type: reflect.TypeOf(Date{})}
	}
	d.Time = t
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
