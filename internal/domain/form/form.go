// Package form defines the structured request model of every document type
// and validates untrusted request bodies against it.
package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Document kinds
const (
	KindMFA         = "mfa"
	KindWill        = "will"
	KindCRA         = "cra"
	KindSaleDeed    = "sd"
	KindRental      = "rental"
	KindNDA         = "nda"
	KindEmployment  = "employment"
	KindPartnership = "partnership"
	KindFreelancer  = "freelancer"
	KindService     = "service"
	KindPoA         = "poa"
	KindAffidavit   = "affidavit"
	KindNameChange  = "namechange"
	KindCeaseDesist = "ceasedesist"
	KindLegalNotice = "legalnotice"
)

// Record is a validated request of one document kind
type Record interface {
	Kind() string
}

var factories = map[string]func() Record{
	KindMFA:         func() Record { return &MFASubmit{} },
	KindWill:        func() Record { return &WillSubmit{} },
	KindCRA:         func() Record { return &CRASubmit{} },
	KindSaleDeed:    func() Record { return &SDSubmit{} },
	KindRental:      func() Record { return &ResiRent{} },
	KindNDA:         func() Record { return &NDASubmit{} },
	KindEmployment:  func() Record { return &EmploymentSubmit{} },
	KindPartnership: func() Record { return &PartnershipSubmit{} },
	KindFreelancer:  func() Record { return &FreelancerSubmit{} },
	KindService:     func() Record { return &ServiceSubmit{} },
	KindPoA:         func() Record { return &PoASubmit{} },
	KindAffidavit:   func() Record { return &GeneralAffidavitSubmit{} },
	KindNameChange:  func() Record { return &NameChangeSubmit{} },
	KindCeaseDesist: func() Record { return &CeaseDesistSubmit{} },
	KindLegalNotice: func() Record { return &LegalNoticeSubmit{} },
}

// ErrUnknownKind is returned for a kind without a request model
var ErrUnknownKind = errors.New("unknown document kind")

// New returns an empty record of kind
func New(kind string) (Record, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return f(), nil
}

// Kinds returns every known kind, sorted
func Kinds() []string {
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FieldError is one offending field
type FieldError struct {
	// Field is the dotted JSON path, e.g. tenant.organization_name or executors[0].name
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every offending field of a request
type ValidationError struct {
	Kind   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return fmt.Sprintf("%d validation error(s) for %s: %s", len(e.Fields), e.Kind, strings.Join(parts, "; "))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(Date); ok {
			return d.Time
		}
		return nil
	}, Date{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if a, ok := field.Interface().(Amount); ok {
			return a.String()
		}
		return nil
	}, Amount{})
	return v
}

// Validate decodes raw into the request model of kind and validates it.
// A *ValidationError enumerating every offending field is returned on bad input:
// values of the wrong JSON type and rule violations are reported together.
// Only a body that is not well-formed JSON stops at the first problem.
func Validate(kind string, raw []byte) (Record, error) {
	if _, err := New(kind); err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ValidationError{Kind: kind, Fields: []FieldError{{Field: "body", Reason: "request body is empty"}}}
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &ValidationError{Kind: kind, Fields: []FieldError{decodeFieldError(err)}}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ValidationError{Kind: kind, Fields: []FieldError{{Field: "body", Reason: "unexpected data after the JSON object"}}}
	}

	rec, fields, complete := decodeRecord(kind, doc)
	if !complete {
		return nil, &ValidationError{Kind: kind, Fields: fields}
	}

	typed := make(map[string]bool, len(fields))
	for _, f := range fields {
		typed[f.Field] = true
	}
	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, fe := range verrs {
			path := fieldPath(fe.Namespace())
			if typed[path] {
				continue
			}
			fields = append(fields, FieldError{Field: path, Reason: reason(fe)})
		}
	}
	if len(fields) > 0 {
		sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		return nil, &ValidationError{Kind: kind, Fields: fields}
	}
	return rec, nil
}

// decodeRecord decodes doc into a fresh record of kind. A value of the wrong
// type is reported, dropped from doc and the decode repeated, so each bad value
// is reported once and the rest of the body still reaches the record.
// complete is false when a bad value could not be located (it sits inside a
// list, or is the body itself) and the record may be partial.
func decodeRecord(kind string, doc any) (rec Record, fields []FieldError, complete bool) {
	for {
		rec, _ = New(kind)
		b, err := json.Marshal(doc)
		if err != nil {
			return rec, append(fields, FieldError{Field: "body", Reason: err.Error()}), false
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		err = dec.Decode(rec)
		if err == nil {
			return rec, fields, true
		}
		fields = append(fields, decodeFieldError(err))

		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || !dropPath(doc, typeErr.Field) {
			return rec, fields, false
		}
	}
}

// dropPath deletes the member at a dotted object path such as "tenant.name"
func dropPath(doc any, path string) bool {
	if path == "" {
		return false
	}
	keys := strings.Split(path, ".")
	for _, k := range keys[:len(keys)-1] {
		m, ok := doc.(map[string]any)
		if !ok {
			return false
		}
		doc = m[k]
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return false
	}
	last := keys[len(keys)-1]
	if _, ok := m[last]; !ok {
		return false
	}
	delete(m, last)
	return true
}

// ToMap converts a record into a generic map keyed by JSON field names.
// Numbers stay json.Number so they render exactly as submitted.
func ToMap(rec Record) (map[string]any, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	out := map[string]any{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// fieldPath strips the root struct name from a validator namespace
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func decodeFieldError(err error) FieldError {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return FieldError{Field: field, Reason: typeReason(typeErr)}
	case errors.As(err, &syntaxErr):
		return FieldError{Field: "body", Reason: fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, err)}
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return FieldError{Field: "body", Reason: "truncated JSON"}
	default:
		return FieldError{Field: "body", Reason: err.Error()}
	}
}

func typeReason(e *json.UnmarshalTypeError) string {
	switch e.Type {
	case reflect.TypeOf(Date{}):
		return fmt.Sprintf("invalid date %s, expected YYYY-MM-DD", strings.TrimPrefix(e.Value, "string "))
	case reflect.TypeOf(Amount{}):
		return fmt.Sprintf("invalid amount %s, expected a decimal number", strings.TrimPrefix(e.Value, "string "))
	}
	return fmt.Sprintf("expected %s, got JSON %s", e.Type.String(), e.Value)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "required_if":
		parts := strings.Fields(fe.Param())
		if len(parts) == 2 {
			return fmt.Sprintf("field required when %s is %q", toSnake(parts[0]), parts[1])
		}
		return "field required"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// toSnake turns a Go field name into its JSON spelling (TenantType -> tenant_type)
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
