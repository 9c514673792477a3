package document

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"docgen-api/internal/application/docx"
	"docgen-api/internal/application/render"
	"docgen-api/internal/domain/form"
	apperrors "docgen-api/pkg/errors"
)

const rentalBody = `{
	"place_of_execution": "Pune",
	"execution_date": "10 January 2025",
	"owner_name": "Ravi Kumar",
	"owner_father": "Mohan Kumar",
	"owner_address": "12 MG Road, Pune",
	"tenant_name": "Anil Shah",
	"tenant_father": "Suresh Shah",
	"tenant_address": "4 FC Road, Pune",
	"premises_address": "Flat 7, Baner, Pune",
	"rent_amount": "50,000",
	"start_date": "1 February 2025",
	"end_date": "31 December 2025",
	"security_deposit_amount": "1,00,000",
	"first_witness": "Witness One",
	"second_witness": "Witness Two"
}`

const mfaParty = `{
	"personal": {"name": "Asha", "gender": "F", "father_name": "F", "mother_name": "M", "dob": "1990-01-01", "address": "Indiranagar"},
	"employment": {"occupation": "Engineer", "employer": "Acme", "annual_income": "12,00,000"},
	"assets": {"bank_account": [{"bank_name": "SBI", "account_number": "123", "balance": "250000.50"}]},
	"liabilities": {}
}`

var mfaBody = `{"partyOne": ` + mfaParty + `, "partyTwo": ` + mfaParty + `,
	"execution_date": "2025-09-02", "marriage_date": "2025-11-20", "place_of_execution": "Bengaluru"}`

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (g *fakeGenerator) Generate(context.Context, form.Record) (string, error) {
	g.calls++
	return g.text, g.err
}

type countingPackager struct {
	calls int
	err   error
}

func (p *countingPackager) Pack(text string) ([]byte, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return docx.Pack(text)
}

func newService(t *testing.T, gen NarrativeGenerator, pack Packager) *Service {
	t.Helper()
	r, err := render.New()
	if err != nil {
		t.Fatalf("render.New() error = %v", err)
	}
	reg, err := NewRegistry(DefaultTypes(r, gen)...)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return NewService(reg, pack)
}

func appError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %v (%T), want *AppError", err, err)
	}
	return appErr
}

func TestRegistryCoversEveryKind(t *testing.T) {
	svc := newService(t, &fakeGenerator{}, nil)
	if diff := cmp.Diff(form.Kinds(), svc.Registry().Slugs()); diff != "" {
		t.Errorf("Slugs() mismatch (-kinds +slugs):\n%s", diff)
	}

	mfa, ok := svc.Registry().Lookup(form.KindMFA)
	if !ok || mfa.Producer.Name() != ProducerNarrative || mfa.TemplateID() != "" {
		t.Errorf("mfa type = %+v", mfa)
	}
	if mfa.Filename != "Marital_Financial_Arrangement.docx" {
		t.Errorf("mfa filename = %q", mfa.Filename)
	}
	rental, _ := svc.Registry().Lookup(form.KindRental)
	if rental.TemplateID() != "rental" || rental.Filename != "resi_rental.docx" {
		t.Errorf("rental type = %+v", rental)
	}
}

func TestNewRegistryRejectsBadTypes(t *testing.T) {
	r, err := render.New()
	if err != nil {
		t.Fatal(err)
	}
	good := Type{Slug: form.KindNDA, Title: "NDA", Filename: "NDA.docx", Producer: TemplateProducer{Renderer: r, TemplateID: "nda"}}

	tests := []struct {
		name  string
		types []Type
		want  string
	}{
		{"duplicate", []Type{good, good}, "registered twice"},
		{"unknown kind", []Type{{Slug: "lease", Filename: "x.docx", Producer: good.Producer}}, "unknown document kind"},
		{"missing template", []Type{{Slug: form.KindNDA, Filename: "x.docx", Producer: TemplateProducer{Renderer: r, TemplateID: "nope"}}}, "not available"},
		{"no producer", []Type{{Slug: form.KindNDA, Filename: "x.docx"}}, "no producer"},
		{"no filename", []Type{{Slug: form.KindNDA, Producer: good.Producer}}, "no download filename"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.types...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("NewRegistry() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestPreviewRental(t *testing.T) {
	svc := newService(t, &fakeGenerator{}, nil)
	text, err := svc.Preview(context.Background(), form.KindRental, []byte(rentalBody))
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if !strings.Contains(text, "Rs. 50,000/- (Rupees "+render.Placeholder+" only)") {
		t.Errorf("preview lacks the rent clause:\n%s", text)
	}
}

func TestDownloadRental(t *testing.T) {
	pack := &countingPackager{}
	svc := newService(t, &fakeGenerator{}, pack)
	f, err := svc.Download(context.Background(), form.KindRental, []byte(rentalBody))
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if f.Name != "resi_rental.docx" || f.ContentType != docx.ContentType {
		t.Errorf("file = %q %q", f.Name, f.ContentType)
	}
	if !bytes.HasPrefix(f.Data, []byte("PK")) {
		t.Error("data is not a zip container")
	}
	if pack.calls != 1 {
		t.Errorf("packager calls = %d, want 1", pack.calls)
	}
}

func TestDownloadValidationFailure(t *testing.T) {
	pack := &countingPackager{}
	svc := newService(t, &fakeGenerator{}, pack)
	body := strings.Replace(mfaBody, `"execution_date": "2025-09-02", `, "", 1)

	f, err := svc.Download(context.Background(), form.KindMFA, []byte(body))
	if f != nil {
		t.Error("file returned with a validation error")
	}
	appErr := appError(t, err)
	if appErr.Code != apperrors.CodeValidationFailed || appErr.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("code = %s status = %d", appErr.Code, appErr.HTTPStatus)
	}
	want := []apperrors.FieldError{{Field: "execution_date", Reason: "field required"}}
	if diff := cmp.Diff(want, appErr.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(appErr.Detail, "Error generating MFA file: ") {
		t.Errorf("detail = %q", appErr.Detail)
	}
	if pack.calls != 0 {
		t.Error("packager invoked after a validation failure")
	}
}

func TestDownloadNarrative(t *testing.T) {
	gen := &fakeGenerator{text: "MARITAL FINANCIAL ARRANGEMENT\n\f\nANNEXURES\n"}
	svc := newService(t, gen, nil)
	f, err := svc.Download(context.Background(), form.KindMFA, []byte(mfaBody))
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if gen.calls != 1 || f.Name != "Marital_Financial_Arrangement.docx" {
		t.Errorf("calls = %d name = %q", gen.calls, f.Name)
	}
}

func TestDownloadGenerationFailureSkipsPackaging(t *testing.T) {
	pack := &countingPackager{}
	gen := &fakeGenerator{err: errors.New("narrative generation failed: googleapi: Error 400: API key not valid")}
	svc := newService(t, gen, pack)

	f, err := svc.Download(context.Background(), form.KindMFA, []byte(mfaBody))
	if f != nil {
		t.Error("file returned after a generation failure")
	}
	appErr := appError(t, err)
	if appErr.Code != apperrors.CodeLLMCallFailed || appErr.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("code = %s status = %d", appErr.Code, appErr.HTTPStatus)
	}
	if !strings.Contains(appErr.Detail, "API key not valid") {
		t.Errorf("detail = %q", appErr.Detail)
	}
	if pack.calls != 0 {
		t.Error("packager invoked after a generation failure")
	}
}

func TestPreviewRenderFailure(t *testing.T) {
	r, err := render.New()
	if err != nil {
		t.Fatal(err)
	}
	broken := TemplateProducer{Renderer: r, TemplateID: "nda"}
	reg, err := NewRegistry(Type{Slug: form.KindRental, Title: "Rental", Filename: "resi_rental.docx", Producer: broken})
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewService(reg, nil).Preview(context.Background(), form.KindRental, []byte(rentalBody))
	appErr := appError(t, err)
	if appErr.Code != apperrors.CodeRenderFailed {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeRenderFailed)
	}
	if !errors.Is(err, render.ErrMissingField) {
		t.Errorf("error = %v, want ErrMissingField", err)
	}
	if !strings.HasPrefix(appErr.Detail, "Error generating Rental preview: ") {
		t.Errorf("detail = %q", appErr.Detail)
	}
}

func TestDownloadPackagingFailure(t *testing.T) {
	svc := newService(t, &fakeGenerator{}, &countingPackager{err: docx.ErrPackaging})
	f, err := svc.Download(context.Background(), form.KindRental, []byte(rentalBody))
	if f != nil {
		t.Error("partial file returned")
	}
	if appErr := appError(t, err); appErr.Code != apperrors.CodePackagingFailed {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodePackagingFailed)
	}
}

func TestUnknownSlug(t *testing.T) {
	svc := newService(t, &fakeGenerator{}, nil)
	_, err := svc.Preview(context.Background(), "lease", []byte(`{}`))
	if appErr := appError(t, err); appErr.HTTPStatus != http.StatusNotFound {
		t.Errorf("status = %d, want 404", appErr.HTTPStatus)
	}
	if _, err := svc.Download(context.Background(), "lease", []byte(`{}`)); err == nil {
		t.Error("Download() accepted an unknown slug")
	}
}
