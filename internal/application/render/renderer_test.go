package render

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"docgen-api/internal/domain/form"
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
	"security_amount_words": "One Lakh",
	"first_witness": "Witness One",
	"second_witness": "Witness Two"
}`

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func mustRecord(t *testing.T, kind, body string) form.Record {
	t.Helper()
	rec, err := form.Validate(kind, []byte(body))
	if err != nil {
		t.Fatalf("Validate(%s) error = %v", kind, err)
	}
	return rec
}

func TestTemplatesEmbedded(t *testing.T) {
	want := []string{
		"affidavit", "cease_desist", "cra", "employment", "freelancer", "legal_notice",
		"name_change", "nda", "partnership", "poa", "rental", "sd", "service", "will",
	}
	if diff := cmp.Diff(want, newRenderer(t).Templates()); diff != "" {
		t.Errorf("Templates() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderRentalPlaceholder(t *testing.T) {
	r := newRenderer(t)
	text, err := r.Render("rental", mustRecord(t, form.KindRental, rentalBody))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(text, "Rs. 50,000/- (Rupees "+Placeholder+" only)") {
		t.Errorf("rent clause lacks amount or placeholder:\n%s", text)
	}
	if !strings.Contains(text, "(Rupees One Lakh only)") {
		t.Error("supplied words were replaced")
	}
	if strings.Contains(text, "(Rupees  only)") {
		t.Error("rendered text shows an empty gap")
	}
	if got := strings.Count(text, PageBreak); got != 1 {
		t.Errorf("page breaks = %d, want 1", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := newRenderer(t)
	rec := mustRecord(t, form.KindRental, rentalBody)
	first, err := r.Render("rental", rec)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		got, err := r.Render("rental", rec)
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("render %d differs from the first render", i)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := newRenderer(t).Render("lease", mustRecord(t, form.KindRental, rentalBody))
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("error = %v, want ErrUnknownTemplate", err)
	}
}

func TestRenderMissingField(t *testing.T) {
	_, err := newRenderer(t).RenderData("nda", map[string]any{
		"execution_date":     "1 March 2025",
		"place_of_execution": "Chennai",
	})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("error = %v, want ErrMissingField", err)
	}
	if !strings.Contains(err.Error(), `"confidentiality_duration_years"`) {
		t.Errorf("error does not name the first missing field: %v", err)
	}
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	fsys := fstest.MapFS{
		"t.tpl": {Data: []byte("{{ fee }} ({{ fee_in_words }}) {% for p in parties %}{{ p.share_words }};{% endfor %}")},
	}
	r, err := NewFromFS(fsys)
	if err != nil {
		t.Fatal(err)
	}
	data := map[string]any{
		"fee":          "10",
		"fee_in_words": "  ",
		"parties":      []any{map[string]any{"share_words": nil}, map[string]any{"share_words": "Half"}},
	}
	got, err := r.RenderData("t", data)
	if err != nil {
		t.Fatal(err)
	}
	want := "10 (" + Placeholder + ") " + Placeholder + ";Half;\n"
	if got != want {
		t.Errorf("RenderData() = %q, want %q", got, want)
	}
	if data["fee_in_words"] != "  " {
		t.Error("input map was modified")
	}
}

func TestRenderCRATenantVariants(t *testing.T) {
	base := `{
		"execution_date": "1 March 2025", "place_of_execution": "Mumbai",
		"landlord": {"name": "Lata", "parent_name": "Prakash", "address": "Juhu"},
		"tenant": %s,
		"premises_address": "Shop 3, Andheri",
		"premises_boundaries": {"north": "Road", "south": "Shop 4", "east": "Lane", "west": "Shop 2"},
		"start_date": "1 April 2025", "end_date": "31 March 2028",
		"rent_amount": "75,000", "rent_amount_in_words": "Seventy Five Thousand", "rent_due_day": 5,
		"security_deposit_amount": "3,00,000",
		"security_deposit_refund_period_days": 30, "permitted_business_use": "retail sale of garments",
		"lock_in_period_months": 12, "notice_period_months": 3
	}`
	r := newRenderer(t)

	org := strings.Replace(base, "%s", `{"tenant_type": "organization", "organization_name": "Acme Retail Pvt Ltd",
		"authorized_signatory": "Meera Nair", "registration_number": "U52100MH2020PTC000001", "address": "BKC"}`, 1)
	text, err := r.Render("cra", mustRecord(t, form.KindCRA, org))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Acme Retail Pvt Ltd, registration number U52100MH2020PTC000001",
		"authorised signatory Meera Nair",
		"payable on or before day 5 of every month",
		"(Rupees " + Placeholder + " only), refundable within 30 days",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("organization rendering lacks %q", want)
		}
	}

	ind := strings.Replace(base, "%s", `{"tenant_type": "individual", "name": "Tarun", "parent_name": "Vijay", "address": "Bandra"}`, 1)
	text, err = r.Render("cra", mustRecord(t, form.KindCRA, ind))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "Tarun, son/daughter of Vijay, residing at Bandra") {
		t.Error("individual tenant clause missing")
	}
	if strings.Contains(text, "registration number") {
		t.Error("organization clause rendered for an individual tenant")
	}
}

func TestRenderWillLists(t *testing.T) {
	body := `{
		"testator_name": "Kamala Devi", "testator_father_name": "Raghu", "testator_age": "72", "testator_address": "Mylapore",
		"executors": [{"name": "Arun", "relationship": "son", "address": "Adyar"}, {"name": "Bala", "relationship": "nephew", "address": "Tambaram"}],
		"beneficiaries": [{"name": "Chitra", "relationship": "daughter", "address": "Velachery"}],
		"bequests": [{"asset_description": "House at Mylapore", "beneficiary_name": "Chitra"}],
		"residuary_beneficiary_name": "Arun",
		"execution_date": "5 May 2025", "place_of_execution": "Chennai"
	}`
	text, err := newRenderer(t).Render("will", mustRecord(t, form.KindWill, body))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"1. Arun, my son, residing at Adyar\n2. Bala, my nephew, residing at Tambaram\n",
		"1. House at Mylapore to Chitra\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("will lacks %q", want)
		}
	}
	if strings.Contains(text, "GUARDIAN") {
		t.Error("guardian clause rendered without a guardian")
	}
}

func TestReferencedFields(t *testing.T) {
	src := `{{ a }} {{- b.c }} {% if d %}{% elif not e.f %}{% endif %}
{% for x in items %}{{ x.name }}{{ forloop.Counter }}{% endfor %}
{% for k, v in pairs %}{{ k }}{{ v }}{% endfor %}{{ page_break }}`
	want := []string{"a", "b", "d", "e", "items", "pairs"}
	if diff := cmp.Diff(want, referencedFields(src)); diff != "" {
		t.Errorf("referencedFields() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize(t *testing.T) {
	got := normalize("a  \r\nb\t\n\f\n\n\n")
	if want := "a\nb\n\f\n"; got != want {
		t.Errorf("normalize() = %q, want %q", got, want)
	}
}
