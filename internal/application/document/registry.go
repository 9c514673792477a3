package document

import (
	"fmt"
	"sort"

	"docgen-api/internal/domain/form"
)

// Type describes one document type the service can generate
type Type struct {
	// Slug is the form kind and the route stem (/docs/<slug>_generator)
	Slug     string
	Title    string
	Filename string
	Producer TextProducer
}

// TemplateID returns the template a template-backed type renders, or ""
func (t *Type) TemplateID() string {
	if p, ok := t.Producer.(TemplateProducer); ok {
		return p.TemplateID
	}
	return ""
}

// Registry is the immutable set of document types, keyed by slug
type Registry struct {
	types map[string]*Type
	slugs []string
}

// NewRegistry checks every type and indexes it by slug
func NewRegistry(types ...Type) (*Registry, error) {
	r := &Registry{types: make(map[string]*Type, len(types))}
	for i := range types {
		t := types[i]
		if _, dup := r.types[t.Slug]; dup {
			return nil, fmt.Errorf("document type %q registered twice", t.Slug)
		}
		if _, err := form.New(t.Slug); err != nil {
			return nil, fmt.Errorf("document type %q: %w", t.Slug, err)
		}
		if t.Producer == nil {
			return nil, fmt.Errorf("document type %q has no producer", t.Slug)
		}
		if p, ok := t.Producer.(TemplateProducer); ok {
			if p.Renderer == nil || !p.Renderer.Has(p.TemplateID) {
				return nil, fmt.Errorf("document type %q: template %q not available", t.Slug, p.TemplateID)
			}
		}
		if t.Filename == "" {
			return nil, fmt.Errorf("document type %q has no download filename", t.Slug)
		}
		r.types[t.Slug] = &t
		r.slugs = append(r.slugs, t.Slug)
	}
	sort.Strings(r.slugs)
	return r, nil
}

// Lookup returns the type registered under slug
func (r *Registry) Lookup(slug string) (*Type, bool) {
	t, ok := r.types[slug]
	return t, ok
}

// Slugs lists the registered slugs, sorted
func (r *Registry) Slugs() []string {
	return append([]string(nil), r.slugs...)
}

// Types lists the registered types in slug order
func (r *Registry) Types() []*Type {
	out := make([]*Type, 0, len(r.slugs))
	for _, s := range r.slugs {
		out = append(out, r.types[s])
	}
	return out
}

// DefaultTypes is the full catalogue: the marital financial arrangement is
// drafted by the language model, everything else comes from templates.
func DefaultTypes(renderer TemplateRenderer, generator NarrativeGenerator) []Type {
	tpl := func(id string) TextProducer {
		return TemplateProducer{Renderer: renderer, TemplateID: id}
	}
	return []Type{
		{Slug: form.KindMFA, Title: "MFA", Filename: "Marital_Financial_Arrangement.docx", Producer: NarrativeProducer{Generator: generator}},
		{Slug: form.KindWill, Title: "Will", Filename: "Last_Will_and_Testament.docx", Producer: tpl("will")},
		{Slug: form.KindCRA, Title: "CRA", Filename: "Commercial_Rental_Agreement.docx", Producer: tpl("cra")},
		{Slug: form.KindSaleDeed, Title: "Sale Deed", Filename: "Sale_Deed.docx", Producer: tpl("sd")},
		{Slug: form.KindRental, Title: "Rental", Filename: "resi_rental.docx", Producer: tpl("rental")},
		{Slug: form.KindNDA, Title: "NDA", Filename: "NDA.docx", Producer: tpl("nda")},
		{Slug: form.KindEmployment, Title: "Employment Contract", Filename: "Employment_Contract.docx", Producer: tpl("employment")},
		{Slug: form.KindPartnership, Title: "Partnership Agreement", Filename: "Partnership_Agreement.docx", Producer: tpl("partnership")},
		{Slug: form.KindFreelancer, Title: "Freelancer Agreement", Filename: "Freelancer_Agreement.docx", Producer: tpl("freelancer")},
		{Slug: form.KindService, Title: "Service Agreement", Filename: "Service_Agreement.docx", Producer: tpl("service")},
		{Slug: form.KindPoA, Title: "Power of Attorney", Filename: "Power_of_Attorney.docx", Producer: tpl("poa")},
		{Slug: form.KindAffidavit, Title: "General Affidavit", Filename: "General_Affidavit.docx", Producer: tpl("affidavit")},
		{Slug: form.KindNameChange, Title: "Name Change Affidavit", Filename: "Name_Change_Affidavit.docx", Producer: tpl("name_change")},
		{Slug: form.KindCeaseDesist, Title: "Cease and Desist Letter", Filename: "Cease_Desist_Letter.docx", Producer: tpl("cease_desist")},
		{Slug: form.KindLegalNotice, Title: "Legal Notice", Filename: "Legal_Notice.docx", Producer: tpl("legal_notice")},
	}
}
