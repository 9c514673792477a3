// Package document runs the request pipeline of every document type:
// validate the submitted form, produce the agreement text, pack it for download.
package document

import (
	"context"

	"docgen-api/internal/domain/form"
)

// Producer names reported by TextProducer.Name
const (
	ProducerTemplate  = "template"
	ProducerNarrative = "narrative"
)

// TextProducer turns a validated record into agreement text
type TextProducer interface {
	Produce(ctx context.Context, rec form.Record) (string, error)
	Name() string
}

// TemplateRenderer fills a named template with a record
type TemplateRenderer interface {
	Render(templateID string, rec form.Record) (string, error)
	Has(templateID string) bool
}

// NarrativeGenerator drafts agreement text with a language model
type NarrativeGenerator interface {
	Generate(ctx context.Context, rec form.Record) (string, error)
}

// TemplateProducer renders one fixed template
type TemplateProducer struct {
	Renderer   TemplateRenderer
	TemplateID string
}

func (p TemplateProducer) Produce(_ context.Context, rec form.Record) (string, error) {
	return p.Renderer.Render(p.TemplateID, rec)
}

func (p TemplateProducer) Name() string { return ProducerTemplate }

// NarrativeProducer delegates to the narrative generator
type NarrativeProducer struct {
	Generator NarrativeGenerator
}

func (p NarrativeProducer) Produce(ctx context.Context, rec form.Record) (string, error) {
	return p.Generator.Generate(ctx, rec)
}

func (p NarrativeProducer) Name() string { return ProducerNarrative }
