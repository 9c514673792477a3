package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"docgen-api/internal/application/docx"
	"docgen-api/internal/domain/form"
	apperrors "docgen-api/pkg/errors"
	"docgen-api/pkg/logger"
	"docgen-api/pkg/metrics"
	"docgen-api/pkg/tracer"
)

// Pipeline stages
const (
	StageValidate = "validate"
	StageProduce  = "produce"
	StagePack     = "pack"
)

const (
	opPreview  = "preview"
	opDownload = "download"
)

// Packager packs finished text into a document file
type Packager interface {
	Pack(text string) ([]byte, error)
}

// PackagerFunc adapts a function to Packager
type PackagerFunc func(text string) ([]byte, error)

func (f PackagerFunc) Pack(text string) ([]byte, error) { return f(text) }

// DocxPackager packs into a word-processor document
var DocxPackager Packager = PackagerFunc(docx.Pack)

// File is a packed document ready to be sent
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Service runs the document pipeline. It keeps no per-request state.
type Service struct {
	registry *Registry
	packager Packager
}

func NewService(registry *Registry, packager Packager) *Service {
	if packager == nil {
		packager = DocxPackager
	}
	return &Service{registry: registry, packager: packager}
}

// Registry returns the document types the service serves
func (s *Service) Registry() *Registry { return s.registry }

// Preview validates raw and returns the produced text
func (s *Service) Preview(ctx context.Context, slug string, raw []byte) (text string, err error) {
	typ, ok := s.registry.Lookup(slug)
	if !ok {
		return "", unknownType(slug)
	}
	ctx, span := s.begin(ctx, typ, opPreview)
	defer func() { s.finish(ctx, span, typ, opPreview, err) }()

	rec, err := s.validate(ctx, typ, raw)
	if err != nil {
		return "", s.fail(typ, opPreview, StageValidate, err)
	}
	text, err = s.produce(ctx, typ, rec)
	if err != nil {
		return "", s.fail(typ, opPreview, StageProduce, err)
	}
	return text, nil
}

// Download validates raw, produces the text and packs it. A File is only
// returned when every stage succeeded.
func (s *Service) Download(ctx context.Context, slug string, raw []byte) (file *File, err error) {
	typ, ok := s.registry.Lookup(slug)
	if !ok {
		return nil, unknownType(slug)
	}
	ctx, span := s.begin(ctx, typ, opDownload)
	defer func() { s.finish(ctx, span, typ, opDownload, err) }()

	rec, err := s.validate(ctx, typ, raw)
	if err != nil {
		return nil, s.fail(typ, opDownload, StageValidate, err)
	}
	text, err := s.produce(ctx, typ, rec)
	if err != nil {
		return nil, s.fail(typ, opDownload, StageProduce, err)
	}

	var data []byte
	err = s.stage(ctx, typ, StagePack, func(context.Context) error {
		var perr error
		data, perr = s.packager.Pack(text)
		return perr
	})
	if err != nil {
		return nil, s.fail(typ, opDownload, StagePack, err)
	}
	metrics.DocumentSize.WithLabelValues(typ.Slug).Observe(float64(len(data)))

	return &File{Name: typ.Filename, ContentType: docx.ContentType, Data: data}, nil
}

func (s *Service) validate(ctx context.Context, typ *Type, raw []byte) (form.Record, error) {
	var rec form.Record
	err := s.stage(ctx, typ, StageValidate, func(context.Context) error {
		var verr error
		rec, verr = form.Validate(typ.Slug, raw)
		return verr
	})
	return rec, err
}

func (s *Service) produce(ctx context.Context, typ *Type, rec form.Record) (string, error) {
	var text string
	err := s.stage(ctx, typ, StageProduce, func(ctx context.Context) error {
		var perr error
		text, perr = typ.Producer.Produce(ctx, rec)
		return perr
	})
	return text, err
}

// stage runs fn inside its own span and records its duration
func (s *Service) stage(ctx context.Context, typ *Type, name string, fn func(context.Context) error) error {
	ctx, span := tracer.Start(ctx, "document."+name, trace.WithAttributes(
		attribute.String("doc.type", typ.Slug),
	))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	metrics.DocumentStageDuration.WithLabelValues(typ.Slug, name).Observe(time.Since(start).Seconds())
	if err != nil {
		tracer.Fail(span, err)
	}
	return err
}

func (s *Service) begin(ctx context.Context, typ *Type, op string) (context.Context, trace.Span) {
	ctx = logger.WithContext(ctx, logger.DocTypeKey, typ.Slug)
	return tracer.Start(ctx, "document."+op, trace.WithAttributes(
		attribute.String("doc.type", typ.Slug),
		attribute.String("doc.producer", typ.Producer.Name()),
	))
}

func (s *Service) finish(ctx context.Context, span trace.Span, typ *Type, op string, err error) {
	defer span.End()

	status := "ok"
	if err != nil {
		appErr := apperrors.AsAppError(err)
		status = string(appErr.Code)
		tracer.Fail(span, err)
		if appErr.HTTPStatus >= 500 {
			logger.Error(ctx, "document generation failed", err, "operation", op)
		} else {
			logger.Warn(ctx, "document request rejected",
				"operation", op,
				"code", string(appErr.Code),
				"fields", len(appErr.Fields),
			)
		}
	}
	metrics.DocumentRequestsTotal.WithLabelValues(typ.Slug, op, status).Inc()
}

// fail wraps a stage error into the client-facing error of that stage
func (s *Service) fail(typ *Type, op, stage string, err error) *apperrors.AppError {
	noun := "preview"
	if op == opDownload {
		noun = "file"
	}
	detail := fmt.Sprintf("Error generating %s %s: %v", typ.Title, noun, err)

	var verr *form.ValidationError
	switch {
	case stage == StageValidate && errors.As(err, &verr):
		metrics.ValidationFailures.WithLabelValues(typ.Slug).Add(float64(len(verr.Fields)))
		fields := make([]apperrors.FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, apperrors.FieldError{Field: f.Field, Reason: f.Reason})
		}
		return apperrors.Wrap(err, apperrors.CodeValidationFailed, "validation failed").
			WithDetail(detail).
			WithFields(fields)
	case stage == StageProduce && typ.Producer.Name() == ProducerNarrative:
		return apperrors.Wrap(err, apperrors.CodeLLMCallFailed, "narrative generation failed").WithDetail(detail)
	case stage == StageProduce:
		return apperrors.Wrap(err, apperrors.CodeRenderFailed, "template rendering failed").WithDetail(detail)
	case stage == StagePack:
		return apperrors.Wrap(err, apperrors.CodePackagingFailed, "document packaging failed").WithDetail(detail)
	default:
		return apperrors.Wrap(err, apperrors.CodeInternalError, "internal server error").WithDetail(detail)
	}
}

func unknownType(slug string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeNotFound, "resource not found").
		WithDetail(fmt.Sprintf("unknown document type %q", slug))
}
