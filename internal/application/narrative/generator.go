// Package narrative drafts open-ended agreement prose through an external
// text-generation model.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/sync/semaphore"

	"docgen-api/internal/config"
	"docgen-api/internal/domain/form"
	einoobs "docgen-api/internal/observability/eino"
	"docgen-api/pkg/logger"
	"docgen-api/pkg/metrics"
)

const (
	workflowName = "mfa_draft"

	DatePlaceholder  = "[____DATE____]"
	PlacePlaceholder = "[____PLACE____]"

	defaultTimeout        = 120 * time.Second
	defaultMaxConcurrency = 16
	retryBackoff          = 500 * time.Millisecond
)

var (
	ErrGeneration   = errors.New("narrative generation failed")
	ErrEmptyOutput  = errors.New("model returned no text")
	ErrNonConformed = errors.New("generated text does not follow the required structure")
)

// ChatModelFactory hands out chat models by provider name
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}

// Options tune the generator
type Options struct {
	Provider         string
	Timeout          time.Duration
	MaxRetries       int
	MaxConcurrency   int64
	ConformanceCheck bool
}

// OptionsFromConfig reads the narrative section of cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Provider:         cfg.NarrativeProvider(),
		Timeout:          cfg.Narrative.Timeout,
		MaxRetries:       cfg.Narrative.MaxRetries,
		MaxConcurrency:   cfg.Narrative.MaxConcurrency,
		ConformanceCheck: cfg.Narrative.ConformanceCheck,
	}
}

// Input is what one generation feeds into the prompt
type Input struct {
	Provider         string
	PayloadJSON      string
	ExecutionDate    string
	PlaceOfExecution string
}

type chainState struct {
	In       *Input
	Messages []*schema.Message
	OutMsg   *schema.Message
}

// Generator produces agreement text from a validated record. Concurrent
// generations are bounded; a started generation is never cancelled by its caller.
type Generator struct {
	factory ChatModelFactory
	prompts *Prompts
	opts    Options
	sem     *semaphore.Weighted

	chainOnce sync.Once
	chain     compose.Runnable[*Input, *schema.Message]
	chainErr  error
}

func NewGenerator(factory ChatModelFactory, opts Options) *Generator {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = defaultMaxConcurrency
	}
	return &Generator{
		factory: factory,
		prompts: NewPrompts(),
		opts:    opts,
		sem:     semaphore.NewWeighted(opts.MaxConcurrency),
	}
}

// Generate drafts the agreement for rec. Every failure wraps ErrGeneration.
func (g *Generator) Generate(ctx context.Context, rec form.Record) (string, error) {
	in, err := buildInput(rec, g.opts.Provider)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("%w: waiting for a generation slot: %v", ErrGeneration, err)
	}
	defer g.sem.Release(1)
	metrics.NarrativeInFlight.Inc()
	defer metrics.NarrativeInFlight.Dec()

	// Once started, the call runs to completion or failure
	runCtx := einoobs.WithCall(context.WithoutCancel(ctx), einoobs.Call{
		Workflow: workflowName,
		Provider: g.opts.Provider,
		DocType:  rec.Kind(),
	})

	var msg *schema.Message
	for attempt := 0; ; attempt++ {
		msg, err = g.attempt(runCtx, in)
		if err == nil {
			break
		}
		if attempt >= g.opts.MaxRetries || !IsTransient(err) {
			return "", fmt.Errorf("%w: %v", ErrGeneration, err)
		}
		metrics.NarrativeRetries.WithLabelValues(g.opts.Provider).Inc()
		logger.Warn(ctx, "narrative generation attempt failed, retrying",
			"attempt", attempt+1,
			"provider", g.opts.Provider,
			"error", err.Error(),
		)
		time.Sleep(retryBackoff * time.Duration(attempt+1))
	}

	text := cleanOutput(msg.Content)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %w", ErrGeneration, ErrEmptyOutput)
	}
	if g.opts.ConformanceCheck {
		if missing := CheckStructure(text); missing != "" {
			metrics.NarrativeConformanceFailures.Inc()
			return "", fmt.Errorf("%w: %w: heading %q missing or out of order", ErrGeneration, ErrNonConformed, missing)
		}
	}
	return text, nil
}

func (g *Generator) attempt(ctx context.Context, in *Input) (*schema.Message, error) {
	chain, err := g.getChain()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()
	return chain.Invoke(ctx, in)
}

func (g *Generator) getChain() (compose.Runnable[*Input, *schema.Message], error) {
	g.chainOnce.Do(func() {
		g.chain, g.chainErr = g.buildChain(context.Background())
	})
	return g.chain, g.chainErr
}

func (g *Generator) buildChain(ctx context.Context) (compose.Runnable[*Input, *schema.Message], error) {
	chain := compose.NewChain[*Input, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, in *Input) (*chainState, error) {
			msgs, err := g.formatMessages(ctx, in)
			if err != nil {
				return nil, err
			}
			return &chainState{In: in, Messages: msgs}, nil
		}),
		compose.WithNodeName("mfa.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *chainState) (*chainState, error) {
			if g.factory == nil {
				return nil, fmt.Errorf("llm factory not configured")
			}
			chatModel, err := g.factory.Get(ctx, st.In.Provider)
			if err != nil {
				return nil, err
			}
			outMsg, err := chatModel.Generate(ctx, st.Messages)
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, ErrEmptyOutput
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("mfa.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *chainState) (*schema.Message, error) {
			return st.OutMsg, nil
		}),
		compose.WithNodeName("mfa.finalize"),
	)

	return chain.Compile(ctx)
}

func (g *Generator) formatMessages(ctx context.Context, in *Input) ([]*schema.Message, error) {
	tpl, err := g.prompts.ChatTemplate(PromptMFAV1)
	if err != nil {
		return nil, err
	}
	return tpl.Format(ctx, map[string]any{
		"input_json":         in.PayloadJSON,
		"execution_date":     in.ExecutionDate,
		"place_of_execution": in.PlaceOfExecution,
	})
}

// buildInput serializes rec losslessly and pulls out the execution details
func buildInput(rec form.Record, provider string) (*Input, error) {
	var payload bytes.Buffer
	enc := json.NewEncoder(&payload)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("serialize record: %w", err)
	}
	fields, err := form.ToMap(rec)
	if err != nil {
		return nil, fmt.Errorf("serialize record: %w", err)
	}
	return &Input{
		Provider:         provider,
		PayloadJSON:      strings.TrimSpace(payload.String()),
		ExecutionDate:    stringOr(fields["execution_date"], DatePlaceholder),
		PlaceOfExecution: stringOr(fields["place_of_execution"], PlacePlaceholder),
	}, nil
}

func stringOr(v any, fallback string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}
