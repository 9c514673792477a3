package narrative

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"docgen-api/internal/domain/form"
)

const conformingDraft = `DRAFT - Requires independent legal review and lawyer signatures; not legal advice.

MARITAL FINANCIAL ARRANGEMENT

Date of Execution: 2 September 2025
Place of Execution: Bengaluru

PARTIES:
1. Asha, daughter of F and M.
2. Vikram, son of F and M.

RECITALS
A. The parties intend to marry on 20 November 2025.

1. DEFINITIONS
1.1 "MFA" means this arrangement.

2. SCHEDULE A - ASSETS
Asha: SBI account, ₹2,50,000.50 (Rupees Two Lakh Fifty Thousand and Paise Fifty).

3. SCHEDULE B - LIABILITIES
Nil.

4. CLAUSES
4.1 Pre-Marital Property

EXECUTION
Name _____________

[PAGE BREAK]
ANNEXURES
1. Bank statements.`

type fakeModel struct {
	mu      sync.Mutex
	calls   int
	seen    [][]*schema.Message
	respond func(ctx context.Context, call int) (*schema.Message, error)
}

func (m *fakeModel) Generate(ctx context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.seen = append(m.seen, in)
	m.mu.Unlock()
	return m.respond(ctx, call)
}

func (m *fakeModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, in, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *fakeModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type fakeFactory struct {
	m    model.BaseChatModel
	err  error
	name string
}

func (f *fakeFactory) Get(_ context.Context, name string) (model.BaseChatModel, error) {
	f.name = name
	return f.m, f.err
}

func reply(text string) func(context.Context, int) (*schema.Message, error) {
	return func(context.Context, int) (*schema.Message, error) {
		return schema.AssistantMessage(text, nil), nil
	}
}

func mfaRecord(t *testing.T) form.Record {
	t.Helper()
	party := func(name string) string {
		return `{
			"personal": {"name": "` + name + `", "gender": "F", "father_name": "F", "mother_name": "M", "dob": "1990-01-01", "address": "Indiranagar"},
			"employment": {"occupation": "Engineer", "employer": "Acme & Sons", "annual_income": "12,00,000"},
			"assets": {"bank_account": [{"bank_name": "SBI", "account_number": "123", "balance": "250000.50"}]},
			"liabilities": {"loans": [{"type": "home", "amount": 1500000, "bank": "HDFC"}]}
		}`
	}
	raw := `{"partyOne": ` + party("Asha") + `, "partyTwo": ` + party("Vikram") + `,
		"execution_date": "2025-09-02", "marriage_date": "2025-11-20", "place_of_execution": "Bengaluru"}`
	rec, err := form.Validate(form.KindMFA, []byte(raw))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return rec
}

func newTestGenerator(m *fakeModel, opts Options) (*Generator, *fakeFactory) {
	f := &fakeFactory{m: m}
	if opts.Provider == "" {
		opts.Provider = "gemini"
	}
	return NewGenerator(f, opts), f
}

func TestGenerate(t *testing.T) {
	m := &fakeModel{respond: reply("```text\n" + conformingDraft + "\n```")}
	g, f := newTestGenerator(m, Options{MaxRetries: 1, ConformanceCheck: true})

	text, err := g.Generate(context.Background(), mfaRecord(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if f.name != "gemini" {
		t.Errorf("provider = %q, want gemini", f.name)
	}
	if strings.Contains(text, "```") {
		t.Error("code fence left in output")
	}
	if strings.Count(text, "\f") != 1 || strings.Contains(text, "[PAGE BREAK]") {
		t.Errorf("page break not converted:\n%s", text)
	}
	if !strings.HasPrefix(text, "DRAFT - ") || !strings.HasSuffix(text, "Bank statements.\n") {
		t.Errorf("unexpected framing:\n%q", text)
	}

	if len(m.seen) != 1 || len(m.seen[0]) != 2 {
		t.Fatalf("model saw %d calls", len(m.seen))
	}
	system, user := m.seen[0][0], m.seen[0][1]
	if system.Role != schema.System || !strings.Contains(system.Content, "MFA-Drafter") {
		t.Errorf("system message = %q", system.Content)
	}
	for _, want := range []string{
		"Date of execution: 2025-09-02",
		"Place of execution: Bengaluru",
		`"partyOne": {`,
		`"employer": "Acme & Sons"`,
		`"balance": "250000.50"`,
		`"amount": 1500000`,
		`"marriage_date": "2025-11-20"`,
	} {
		if !strings.Contains(user.Content, want) {
			t.Errorf("user message lacks %q", want)
		}
	}
}

func TestGenerateNoRetryOnPermanentError(t *testing.T) {
	m := &fakeModel{respond: func(context.Context, int) (*schema.Message, error) {
		return nil, errors.New("invalid api key")
	}}
	g, _ := newTestGenerator(m, Options{MaxRetries: 1})

	_, err := g.Generate(context.Background(), mfaRecord(t))
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("error = %v, want ErrGeneration", err)
	}
	if m.Calls() != 1 {
		t.Errorf("calls = %d, want 1", m.Calls())
	}
}

func TestGenerateRetriesTransientErrorOnce(t *testing.T) {
	m := &fakeModel{respond: func(_ context.Context, call int) (*schema.Message, error) {
		if call == 1 {
			return nil, errors.New("googleapi: Error 503: model overloaded")
		}
		return schema.AssistantMessage(conformingDraft, nil), nil
	}}
	g, _ := newTestGenerator(m, Options{MaxRetries: 1, ConformanceCheck: true})

	if _, err := g.Generate(context.Background(), mfaRecord(t)); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if m.Calls() != 2 {
		t.Errorf("calls = %d, want 2", m.Calls())
	}
}

func TestGenerateGivesUpAfterRetries(t *testing.T) {
	m := &fakeModel{respond: func(context.Context, int) (*schema.Message, error) {
		return nil, errors.New("429 rate limit")
	}}
	g, _ := newTestGenerator(m, Options{MaxRetries: 1})

	if _, err := g.Generate(context.Background(), mfaRecord(t)); !errors.Is(err, ErrGeneration) {
		t.Fatalf("error = %v, want ErrGeneration", err)
	}
	if m.Calls() != 2 {
		t.Errorf("calls = %d, want 2", m.Calls())
	}
}

func TestGenerateOutputChecks(t *testing.T) {
	nonConforming := strings.Replace(conformingDraft, "3. SCHEDULE B - LIABILITIES", "3. LIABILITIES", 1)

	tests := []struct {
		name        string
		output      string
		conformance bool
		wantErr     error
	}{
		{"empty", "  \n ", true, ErrEmptyOutput},
		{"fence only", "```\n```", false, ErrEmptyOutput},
		{"missing heading", nonConforming, true, ErrNonConformed},
		{"check disabled", nonConforming, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGenerator(&fakeModel{respond: reply(tt.output)}, Options{ConformanceCheck: tt.conformance})
			_, err := g.Generate(context.Background(), mfaRecord(t))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Generate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrGeneration) {
				t.Fatalf("error = %v, want %v wrapped in ErrGeneration", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateSurvivesCallerCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	m := &fakeModel{respond: func(ctx context.Context, _ int) (*schema.Message, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return schema.AssistantMessage(conformingDraft, nil), nil
	}}
	g, _ := newTestGenerator(m, Options{ConformanceCheck: true})

	rec := mfaRecord(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := g.Generate(ctx, rec)
		done <- err
	}()

	<-started
	cancel()
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Generate() error = %v after caller cancellation", err)
	}
}

func TestGenerateAttemptTimeout(t *testing.T) {
	m := &fakeModel{respond: func(ctx context.Context, _ int) (*schema.Message, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	g, _ := newTestGenerator(m, Options{Timeout: 20 * time.Millisecond, MaxRetries: 0})

	_, err := g.Generate(context.Background(), mfaRecord(t))
	if !errors.Is(err, ErrGeneration) || !strings.Contains(err.Error(), "deadline exceeded") {
		t.Fatalf("error = %v, want a deadline failure", err)
	}
}

func TestGenerateBoundsConcurrency(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	m := &fakeModel{respond: func(context.Context, int) (*schema.Message, error) {
		close(started)
		<-release
		return schema.AssistantMessage(conformingDraft, nil), nil
	}}
	g, _ := newTestGenerator(m, Options{MaxConcurrency: 1})
	rec := mfaRecord(t)

	go func() { _, _ = g.Generate(context.Background(), rec) }()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := g.Generate(ctx, rec)
	close(release)
	if !errors.Is(err, ErrGeneration) || !strings.Contains(err.Error(), "generation slot") {
		t.Fatalf("error = %v, want a slot wait failure", err)
	}
	if m.Calls() != 1 {
		t.Errorf("calls = %d, want 1", m.Calls())
	}
}

func TestGenerateFactoryError(t *testing.T) {
	f := &fakeFactory{err: errors.New("provider gemini not found in LLM config")}
	g := NewGenerator(f, Options{Provider: "gemini"})
	if _, err := g.Generate(context.Background(), mfaRecord(t)); !errors.Is(err, ErrGeneration) {
		t.Fatalf("error = %v, want ErrGeneration", err)
	}
}

func TestBuildInputPlaceholders(t *testing.T) {
	in, err := buildInput(&form.NDASubmit{}, "openai")
	if err != nil {
		t.Fatal(err)
	}
	if in.ExecutionDate != DatePlaceholder || in.PlaceOfExecution != PlacePlaceholder {
		t.Errorf("got date %q place %q", in.ExecutionDate, in.PlaceOfExecution)
	}
}
