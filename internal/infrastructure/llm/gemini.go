package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiConfig configures a GeminiChatModel
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// GeminiChatModel is an eino chat model backed by the Google Generative AI SDK
type GeminiChatModel struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int
}

var _ model.BaseChatModel = (*GeminiChatModel)(nil)

func NewGeminiChatModel(ctx context.Context, cfg GeminiConfig) (*GeminiChatModel, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini: api key is empty (set GOOGLE_API_KEY)")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("gemini: model is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiChatModel{
		client:      cl,
		model:       strings.TrimSpace(cfg.Model),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (m *GeminiChatModel) GetType() string { return "Gemini" }

// IsCallbacksEnabled reports that Generate triggers the eino callbacks itself
func (m *GeminiChatModel) IsCallbacksEnabled() bool { return true }

func (m *GeminiChatModel) Close() error { return m.client.Close() }

func (m *GeminiChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (out *schema.Message, err error) {
	ctx = callbacks.EnsureRunInfo(ctx, m.GetType(), components.ComponentOfChatModel)

	options := model.GetCommonOptions(&model.Options{
		Model:       &m.model,
		Temperature: &m.temperature,
		MaxTokens:   &m.maxTokens,
	}, opts...)
	conf := &model.Config{Model: *options.Model}
	if options.Temperature != nil {
		conf.Temperature = *options.Temperature
	}
	if options.MaxTokens != nil {
		conf.MaxTokens = *options.MaxTokens
	}

	ctx = callbacks.OnStart(ctx, &model.CallbackInput{Messages: in, Config: conf})
	defer func() {
		if err != nil {
			callbacks.OnError(ctx, err)
		}
	}()

	system, history, last, err := toContents(in)
	if err != nil {
		return nil, err
	}

	gm := m.client.GenerativeModel(conf.Model)
	gm.SetTemperature(conf.Temperature)
	if conf.MaxTokens > 0 {
		gm.SetMaxOutputTokens(int32(conf.MaxTokens))
	}
	if system != nil {
		gm.SystemInstruction = system
	}

	var resp *genai.GenerateContentResponse
	if len(history) == 0 {
		resp, err = gm.GenerateContent(ctx, last.Parts...)
	} else {
		cs := gm.StartChat()
		cs.History = history
		resp, err = cs.SendMessage(ctx, last.Parts...)
	}
	if err != nil {
		return nil, fmt.Errorf("gemini: generate: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	out = schema.AssistantMessage(text, nil)
	usage := tokenUsage(resp)
	if usage != nil {
		out.ResponseMeta = &schema.ResponseMeta{Usage: &schema.TokenUsage{
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			TotalTokens:      usage.TotalTokens,
		}}
	}

	callbacks.OnEnd(ctx, &model.CallbackOutput{Message: out, Config: conf, TokenUsage: usage})
	return out, nil
}

// Stream delivers the whole generation as a single chunk
func (m *GeminiChatModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	out, err := m.Generate(ctx, in, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{out}), nil
}

// toContents splits eino messages into a system instruction, prior turns and the turn to send
func toContents(in []*schema.Message) (system *genai.Content, history []*genai.Content, last *genai.Content, err error) {
	var sys []genai.Part
	var turns []*genai.Content
	for _, msg := range in {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			sys = append(sys, genai.Text(msg.Content))
		case schema.User:
			turns = append(turns, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(msg.Content)}})
		case schema.Assistant:
			turns = append(turns, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(msg.Content)}})
		default:
			return nil, nil, nil, fmt.Errorf("gemini: unsupported message role %q", msg.Role)
		}
	}
	if len(turns) == 0 || turns[len(turns)-1].Role != "user" {
		return nil, nil, nil, errors.New("gemini: conversation must end with a user message")
	}
	if len(sys) > 0 {
		system = &genai.Content{Parts: sys}
	}
	return system, turns[:len(turns)-1], turns[len(turns)-1], nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini: empty response")
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("gemini: prompt blocked: %v", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini: no candidates in response")
	}

	var b strings.Builder
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			break
		}
	}
	return b.String(), nil
}

func tokenUsage(resp *genai.GenerateContentResponse) *model.TokenUsage {
	if resp == nil || resp.UsageMetadata == nil {
		return nil
	}
	u := resp.UsageMetadata
	return &model.TokenUsage{
		PromptTokens:     int(u.PromptTokenCount),
		CompletionTokens: int(u.CandidatesTokenCount),
		TotalTokens:      int(u.TotalTokenCount),
	}
}
