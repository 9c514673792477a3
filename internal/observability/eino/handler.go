// Package eino 将 Eino 组件 callbacks 接入指标、追踪和日志。
package eino

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docgen-api/pkg/logger"
	"docgen-api/pkg/metrics"
)

// callStartKey 在 OnStart 与 OnEnd/OnError 之间传递开始时间和模型名
type callStartKey struct{}

type callStart struct {
	at    time.Time
	model string
}

func newChatModelCallbackHandler() *cbtemplate.ModelCallbackHandler {
	return &cbtemplate.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *model.CallbackInput) context.Context {
			call := CallFromContext(ctx)
			modelName := modelNameFromInput(input)
			ctx = context.WithValue(ctx, callStartKey{}, callStart{at: time.Now(), model: modelName})

			attrs := []attribute.KeyValue{
				attribute.String("eino.workflow", call.Workflow),
				attribute.String("llm.provider", call.Provider),
				attribute.String("llm.model", modelName),
				attribute.String("doc.type", call.DocType),
			}
			if info != nil {
				attrs = append(attrs,
					attribute.String("eino.node_name", info.Name),
					attribute.String("eino.type", info.Type),
				)
			}

			ctx, _ = otel.Tracer("eino").Start(ctx, "llm.generate", trace.WithAttributes(attrs...))
			logger.Debug(ctx, "llm call started", "workflow", call.Workflow, "provider", call.Provider, "model", modelName)
			return ctx
		},

		OnEnd: func(ctx context.Context, _ *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			call := CallFromContext(ctx)
			start := startFromContext(ctx)
			modelName := modelNameFromOutput(output)
			if modelName == "" {
				modelName = start.model
			}

			metrics.LLMCallTotal.WithLabelValues(call.Workflow, call.Provider, modelName, "success").Inc()
			d := elapsedSeconds(start)
			if d > 0 {
				metrics.LLMCallDuration.WithLabelValues(call.Workflow, call.Provider, modelName).Observe(d)
			}

			span := trace.SpanFromContext(ctx)
			if output != nil && output.TokenUsage != nil {
				promptTokens := output.TokenUsage.PromptTokens
				completionTokens := output.TokenUsage.CompletionTokens
				metrics.LLMTokensUsed.WithLabelValues(call.Workflow, call.Provider, modelName, "prompt").Add(float64(promptTokens))
				metrics.LLMTokensUsed.WithLabelValues(call.Workflow, call.Provider, modelName, "completion").Add(float64(completionTokens))
				span.SetAttributes(
					attribute.Int("llm.prompt_tokens", promptTokens),
					attribute.Int("llm.completion_tokens", completionTokens),
				)
			}
			span.End()

			logger.Debug(ctx, "llm call finished", "workflow", call.Workflow, "provider", call.Provider, "model", modelName, "duration_s", d)
			return ctx
		},

		OnError: func(ctx context.Context, _ *einocb.RunInfo, err error) context.Context {
			call := CallFromContext(ctx)
			start := startFromContext(ctx)

			metrics.LLMCallTotal.WithLabelValues(call.Workflow, call.Provider, start.model, "error").Inc()
			if d := elapsedSeconds(start); d > 0 {
				metrics.LLMCallDuration.WithLabelValues(call.Workflow, call.Provider, start.model).Observe(d)
			}

			span := trace.SpanFromContext(ctx)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()

			logger.Warn(ctx, "llm call failed", "workflow", call.Workflow, "provider", call.Provider, "model", start.model, "error", err)
			return ctx
		},
	}
}

func startFromContext(ctx context.Context) callStart {
	s, _ := ctx.Value(callStartKey{}).(callStart)
	return s
}

func elapsedSeconds(s callStart) float64 {
	if s.at.IsZero() {
		return 0
	}
	return time.Since(s.at).Seconds()
}

func modelNameFromInput(in *model.CallbackInput) string {
	if in == nil || in.Config == nil {
		return ""
	}
	return in.Config.Model
}

func modelNameFromOutput(out *model.CallbackOutput) string {
	if out == nil || out.Config == nil {
		return ""
	}
	return out.Config.Model
}
