package eino

import (
	"context"
	"strings"
)

const unknown = "unknown"

// Call 一次 LLM 调用的指标/追踪标签
type Call struct {
	Workflow string
	Provider string
	DocType  string
}

type callKey struct{}

// WithCall 将 c 注入 ctx，空字段保留已有的值
func WithCall(ctx context.Context, c Call) context.Context {
	cur, _ := ctx.Value(callKey{}).(Call)
	if s := strings.TrimSpace(c.Workflow); s != "" {
		cur.Workflow = s
	}
	if s := strings.TrimSpace(c.Provider); s != "" {
		cur.Provider = s
	}
	if s := strings.TrimSpace(c.DocType); s != "" {
		cur.DocType = s
	}
	return context.WithValue(ctx, callKey{}, cur)
}

// CallFromContext 从 ctx 读取标签，缺失的字段为 "unknown"
func CallFromContext(ctx context.Context) Call {
	var c Call
	if ctx != nil {
		c, _ = ctx.Value(callKey{}).(Call)
	}
	if c.Workflow == "" {
		c.Workflow = unknown
	}
	if c.Provider == "" {
		c.Provider = unknown
	}
	if c.DocType == "" {
		c.DocType = unknown
	}
	return c
}
