package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey Context 中存放链路 ID 的 Key
const TraceIDKey = "trace_id"

// WithTraceID 把链路 ID 挂到 ctx 上，HTTP 请求和后台巡检共用同一套链路标记
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// ContextHandler 从 ctx 提取 trace_id 附加到每条日志
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
