package logger

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupGin 访问日志与 panic 恢复。访问日志直接拼成 JSON 行，
// 格式与 slog 的输出对齐，方便同一管道收集。
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output: LogWriter,
		Formatter: func(p gin.LogFormatterParams) string {
			traceID := requestTraceID(p)
			return fmt.Sprintf(
				`{"time":"%s","level":"INFO","msg":"http access","trace_id":"%s","method":"%s","path":"%s","status":%d,"latency":"%v","client_ip":"%s"}`+"\n",
				p.TimeStamp.Format(time.RFC3339),
				traceID,
				p.Method,
				p.Path,
				p.StatusCode,
				p.Latency,
				p.ClientIP,
			)
		},
	}))

	r.Use(gin.Recovery())
}

func requestTraceID(p gin.LogFormatterParams) string {
	if p.Keys != nil {
		if id, ok := p.Keys[TraceIDKey].(string); ok {
			return id
		}
	}
	if p.Request != nil {
		if id, ok := p.Request.Context().Value(TraceIDKey).(string); ok {
			return id
		}
	}
	return ""
}
