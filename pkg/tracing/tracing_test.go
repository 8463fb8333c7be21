package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TestStartSpan_TraceIDPropagation Span创建后TraceID可从context提取
func TestStartSpan_TraceIDPropagation(t *testing.T) {
	// 使用不带导出器的TracerProvider（测试无需Collector）
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := StartSpan(context.Background(), "test", "test.operation")
	defer span.End()

	traceID := ExtractTraceID(ctx)
	if traceID == "" {
		t.Error("Span创建后应能提取TraceID")
	}

	spanID := ExtractSpanID(ctx)
	if spanID == "" {
		t.Error("Span创建后应能提取SpanID")
	}

	// 子Span与父Span共享TraceID
	childCtx, childSpan := StartSpan(ctx, "test", "test.child")
	defer childSpan.End()

	if ExtractTraceID(childCtx) != traceID {
		t.Error("子Span应与父Span共享TraceID")
	}
	if ExtractSpanID(childCtx) == spanID {
		t.Error("子Span应有独立的SpanID")
	}
}

// TestExtractTraceID_NoSpan 无Span的context返回空字符串
func TestExtractTraceID_NoSpan(t *testing.T) {
	if id := ExtractTraceID(context.Background()); id != "" {
		t.Errorf("无Span的context应返回空TraceID, got %q", id)
	}
}
