package observe

import (
	"context"
	"io"
	"testing"
)

func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard).WithFunc(FuncMeta{Name: "f"})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "message", Field{Key: "i", Value: i})
	}
}

func BenchmarkLogger_Filtered(b *testing.B) {
	logger := NewLoggerWithWriter("error", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug(ctx, "dropped")
	}
}

func BenchmarkCacheMetrics_RecordHit(b *testing.B) {
	mp, _ := newTestMeterProvider()
	m, err := NewCacheMetrics(mp.Meter("bench"))
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.RecordHit(ctx, "f")
	}
}

func BenchmarkMiddleware_Wrap(b *testing.B) {
	mw, err := NewMiddleware(nil, nil, NewLoggerWithWriter("info", io.Discard), TimingConfig{})
	if err != nil {
		b.Fatal(err)
	}
	wrapped := mw.Wrap(func(context.Context, FuncMeta, []any) (any, error) { return nil, nil })
	meta := FuncMeta{Name: "f"}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = wrapped(ctx, meta, nil)
	}
}
