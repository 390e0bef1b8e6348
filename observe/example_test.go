package observe_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/fnwrap/observe"
)

func ExampleNewObserver() {
	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "example-service",
		Version:     "1.0.0",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1},
		Logging:     observe.LoggingConfig{Enabled: true, Level: "error"},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = obs.Shutdown(ctx) }()

	fmt.Println("observer ready")
	// Output:
	// observer ready
}

func ExampleConfig_Validate() {
	cfg := observe.Config{
		ServiceName: "svc",
		Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "statsd"},
	}
	err := cfg.Validate()
	fmt.Println(errors.Is(err, observe.ErrInvalidMetricsExporter))
	// Output:
	// true
}

func ExampleFuncMeta_SpanName() {
	meta := observe.FuncMeta{Namespace: "billing", Name: "rate"}
	fmt.Println(meta.FuncID())
	fmt.Println(meta.SpanName())
	// Output:
	// billing.rate
	// func.call.billing.rate
}

func ExampleMiddleware_Wrap() {
	mw, err := observe.NewMiddleware(nil, nil, nil, observe.TimingConfig{
		LogArgs: true,
		Unit:    observe.UnitMilliseconds,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	add := mw.Wrap(func(_ context.Context, _ observe.FuncMeta, args []any) (any, error) {
		return args[0].(int) + args[1].(int), nil
	})

	result, err := add(context.Background(), observe.FuncMeta{Name: "add"}, []any{2, 3})
	fmt.Println(result, err)
	// Output:
	// 5 <nil>
}
