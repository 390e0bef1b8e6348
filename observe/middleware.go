package observe

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Duration units accepted by TimingConfig.
const (
	UnitSeconds      = "s"
	UnitMilliseconds = "ms"
)

// TimingConfig configures what the timing Middleware logs for each call.
type TimingConfig struct {
	// Label replaces the function name in log messages.
	// Default: FuncMeta.Name
	Label string

	// LogArgs includes the call arguments in the message and an "args" field.
	LogArgs bool

	// LogResult includes the returned value in the message and a "result" field.
	LogResult bool

	// Level is the level for successful calls (debug|info|warn|error).
	// Failed calls are always logged at error level.
	// Default: info
	Level string

	// Unit is the unit of the reported duration (s|ms).
	// Default: s
	Unit string
}

// Validate checks Level and Unit.
func (c TimingConfig) Validate() error {
	if !slices.Contains(ValidUnits, c.Unit) {
		return fmt.Errorf("%w: %q", ErrInvalidUnit, c.Unit)
	}
	if !slices.Contains(ValidLogLevels, c.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Level)
	}
	return nil
}

// ExecuteFunc is the signature Middleware wraps.
type ExecuteFunc func(ctx context.Context, fn FuncMeta, args []any) (any, error)

// Middleware times wrapped calls and reports them through tracing, metrics
// and logging.
//
// Contract:
//   - Concurrency: Wrap returns a function safe for concurrent use.
//   - Context: the span context is passed to the wrapped function.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
//   - Ownership: arguments and results are passed through without modification.
type Middleware struct {
	tracer  Tracer
	metrics CallMetrics
	logger  Logger
	cfg     TimingConfig
	level   LogLevel
}

// NewMiddleware creates a timing Middleware. Nil components are replaced
// with no-op implementations.
func NewMiddleware(tracer Tracer, metrics CallMetrics, logger Logger, cfg TimingConfig) (*Middleware, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Unit == "" {
		cfg.Unit = UnitSeconds
	}
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = nopCallMetrics{}
	}
	if logger == nil {
		logger = NopLogger()
	}

	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		level:   ParseLogLevel(cfg.Level),
	}, nil
}

// MiddlewareFromObserver creates a timing Middleware from an Observer's
// tracer, meter and logger.
func MiddlewareFromObserver(obs Observer, cfg TimingConfig) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewCallMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger(), cfg)
}

// Wrap returns fn instrumented with a span, call metrics and a log entry of
// the form "name(args) took 0.0012345s".
func (m *Middleware) Wrap(fn ExecuteFunc) ExecuteFunc {
	return func(ctx context.Context, meta FuncMeta, args []any) (any, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		result, err := fn(ctx, meta, args)
		elapsed := time.Since(start)

		m.tracer.EndSpan(span, err)
		m.metrics.RecordCall(ctx, meta, elapsed, err)
		m.logCall(ctx, meta, args, result, elapsed, err)

		return result, err
	}
}

func (m *Middleware) logCall(ctx context.Context, meta FuncMeta, args []any, result any, elapsed time.Duration, err error) {
	name := m.cfg.Label
	if name == "" {
		name = meta.Name
	}

	var params string
	fields := []Field{
		{Key: "duration", Value: m.scale(elapsed)},
		{Key: "unit", Value: m.cfg.Unit},
	}
	if m.cfg.LogArgs && len(args) > 0 {
		rendered := make([]string, len(args))
		for i, a := range args {
			rendered[i] = fmt.Sprint(a)
		}
		params = strings.Join(rendered, ", ")
		fields = append(fields, Field{Key: "args", Value: rendered})
	}

	logger := m.logger.WithFunc(meta)

	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		logger.Error(ctx, fmt.Sprintf("%s(%s) failed after %.7f%s", name, params, m.scale(elapsed), m.cfg.Unit), fields...)
		return
	}

	msg := fmt.Sprintf("%s(%s) took %.7f%s", name, params, m.scale(elapsed), m.cfg.Unit)
	if m.cfg.LogResult {
		msg += fmt.Sprintf(" and returned: %v", result)
		fields = append(fields, Field{Key: "result", Value: fmt.Sprint(result)})
	}
	LogAt(ctx, logger, m.level, msg, fields...)
}

func (m *Middleware) scale(d time.Duration) float64 {
	if m.cfg.Unit == UnitMilliseconds {
		return float64(d) / float64(time.Millisecond)
	}
	return d.Seconds()
}
