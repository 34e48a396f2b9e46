// Package telemetry is the diagnostic sink for breadcrumbs and captured
// exceptions. Reports go to the active OpenTelemetry span, Prometheus
// counters and the structured log. Nothing here blocks or returns errors to
// the caller.
package telemetry

import (
	"context"
	"log/slog"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Level is the severity of a breadcrumb.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Breadcrumb is a single entry in the diagnostic trail leading up to an event.
type Breadcrumb struct {
	Category string
	Message  string
	Level    Level
}

// Tag keys shared by reporters.
const (
	TagComponent = "component"
	TagOperation = "operation"
	TagUserID    = "user_id"
)

// Reporter implements the sink on top of OTel, Prometheus and slog.
type Reporter struct {
	log         *slog.Logger
	breadcrumbs *prometheus.CounterVec
	exceptions  *prometheus.CounterVec
}

// NewReporter creates a Reporter and registers its counters with reg.
func NewReporter(log *slog.Logger, reg prometheus.Registerer) *Reporter {
	factory := promauto.With(reg)
	return &Reporter{
		log: log.With("component", "telemetry"),
		breadcrumbs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safetylog_breadcrumbs_total",
			Help: "Diagnostic breadcrumbs emitted, by category and level.",
		}, []string{"category", "level"}),
		exceptions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safetylog_exceptions_total",
			Help: "Captured exceptions, by component and operation.",
		}, []string{"component", "operation"}),
	}
}

// Breadcrumb records b on the span in ctx and counts it.
func (r *Reporter) Breadcrumb(ctx context.Context, b Breadcrumb) {
	if b.Level == "" {
		b.Level = LevelInfo
	}

	trace.SpanFromContext(ctx).AddEvent("breadcrumb", trace.WithAttributes(
		attribute.String("breadcrumb.category", b.Category),
		attribute.String("breadcrumb.message", b.Message),
		attribute.String("breadcrumb.level", string(b.Level)),
	))

	r.breadcrumbs.WithLabelValues(b.Category, string(b.Level)).Inc()

	r.log.DebugContext(ctx, "breadcrumb",
		slog.String("category", b.Category),
		slog.String("message", b.Message),
		slog.String("level", string(b.Level)),
	)
}

// CaptureException records err with tags on the span in ctx, marks the span
// as failed, counts it and logs it with full detail.
func (r *Reporter) CaptureException(ctx context.Context, err error, tags map[string]string) {
	if err == nil {
		return
	}

	keys := sortedKeys(tags)
	attrs := make([]attribute.KeyValue, 0, len(keys))
	logAttrs := make([]any, 0, len(keys)+1)
	logAttrs = append(logAttrs, slog.String("error", err.Error()))
	for _, k := range keys {
		attrs = append(attrs, attribute.String("tag."+k, tags[k]))
		logAttrs = append(logAttrs, slog.String(k, tags[k]))
	}

	span := trace.SpanFromContext(ctx)
	span.RecordError(err, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, err.Error())

	r.exceptions.WithLabelValues(tags[TagComponent], tags[TagOperation]).Inc()

	r.log.ErrorContext(ctx, "exception captured", logAttrs...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Nop discards everything.
type Nop struct{}

func (Nop) Breadcrumb(context.Context, Breadcrumb)                     {}
func (Nop) CaptureException(context.Context, error, map[string]string) {}
