// Package tracing provides a plugin that wraps each run in an
// OpenTelemetry span. The span starts on the input belt and ends on the
// output belt, or on the error belt when the core fails. A run recovered
// by a later plugin keeps the errored span. Spans of nested engines and
// pipelines are children of the span of the run enclosing them.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/failure"
	"github.com/ib-77/convee/pkg/convee/metadata"
)

const instrumentation = "github.com/ib-77/convee/pkg/convee/plugin/tracing"

type Plugin[I, O any] struct {
	name    string
	spanKey string
	prevKey string
	tracer  trace.Tracer
}

// activeKey holds the innermost open span of a run. Nested engines share
// the run's metadata, so their spans become children of the enclosing one.
const activeKey = "tracing.active"

// New returns a plugin starting spans named name. A nil tracer uses the
// global provider. Plugins sharing a run through nested engines need
// distinct names, since the open span lives in the run's metadata under
// "tracing.<name>.span".
func New[I, O any](name string, tracer trace.Tracer) *Plugin[I, O] {
	if tracer == nil {
		tracer = otel.Tracer(instrumentation)
	}
	return &Plugin[I, O]{
		name:    name,
		spanKey: "tracing." + name + ".span",
		prevKey: "tracing." + name + ".prev",
		tracer:  tracer,
	}
}

func (p *Plugin[I, O]) Name() string {
	return p.name
}

// ProcessInput starts the run's span. A span already on ctx is the parent;
// otherwise the innermost span still open in the run is.
func (p *Plugin[I, O]) ProcessInput(ctx context.Context, in I, md *metadata.Helper) (I, error) {
	parent, hasParent := metadata.Value[trace.Span](md, activeKey)
	if hasParent && !trace.SpanContextFromContext(ctx).IsValid() {
		ctx = trace.ContextWithSpan(ctx, parent)
	}

	_, span := p.tracer.Start(ctx, p.name, trace.WithAttributes(
		attribute.String("convee.item_id", md.ItemID()),
	))
	md.Add(p.spanKey, span)
	md.Add(p.prevKey, parent)
	md.Add(activeKey, span)
	return in, nil
}

func (p *Plugin[I, O]) ProcessOutput(_ context.Context, out O, md *metadata.Helper) (O, error) {
	if span, ok := p.take(md); ok {
		span.SetStatus(codes.Ok, "")
		span.End()
	}
	return out, nil
}

func (p *Plugin[I, O]) ProcessError(_ context.Context, err *failure.Error, md *metadata.Helper) convee.Result[O] {
	if span, ok := p.take(md); ok {
		span.RecordError(err)
		span.SetAttributes(attribute.Int("convee.error_depth", err.Depth()))
		span.SetStatus(codes.Error, err.Error())
		span.End()
	}
	return convee.Fail[O](nil)
}

// take removes the plugin's open span from md and makes the enclosing span
// active again.
func (p *Plugin[I, O]) take(md *metadata.Helper) (trace.Span, bool) {
	span, ok := metadata.Value[trace.Span](md, p.spanKey)
	if ok {
		md.Add(p.spanKey, nil)
		prev, _ := metadata.Value[trace.Span](md, p.prevKey)
		md.Add(activeKey, prev)
	}
	return span, ok
}
