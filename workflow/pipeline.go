package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	rferrors "github.com/randalmurphal/releaseflow/errors"
	"github.com/randalmurphal/releaseflow/notify"
	"github.com/randalmurphal/releaseflow/telemetry"
)

const instrumentationName = "github.com/randalmurphal/releaseflow/workflow"

// Pipeline runs the steps of one workflow strictly in order.
//
// The first failing step halts the workflow. Nothing is rolled back; effects
// of earlier steps remain.
type Pipeline struct {
	name  string
	steps []Step
}

// NewPipeline creates a pipeline for the named workflow.
func NewPipeline(name string, steps []Step) *Pipeline {
	return &Pipeline{name: name, steps: steps}
}

// Steps returns the pipeline's steps.
func (p *Pipeline) Steps() []Step {
	return p.steps
}

// Run executes every step against rt and returns the final run.
//
// On failure the run as it was before the failing step is returned along
// with a *StepFailedError.
func (p *Pipeline) Run(ctx context.Context, rt RunType) (RunType, error) {
	if len(p.steps) == 0 {
		return rt, nil
	}

	ctx, span := telemetry.Tracer(instrumentationName).Start(ctx, "workflow.run",
		trace.WithAttributes(
			attribute.String("releaseflow.workflow", p.name),
			attribute.String("releaseflow.run_id", rt.State().RunID),
			attribute.String("releaseflow.mode", rt.mode()),
		))
	defer span.End()

	var failed *StepFailedError
	graph := flowgraph.NewGraph[RunType]()
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = fmt.Sprintf("%02d-%s", i+1, step.Name())
		graph.AddNode(names[i], p.node(i+1, step, &failed))
	}
	for i := 0; i < len(names)-1; i++ {
		graph.AddEdge(names[i], names[i+1])
	}
	graph.AddEdge(names[len(names)-1], flowgraph.END).SetEntry(names[0])

	compiled, err := graph.Compile()
	if err != nil {
		return rt, rferrors.Bug(fmt.Errorf("compile workflow %s: %w", p.name, err))
	}

	slog.Debug("running workflow", "workflow", p.name, "run_id", rt.State().RunID, "steps", len(p.steps), "mode", rt.mode())
	result, err := compiled.Run(flowgraph.NewContext(ctx), rt)
	if failed != nil {
		span.SetStatus(codes.Error, failed.Error())
		announce(ctx, failed.run, notify.Event{
			Type:     notify.EventRunFailed,
			Step:     failed.Step,
			Message:  fmt.Sprintf("Workflow %s failed: %v", p.name, failed),
			Severity: notify.SeverityError,
		})
		return failed.run, failed
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return rt, rferrors.Bug(fmt.Errorf("workflow %s: %w", p.name, err))
	}

	event := notify.Event{
		Type:    notify.EventRunCompleted,
		Message: fmt.Sprintf("Workflow %s completed", p.name),
	}
	if prepared := result.State().Release; prepared != nil {
		event.Metadata = map[string]any{"tag": prepared.Tag}
	}
	announce(ctx, result, event)
	return result, nil
}

// node adapts step to a flowgraph node. A failure is recorded in failed so
// the caller sees the step's own error, whatever the graph does with it.
func (p *Pipeline) node(index int, step Step, failed **StepFailedError) func(flowgraph.Context, RunType) (RunType, error) {
	return func(fctx flowgraph.Context, rt RunType) (RunType, error) {
		ctx, span := telemetry.Tracer(instrumentationName).Start(fctx, "workflow.step",
			trace.WithAttributes(
				attribute.Int("releaseflow.step.index", index),
				attribute.String("releaseflow.step.type", step.Name()),
			))
		defer span.End()

		logger := slog.With("run_id", rt.State().RunID, "step", index, "type", step.Name())
		logger.Debug("running step", "mode", rt.mode())

		start := time.Now()
		next, err := step.Run(ctx, rt)
		if err == nil && next.Simulating() != rt.Simulating() {
			err = rferrors.Bug(fmt.Errorf("step %s changed the run type from %s to %s", step.Name(), rt.mode(), next.mode()))
		}
		recordStep(ctx, step.Name(), rt.mode(), err, time.Since(start))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Debug("step failed", "error", err)
			*failed = &StepFailedError{Index: index, Step: step.Name(), Err: err, run: rt}
			return rt, *failed
		}
		return next, nil
	}
}

// stepMetrics holds lazily-initialized OTel instruments for steps.
var stepMetrics struct {
	count    metric.Int64Counter
	duration metric.Float64Histogram
}

var stepMetricsOnce sync.Once

func initStepMetrics() {
	m := telemetry.Meter(instrumentationName)
	stepMetrics.count, _ = m.Int64Counter("releaseflow.workflow.steps",
		metric.WithDescription("Workflow steps executed"),
		metric.WithUnit("{step}"),
	)
	stepMetrics.duration, _ = m.Float64Histogram("releaseflow.workflow.step.duration",
		metric.WithDescription("Workflow step duration in milliseconds"),
		metric.WithUnit("ms"),
	)
}

func recordStep(ctx context.Context, step, mode string, err error, elapsed time.Duration) {
	stepMetricsOnce.Do(initStepMetrics)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("releaseflow.step.type", step),
		attribute.String("releaseflow.mode", mode),
		attribute.String("releaseflow.outcome", outcome),
	)
	if stepMetrics.count != nil {
		stepMetrics.count.Add(ctx, 1, attrs)
		stepMetrics.duration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
	}
}
