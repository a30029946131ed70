package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "eddcli.pipeline"

// Runner executes a fixed stage sequence strictly in order. A stage failure
// aborts the run; later stages never start.
type Runner struct {
	stages []Stage
	tracer trace.Tracer
	logger *slog.Logger
}

// NewRunner creates a runner over the given stages.
func NewRunner(stages []Stage, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		stages: stages,
		tracer: otel.Tracer(tracerName),
		logger: logger,
	}
}

// Run executes every stage in order against the shared state.
func (r *Runner) Run(ctx context.Context, state *State) error {
	runID := uuid.New().String()
	logger := r.logger.With(
		slog.String("run_id", runID),
		slog.String("data_type", string(state.DataType.Type)))

	ctx, runSpan := r.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("pipeline.run_id", runID),
			attribute.String("pipeline.data_type", string(state.DataType.Type)),
		))
	defer runSpan.End()

	logger.Info("pipeline run started",
		slog.String("edd_file", state.EDDPath),
		slog.Int("stage_count", len(r.stages)))

	for _, stage := range r.stages {
		if err := ctx.Err(); err != nil {
			runSpan.SetStatus(codes.Error, "cancelled")
			return NewExecutionError(stage.ID(), err)
		}

		stageCtx, span := r.tracer.Start(ctx, "pipeline.stage."+stage.ID(),
			trace.WithAttributes(attribute.String("stage.id", stage.ID())))

		start := time.Now()
		logger.Info("stage started", slog.String("stage", stage.ID()))

		err := stage.Execute(stageCtx, state)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			runSpan.SetStatus(codes.Error, err.Error())
			logger.Error("stage failed",
				slog.String("stage", stage.ID()),
				slog.String("error", err.Error()))
			return err
		}

		span.End()
		logger.Info("stage completed",
			slog.String("stage", stage.ID()),
			slog.Duration("duration", time.Since(start)))
	}

	logger.Info("pipeline run completed",
		slog.String("output_file", state.OutputPath))
	return nil
}
