package fn

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/krushit/krushit/pkg/fn"

// Stage is a function that transforms In to Out within a context.
type Stage[In, Out any] func(context.Context, In) Result[Out]

// Then composes two stages, short-circuiting on error.
func Then[A, B, C any](first Stage[A, B], second Stage[B, C]) Stage[A, C] {
	return func(ctx context.Context, a A) Result[C] {
		r := first(ctx, a)
		b, err := r.Unwrap()
		if r.IsErr() {
			return Err[C](err)
		}
		return second(ctx, b)
	}
}

// Lift wraps a function that cannot fail as a Stage.
func Lift[In, Out any](f func(context.Context, In) Out) Stage[In, Out] {
	return func(ctx context.Context, in In) Result[Out] {
		return Ok(f(ctx, in))
	}
}

// TracedStage runs stage under an OTel span named name and records its error.
func TracedStage[In, Out any](name string, stage Stage[In, Out]) Stage[In, Out] {
	return func(ctx context.Context, in In) Result[Out] {
		ctx, span := otel.Tracer(tracerName).Start(ctx, name)
		defer span.End()
		result := stage(ctx, in)
		if _, err := result.Unwrap(); result.IsErr() {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return result
	}
}
