package classifier

import (
	"context"
	"errors"
	"time"

	"github.com/krushit/krushit/engine/advisory"
	"github.com/krushit/krushit/pkg/fn"
)

var errUnreachable = errors.New("classifier unreachable")

type retrying struct {
	next Classifier
	opts fn.RetryOpts
}

// Retrying wraps c so that Unreachable outcomes are retried with exponential
// backoff. Failed outcomes are returned as-is; the classifier answered and
// asking again would not change the answer. Each attempt gets the full
// timeout.
func Retrying(c Classifier, opts fn.RetryOpts) Classifier {
	if opts.MaxAttempts <= 1 {
		return c
	}
	return &retrying{next: c, opts: opts}
}

func (r *retrying) Classify(ctx context.Context, image []byte, lang advisory.Language, timeout time.Duration) Result {
	var last Result
	res := fn.Retry(ctx, r.opts, func(ctx context.Context) fn.Result[Result] {
		last = r.next.Classify(ctx, image, lang, timeout)
		if last.Outcome == Unreachable {
			return fn.Err[Result](errUnreachable)
		}
		return fn.Ok(last)
	})
	if v, err := res.Unwrap(); err == nil {
		return v
	}
	// Attempts exhausted or ctx done during backoff: last is Unreachable.
	return last
}
