// Package worker wraps the synchronous layout engine in the
// request/progress/result channel protocol described for callers that
// need a responsive UI: a request goes in, zero or more progress
// notifications and exactly one terminal result come out, and
// cancellation is cooperative.
//
// It is intentionally shaped like the teacher repo's realtime.Hub
// register/unregister channel loop, generalized from a room's fan-out to
// a single request's lifecycle.
package worker

import (
	"context"

	"github.com/xwordgen/engine/pkg/layout"
)

// Request carries the parameters for one generation call.
type Request struct {
	Entries        []layout.Entry
	RequestedCount int
	Seed           *int64
}

// Progress is a free-form, human-readable phase notification. It carries
// no semantics beyond display text.
type Progress struct {
	Message string
}

// Result is the single terminal message a Run sends before closing its
// result channel. Exactly one of Layout or Err is set.
type Result struct {
	Layout *layout.Result
	Err    error
}

// Run starts the engine on its own goroutine and returns immediately. The
// caller must drain progress until it closes, then read exactly one
// value from result. ctx only governs whether that single goroutine ever
// starts the search and whether it keeps forwarding progress -- the
// engine accepts no context of its own, so a search already underway
// runs to completion on its goroutine; a cancelled ctx simply means the
// caller stops hearing about it. If ctx is already done when Run is
// called, no search is started at all and the terminal result carries
// ctx.Err().
func Run(ctx context.Context, req Request) (progress <-chan Progress, result <-chan Result) {
	progressCh := make(chan Progress)
	resultCh := make(chan Result, 1)

	go func() {
		defer close(progressCh)
		defer close(resultCh)

		select {
		case <-ctx.Done():
			resultCh <- Result{Err: ctx.Err()}
			return
		default:
		}

		r, err := layout.Generate(req.Entries, req.RequestedCount, layout.Options{
			Seed: req.Seed,
			OnProgress: func(msg string) {
				select {
				case progressCh <- Progress{Message: msg}:
				case <-ctx.Done():
				}
			},
		})
		resultCh <- Result{Layout: r, Err: err}
	}()

	return progressCh, resultCh
}
