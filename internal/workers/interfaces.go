// Package workers runs the background workers of the client: the
// connectivity monitor and anything else that lives for the whole session.
package workers

import "context"

// Worker is a long-running background task. Run blocks until ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// Prober checks whether the remote store is reachable.
type Prober interface {
	Ping(ctx context.Context) error
}
