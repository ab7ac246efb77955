// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that runs and stops
// multiple workers in a unified way, and the concrete workers of the client:
// the token refresher and the history pruner.
package workers

// Worker is the interface that must be implemented by any background worker.
// Run starts the worker's execution; Stop shuts it down and waits for it to
// finish.
//
// Implementations are expected to return from Run quickly, spawning
// goroutines internally for the actual work.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run() {
//	    // start background processing
//	}
//
//	func (w *MyWorker) Stop() {
//	    // signal the goroutine and wait for it
//	}
type Worker interface {
	Run()
	Stop()
}
