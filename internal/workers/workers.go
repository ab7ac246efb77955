package workers

// Workers runs a fixed set of background workers as one unit.
type Workers struct {
	workers []Worker
}

// NewWorkers aggregates the given workers. Run starts them in the given
// order; Stop shuts them down in reverse.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
