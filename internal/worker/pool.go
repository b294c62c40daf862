// Package worker provides the dispatcher/worker pool that runs
// asynchronous generation-fetch and render-submission jobs off the
// request path.
package worker

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Job is one unit of asynchronous work.
type Job interface {
	Execute() error
	ID() string
}

// Worker pulls jobs from its own channel, registering that channel with
// the shared pool whenever it is idle.
type Worker struct {
	id         int
	workerPool chan chan Job
	jobChannel chan Job
	quit       chan struct{}
	wg         *sync.WaitGroup
	log        *logrus.Logger
}

// NewWorker creates a worker bound to the given pool.
func NewWorker(id int, workerPool chan chan Job, wg *sync.WaitGroup, log *logrus.Logger) *Worker {
	return &Worker{
		id:         id,
		workerPool: workerPool,
		jobChannel: make(chan Job),
		quit:       make(chan struct{}),
		wg:         wg,
		log:        log,
	}
}

// Start runs the worker loop in its own goroutine.
func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			// Offer this worker's channel back to the pool.
			w.workerPool <- w.jobChannel

			select {
			case job := <-w.jobChannel:
				entry := w.log.WithFields(logrus.Fields{"worker": w.id, "job_id": job.ID()})
				entry.Info("Job started")
				if err := job.Execute(); err != nil {
					entry.WithField("error", err.Error()).Error("Job failed")
				} else {
					entry.Info("Job finished")
				}
			case <-w.quit:
				return
			}
		}
	}()
}

// Stop signals the worker to exit after its current job.
func (w *Worker) Stop() {
	close(w.quit)
}

// Dispatcher owns the job queue and a fixed pool of workers.
type Dispatcher struct {
	maxWorkers int
	workerPool chan chan Job
	jobQueue   chan Job
	workers    []*Worker
	wg         sync.WaitGroup
	quit       chan struct{}
	log        *logrus.Logger
}

// NewDispatcher creates a dispatcher with the given worker count and job
// queue capacity.
func NewDispatcher(maxWorkers, jobQueueSize int, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		maxWorkers: maxWorkers,
		workerPool: make(chan chan Job, maxWorkers),
		jobQueue:   make(chan Job, jobQueueSize),
		quit:       make(chan struct{}),
		log:        log,
	}
}

// Run starts the workers and the dispatch loop.
func (d *Dispatcher) Run() {
	d.log.WithField("workers", d.maxWorkers).Info("Dispatcher starting")
	for i := 1; i <= d.maxWorkers; i++ {
		w := NewWorker(i, d.workerPool, &d.wg, d.log)
		d.workers = append(d.workers, w)
		w.Start()
	}
	go d.dispatch()
}

func (d *Dispatcher) dispatch() {
	for {
		select {
		case job := <-d.jobQueue:
			go func(job Job) {
				jobChannel := <-d.workerPool
				jobChannel <- job
			}(job)
		case <-d.quit:
			return
		}
	}
}

// Submit queues a job without blocking. It returns false when the queue
// is full, leaving retry policy to the caller.
func (d *Dispatcher) Submit(job Job) bool {
	select {
	case d.jobQueue <- job:
		d.log.WithField("job_id", job.ID()).Info("Job submitted")
		return true
	default:
		d.log.WithField("job_id", job.ID()).Warn("Job queue full, submission rejected")
		return false
	}
}

// Stop shuts down the dispatch loop and waits for all workers to finish
// their current jobs.
func (d *Dispatcher) Stop() {
	close(d.quit)
	for _, w := range d.workers {
		w.Stop()
	}
	d.wg.Wait()
	d.log.Info("Dispatcher stopped")
}
