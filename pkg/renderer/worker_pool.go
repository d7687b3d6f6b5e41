package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Y           int          // Row to shade
	Framebuffer *Framebuffer // Shared framebuffer; each row owns disjoint slots
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Y     int
	Rays  integrator.RayStats
	Error error
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	ctx         context.Context
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Queues are buffered for every row so submitting never blocks.
func NewWorkerPool(ctx context.Context, raytracer *Raytracer, rows int, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		ctx:         ctx,
		taskQueue:   make(chan RowTask, rows),
		resultQueue: make(chan RowResult, rows),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(wp.ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Rows queued after cancellation are reported without shading
		if err := ctx.Err(); err != nil {
			w.resultQueue <- RowResult{Y: task.Y, Error: err}
			continue
		}

		var rays integrator.RayStats
		w.raytracer.renderRow(task.Y, task.Framebuffer, &rays)

		w.resultQueue <- RowResult{Y: task.Y, Rays: rays}
	}
}
