package renderer

import (
	"runtime"
	"sync"

	"github.com/funnsam/termray/pkg/core"
)

// RowTask asks a worker to render one display row of a frame.
// Accum and Pixels are that row's slices of the shared buffer and frame;
// no two tasks of a frame share a row, so workers never write the same memory.
type RowTask struct {
	Row        int
	Accum      []core.Vec3
	Pixels     []RGB
	PassesDone int
	Seed       int64
	Renderer   *RowRenderer
}

// RowResult reports a finished row
type RowResult struct {
	Row     int
	Samples int
}

// WorkerPool runs row tasks on a fixed set of goroutines. It lives as long as
// the Renderer that owns it and is reused across frames.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	stopOnce    sync.Once
}

// Worker pulls row tasks until the task queue closes
type Worker struct {
	ID          int
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A count of zero or less uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, numWorkers*2),
		resultQueue: make(chan RowResult, numWorkers*2),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop lets queued tasks drain, then shuts the workers down. Safe to call twice.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.taskQueue)
		wp.wg.Wait()
		close(wp.resultQueue)
	})
}

// SubmitTask queues a row task, blocking while the queue is full
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
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		samples := task.Renderer.RenderRow(task.Row, task.Accum, task.Pixels, task.PassesDone, task.Seed)
		w.resultQueue <- RowResult{Row: task.Row, Samples: samples}
	}
}
