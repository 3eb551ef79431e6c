package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/amankumarsingh77/video-splitter/internal/config"
	"github.com/amankumarsingh77/video-splitter/pkg/logger"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
)

var (
	ErrPoolSaturated = errors.New("split worker pool is saturated, retry later")
	ErrPoolStopped   = errors.New("split worker pool is stopped")
)

type Task func(ctx context.Context)

// Pool runs tasks on a fixed number of workers. Capacity (workers plus queue)
// is handed out as reservations so callers learn about saturation before they
// commit to anything.
type Pool struct {
	logger      logger.Logger
	workerCount int
	maxCPUUsage float64
	tasks       chan Task
	slots       chan struct{}
	wg          sync.WaitGroup
	mu          sync.RWMutex
	stopped     bool
	cpuCheck    func(maxCPUUsage float64) (bool, float64)
}

func NewPool(cfg *config.Config, logger logger.Logger) *Pool {
	workers := cfg.Worker.WorkerCount
	if workers < 1 {
		workers = 1
	}
	queue := cfg.Worker.QueueSize
	if queue < 0 {
		queue = 0
	}
	capacity := workers + queue
	return &Pool{
		logger:      logger,
		workerCount: workers,
		maxCPUUsage: cfg.Worker.MaxCPUUsage,
		tasks:       make(chan Task, capacity),
		slots:       make(chan struct{}, capacity),
		cpuCheck:    utils.CheckCPUUsage,
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.logger.Infof("Starting %d split workers", p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(ctx, task)
	}
}

func (p *Pool) run(ctx context.Context, task Task) {
	defer func() {
		<-p.slots
		if r := recover(); r != nil {
			p.logger.Errorf("split worker recovered from panic: %v", r)
		}
	}()
	task(ctx)
}

// Reserve claims capacity for one task without blocking.
func (p *Pool) Reserve() (*Reservation, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return nil, ErrPoolStopped
	}
	if ok, usage := p.cpuCheck(p.maxCPUUsage); !ok {
		p.logger.Warnf("CPU usage is high: %.2f%%, refusing new split job", usage)
		return nil, fmt.Errorf("%w: cpu usage %.2f%%", ErrPoolSaturated, usage)
	}
	select {
	case p.slots <- struct{}{}:
		return &Reservation{pool: p}, nil
	default:
		return nil, ErrPoolSaturated
	}
}

// Pending is the number of reserved, queued or running tasks.
func (p *Pool) Pending() int {
	return len(p.slots)
}

// Stop refuses new work and waits for queued and running tasks to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
	p.logger.Info("split workers stopped")
}

type Reservation struct {
	pool *Pool
	once sync.Once
}

// Submit queues the task on the reserved slot. It never blocks.
func (r *Reservation) Submit(task Task) error {
	err := ErrPoolStopped
	r.once.Do(func() {
		p := r.pool
		p.mu.RLock()
		defer p.mu.RUnlock()
		if p.stopped {
			<-p.slots
			return
		}
		p.tasks <- task
		err = nil
	})
	return err
}

// Release gives the slot back without running anything. It is a no-op after Submit.
func (r *Reservation) Release() {
	r.once.Do(func() {
		<-r.pool.slots
	})
}
