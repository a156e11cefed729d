package scheduler

import (
	"context"
	"sync"
	"time"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

// SchedulerRunner periodically decides whether a fleet-wide sweep is due and
// runs it.
type SchedulerRunner struct {
	service       port.Service
	checkInterval time.Duration
	now           func() time.Time

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewSchedulerRunner(service port.Service, checkInterval time.Duration) *SchedulerRunner {
	return &SchedulerRunner{
		service:       service,
		checkInterval: checkInterval,
		now:           time.Now,
	}
}

// Start begins the scheduler runner. It checks once immediately.
func (r *SchedulerRunner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		logger.Info("Scheduler Runner: Already running")
		return
	}

	r.running = true
	r.stopChan = make(chan struct{})
	r.wg.Add(1)

	logger.Info("Scheduler Runner: Starting with check interval of %s", r.checkInterval)

	go func(stop <-chan struct{}) {
		defer r.wg.Done()
		ticker := time.NewTicker(r.checkInterval)
		defer ticker.Stop()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			<-stop
			cancel()
		}()

		r.checkAndSweep(ctx)

		for {
			select {
			case <-ticker.C:
				r.checkAndSweep(ctx)
			case <-stop:
				return
			}
		}
	}(r.stopChan)
}

// Stop halts the runner and waits for an in-flight check to finish.
func (r *SchedulerRunner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopChan)
	r.mu.Unlock()

	logger.Info("Scheduler Runner: Stopping")
	r.wg.Wait()
}

func (r *SchedulerRunner) checkAndSweep(ctx context.Context) {
	decision, err := r.service.SweepDecision(ctx, r.now())
	if err != nil {
		logger.Error("Scheduler Runner: Error deciding on periodic sweep: %v", err)
		return
	}

	if !decision.Due {
		logger.Info("Scheduler Runner: Skipping periodic sweep: %s", decision.Reason)
		return
	}

	queued, err := r.service.RunPeriodicSweep(ctx)
	if err != nil {
		logger.Error("Scheduler Runner: Error running periodic sweep: %v", err)
		return
	}

	logger.Info("Scheduler Runner: Periodic sweep queued %d jobs", queued)
}
