package service

import (
	"context"
	"sync"
	"time"
)

// defaultSyncJobInterval is used when Start gets a non-positive interval.
const defaultSyncJobInterval = 5 * time.Minute

// clientSyncJob is the periodic wake-up source of the client: every tick
// it asks the notifier for a sync, so changes made on other devices arrive
// even when nothing is edited locally.
type clientSyncJob struct {
	notifier SyncNotifier

	mu  sync.Mutex
	run *jobRun
}

// jobRun is one started ticker goroutine.
type jobRun struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func NewClientSyncJob(notifier SyncNotifier) ClientSyncJob {
	return &clientSyncJob{notifier: notifier}
}

func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncJobInterval
	}

	j.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	run := &jobRun{cancel: cancel, done: make(chan struct{})}

	j.mu.Lock()
	j.run = run
	j.mu.Unlock()

	go j.tick(runCtx, interval, run.done)
}

func (j *clientSyncJob) tick(ctx context.Context, interval time.Duration, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.notifier.ScheduleSync()
		}
	}
}

// Stop cancels the running goroutine, if any, and waits for it to exit.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	run := j.run
	j.run = nil
	j.mu.Unlock()

	if run == nil {
		return
	}
	run.cancel()
	<-run.done
}
