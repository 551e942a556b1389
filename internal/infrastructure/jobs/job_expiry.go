package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"jobboard.backend/pkg/logger"
	"jobboard.backend/pkg/metrics"
)

// DefaultExpiryInterval is how often expired postings are closed
const DefaultExpiryInterval = time.Minute

type jobCloser interface {
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

// JobExpiryJob closes job postings whose deadline passed
type JobExpiryJob struct {
	repo     jobCloser
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
}

func NewJobExpiryJob(repo jobCloser, interval time.Duration) *JobExpiryJob {
	if interval <= 0 {
		interval = DefaultExpiryInterval
	}
	return &JobExpiryJob{
		repo:     repo,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
		stop:     make(chan struct{}),
	}
}

func (j *JobExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting job expiry worker", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Job expiry worker stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Job expiry worker stopped")
			return
		case <-ticker.C:
			j.closeExpired(ctx)
		}
	}
}

func (j *JobExpiryJob) Stop() {
	close(j.stop)
}

func (j *JobExpiryJob) closeExpired(ctx context.Context) {
	n, err := j.repo.CloseExpired(ctx, j.now())
	if err != nil {
		logger.Error(ctx, "Failed to close expired jobs", zap.Error(err))
		return
	}
	if n == 0 {
		return
	}

	metrics.JobsExpired(int(n))
	logger.Info(ctx, "Closed expired jobs", zap.Int64("count", n))
}
