package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type jobCloserStub struct {
	closed  int64
	err     error
	calls   int
	lastNow time.Time
}

func (s *jobCloserStub) CloseExpired(_ context.Context, now time.Time) (int64, error) {
	s.calls++
	s.lastNow = now
	return s.closed, s.err
}

func newTestJob(repo jobCloser) *JobExpiryJob {
	return NewJobExpiryJob(repo, time.Millisecond)
}

func TestNewJobExpiryJob_DefaultInterval(t *testing.T) {
	job := NewJobExpiryJob(&jobCloserStub{}, 0)
	require.Equal(t, DefaultExpiryInterval, job.interval)
}

func TestCloseExpired_PassesClock(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := &jobCloserStub{closed: 2}
	job := newTestJob(repo)
	job.now = func() time.Time { return fixed }

	job.closeExpired(context.Background())
	require.Equal(t, 1, repo.calls)
	require.Equal(t, fixed, repo.lastNow)
}

func TestCloseExpired_NothingToClose(t *testing.T) {
	repo := &jobCloserStub{}
	job := newTestJob(repo)

	job.closeExpired(context.Background())
	require.Equal(t, 1, repo.calls)
}

func TestCloseExpired_Error(t *testing.T) {
	repo := &jobCloserStub{err: errors.New("db down")}
	job := newTestJob(repo)

	job.closeExpired(context.Background())
	require.Equal(t, 1, repo.calls)
}

func TestStartStop_StopsByContext(t *testing.T) {
	job := newTestJob(&jobCloserStub{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestStartStop_StopsByStopChannel(t *testing.T) {
	job := newTestJob(&jobCloserStub{})

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}
