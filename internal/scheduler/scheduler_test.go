package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshLeaderboard(ctx context.Context) error {
	r.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("refresh without deadline")
	}
	return r.err
}

func TestScheduler_RefreshesLeaderboard(t *testing.T) {
	refresher := &countingRefresher{}
	s := New(refresher, time.Hour, time.UTC)
	require.NoError(t, s.Start())
	defer s.Stop()

	// Jobs run once immediately, then on the interval.
	assert.Eventually(t, func() bool { return refresher.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_RefreshErrorIsSwallowed(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("db down")}
	s := New(refresher, time.Hour, nil)

	s.refreshLeaderboard()
	assert.Equal(t, int32(1), refresher.calls.Load())
}

func TestScheduler_DisabledInterval(t *testing.T) {
	refresher := &countingRefresher{}
	s := New(refresher, 0, time.UTC)
	require.NoError(t, s.Start())
	s.Stop()

	assert.Equal(t, int32(0), refresher.calls.Load())
}
