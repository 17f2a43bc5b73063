package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsInvalidSpec(t *testing.T) {
	s := New(zerolog.Nop(), time.Second)
	err := s.Register("broken", "every now and then", func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestRegisterEmptySpecDisablesJob(t *testing.T) {
	s := New(zerolog.Nop(), time.Second)
	require.NoError(t, s.Register("disabled", "", func(context.Context) error { return nil }))
	assert.Empty(t, s.cron.Entries())
}

func TestRunAppliesTimeout(t *testing.T) {
	s := New(zerolog.Nop(), 20*time.Millisecond)

	var sawDeadline atomic.Bool
	s.run("timed", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		sawDeadline.Store(ok)
		<-ctx.Done()
		return ctx.Err()
	})
	assert.True(t, sawDeadline.Load())
}

func TestRunSurvivesJobError(t *testing.T) {
	s := New(zerolog.Nop(), 0)
	calls := 0
	s.run("failing", func(context.Context) error {
		calls++
		return errors.New("boom")
	})
	assert.Equal(t, 1, calls)
}

func TestScheduledJobRunsAndStopCancelsContext(t *testing.T) {
	s := New(zerolog.Nop(), time.Minute)

	started := make(chan struct{}, 1)
	cancelled := make(chan struct{})
	require.NoError(t, s.Register("tick", "@every 1s", func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}))

	s.Start()

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	select {
	case <-cancelled:
	default:
		t.Fatal("running job was not cancelled on stop")
	}
}
