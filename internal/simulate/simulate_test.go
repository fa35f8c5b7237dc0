package simulate

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

type recordingSleeper struct {
	slept []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.slept = append(r.slept, d)
	return ctx.Err()
}

func TestCallSleepsForOperationDelay(t *testing.T) {
	rec := &recordingSleeper{}
	sim := New(DefaultProfile(), WithSleeper(rec.sleep))

	for op, want := range DefaultDelays() {
		rec.slept = nil
		got, err := Call(context.Background(), sim, op, func(context.Context) (string, error) {
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, []time.Duration{want}, rec.slept, "op %s", op)
	}
}

func TestInjectedFailureSkipsOperation(t *testing.T) {
	sim := New(Profile{ErrorRate: 1})
	called := false

	err := Do(context.Background(), sim, OpDelete, func(context.Context) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, shared.ErrTransient)
	assert.False(t, called)
}

func TestInjectedFailureRateIsRespected(t *testing.T) {
	sim := New(Profile{ErrorRate: 0.1}, WithRand(rand.NewPCG(1, 2)))
	failures := 0
	const calls = 2000
	for i := 0; i < calls; i++ {
		if err := sim.Before(context.Background(), OpGet); err != nil {
			failures++
		}
	}
	assert.InDelta(t, 0.1, float64(failures)/calls, 0.03)
}

func TestDisabledNeverFails(t *testing.T) {
	sim := New(Disabled())
	for i := 0; i < 100; i++ {
		require.NoError(t, sim.Before(context.Background(), OpCreate))
	}
	assert.Zero(t, sim.Delay(OpCreate))
}

func TestNilSimulatorPassesThrough(t *testing.T) {
	var sim *Simulator
	got, err := Call(context.Background(), sim, OpList, func(context.Context) (int, error) {
		return 3, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestCancelledContextStillRunsOperation(t *testing.T) {
	var sleptCtxErr error
	sleeper := func(ctx context.Context, d time.Duration) error {
		sleptCtxErr = ctx.Err()
		return nil
	}
	sim := New(Profile{Delays: map[Op]time.Duration{OpUpdate: time.Hour}}, WithSleeper(sleeper))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false

	got, err := Call(ctx, sim, OpUpdate, func(context.Context) (int, error) {
		called = true
		return 7, nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 7, got)
	assert.NoError(t, sleptCtxErr)
}

func TestTimerDelayIgnoresCancellation(t *testing.T) {
	sim := New(Profile{Delays: map[Op]time.Duration{OpDelete: 20 * time.Millisecond}})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(5*time.Millisecond, cancel)

	start := time.Now()
	err := Do(ctx, sim, OpDelete, func(context.Context) error { return nil })

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestScaled(t *testing.T) {
	p := DefaultProfile().Scaled(0.5)
	assert.Equal(t, 250*time.Millisecond, p.Delays[OpList])
	assert.Equal(t, 100*time.Millisecond, p.Delays[OpCheckPermission])

	zero := DefaultProfile().Scaled(-1)
	assert.Zero(t, zero.Delays[OpCreate])
}

func TestErrorRateIsClamped(t *testing.T) {
	assert.Equal(t, 1.0, New(Profile{ErrorRate: 3}).ErrorRate())
	assert.Equal(t, 0.0, New(Profile{ErrorRate: -1}).ErrorRate())
}
