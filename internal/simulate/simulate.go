// Package simulate decorates in-memory operations with artificial latency and
// random failures so that callers exercise their loading and error states.
package simulate

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Op identifies the kind of operation being simulated.
type Op string

const (
	OpList              Op = "list"
	OpGet               Op = "get"
	OpCreate            Op = "create"
	OpUpdate            Op = "update"
	OpDelete            Op = "delete"
	OpUpdatePermissions Op = "update_permissions"
	OpCheckPermission   Op = "check_permission"
)

// DefaultDelays mirrors the latency observed on the dashboard's mock API.
func DefaultDelays() map[Op]time.Duration {
	return map[Op]time.Duration{
		OpList:              500 * time.Millisecond,
		OpGet:               300 * time.Millisecond,
		OpCreate:            700 * time.Millisecond,
		OpUpdate:            500 * time.Millisecond,
		OpDelete:            600 * time.Millisecond,
		OpUpdatePermissions: 400 * time.Millisecond,
		OpCheckPermission:   200 * time.Millisecond,
	}
}

// Profile configures a Simulator.
type Profile struct {
	Delays    map[Op]time.Duration
	ErrorRate float64
}

// DefaultProfile uses DefaultDelays and never injects failures.
func DefaultProfile() Profile {
	return Profile{Delays: DefaultDelays()}
}

// Disabled returns a profile with no delay and no injected failures.
func Disabled() Profile {
	return Profile{}
}

// Scaled multiplies every delay by factor. Negative factors are treated as zero.
func (p Profile) Scaled(factor float64) Profile {
	if factor < 0 {
		factor = 0
	}
	delays := make(map[Op]time.Duration, len(p.Delays))
	for op, d := range p.Delays {
		delays[op] = time.Duration(float64(d) * factor)
	}
	return Profile{Delays: delays, ErrorRate: p.ErrorRate}
}

// Sleeper suspends the caller for d. The Simulator hands it a context that is
// never cancelled.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option customises a Simulator.
type Option func(*Simulator)

// WithSleeper replaces the timer based sleeper.
func WithSleeper(sleep Sleeper) Option {
	return func(s *Simulator) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// WithRand replaces the random source used for failure injection.
func WithRand(src rand.Source) Option {
	return func(s *Simulator) {
		if src != nil {
			s.rnd = rand.New(src)
		}
	}
}

// Simulator injects latency and failures ahead of a wrapped operation.
type Simulator struct {
	delays    map[Op]time.Duration
	errorRate float64
	sleep     Sleeper

	mu  sync.Mutex
	rnd *rand.Rand
}

// New builds a Simulator. A nil Simulator behaves like Disabled().
func New(profile Profile, opts ...Option) *Simulator {
	delays := make(map[Op]time.Duration, len(profile.Delays))
	for op, d := range profile.Delays {
		delays[op] = d
	}
	rate := profile.ErrorRate
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	s := &Simulator{
		delays:    delays,
		errorRate: rate,
		sleep:     timerSleep,
		rnd:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delay returns the configured delay for op.
func (s *Simulator) Delay(op Op) time.Duration {
	if s == nil {
		return 0
	}
	return s.delays[op]
}

// ErrorRate returns the probability of an injected failure.
func (s *Simulator) ErrorRate() float64 {
	if s == nil {
		return 0
	}
	return s.errorRate
}

// Before runs the simulated part of a call: the delay first, then the failure
// roll. It must be called before the wrapped operation touches any state.
// Once invoked, a call always waits out its delay; cancelling ctx does not
// abort it.
func (s *Simulator) Before(ctx context.Context, op Op) error {
	if s == nil {
		return nil
	}
	if d := s.delays[op]; d > 0 {
		if err := s.sleep(context.WithoutCancel(ctx), d); err != nil {
			return err
		}
	}
	if s.shouldFail() {
		return shared.ErrTransient
	}
	return nil
}

func (s *Simulator) shouldFail() bool {
	if s.errorRate <= 0 {
		return false
	}
	if s.errorRate >= 1 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64() < s.errorRate
}

// Wrap returns fn decorated with the delay and failure injection for op.
func Wrap[T any](s *Simulator, op Op, fn func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		if err := s.Before(ctx, op); err != nil {
			var zero T
			return zero, err
		}
		return fn(ctx)
	}
}

// Call runs fn through the simulator.
func Call[T any](ctx context.Context, s *Simulator, op Op, fn func(context.Context) (T, error)) (T, error) {
	return Wrap(s, op, fn)(ctx)
}

// Do runs fn, which returns no value, through the simulator.
func Do(ctx context.Context, s *Simulator, op Op, fn func(context.Context) error) error {
	_, err := Call(ctx, s, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func timerSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
