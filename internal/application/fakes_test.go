package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type inMemoryStateRepo struct {
	state   *domain.SharedState
	loadErr error
	saveErr error
	saves   int
}

func (r *inMemoryStateRepo) Load(_ context.Context) (domain.SharedState, error) {
	if r.loadErr != nil {
		return domain.SharedState{}, r.loadErr
	}
	if r.state == nil {
		return domain.SharedState{}, domain.ErrStateNotFound
	}
	return r.state.Clone(), nil
}

func (r *inMemoryStateRepo) Save(_ context.Context, state domain.SharedState) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := state.Clone()
	r.state = &clone
	return nil
}

type memoryPacing struct {
	mu      sync.Mutex
	last    time.Time
	marks   []time.Time
	readErr error

	// checkCtx makes MarkSpoken refuse canceled contexts.
	checkCtx bool
}

func (p *memoryPacing) LastSpokenAt(_ context.Context) (time.Time, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readErr != nil {
		return time.Time{}, p.readErr
	}
	return p.last, nil
}

func (p *memoryPacing) MarkSpoken(ctx context.Context, at time.Time) error {
	if p.checkCtx && ctx.Err() != nil {
		return ctx.Err()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = at
	p.marks = append(p.marks, at)
	return nil
}

type fakeLock struct {
	busy     bool
	err      error
	held     bool
	acquired int
	released int
}

func (l *fakeLock) WithLock(ctx context.Context, fn func(context.Context) error) error {
	if l.err != nil {
		return l.err
	}
	if l.busy {
		return domain.ErrLockTimeout
	}
	l.held = true
	l.acquired++
	defer func() {
		l.held = false
		l.released++
	}()
	return fn(ctx)
}

type recordingSink struct {
	spoken []string
	err    error
}

func (s *recordingSink) Speak(_ context.Context, text string) error {
	s.spoken = append(s.spoken, text)
	return s.err
}
