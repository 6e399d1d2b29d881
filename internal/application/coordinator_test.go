package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/voicehook/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T, clock *fakeClock, lock *fakeLock, pacing *memoryPacing, sink *mocks.MockSpeechSink) (*Coordinator, *[]time.Duration) {
	t.Helper()

	coord := NewCoordinator(NewDeduplicator(5*time.Second, clock), lock, pacing, sink, clock, time.Second, nil)
	slept := []time.Duration{}
	coord.sleep = func(d time.Duration) {
		slept = append(slept, d)
		clock.Advance(d)
	}
	return coord, &slept
}

func TestCoordinatorAnnounceSpeaksAndRecordsPacing(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	lock := &fakeLock{}
	pacing := &memoryPacing{}
	sink := mocks.NewMockSpeechSink(t)
	coord, _ := newTestCoordinator(t, clock, lock, pacing, sink)

	sink.EXPECT().Speak(mockAnyContext(), "Build finished").
		Run(func(context.Context, string) {
			assert.True(t, lock.held)
		}).
		Return(nil).
		Once()

	outcome, err := coord.Announce(context.Background(), "  Build finished ")
	require.NoError(t, err)

	assert.True(t, outcome.Spoken)
	assert.Equal(t, StateDone, outcome.State)
	assert.Equal(t, []AnnouncementState{StateIdle, StateLockWait, StatePacingWait, StateSpeaking, StateDone}, outcome.Trace)
	assert.Equal(t, clock.Now(), outcome.SpokenAt)
	assert.Equal(t, []time.Time{clock.Now()}, pacing.marks)
	assert.Equal(t, 1, lock.released)
	assert.False(t, lock.held)
}

func TestCoordinatorDuplicateHasNoSideEffects(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Unix(1_000, 0))
	lock := &fakeLock{}
	pacing := &memoryPacing{}
	sink := mocks.NewMockSpeechSink(t)
	coord, _ := newTestCoordinator(t, clock, lock, pacing, sink)

	sink.EXPECT().Speak(mockAnyContext(), "Hello").Return(nil).Once()

	_, err := coord.Announce(context.Background(), "Hello")
	require.NoError(t, err)

	outcome, err := coord.Announce(context.Background(), "Hello")
	require.NoError(t, err)

	assert.Equal(t, StateDone, outcome.State)
	assert.Equal(t, []AnnouncementState{StateIdle, StateDone}, outcome.Trace)
	assert.Equal(t, ReasonDuplicate, outcome.Reason)
	assert.True(t, outcome.Skipped())
	assert.Equal(t, 1, lock.acquired)
	assert.Len(t, pacing.marks, 1)
}

func TestCoordinatorLockTimeoutSkips(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Unix(1_000, 0))
	lock := &fakeLock{busy: true}
	pacing := &memoryPacing{}
	sink := mocks.NewMockSpeechSink(t)
	coord, _ := newTestCoordinator(t, clock, lock, pacing, sink)

	outcome, err := coord.Announce(context.Background(), "Hello")
	require.NoError(t, err)

	assert.Equal(t, StateTimeout, outcome.State)
	assert.Equal(t, []AnnouncementState{StateIdle, StateLockWait, StateTimeout}, outcome.Trace)
	assert.Equal(t, ReasonLockTimeout, outcome.Reason)
	assert.False(t, outcome.Spoken)
	assert.Empty(t, pacing.marks)
	assert.Zero(t, lock.released)
}

func TestCoordinatorSinkFailureStillConsumesPacingSlot(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Unix(1_000, 0))
	lock := &fakeLock{}
	pacing := &memoryPacing{}
	sink := mocks.NewMockSpeechSink(t)
	coord, _ := newTestCoordinator(t, clock, lock, pacing, sink)

	sinkErr := errors.New("espeak exited with status 1")
	sink.EXPECT().Speak(mockAnyContext(), "Hello").Return(sinkErr).Once()

	outcome, err := coord.Announce(context.Background(), "Hello")
	require.ErrorIs(t, err, sinkErr)

	assert.Equal(t, StateDone, outcome.State)
	assert.Equal(t, ReasonSinkFailed, outcome.Reason)
	assert.False(t, outcome.Spoken)
	assert.False(t, outcome.Skipped())
	assert.Len(t, pacing.marks, 1)
	assert.Equal(t, 1, lock.released)
}

func TestCoordinatorLockErrorIsReturned(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Unix(1_000, 0))
	lockErr := errors.New("open lock file: permission denied")
	sink := mocks.NewMockSpeechSink(t)
	coord, _ := newTestCoordinator(t, clock, &fakeLock{err: lockErr}, &memoryPacing{}, sink)

	outcome, err := coord.Announce(context.Background(), "Hello")
	require.ErrorIs(t, err, lockErr)
	assert.Equal(t, StateLockWait, outcome.State)
}

func TestCoordinatorEnforcesMinimumSpacing(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Unix(1_000, 0))
	pacing := &memoryPacing{}
	sink := mocks.NewMockSpeechSink(t)
	coord, slept := newTestCoordinator(t, clock, &fakeLock{}, pacing, sink)

	sink.EXPECT().Speak(mockAnyContext(), "first").Return(nil).Once()
	sink.EXPECT().Speak(mockAnyContext(), "second").Return(nil).Once()

	_, err := coord.Announce(context.Background(), "first")
	require.NoError(t, err)
	clock.Advance(300 * time.Millisecond)
	_, err = coord.Announce(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, pacing.marks, 2)
	assert.GreaterOrEqual(t, pacing.marks[1].Sub(pacing.marks[0]), time.Second)
	assert.Equal(t, []time.Duration{700 * time.Millisecond}, *slept)
}

func TestCoordinatorSafeToAnnounce(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Unix(1_000, 0))
	pacing := &memoryPacing{}
	coord, _ := newTestCoordinator(t, clock, &fakeLock{}, pacing, mocks.NewMockSpeechSink(t))

	assert.True(t, coord.SafeToAnnounce(context.Background()))

	pacing.last = clock.Now()
	assert.False(t, coord.SafeToAnnounce(context.Background()))

	clock.Advance(time.Second)
	assert.True(t, coord.SafeToAnnounce(context.Background()))

	pacing.readErr = errors.New("corrupt")
	pacing.last = clock.Now()
	assert.True(t, coord.SafeToAnnounce(context.Background()))
}

func TestAnnouncementStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pacing_wait", StatePacingWait.String())
	assert.Equal(t, "timeout", StateTimeout.String())
	assert.Equal(t, "state(42)", AnnouncementState(42).String())
}

func TestCoordinatorMarkFailureStillSpeaks(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(at)

	lock := mocks.NewMockSpeechLock(t)
	lock.EXPECT().WithLock(mockAnyContext(), mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		Once()

	pacing := mocks.NewMockPacingStore(t)
	pacing.EXPECT().LastSpokenAt(mockAnyContext()).Return(at.Add(-time.Minute), nil).Once()
	pacing.EXPECT().MarkSpoken(mockAnyContext(), at).Return(errors.New("read-only file system")).Once()

	sink := mocks.NewMockSpeechSink(t)
	sink.EXPECT().Speak(mockAnyContext(), "Tests passed").Return(nil).Once()

	coord := NewCoordinator(NewDeduplicator(DefaultDedupWindow, clock), lock, pacing, sink, clock, DefaultMinSpacing, nil)
	coord.sleep = func(time.Duration) { t.Fatal("no spacing wait expected") }

	outcome, err := coord.Announce(context.Background(), "Tests passed")
	require.NoError(t, err)
	assert.True(t, outcome.Spoken)
	assert.Equal(t, at, outcome.SpokenAt)
}

func TestCoordinatorRecordsPacingWhenCanceledDuringSpeech(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Unix(1_000, 0))
	lock := &fakeLock{}
	pacing := &memoryPacing{}
	sink := mocks.NewMockSpeechSink(t)
	coord, _ := newTestCoordinator(t, clock, lock, pacing, sink)

	ctx, cancel := context.WithCancel(context.Background())
	sink.EXPECT().Speak(mockAnyContext(), "Hello").
		RunAndReturn(func(context.Context, string) error {
			cancel()
			return context.Canceled
		}).
		Once()

	pacing.checkCtx = true
	outcome, err := coord.Announce(ctx, "Hello")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ReasonSinkFailed, outcome.Reason)
	assert.Len(t, pacing.marks, 1)
}
