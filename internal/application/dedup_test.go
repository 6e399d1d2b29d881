package application

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicatorWindow(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	dedup := NewDeduplicator(5*time.Second, clock)

	assert.False(t, dedup.IsDuplicate("X"))
	assert.True(t, dedup.IsDuplicate("X"))

	clock.Advance(5 * time.Second)
	assert.False(t, dedup.IsDuplicate("X"))
}

func TestDeduplicatorEmptyIsNeverDuplicate(t *testing.T) {
	t.Parallel()

	dedup := NewDeduplicator(0, newFakeClock(time.Unix(100, 0)))

	assert.False(t, dedup.IsDuplicate(""))
	assert.False(t, dedup.IsDuplicate(""))
	assert.Zero(t, dedup.Len())
}

func TestDeduplicatorMatchesEarlierFingerprint(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Unix(100, 0))
	dedup := NewDeduplicator(5*time.Second, clock)

	require.False(t, dedup.IsDuplicate("A"))
	clock.Advance(time.Second)
	require.False(t, dedup.IsDuplicate("B"))
	clock.Advance(time.Second)

	assert.True(t, dedup.IsDuplicate("A"))
}

func TestDeduplicatorPrunesOnEveryCheck(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Unix(100, 0))
	dedup := NewDeduplicator(5*time.Second, clock)

	for i := 0; i < 100; i++ {
		dedup.IsDuplicate(fmt.Sprintf("message %d", i))
		clock.Advance(time.Second)
	}

	assert.LessOrEqual(t, dedup.Len(), 5)
}

func TestDeduplicatorRestoreAndSnapshot(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Unix(100, 0))
	first := NewDeduplicator(5*time.Second, clock)
	require.False(t, first.IsDuplicate("old"))
	clock.Advance(4 * time.Second)
	require.False(t, first.IsDuplicate("recent"))

	entries, last := first.Snapshot()
	require.Len(t, entries, 2)
	assert.Equal(t, "recent", last)

	clock.Advance(2 * time.Second)
	second := NewDeduplicator(5*time.Second, clock)
	second.Restore(entries, last)

	assert.Equal(t, 1, second.Len())
	assert.True(t, second.IsDuplicate("recent"))
	assert.False(t, second.IsDuplicate("old"))
}
