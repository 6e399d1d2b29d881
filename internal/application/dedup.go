package application

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/bnema/voicehook/internal/ports"
)

const DefaultDedupWindow = 5 * time.Second

// Deduplicator suppresses text that was already announced within the window.
type Deduplicator struct {
	mu      sync.Mutex
	window  time.Duration
	clock   ports.Clock
	entries []domain.RecentAnnouncement
	last    string
	lastAt  time.Time
}

func NewDeduplicator(window time.Duration, clock ports.Clock) *Deduplicator {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Deduplicator{window: window, clock: clock}
}

// IsDuplicate reports whether message was seen within the window and records it
// when it was not. Empty messages are never duplicates.
func (d *Deduplicator) IsDuplicate(message string) bool {
	if message == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	d.prune(now)

	if message == d.last {
		return true
	}

	sum := fingerprint(message)
	for _, entry := range d.entries {
		if entry.Fingerprint == sum {
			return true
		}
	}

	d.entries = append(d.entries, domain.RecentAnnouncement{Fingerprint: sum, At: now})
	d.last = message
	d.lastAt = now
	return false
}

// Restore seeds the cache from a persisted snapshot. Expired entries are dropped.
func (d *Deduplicator) Restore(entries []domain.RecentAnnouncement, last string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = append([]domain.RecentAnnouncement(nil), entries...)
	d.last = ""
	d.lastAt = time.Time{}
	if last != "" {
		sum := fingerprint(last)
		for _, entry := range d.entries {
			if entry.Fingerprint == sum && entry.At.After(d.lastAt) {
				d.last = last
				d.lastAt = entry.At
			}
		}
	}

	d.prune(d.clock.Now())
}

func (d *Deduplicator) Snapshot() ([]domain.RecentAnnouncement, string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.prune(d.clock.Now())
	return append([]domain.RecentAnnouncement(nil), d.entries...), d.last
}

func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.entries)
}

// prune drops entries older than the window; the last text expires with its entry.
func (d *Deduplicator) prune(now time.Time) {
	kept := d.entries[:0]
	for _, entry := range d.entries {
		if now.Sub(entry.At) < d.window {
			kept = append(kept, entry)
		}
	}
	d.entries = kept

	if d.last != "" && now.Sub(d.lastAt) >= d.window {
		d.last = ""
		d.lastAt = time.Time{}
	}
}

func fingerprint(message string) string {
	sum := sha256.Sum256([]byte(message))
	return hex.EncodeToString(sum[:])
}
