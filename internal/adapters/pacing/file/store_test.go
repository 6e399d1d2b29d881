package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreMissingFileIsZero(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "last.time"))

	at, err := store.LastSpokenAt(context.Background())
	require.NoError(t, err)
	assert.True(t, at.IsZero())
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "last.time")
	store := NewStore(path)
	spoke := time.Unix(1_760_000_000, 500_000_000)

	require.NoError(t, store.MarkSpoken(context.Background(), spoke))

	got, err := store.LastSpokenAt(context.Background())
	require.NoError(t, err)
	assert.WithinDuration(t, spoke, got, time.Microsecond)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1760000000.500000", string(data))
}

func TestStoreReadsForeignRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "last.time")
	require.NoError(t, os.WriteFile(path, []byte("1760000000.25\n"), 0o600))

	got, err := NewStore(path).LastSpokenAt(context.Background())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Unix(1_760_000_000, 250_000_000), got, time.Microsecond)
}

func TestStoreUnparsableRecord(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		wantErr bool
	}{
		"garbage": {content: "yesterday", wantErr: true},
		"empty":   {content: "  \n", wantErr: false},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "last.time")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			got, err := NewStore(path).LastSpokenAt(context.Background())
			assert.True(t, got.IsZero())
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStoreMarksEvenWhenContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStore(filepath.Join(t.TempDir(), "last.time"))
	require.NoError(t, store.MarkSpoken(ctx, time.Unix(100, 0)))

	last, err := store.LastSpokenAt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Unix(100, 0).Unix(), last.Unix())
}
