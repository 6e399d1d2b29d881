package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/bnema/voicehook/internal/ports"
)

const (
	defaultPacingFile = "claude_voice_last_speech.time"
	pacingFileMode    = 0o600
	pacingDirMode     = 0o700
	tempFilePattern   = ".voicehook-pacing-*.tmp"
)

// Store keeps the time of the last announcement as a plain seconds-since-epoch
// number so other tools on the host can read it too.
type Store struct {
	path string
}

var _ ports.PacingStore = (*Store)(nil)

func DefaultPath() string {
	return filepath.Join(os.TempDir(), defaultPacingFile)
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}

	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// LastSpokenAt returns the zero time when nothing was spoken yet. A record that
// cannot be parsed yields the zero time together with the parse error.
func (s *Store) LastSpokenAt(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("read pacing file: %w", err)
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return time.Time{}, nil
	}

	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse pacing file %q: %w", raw, err)
	}

	return domain.FromEpochSeconds(seconds), nil
}

// MarkSpoken records at even when ctx is already canceled; the slot belongs to an
// announcement that has happened.
func (s *Store) MarkSpoken(_ context.Context, at time.Time) error {
	if err := os.MkdirAll(filepath.Dir(s.path), pacingDirMode); err != nil {
		return fmt.Errorf("create pacing directory: %w", err)
	}

	data := strconv.FormatFloat(domain.EpochSeconds(at), 'f', 6, 64)

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp pacing file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, err := tempFile.WriteString(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp pacing file: %w", err)
	}
	if err := tempFile.Chmod(pacingFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp pacing file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp pacing file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		return fmt.Errorf("replace pacing file: %w", err)
	}

	return nil
}
