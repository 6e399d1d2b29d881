package flock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/bnema/voicehook/internal/ports"
	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
	defaultLockFile     = "claude_voice_speech.lock"
	lockFileMode        = 0o600
	lockDirMode         = 0o700
)

// errBusy means another process holds the lock right now.
var errBusy = errors.New("speech lock held by another process")

// Lock is a host-wide advisory lock on a file, shared by every hook process.
type Lock struct {
	path         string
	timeout      time.Duration
	pollInterval time.Duration
}

var _ ports.SpeechLock = (*Lock)(nil)

func DefaultPath() string {
	return filepath.Join(os.TempDir(), defaultLockFile)
}

func NewLock(path string, timeout, pollInterval time.Duration) *Lock {
	if path == "" {
		path = DefaultPath()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	return &Lock{path: path, timeout: timeout, pollInterval: pollInterval}
}

func (l *Lock) Path() string {
	return l.path
}

// WithLock polls for the lock every poll interval until the timeout passes, runs fn
// while holding it and releases it on every exit path. It returns
// domain.ErrLockTimeout when the lock stayed busy for the whole timeout.
func (l *Lock) WithLock(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.path), lockDirMode); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var held *handle
	acquire := func() error {
		h, err := tryAcquire(l.path)
		if err != nil {
			if errors.Is(err, errBusy) {
				return err
			}
			return backoff.Permanent(err)
		}
		held = h
		return nil
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(l.pollInterval), waitCtx)
	if err := backoff.Retry(acquire, policy); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if errors.Is(err, errBusy) || errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			return domain.ErrLockTimeout
		}
		return fmt.Errorf("lock %s: %w", l.path, err)
	}

	defer func() {
		if releaseErr := held.release(); releaseErr != nil {
			err = errors.Join(err, fmt.Errorf("release %s: %w", l.path, releaseErr))
		}
	}()

	return fn(ctx)
}
