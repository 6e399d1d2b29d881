//go:build !unix

package flock

import (
	"errors"
	"fmt"
	"os"
)

// On platforms without flock the lock is an exclusively created sentinel file.
type handle struct {
	path string
	file *os.File
}

func tryAcquire(path string) (*handle, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, lockFileMode)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, errBusy
		}
		return nil, fmt.Errorf("create lock file: %w", err)
	}

	return &handle{path: path, file: file}, nil
}

func (h *handle) release() error {
	closeErr := h.file.Close()
	removeErr := os.Remove(h.path)

	return errors.Join(closeErr, removeErr)
}
