package domain

import "errors"

var (
	ErrStateNotFound     = errors.New("shared state not found")
	ErrLockTimeout       = errors.New("speech lock timeout")
	ErrSpeechUnavailable = errors.New("no speech backend available")
	ErrUnknownHook       = errors.New("unknown hook kind")
)
