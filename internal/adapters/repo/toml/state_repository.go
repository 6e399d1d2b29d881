package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/bnema/voicehook/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	StatePathKey     = "state.path"
	defaultStateFile = "claude_voice_state.toml"
)

// StateRepository persists the whole SharedState as one TOML document.
type StateRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.StateRepository = (*StateRepository)(nil)

func DefaultStatePath() string {
	return filepath.Join(os.TempDir(), defaultStateFile)
}

func NewStateRepository(cfg *viper.Viper) (*StateRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	cfg.SetDefault(StatePathKey, DefaultStatePath())

	path := cfg.GetString(StatePathKey)
	if path == "" {
		return nil, errors.New("state path is empty")
	}
	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &StateRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *StateRepository) Path() string {
	return r.path
}

// Load returns domain.ErrStateNotFound when the file does not exist yet.
func (r *StateRepository) Load(ctx context.Context) (domain.SharedState, error) {
	if err := ctx.Err(); err != nil {
		return domain.SharedState{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.SharedState{}, domain.ErrStateNotFound
		}
		return domain.SharedState{}, fmt.Errorf("read state file: %w", err)
	}

	var file stateFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.SharedState{}, fmt.Errorf("decode state file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.SharedState{}, err
	}
	file.applyDefaults()

	return fromStateSchema(file), nil
}

func (r *StateRepository) Save(ctx context.Context, state domain.SharedState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := toStateSchema(state)
	file.applyDefaults()

	if err := writeTOMLFile(r.path, file); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}
