package ports

import (
	"context"

	"github.com/bnema/voicehook/internal/domain"
)

type StateRepository interface {
	Load(ctx context.Context) (domain.SharedState, error)
	Save(ctx context.Context, state domain.SharedState) error
}
