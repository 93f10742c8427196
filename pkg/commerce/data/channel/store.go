package channel

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("channel not found")
	ErrAlreadyExists = errors.New("channel already exists")
)

type Store interface {
	// Put creates a new channel record
	Put(ctx context.Context, record *Record) error

	// GetByToken gets the channel with the provided token, if it exists
	GetByToken(ctx context.Context, token string) (*Record, error)
}
