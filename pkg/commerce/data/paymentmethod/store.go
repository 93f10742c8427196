package paymentmethod

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("payment method not found")
	ErrAlreadyExists = errors.New("payment method already exists")
)

type Store interface {
	// Put creates a new payment method record
	Put(ctx context.Context, record *Record) error

	// GetByCode gets the payment method with the provided code, if it exists
	GetByCode(ctx context.Context, code string) (*Record, error)
}
