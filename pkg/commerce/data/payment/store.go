package payment

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("payment not found")
	ErrAlreadyExists = errors.New("payment already exists")
	ErrNotSettleable = errors.New("payment is not in a settleable state")
)

type Store interface {
	// Put creates a new payment record. ErrAlreadyExists is returned if a
	// payment with the same order code and transaction id already exists.
	Put(ctx context.Context, record *Record) error

	// GetByTransactionId gets the payment with the provided transaction id,
	// if it exists.
	GetByTransactionId(ctx context.Context, transactionId string) (*Record, error)

	// GetAllByOrderCode gets all payments recorded against an order, in the
	// order they were created.
	GetAllByOrderCode(ctx context.Context, orderCode string) ([]*Record, error)

	// MarkSettled transitions a payment from StateAuthorized to StateSettled.
	// ErrNotSettleable is returned if the payment is in any other state.
	MarkSettled(ctx context.Context, transactionId string) (*Record, error)
}
