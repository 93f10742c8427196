package order

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotFound            = errors.New("order record not found")
	ErrAlreadyExists       = errors.New("order record already exists")
	ErrInvalidTransition   = errors.New("illegal order state transition")
	ErrAttributionConflict = errors.New("order is already attributed to a different payment method")
)

type Store interface {
	// Put creates an order record
	//
	// Returns ErrAlreadyExists if a record with the same code already exists.
	Put(ctx context.Context, record *Record) error

	// GetByCode finds the order record for a given correlation code
	//
	// Returns ErrNotFound if no record is found.
	GetByCode(ctx context.Context, code string) (*Record, error)

	// GetActiveBySession gets the open order owned by a buyer session
	//
	// Returns ErrNotFound if the session has no order in an open state.
	GetActiveBySession(ctx context.Context, session string) (*Record, error)

	// SetPaymentMethodCode records the payment method attribution for an
	// order using compare-and-set semantics: the write succeeds when the
	// field is unset or already holds the same value.
	//
	// Returns ErrNotFound if no record is found, or ErrAttributionConflict
	// when the order is already attributed to a different method.
	SetPaymentMethodCode(ctx context.Context, code, methodCode string) error

	// TransitionState atomically drives the order into the provided state,
	// enforcing the State.CanTransitionTo table.
	//
	// Returns ErrNotFound if no record is found, or ErrInvalidTransition if
	// the order's current state doesn't permit the transition. The updated
	// record is returned on success.
	TransitionState(ctx context.Context, code string, next State) (*Record, error)
}
