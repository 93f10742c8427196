package payment

import (
	"time"

	"github.com/pkg/errors"

	"github.com/commerce-payments/adyen-gateway/pkg/currency"
)

type State uint8

const (
	StateUnknown State = iota
	StateAuthorized
	StateDeclined
	StateSettled
)

type Record struct {
	Id uint64

	OrderCode     string
	Method        string
	TransactionId string

	Amount   int64
	Currency currency.Code

	State State

	Metadata []byte

	CreatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.OrderCode) == 0 {
		return errors.New("order code is required")
	}

	if len(r.Method) == 0 {
		return errors.New("payment method is required")
	}

	if len(r.TransactionId) == 0 {
		return errors.New("transaction id is required")
	}

	if r.Amount <= 0 {
		return errors.New("amount must be positive")
	}

	if len(r.Currency) == 0 {
		return errors.New("currency is required")
	}

	if r.State == StateUnknown {
		return errors.New("payment state must be set")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		OrderCode:     r.OrderCode,
		Method:        r.Method,
		TransactionId: r.TransactionId,

		Amount:   r.Amount,
		Currency: r.Currency,

		State: r.State,

		Metadata: copyMetadata(r.Metadata),

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.OrderCode = r.OrderCode
	dst.Method = r.Method
	dst.TransactionId = r.TransactionId

	dst.Amount = r.Amount
	dst.Currency = r.Currency

	dst.State = r.State

	dst.Metadata = copyMetadata(r.Metadata)

	dst.CreatedAt = r.CreatedAt
}

func copyMetadata(value []byte) []byte {
	if value == nil {
		return nil
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	return copied
}

func (r *Record) IsSettled() bool {
	return r.State == StateSettled
}

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAuthorized:
		return "authorized"
	case StateDeclined:
		return "declined"
	case StateSettled:
		return "settled"
	}

	return "unknown"
}
