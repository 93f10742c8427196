package order

import (
	"time"

	"github.com/pkg/errors"

	"github.com/commerce-payments/adyen-gateway/pkg/currency"
	"github.com/commerce-payments/adyen-gateway/pkg/pointer"
)

type State uint8

const (
	StateUnknown           State = iota
	StateAddingItems             // Buyer is still building the cart
	StateArrangingPayment        // Checkout has started, payment expected
	StatePaymentAuthorized       // A payment was authorized for the full total
	StatePaymentSettled          // Authorized funds have been captured
	StateCancelled               // Terminal, no payment activity allowed
)

// Customer is the shopper identity attached to an order. The provider
// requires first name, last name and email before a session can be created.
type Customer struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

// Address is the billing address captured at checkout. All fields are
// optional at the order level; completeness is checked when projecting the
// address into a provider request.
type Address struct {
	StreetLine1 string
	StreetLine2 string
	City        string
	PostalCode  string
	Province    string
	Country     string // Two-character ISO-3166-1 alpha-2 code
}

// Line is a single order line, priced in the order currency's minor units.
type Line struct {
	Id               string
	UnitPriceWithTax int64
	Quantity         uint32
}

type Record struct {
	Id uint64

	// Code is the merchant-side correlation key. It's sent to the provider as
	// the merchant reference and joins every asynchronous notification back
	// to this order, so it must be globally unique.
	Code string

	// Session identifies the buyer session that owns this order.
	Session string

	// Channel is the token of the sales channel the order was placed on. It
	// must match the provider-side merchant account name.
	Channel string

	State State

	Total    int64 // Minor units
	Currency currency.Code

	// PaymentMethodCode records which payment method handler is responsible
	// for payments against this order. It must be written before any webhook
	// for the order can be processed.
	PaymentMethodCode *string

	Customer       *Customer
	BillingAddress *Address
	Lines          []*Line

	CreatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Code) == 0 {
		return errors.New("order code is required")
	}

	if len(r.Session) == 0 {
		return errors.New("session is required")
	}

	if len(r.Channel) == 0 {
		return errors.New("channel is required")
	}

	if r.State == StateUnknown {
		return errors.New("state is required")
	}

	if len(r.Currency) == 0 {
		return errors.New("currency is required")
	}

	if r.PaymentMethodCode != nil && len(*r.PaymentMethodCode) == 0 {
		return errors.New("payment method code cannot be empty when set")
	}

	return nil
}

func (r *Record) Clone() Record {
	var customer *Customer
	if r.Customer != nil {
		cloned := *r.Customer
		customer = &cloned
	}

	var billingAddress *Address
	if r.BillingAddress != nil {
		cloned := *r.BillingAddress
		billingAddress = &cloned
	}

	var lines []*Line
	for _, line := range r.Lines {
		cloned := *line
		lines = append(lines, &cloned)
	}

	return Record{
		Id: r.Id,

		Code:    r.Code,
		Session: r.Session,
		Channel: r.Channel,

		State: r.State,

		Total:    r.Total,
		Currency: r.Currency,

		PaymentMethodCode: pointer.StringCopy(r.PaymentMethodCode),

		Customer:       customer,
		BillingAddress: billingAddress,
		Lines:          lines,

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	cloned := r.Clone()

	dst.Id = cloned.Id

	dst.Code = cloned.Code
	dst.Session = cloned.Session
	dst.Channel = cloned.Channel

	dst.State = cloned.State

	dst.Total = cloned.Total
	dst.Currency = cloned.Currency

	dst.PaymentMethodCode = cloned.PaymentMethodCode

	dst.Customer = cloned.Customer
	dst.BillingAddress = cloned.BillingAddress
	dst.Lines = cloned.Lines

	dst.CreatedAt = cloned.CreatedAt
}

// IsOpen determines whether the order can still accept new payment activity.
func (s State) IsOpen() bool {
	return s == StateAddingItems || s == StateArrangingPayment
}

// CanTransitionTo defines the legal order state machine. Stores enforce this
// table atomically, so concurrent webhook deliveries cannot drive an order
// through an illegal transition.
func (s State) CanTransitionTo(next State) bool {
	switch s {
	case StateAddingItems:
		return next == StateArrangingPayment || next == StateCancelled
	case StateArrangingPayment:
		return next == StatePaymentAuthorized || next == StatePaymentSettled || next == StateCancelled
	case StatePaymentAuthorized:
		return next == StatePaymentSettled
	default:
		return false
	}
}

func (s State) String() string {
	switch s {
	case StateAddingItems:
		return "adding_items"
	case StateArrangingPayment:
		return "arranging_payment"
	case StatePaymentAuthorized:
		return "payment_authorized"
	case StatePaymentSettled:
		return "payment_settled"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}
