package data

import (
	"context"
	"database/sql"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/paymentmethod"
)

// Provider is the aggregated data access layer for commerce state. All reads
// and writes from service code go through this interface rather than the
// individual entity stores.
type Provider interface {
	ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error

	// Order
	// --------------------------------------------------------------------------------
	CreateOrder(ctx context.Context, record *order.Record) error
	GetOrderByCode(ctx context.Context, code string) (*order.Record, error)
	GetActiveOrderBySession(ctx context.Context, session string) (*order.Record, error)
	SetOrderPaymentMethodCode(ctx context.Context, code, methodCode string) error
	TransitionOrderState(ctx context.Context, code string, next order.State) (*order.Record, error)

	// Payment
	// --------------------------------------------------------------------------------
	CreatePayment(ctx context.Context, record *payment.Record) error
	GetPaymentByTransactionId(ctx context.Context, transactionId string) (*payment.Record, error)
	GetAllPaymentsByOrderCode(ctx context.Context, orderCode string) ([]*payment.Record, error)
	MarkPaymentSettled(ctx context.Context, transactionId string) (*payment.Record, error)

	// Payment Method
	// --------------------------------------------------------------------------------
	CreatePaymentMethod(ctx context.Context, record *paymentmethod.Record) error
	GetPaymentMethodByCode(ctx context.Context, code string) (*paymentmethod.Record, error)

	// Channel
	// --------------------------------------------------------------------------------
	CreateChannel(ctx context.Context, record *channel.Record) error
	GetChannelByToken(ctx context.Context, token string) (*channel.Record, error)
}
