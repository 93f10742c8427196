package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/commerce-payments/adyen-gateway/pkg/cache"
	pg "github.com/commerce-payments/adyen-gateway/pkg/database/postgres"
	"github.com/commerce-payments/adyen-gateway/pkg/retry"
	"github.com/commerce-payments/adyen-gateway/pkg/retry/backoff"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/paymentmethod"

	channel_memory_client "github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel/memory"
	order_memory_client "github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order/memory"
	payment_memory_client "github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment/memory"
	paymentmethod_memory_client "github.com/commerce-payments/adyen-gateway/pkg/commerce/data/paymentmethod/memory"

	channel_postgres_client "github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel/postgres"
	order_postgres_client "github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order/postgres"
	payment_postgres_client "github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment/postgres"
	paymentmethod_postgres_client "github.com/commerce-payments/adyen-gateway/pkg/commerce/data/paymentmethod/postgres"
)

// Cache Constants
const (
	maxChannelCacheBudget = 1000
	channelCacheWeight    = 1
)

type DatabaseProvider struct {
	orders         order.Store
	payments       payment.Store
	paymentMethods paymentmethod.Store
	channels       channel.Store

	channelCache cache.Cache

	db *sqlx.DB
}

func NewDatabaseProvider(dbConfig *pg.Config) (Provider, error) {
	// The database may come up after this process does, so bound the initial
	// connection attempts instead of failing on the first one.
	var db *sql.DB
	_, err := retry.Retry(
		func() error {
			var err error
			db, err = pg.New(dbConfig)
			return err
		},
		retry.Limit(5),
		retry.Backoff(backoff.BinaryExponential(250*time.Millisecond), 5*time.Second),
	)
	if err != nil {
		return nil, err
	}

	db.SetConnMaxIdleTime(time.Hour)
	db.SetConnMaxLifetime(time.Hour)

	return &DatabaseProvider{
		orders:         order_postgres_client.New(db),
		payments:       payment_postgres_client.New(db),
		paymentMethods: paymentmethod_postgres_client.New(db),
		channels:       channel_postgres_client.New(db),

		channelCache: cache.NewCache(maxChannelCacheBudget),

		db: sqlx.NewDb(db, "pgx"),
	}, nil
}

func NewTestDataProvider() Provider {
	return &DatabaseProvider{
		orders:         order_memory_client.New(),
		payments:       payment_memory_client.New(),
		paymentMethods: paymentmethod_memory_client.New(),
		channels:       channel_memory_client.New(),

		channelCache: cache.NewCache(maxChannelCacheBudget),
	}
}

func (dp *DatabaseProvider) ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error {
	if dp.db == nil {
		return fn(ctx)
	}

	return pg.ExecuteTxWithinCtx(ctx, dp.db, isolation, fn)
}

// Order
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateOrder(ctx context.Context, record *order.Record) error {
	return dp.orders.Put(ctx, record)
}
func (dp *DatabaseProvider) GetOrderByCode(ctx context.Context, code string) (*order.Record, error) {
	return dp.orders.GetByCode(ctx, code)
}
func (dp *DatabaseProvider) GetActiveOrderBySession(ctx context.Context, session string) (*order.Record, error) {
	return dp.orders.GetActiveBySession(ctx, session)
}
func (dp *DatabaseProvider) SetOrderPaymentMethodCode(ctx context.Context, code, methodCode string) error {
	return dp.orders.SetPaymentMethodCode(ctx, code, methodCode)
}
func (dp *DatabaseProvider) TransitionOrderState(ctx context.Context, code string, next order.State) (*order.Record, error) {
	return dp.orders.TransitionState(ctx, code, next)
}

// Payment
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreatePayment(ctx context.Context, record *payment.Record) error {
	return dp.payments.Put(ctx, record)
}
func (dp *DatabaseProvider) GetPaymentByTransactionId(ctx context.Context, transactionId string) (*payment.Record, error) {
	return dp.payments.GetByTransactionId(ctx, transactionId)
}
func (dp *DatabaseProvider) GetAllPaymentsByOrderCode(ctx context.Context, orderCode string) ([]*payment.Record, error) {
	return dp.payments.GetAllByOrderCode(ctx, orderCode)
}
func (dp *DatabaseProvider) MarkPaymentSettled(ctx context.Context, transactionId string) (*payment.Record, error) {
	return dp.payments.MarkSettled(ctx, transactionId)
}

// Payment Method
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreatePaymentMethod(ctx context.Context, record *paymentmethod.Record) error {
	return dp.paymentMethods.Put(ctx, record)
}
func (dp *DatabaseProvider) GetPaymentMethodByCode(ctx context.Context, code string) (*paymentmethod.Record, error) {
	return dp.paymentMethods.GetByCode(ctx, code)
}

// Channel
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateChannel(ctx context.Context, record *channel.Record) error {
	return dp.channels.Put(ctx, record)
}
func (dp *DatabaseProvider) GetChannelByToken(ctx context.Context, token string) (*channel.Record, error) {
	if cached, ok := dp.channelCache.Retrieve(token); ok {
		cachedRecord := cached.(channel.Record)
		record := cachedRecord.Clone()
		return &record, nil
	}

	record, err := dp.channels.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	dp.channelCache.Insert(token, record.Clone(), channelCacheWeight)

	return record, nil
}
