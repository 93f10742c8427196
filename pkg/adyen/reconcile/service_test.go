package reconcile

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerce-payments/adyen-gateway/pkg/adyen/notification"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment"
	"github.com/commerce-payments/adyen-gateway/pkg/currency"
	"github.com/commerce-payments/adyen-gateway/pkg/pointer"
	_ "github.com/commerce-payments/adyen-gateway/pkg/testutil"
)

type testEnv struct {
	ctx     context.Context
	data    data.Provider
	service *Service
}

func setup(t *testing.T) *testEnv {
	data := data.NewTestDataProvider()

	require.NoError(t, data.CreateChannel(context.Background(), &channel.Record{
		Token:           "TestMerchant",
		Name:            "default-channel",
		DefaultCurrency: currency.USD,
	}))

	return &testEnv{
		ctx:     context.Background(),
		data:    data,
		service: New(data),
	}
}

func (env *testEnv) createOrder(t *testing.T, state order.State, attributed bool) *order.Record {
	record := &order.Record{
		Code:     "ORDER-42",
		Session:  "session-1",
		Channel:  "TestMerchant",
		State:    state,
		Total:    12345,
		Currency: currency.USD,
		Customer: &order.Customer{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		},
	}
	if attributed {
		record.PaymentMethodCode = pointer.String("payment-adyen")
	}
	require.NoError(t, env.data.CreateOrder(env.ctx, record))
	return record
}

func newAuthorisationItem(success string) *notification.Item {
	return &notification.Item{
		Amount: notification.Amount{
			Currency: "USD",
			Value:    12345,
		},
		EventCode:           "AUTHORISATION",
		MerchantAccountCode: "TestMerchant",
		MerchantReference:   "ORDER-42",
		PspReference:        "8835544088660594",
		Success:             notification.Success(success),
	}
}

func TestHandleStatusUpdate_AuthorisationSuccess(t *testing.T) {
	env := setup(t)
	env.createOrder(t, order.StateArrangingPayment, true)

	require.NoError(t, env.service.HandleStatusUpdate(env.ctx, newAuthorisationItem("true")))

	// The authorisation settles in the same pass, so the order lands in its
	// final state with a single settled payment attached.
	orderRecord, err := env.data.GetOrderByCode(env.ctx, "ORDER-42")
	require.NoError(t, err)
	assert.Equal(t, order.StatePaymentSettled, orderRecord.State)

	payments, err := env.data.GetAllPaymentsByOrderCode(env.ctx, "ORDER-42")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, payment.StateSettled, payments[0].State)
	assert.Equal(t, "8835544088660594", payments[0].TransactionId)
	assert.Equal(t, "payment-adyen", payments[0].Method)
	assert.EqualValues(t, 12345, payments[0].Amount)
	assert.NotEmpty(t, payments[0].Metadata)
}

func TestHandleStatusUpdate_RedeliveryIsIdempotent(t *testing.T) {
	env := setup(t)
	env.createOrder(t, order.StateArrangingPayment, true)

	item := newAuthorisationItem("true")
	require.NoError(t, env.service.HandleStatusUpdate(env.ctx, item))
	require.NoError(t, env.service.HandleStatusUpdate(env.ctx, item))

	orderRecord, err := env.data.GetOrderByCode(env.ctx, "ORDER-42")
	require.NoError(t, err)
	assert.Equal(t, order.StatePaymentSettled, orderRecord.State)

	payments, err := env.data.GetAllPaymentsByOrderCode(env.ctx, "ORDER-42")
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestHandleStatusUpdate_AuthorisationFromAddingItems(t *testing.T) {
	env := setup(t)
	env.createOrder(t, order.StateAddingItems, true)

	require.NoError(t, env.service.HandleStatusUpdate(env.ctx, newAuthorisationItem("true")))

	orderRecord, err := env.data.GetOrderByCode(env.ctx, "ORDER-42")
	require.NoError(t, err)
	assert.Equal(t, order.StatePaymentSettled, orderRecord.State)
}

func TestHandleStatusUpdate_AuthorisationDeclined(t *testing.T) {
	env := setup(t)
	env.createOrder(t, order.StateArrangingPayment, true)

	require.NoError(t, env.service.HandleStatusUpdate(env.ctx, newAuthorisationItem("false")))

	// Declined outcomes attach an audit record but never advance the order
	orderRecord, err := env.data.GetOrderByCode(env.ctx, "ORDER-42")
	require.NoError(t, err)
	assert.Equal(t, order.StateArrangingPayment, orderRecord.State)

	payments, err := env.data.GetAllPaymentsByOrderCode(env.ctx, "ORDER-42")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, payment.StateDeclined, payments[0].State)
}

func TestHandleStatusUpdate_DeclinedRedeliverySkipped(t *testing.T) {
	env := setup(t)
	env.createOrder(t, order.StateArrangingPayment, true)

	item := newAuthorisationItem("false")
	require.NoError(t, env.service.HandleStatusUpdate(env.ctx, item))
	require.NoError(t, env.service.HandleStatusUpdate(env.ctx, item))

	payments, err := env.data.GetAllPaymentsByOrderCode(env.ctx, "ORDER-42")
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestHandleStatusUpdate_MissingAttribution(t *testing.T) {
	env := setup(t)
	env.createOrder(t, order.StateArrangingPayment, false)

	err := env.service.HandleStatusUpdate(env.ctx, newAuthorisationItem("true"))
	assert.Equal(t, ErrMissingAttribution, errors.Cause(err))

	// The order is left untouched for investigation
	orderRecord, err := env.data.GetOrderByCode(env.ctx, "ORDER-42")
	require.NoError(t, err)
	assert.Equal(t, order.StateArrangingPayment, orderRecord.State)

	_, err = env.data.GetAllPaymentsByOrderCode(env.ctx, "ORDER-42")
	assert.Equal(t, payment.ErrNotFound, err)
}

func TestHandleStatusUpdate_LateDeliveryForClosedOrder(t *testing.T) {
	env := setup(t)
	env.createOrder(t, order.StatePaymentSettled, true)

	require.NoError(t, env.service.HandleStatusUpdate(env.ctx, newAuthorisationItem("true")))

	_, err := env.data.GetAllPaymentsByOrderCode(env.ctx, "ORDER-42")
	assert.Equal(t, payment.ErrNotFound, err)
}

func TestHandleStatusUpdate_UnhandledEventCode(t *testing.T) {
	env := setup(t)
	env.createOrder(t, order.StateArrangingPayment, true)

	item := newAuthorisationItem("true")
	item.EventCode = "CAPTURE"

	err := env.service.HandleStatusUpdate(env.ctx, item)
	assert.Equal(t, ErrUnhandledEvent, errors.Cause(err))

	orderRecord, err := env.data.GetOrderByCode(env.ctx, "ORDER-42")
	require.NoError(t, err)
	assert.Equal(t, order.StateArrangingPayment, orderRecord.State)
}

func TestHandleStatusUpdate_UnknownEventCode(t *testing.T) {
	env := setup(t)
	env.createOrder(t, order.StateArrangingPayment, true)

	item := newAuthorisationItem("true")
	item.EventCode = "SOMETHING_NEW"

	err := env.service.HandleStatusUpdate(env.ctx, item)
	assert.Equal(t, ErrUnknownEvent, errors.Cause(err))
}

func TestHandleStatusUpdate_UnmatchedOrderDropped(t *testing.T) {
	env := setup(t)

	item := newAuthorisationItem("true")
	item.MerchantReference = "ORDER-UNKNOWN"

	require.NoError(t, env.service.HandleStatusUpdate(env.ctx, item))
}

func TestHandleStatusUpdate_UnknownChannelDropped(t *testing.T) {
	env := setup(t)
	env.createOrder(t, order.StateArrangingPayment, true)

	item := newAuthorisationItem("true")
	item.MerchantAccountCode = "OtherMerchant"

	require.NoError(t, env.service.HandleStatusUpdate(env.ctx, item))

	orderRecord, err := env.data.GetOrderByCode(env.ctx, "ORDER-42")
	require.NoError(t, err)
	assert.Equal(t, order.StateArrangingPayment, orderRecord.State)
}
