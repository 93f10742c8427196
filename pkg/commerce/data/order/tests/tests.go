package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order"
	"github.com/commerce-payments/adyen-gateway/pkg/currency"
	"github.com/commerce-payments/adyen-gateway/pkg/pointer"
)

func RunTests(t *testing.T, s order.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s order.Store){
		testHappyPath,
		testActiveOrderQueries,
		testAttribution,
		testStateMachine,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s order.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		ctx := context.Background()
		start := time.Now()
		time.Sleep(time.Millisecond)

		record := &order.Record{
			Code:     "ORDER-1",
			Session:  "session-1",
			Channel:  "default-channel",
			State:    order.StateAddingItems,
			Total:    1000,
			Currency: currency.USD,
			Customer: &order.Customer{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane.doe@example.com",
			},
			Lines: []*order.Line{
				{Id: "line-1", UnitPriceWithTax: 500, Quantity: 2},
			},
		}
		cloned := record.Clone()

		_, err := s.GetByCode(ctx, record.Code)
		assert.Equal(t, order.ErrNotFound, err)

		require.NoError(t, s.Put(ctx, record))
		assert.Equal(t, order.ErrAlreadyExists, s.Put(ctx, record))

		actual, err := s.GetByCode(ctx, record.Code)
		require.NoError(t, err)
		assert.True(t, actual.Id > 0)
		assert.True(t, actual.CreatedAt.After(start))
		assertEquivalentRecords(t, &cloned, actual)
	})
}

func testActiveOrderQueries(t *testing.T, s order.Store) {
	t.Run("testActiveOrderQueries", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetActiveBySession(ctx, "session-1")
		assert.Equal(t, order.ErrNotFound, err)

		records := []*order.Record{
			{Code: "ORDER-1", Session: "session-1", Channel: "c", State: order.StatePaymentSettled, Total: 100, Currency: currency.USD},
			{Code: "ORDER-2", Session: "session-1", Channel: "c", State: order.StateAddingItems, Total: 200, Currency: currency.USD},
			{Code: "ORDER-3", Session: "session-2", Channel: "c", State: order.StateArrangingPayment, Total: 300, Currency: currency.USD},
		}
		for _, record := range records {
			require.NoError(t, s.Put(ctx, record))
		}

		actual, err := s.GetActiveBySession(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, "ORDER-2", actual.Code)

		actual, err = s.GetActiveBySession(ctx, "session-2")
		require.NoError(t, err)
		assert.Equal(t, "ORDER-3", actual.Code)

		_, err = s.GetActiveBySession(ctx, "session-3")
		assert.Equal(t, order.ErrNotFound, err)
	})
}

func testAttribution(t *testing.T, s order.Store) {
	t.Run("testAttribution", func(t *testing.T) {
		ctx := context.Background()

		assert.Equal(t, order.ErrNotFound, s.SetPaymentMethodCode(ctx, "ORDER-1", "payment-adyen"))

		record := &order.Record{
			Code:     "ORDER-1",
			Session:  "session-1",
			Channel:  "c",
			State:    order.StateAddingItems,
			Total:    100,
			Currency: currency.USD,
		}
		require.NoError(t, s.Put(ctx, record))

		require.NoError(t, s.SetPaymentMethodCode(ctx, record.Code, "payment-adyen"))

		actual, err := s.GetByCode(ctx, record.Code)
		require.NoError(t, err)
		require.NotNil(t, actual.PaymentMethodCode)
		assert.Equal(t, "payment-adyen", *actual.PaymentMethodCode)

		// Same value is a no-op, a different value is rejected
		require.NoError(t, s.SetPaymentMethodCode(ctx, record.Code, "payment-adyen"))
		assert.Equal(t, order.ErrAttributionConflict, s.SetPaymentMethodCode(ctx, record.Code, "payment-other"))

		actual, err = s.GetByCode(ctx, record.Code)
		require.NoError(t, err)
		require.NotNil(t, actual.PaymentMethodCode)
		assert.Equal(t, "payment-adyen", *actual.PaymentMethodCode)
	})
}

func testStateMachine(t *testing.T, s order.Store) {
	t.Run("testStateMachine", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.TransitionState(ctx, "ORDER-1", order.StateArrangingPayment)
		assert.Equal(t, order.ErrNotFound, err)

		record := &order.Record{
			Code:     "ORDER-1",
			Session:  "session-1",
			Channel:  "c",
			State:    order.StateAddingItems,
			Total:    100,
			Currency: currency.USD,
		}
		require.NoError(t, s.Put(ctx, record))

		// Cannot skip straight to a settled state
		_, err = s.TransitionState(ctx, record.Code, order.StatePaymentAuthorized)
		assert.Equal(t, order.ErrInvalidTransition, err)

		updated, err := s.TransitionState(ctx, record.Code, order.StateArrangingPayment)
		require.NoError(t, err)
		assert.Equal(t, order.StateArrangingPayment, updated.State)

		updated, err = s.TransitionState(ctx, record.Code, order.StatePaymentAuthorized)
		require.NoError(t, err)
		assert.Equal(t, order.StatePaymentAuthorized, updated.State)

		updated, err = s.TransitionState(ctx, record.Code, order.StatePaymentSettled)
		require.NoError(t, err)
		assert.Equal(t, order.StatePaymentSettled, updated.State)

		// Settled is terminal
		_, err = s.TransitionState(ctx, record.Code, order.StateArrangingPayment)
		assert.Equal(t, order.ErrInvalidTransition, err)

		actual, err := s.GetByCode(ctx, record.Code)
		require.NoError(t, err)
		assert.Equal(t, order.StatePaymentSettled, actual.State)
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *order.Record) {
	assert.Equal(t, obj1.Code, obj2.Code)
	assert.Equal(t, obj1.Session, obj2.Session)
	assert.Equal(t, obj1.Channel, obj2.Channel)
	assert.Equal(t, obj1.State, obj2.State)
	assert.Equal(t, obj1.Total, obj2.Total)
	assert.Equal(t, obj1.Currency, obj2.Currency)
	assert.EqualValues(t, pointer.StringOrDefault(obj1.PaymentMethodCode, ""), pointer.StringOrDefault(obj2.PaymentMethodCode, ""))
	assert.Equal(t, obj1.Customer, obj2.Customer)
	assert.Equal(t, obj1.BillingAddress, obj2.BillingAddress)
	assert.Equal(t, obj1.Lines, obj2.Lines)
}
