package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment"
	"github.com/commerce-payments/adyen-gateway/pkg/currency"
)

func RunTests(t *testing.T, s payment.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s payment.Store){
		testHappyPath,
		testDeduplication,
		testOrderQueries,
		testSettlement,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s payment.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		ctx := context.Background()

		expected := &payment.Record{
			OrderCode:     "ORDER-1",
			Method:        "payment-adyen",
			TransactionId: "psp-ref-1",
			Amount:        12345,
			Currency:      currency.USD,
			State:         payment.StateAuthorized,
			Metadata:      []byte(`{"eventCode":"AUTHORISATION"}`),
		}
		cloned := expected.Clone()

		_, err := s.GetByTransactionId(ctx, expected.TransactionId)
		assert.Equal(t, payment.ErrNotFound, err)

		require.NoError(t, s.Put(ctx, expected))
		assert.EqualValues(t, 1, expected.Id)
		assert.False(t, expected.CreatedAt.IsZero())

		actual, err := s.GetByTransactionId(ctx, expected.TransactionId)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
	})
}

func testDeduplication(t *testing.T, s payment.Store) {
	t.Run("testDeduplication", func(t *testing.T) {
		ctx := context.Background()

		record := &payment.Record{
			OrderCode:     "ORDER-1",
			Method:        "payment-adyen",
			TransactionId: "psp-ref-1",
			Amount:        12345,
			Currency:      currency.USD,
			State:         payment.StateAuthorized,
		}
		require.NoError(t, s.Put(ctx, record))

		duplicate := record.Clone()
		duplicate.Id = 0
		assert.Equal(t, payment.ErrAlreadyExists, s.Put(ctx, &duplicate))

		otherOrder := record.Clone()
		otherOrder.Id = 0
		otherOrder.OrderCode = "ORDER-2"
		otherOrder.TransactionId = "psp-ref-2"
		require.NoError(t, s.Put(ctx, &otherOrder))
	})
}

func testOrderQueries(t *testing.T, s payment.Store) {
	t.Run("testOrderQueries", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetAllByOrderCode(ctx, "ORDER-1")
		assert.Equal(t, payment.ErrNotFound, err)

		for i, state := range []payment.State{
			payment.StateDeclined,
			payment.StateAuthorized,
		} {
			require.NoError(t, s.Put(ctx, &payment.Record{
				OrderCode:     "ORDER-1",
				Method:        "payment-adyen",
				TransactionId: "psp-ref-" + string(rune('a'+i)),
				Amount:        12345,
				Currency:      currency.USD,
				State:         state,
			}))
		}

		actual, err := s.GetAllByOrderCode(ctx, "ORDER-1")
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assert.Equal(t, payment.StateDeclined, actual[0].State)
		assert.Equal(t, payment.StateAuthorized, actual[1].State)

		_, err = s.GetAllByOrderCode(ctx, "ORDER-2")
		assert.Equal(t, payment.ErrNotFound, err)
	})
}

func testSettlement(t *testing.T, s payment.Store) {
	t.Run("testSettlement", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.MarkSettled(ctx, "psp-ref-1")
		assert.Equal(t, payment.ErrNotFound, err)

		authorized := &payment.Record{
			OrderCode:     "ORDER-1",
			Method:        "payment-adyen",
			TransactionId: "psp-ref-1",
			Amount:        12345,
			Currency:      currency.USD,
			State:         payment.StateAuthorized,
		}
		require.NoError(t, s.Put(ctx, authorized))

		declined := &payment.Record{
			OrderCode:     "ORDER-1",
			Method:        "payment-adyen",
			TransactionId: "psp-ref-2",
			Amount:        12345,
			Currency:      currency.USD,
			State:         payment.StateDeclined,
		}
		require.NoError(t, s.Put(ctx, declined))

		actual, err := s.MarkSettled(ctx, authorized.TransactionId)
		require.NoError(t, err)
		assert.Equal(t, payment.StateSettled, actual.State)

		actual, err = s.GetByTransactionId(ctx, authorized.TransactionId)
		require.NoError(t, err)
		assert.Equal(t, payment.StateSettled, actual.State)

		_, err = s.MarkSettled(ctx, authorized.TransactionId)
		assert.Equal(t, payment.ErrNotSettleable, err)

		_, err = s.MarkSettled(ctx, declined.TransactionId)
		assert.Equal(t, payment.ErrNotSettleable, err)
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *payment.Record) {
	assert.Equal(t, obj1.OrderCode, obj2.OrderCode)
	assert.Equal(t, obj1.Method, obj2.Method)
	assert.Equal(t, obj1.TransactionId, obj2.TransactionId)
	assert.Equal(t, obj1.Amount, obj2.Amount)
	assert.Equal(t, obj1.Currency, obj2.Currency)
	assert.Equal(t, obj1.State, obj2.State)
	assert.Equal(t, obj1.Metadata, obj2.Metadata)
}
