package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/paymentmethod"
	"github.com/commerce-payments/adyen-gateway/pkg/pointer"
)

func RunTests(t *testing.T, s paymentmethod.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s paymentmethod.Store){
		testHappyPath,
		testConfiguration,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s paymentmethod.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		ctx := context.Background()

		expected := &paymentmethod.Record{
			Code:        "payment-adyen",
			Channel:     "default-channel",
			Enabled:     true,
			ApiKey:      pointer.String("api-key"),
			RedirectUrl: pointer.String("https://storefront.example.com/checkout"),
		}
		cloned := expected.Clone()

		_, err := s.GetByCode(ctx, expected.Code)
		assert.Equal(t, paymentmethod.ErrNotFound, err)

		require.NoError(t, s.Put(ctx, expected))
		assert.EqualValues(t, 1, expected.Id)
		assert.False(t, expected.CreatedAt.IsZero())

		assert.Equal(t, paymentmethod.ErrAlreadyExists, s.Put(ctx, &cloned))

		actual, err := s.GetByCode(ctx, expected.Code)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)
	})
}

func testConfiguration(t *testing.T, s paymentmethod.Store) {
	t.Run("testConfiguration", func(t *testing.T) {
		ctx := context.Background()

		partial := &paymentmethod.Record{
			Code:    "payment-adyen-partial",
			Channel: "default-channel",
			Enabled: true,
			ApiKey:  pointer.String("api-key"),
		}
		require.NoError(t, s.Put(ctx, partial))

		actual, err := s.GetByCode(ctx, partial.Code)
		require.NoError(t, err)
		assert.False(t, actual.IsConfigured())
		require.NotNil(t, actual.ApiKey)
		assert.Equal(t, "api-key", *actual.ApiKey)
		assert.Nil(t, actual.RedirectUrl)

		configured := &paymentmethod.Record{
			Code:        "payment-adyen",
			Channel:     "default-channel",
			Enabled:     true,
			ApiKey:      pointer.String("api-key"),
			RedirectUrl: pointer.String("https://storefront.example.com/checkout"),
		}
		require.NoError(t, s.Put(ctx, configured))

		actual, err = s.GetByCode(ctx, configured.Code)
		require.NoError(t, err)
		assert.True(t, actual.IsConfigured())
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *paymentmethod.Record) {
	assert.Equal(t, obj1.Code, obj2.Code)
	assert.Equal(t, obj1.Channel, obj2.Channel)
	assert.Equal(t, obj1.Enabled, obj2.Enabled)
	assert.EqualValues(t, obj1.ApiKey, obj2.ApiKey)
	assert.EqualValues(t, obj1.RedirectUrl, obj2.RedirectUrl)
}
