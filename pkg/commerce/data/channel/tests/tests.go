package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel"
	"github.com/commerce-payments/adyen-gateway/pkg/currency"
)

func RunTests(t *testing.T, s channel.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s channel.Store){
		testHappyPath,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s channel.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		ctx := context.Background()

		expected := &channel.Record{
			Token:           "default-channel-token",
			Name:            "default-channel",
			DefaultCurrency: currency.USD,
		}
		cloned := expected.Clone()

		_, err := s.GetByToken(ctx, expected.Token)
		assert.Equal(t, channel.ErrNotFound, err)

		require.NoError(t, s.Put(ctx, expected))
		assert.EqualValues(t, 1, expected.Id)
		assert.False(t, expected.CreatedAt.IsZero())

		assert.Equal(t, channel.ErrAlreadyExists, s.Put(ctx, &cloned))

		actual, err := s.GetByToken(ctx, expected.Token)
		require.NoError(t, err)
		assert.Equal(t, cloned.Token, actual.Token)
		assert.Equal(t, cloned.Name, actual.Name)
		assert.Equal(t, cloned.DefaultCurrency, actual.DefaultCurrency)
	})
}
