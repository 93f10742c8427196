package webhook

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerce-payments/adyen-gateway/pkg/adyen/reconcile"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment"
	"github.com/commerce-payments/adyen-gateway/pkg/currency"
	"github.com/commerce-payments/adyen-gateway/pkg/pointer"
)

// End to end over the full receive path: authenticated, signed delivery in,
// reconciled order state out.
func TestWebhookServer_Reconciliation(t *testing.T) {
	ctx := context.Background()
	dataProvider := data.NewTestDataProvider()

	require.NoError(t, dataProvider.CreateChannel(ctx, &channel.Record{
		Token:           "TestMerchant",
		Name:            "default-channel",
		DefaultCurrency: currency.USD,
	}))
	require.NoError(t, dataProvider.CreateOrder(ctx, &order.Record{
		Code:              "ORDER-42",
		Session:           "session-1",
		Channel:           "TestMerchant",
		State:             order.StateArrangingPayment,
		Total:             12345,
		Currency:          currency.USD,
		PaymentMethodCode: pointer.String("payment-adyen"),
	}))

	server := NewWebhookServer(
		withManualTestOverrides(&testOverrides{
			environment:     "TEST",
			hmacKey:         testHmacKey,
			webhookUsername: "adyen",
			webhookPassword: "secret",
		}),
		reconcile.New(dataProvider),
	)
	env := &serverTestEnv{server: server}

	item := newTestItem()
	item.AdditionalData = map[string]string{
		"hmacSignature": signItem(t, item, testHmacKey),
	}

	req := newWebhookRequest(t, item)
	req.SetBasicAuth("adyen", "secret")

	resp := postWebhook(env, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[accepted]", string(body))

	orderRecord, err := dataProvider.GetOrderByCode(ctx, "ORDER-42")
	require.NoError(t, err)
	assert.Equal(t, order.StatePaymentSettled, orderRecord.State)

	payments, err := dataProvider.GetAllPaymentsByOrderCode(ctx, "ORDER-42")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, payment.StateSettled, payments[0].State)

	// Redelivery is acknowledged without further mutation
	req = newWebhookRequest(t, item)
	req.SetBasicAuth("adyen", "secret")
	resp = postWebhook(env, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	payments, err = dataProvider.GetAllPaymentsByOrderCode(ctx, "ORDER-42")
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}
