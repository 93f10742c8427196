package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerce-payments/adyen-gateway/pkg/adyen/checkout"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data"
	_ "github.com/commerce-payments/adyen-gateway/pkg/testutil"
)

type serverTestEnv struct {
	*testEnv
	server *Server
}

func setupServerTest(t *testing.T) *serverTestEnv {
	dataProvider := data.NewTestDataProvider()
	checkoutClient := checkout.NewFakeClient()
	service := New(withManualTestOverrides(&testOverrides{}), dataProvider, checkoutClient)

	return &serverTestEnv{
		testEnv: &testEnv{
			ctx:      context.Background(),
			data:     dataProvider,
			checkout: checkoutClient,
			service:  service,
		},
		server: NewPaymentIntentServer(service),
	}
}

func (env *serverTestEnv) post(t *testing.T, requestBody any) (int, map[string]any) {
	marshalled, err := json.Marshal(requestBody)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/createPaymentIntent", bytes.NewReader(marshalled))
	w := httptest.NewRecorder()
	env.server.GetHandlers()["/v1/createPaymentIntent"](w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestPaymentIntentServer_HappyPath(t *testing.T) {
	env := setupServerTest(t)
	env.createPaymentMethod(t, true, true)
	env.createOrder(t)

	statusCode, body := env.post(t, map[string]any{"session": "session-1"})
	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["sessionData"])
	assert.NotEmpty(t, body["transactionId"])
}

func TestPaymentIntentServer_TypedFailure(t *testing.T) {
	env := setupServerTest(t)

	statusCode, body := env.post(t, map[string]any{"session": "session-1"})
	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, string(ErrorCodePaymentMethodMissing), body["code"])
	assert.NotEmpty(t, body["error"])
}

func TestPaymentIntentServer_BadRequest(t *testing.T) {
	env := setupServerTest(t)

	statusCode, body := env.post(t, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, statusCode)
	assert.Equal(t, false, body["success"])

	req := httptest.NewRequest(http.MethodGet, "/v1/createPaymentIntent", nil)
	w := httptest.NewRecorder()
	env.server.GetHandlers()["/v1/createPaymentIntent"](w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
