package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerce-payments/adyen-gateway/pkg/adyen/notification"
	"github.com/commerce-payments/adyen-gateway/pkg/testutil"
)

type recordingHandler struct {
	items     []*notification.Item
	nextError error
}

func (h *recordingHandler) HandleStatusUpdate(_ context.Context, item *notification.Item) error {
	h.items = append(h.items, item)
	return h.nextError
}

type serverTestEnv struct {
	server  *Server
	handler *recordingHandler
}

func setupServerTest(overrides *testOverrides) *serverTestEnv {
	handler := &recordingHandler{}
	return &serverTestEnv{
		server:  NewWebhookServer(withManualTestOverrides(overrides), handler),
		handler: handler,
	}
}

func newWebhookRequest(t *testing.T, item *notification.Item) *http.Request {
	envelope := &notification.Envelope{
		Live: "false",
		NotificationItems: []notification.ItemContainer{
			{NotificationRequestItem: *item},
		},
	}

	marshalled, err := json.Marshal(envelope)
	require.NoError(t, err)

	return httptest.NewRequest(http.MethodPost, "/v1/webhooks/adyen/standard", bytes.NewReader(marshalled))
}

func postWebhook(env *serverTestEnv, req *http.Request) *http.Response {
	w := httptest.NewRecorder()
	env.server.GetHandlers()["/v1/webhooks/adyen/standard"](w, req)
	return w.Result()
}

func TestWebhookServer_HappyPath(t *testing.T) {
	env := setupServerTest(&testOverrides{environment: "TEST"})

	resp := postWebhook(env, newWebhookRequest(t, newTestItem()))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[accepted]", string(body))

	require.Len(t, env.handler.items, 1)
	assert.Equal(t, "ORDER-42", env.handler.items[0].MerchantReference)
}

func TestWebhookServer_ProcessingFailureStillAcknowledged(t *testing.T) {
	reset := testutil.DisableLogging()
	defer reset()

	env := setupServerTest(&testOverrides{environment: "TEST"})
	env.handler.nextError = errors.New("unhandled event code: CAPTURE")

	resp := postWebhook(env, newWebhookRequest(t, newTestItem()))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[accepted]", string(body))
}

func TestWebhookServer_BasicAuth(t *testing.T) {
	env := setupServerTest(&testOverrides{
		environment:     "TEST",
		webhookUsername: "adyen",
		webhookPassword: "secret",
	})

	// Missing header means no processing happens at all
	resp := postWebhook(env, newWebhookRequest(t, newTestItem()))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, body)
	assert.Empty(t, env.handler.items)

	// Wrong credentials
	req := newWebhookRequest(t, newTestItem())
	req.SetBasicAuth("adyen", "wrong")
	resp = postWebhook(env, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, env.handler.items)

	// Correct credentials
	req = newWebhookRequest(t, newTestItem())
	req.SetBasicAuth("adyen", "secret")
	resp = postWebhook(env, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.handler.items, 1)
}

func TestWebhookServer_HmacVerification(t *testing.T) {
	env := setupServerTest(&testOverrides{
		environment: "TEST",
		hmacKey:     testHmacKey,
	})

	// Unsigned notification is dropped
	resp := postWebhook(env, newWebhookRequest(t, newTestItem()))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, env.handler.items)

	// Properly signed notification is processed
	item := newTestItem()
	item.AdditionalData = map[string]string{
		"hmacSignature": signItem(t, item, testHmacKey),
	}
	resp = postWebhook(env, newWebhookRequest(t, item))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.handler.items, 1)

	// Tampered notification is dropped
	item.Amount.Value += 1
	resp = postWebhook(env, newWebhookRequest(t, item))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Len(t, env.handler.items, 1)
}

func TestWebhookServer_LiveWithoutHmacKeyFailsClosed(t *testing.T) {
	env := setupServerTest(&testOverrides{environment: "LIVE"})

	resp := postWebhook(env, newWebhookRequest(t, newTestItem()))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, env.handler.items)
}

func TestWebhookServer_MalformedPayload(t *testing.T) {
	env := setupServerTest(&testOverrides{environment: "TEST"})

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/adyen/standard", bytes.NewReader([]byte("not json")))
	resp := postWebhook(env, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.handler.items)

	req = httptest.NewRequest(http.MethodPost, "/v1/webhooks/adyen/standard", bytes.NewReader([]byte(`{"live": "false", "notificationItems": []}`)))
	resp = postWebhook(env, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.handler.items)
}

func TestWebhookServer_MethodNotAllowed(t *testing.T) {
	env := setupServerTest(&testOverrides{environment: "TEST"})

	req := httptest.NewRequest(http.MethodGet, "/v1/webhooks/adyen/standard", nil)
	resp := postWebhook(env, req)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Empty(t, env.handler.items)
}
