package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReader_HappyPath(t *testing.T) {
	payload := `{
		"live": "false",
		"notificationItems": [
			{
				"NotificationRequestItem": {
					"additionalData": {
						"hmacSignature": "sig-value"
					},
					"amount": {
						"currency": "USD",
						"value": 12345
					},
					"eventCode": "AUTHORISATION",
					"merchantAccountCode": "TestMerchant",
					"merchantReference": "ORDER-42",
					"pspReference": "8835544088660594",
					"success": "true"
				}
			}
		]
	}`

	envelope, err := FromReader(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "false", envelope.Live)

	item, err := envelope.First()
	require.NoError(t, err)
	assert.Equal(t, "AUTHORISATION", item.EventCode)
	assert.Equal(t, "TestMerchant", item.MerchantAccountCode)
	assert.Equal(t, "ORDER-42", item.MerchantReference)
	assert.Equal(t, "8835544088660594", item.PspReference)
	assert.Equal(t, "USD", item.Amount.Currency)
	assert.EqualValues(t, 12345, item.Amount.Value)
	assert.True(t, item.Success.IsTrue())

	signature, ok := item.HmacSignature()
	require.True(t, ok)
	assert.Equal(t, "sig-value", signature)
}

func TestFromReader_MalformedPayload(t *testing.T) {
	_, err := FromReader(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestFirst_EmptyEnvelope(t *testing.T) {
	envelope, err := FromReader(strings.NewReader(`{"live": "false", "notificationItems": []}`))
	require.NoError(t, err)

	_, err = envelope.First()
	assert.Equal(t, ErrNoItems, err)
}

func TestHmacSignature_Missing(t *testing.T) {
	item := &Item{}
	_, ok := item.HmacSignature()
	assert.False(t, ok)

	item.AdditionalData = map[string]string{"other": "value"}
	_, ok = item.HmacSignature()
	assert.False(t, ok)
}

func TestParseEventCode(t *testing.T) {
	for _, value := range []string{
		"AUTHORISATION",
		"CAPTURE",
		"REFUND",
		"CANCELLATION",
		"CHARGEBACK",
	} {
		code, known := ParseEventCode(value)
		assert.True(t, known)
		assert.Equal(t, EventCode(value), code)
	}

	_, known := ParseEventCode("SOMETHING_NEW")
	assert.False(t, known)

	// Event codes are case sensitive on the wire
	_, known = ParseEventCode("authorisation")
	assert.False(t, known)
}

func TestSuccess(t *testing.T) {
	assert.True(t, Success("true").IsTrue())
	assert.False(t, Success("false").IsTrue())
	assert.False(t, Success("").IsTrue())
	assert.False(t, Success("TRUE").IsTrue())
}
