package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/commerce-payments/adyen-gateway/pkg/adyen/notification"
)

var signingStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`:`, `\:`,
)

// VerifyHmacSignature recomputes the signature for a notification item over
// the provider's canonical field set and compares it against the signature
// carried in the item's additional data. The result is false for any
// malformed input, including an undecodable key or a missing signature. A
// payload that cannot be verified must never be treated as authentic.
func VerifyHmacSignature(item *notification.Item, hexEncodedKey string) bool {
	if item == nil {
		return false
	}

	expected, ok := item.HmacSignature()
	if !ok || len(expected) == 0 {
		return false
	}

	key, err := hex.DecodeString(hexEncodedKey)
	if err != nil || len(key) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(getSigningString(item)))
	computed := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(computed), []byte(expected)) == 1
}

// getSigningString builds the canonical colon-separated payload the provider
// signs. Field values have backslashes and colons escaped before joining.
func getSigningString(item *notification.Item) string {
	parts := []string{
		item.PspReference,
		item.OriginalReference,
		item.MerchantAccountCode,
		item.MerchantReference,
		strconv.FormatInt(item.Amount.Value, 10),
		item.Amount.Currency,
		item.EventCode,
		string(item.Success),
	}

	escaped := make([]string, len(parts))
	for i, part := range parts {
		escaped[i] = signingStringEscaper.Replace(part)
	}
	return strings.Join(escaped, ":")
}
