package session

import "fmt"

// ErrorCode classifies intent creation failures so callers can render a
// user-facing message without string matching.
type ErrorCode string

const (
	// ErrorCodePaymentMethodMissing indicates no enabled payment method
	// exists for the requested code
	ErrorCodePaymentMethodMissing ErrorCode = "PAYMENT_METHOD_MISSING"

	// ErrorCodeOrderNotReady indicates the session has no active order, or
	// the order isn't in a payable state
	ErrorCodeOrderNotReady ErrorCode = "ORDER_NOT_READY"

	// ErrorCodeMethodNotConfigured indicates the payment method is missing
	// its provider credential or redirect target
	ErrorCodeMethodNotConfigured ErrorCode = "METHOD_NOT_CONFIGURED"

	// ErrorCodeCustomerIncomplete indicates the order's customer is missing
	// fields the provider requires
	ErrorCodeCustomerIncomplete ErrorCode = "CUSTOMER_INCOMPLETE"

	// ErrorCodeAttributionConflict indicates the order is already attributed
	// to a different payment method
	ErrorCodeAttributionConflict ErrorCode = "ATTRIBUTION_CONFLICT"

	// ErrorCodeProviderFailure indicates the provider call failed or returned
	// an unusable session
	ErrorCodeProviderFailure ErrorCode = "PROVIDER_FAILURE"
)

// Intent is the client-consumable result of a successful intent creation
type Intent struct {
	// SessionData is the opaque session token the client-side drop-in needs
	SessionData string

	// TransactionId is the provider's id for the created session
	TransactionId string
}

// IntentError is a typed, renderable intent creation failure
type IntentError struct {
	Code    ErrorCode
	Message string
}

func NewIntentError(code ErrorCode, message string) *IntentError {
	return &IntentError{
		Code:    code,
		Message: message,
	}
}

func (e *IntentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
