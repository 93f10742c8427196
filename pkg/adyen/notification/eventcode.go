package notification

// EventCode identifies the kind of lifecycle event a notification reports.
// The set is closed on the provider side, so an unrecognized value indicates
// a protocol change that must surface in monitoring.
type EventCode string

const (
	EventCodeAuthorisation            EventCode = "AUTHORISATION"
	EventCodeCapture                  EventCode = "CAPTURE"
	EventCodeCaptureFailed            EventCode = "CAPTURE_FAILED"
	EventCodeCancellation             EventCode = "CANCELLATION"
	EventCodeCancelOrRefund           EventCode = "CANCEL_OR_REFUND"
	EventCodeRefund                   EventCode = "REFUND"
	EventCodeRefundFailed             EventCode = "REFUND_FAILED"
	EventCodeRefundedReversed         EventCode = "REFUNDED_REVERSED"
	EventCodeChargeback               EventCode = "CHARGEBACK"
	EventCodeChargebackReversed       EventCode = "CHARGEBACK_REVERSED"
	EventCodeNotificationOfChargeback EventCode = "NOTIFICATION_OF_CHARGEBACK"
	EventCodeSecondChargeback         EventCode = "SECOND_CHARGEBACK"
	EventCodeRequestForInformation    EventCode = "REQUEST_FOR_INFORMATION"
	EventCodeManualReviewAccept       EventCode = "MANUAL_REVIEW_ACCEPT"
	EventCodeManualReviewReject       EventCode = "MANUAL_REVIEW_REJECT"
	EventCodeOrderOpened              EventCode = "ORDER_OPENED"
	EventCodeOrderClosed              EventCode = "ORDER_CLOSED"
	EventCodeReportAvailable          EventCode = "REPORT_AVAILABLE"
)

var knownEventCodes = map[EventCode]struct{}{
	EventCodeAuthorisation:            {},
	EventCodeCapture:                  {},
	EventCodeCaptureFailed:            {},
	EventCodeCancellation:             {},
	EventCodeCancelOrRefund:           {},
	EventCodeRefund:                   {},
	EventCodeRefundFailed:             {},
	EventCodeRefundedReversed:         {},
	EventCodeChargeback:               {},
	EventCodeChargebackReversed:       {},
	EventCodeNotificationOfChargeback: {},
	EventCodeSecondChargeback:         {},
	EventCodeRequestForInformation:    {},
	EventCodeManualReviewAccept:       {},
	EventCodeManualReviewReject:       {},
	EventCodeOrderOpened:              {},
	EventCodeOrderClosed:              {},
	EventCodeReportAvailable:          {},
}

// ParseEventCode maps a raw wire value onto the closed event code set. The
// second return value indicates whether the value is a known code.
func ParseEventCode(value string) (EventCode, bool) {
	code := EventCode(value)
	_, ok := knownEventCodes[code]
	return code, ok
}
