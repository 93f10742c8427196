package reconcile

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/commerce-payments/adyen-gateway/pkg/adyen/notification"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment"
	"github.com/commerce-payments/adyen-gateway/pkg/currency"
	"github.com/commerce-payments/adyen-gateway/pkg/metrics"
)

const (
	metricsStructName = "reconcile.service"

	eventNameStatusUpdateHandled = "StatusUpdateHandled"
	eventNameStatusUpdateDropped = "StatusUpdateDropped"
)

var (
	// ErrMissingAttribution indicates an order was reached by a provider
	// notification without ever having a payment method attributed to it.
	// The intent creation step was skipped or its attribution write failed.
	ErrMissingAttribution = errors.New("order has no payment method attribution")

	// ErrPaymentNotFound indicates a settlement was requested for a
	// transaction that was never attached to the order. This is an ordering
	// violation on the provider side.
	ErrPaymentNotFound = errors.New("no payment found for transaction")

	// ErrUnhandledEvent indicates a known event kind this service doesn't
	// process. Surfaced rather than swallowed so integration gaps are visible.
	ErrUnhandledEvent = errors.New("unhandled event code")

	// ErrUnknownEvent indicates an event kind outside the provider's known
	// set, which means the provider protocol has changed underneath us.
	ErrUnknownEvent = errors.New("unknown event code")
)

type Service struct {
	log  *logrus.Entry
	data data.Provider
}

func New(data data.Provider) *Service {
	return &Service{
		log:  logrus.StandardLogger().WithField("type", "adyen/reconcile/service"),
		data: data,
	}
}

// HandleStatusUpdate routes a verified notification item onto the order it
// references and drives the corresponding state change. A nil return means
// the event was either fully applied or intentionally dropped. Any error is
// fatal for the current event only; the order is left as is for operator
// investigation.
func (s *Service) HandleStatusUpdate(ctx context.Context, item *notification.Item) error {
	log := s.log.WithFields(logrus.Fields{
		"method":             "HandleStatusUpdate",
		"event_code":         item.EventCode,
		"psp_reference":      item.PspReference,
		"merchant_reference": item.MerchantReference,
	})

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "HandleStatusUpdate")
	defer tracer.End()

	eventCode, known := notification.ParseEventCode(item.EventCode)
	if !known {
		tracer.OnError(ErrUnknownEvent)
		return errors.Wrap(ErrUnknownEvent, item.EventCode)
	}

	channelRecord, err := s.data.GetChannelByToken(ctx, item.MerchantAccountCode)
	if err == channel.ErrNotFound {
		// A reference into another system isn't retried by the provider, so
		// there's nothing to do but make the drop observable.
		log.Info("dropping notification for unknown channel")
		s.recordDropEvent(ctx, item, "unknown_channel")
		return nil
	} else if err != nil {
		tracer.OnError(err)
		return errors.Wrap(err, "error getting channel")
	}
	log = log.WithField("channel", channelRecord.Name)

	orderRecord, err := s.data.GetOrderByCode(ctx, item.MerchantReference)
	if err == order.ErrNotFound {
		log.Info("dropping notification for unmatched order")
		s.recordDropEvent(ctx, item, "unmatched_order")
		return nil
	} else if err != nil {
		tracer.OnError(err)
		return errors.Wrap(err, "error getting order")
	}

	switch eventCode {
	case notification.EventCodeAuthorisation:
		err = s.addPayment(ctx, log, orderRecord, item)
	default:
		err = errors.Wrap(ErrUnhandledEvent, item.EventCode)
	}

	if err != nil {
		tracer.OnError(err)
		return err
	}

	metrics.RecordEvent(ctx, eventNameStatusUpdateHandled, map[string]interface{}{
		"event_code": item.EventCode,
		"order":      orderRecord.Code,
		"channel":    channelRecord.Name,
	})
	return nil
}

// addPayment attaches the notification's outcome to the order as a payment
// record and advances the order state machine accordingly.
func (s *Service) addPayment(ctx context.Context, log *logrus.Entry, orderRecord *order.Record, item *notification.Item) error {
	if orderRecord.PaymentMethodCode == nil {
		return errors.Wrap(ErrMissingAttribution, orderRecord.Code)
	}

	if !orderRecord.State.IsOpen() {
		// Late or duplicate delivery after the order already left its open
		// states. Not an error.
		log.WithField("state", orderRecord.State.String()).Info("skipping notification for non-open order")
		s.recordDropEvent(ctx, item, "order_not_open")
		return nil
	}

	if orderRecord.State == order.StateAddingItems {
		updated, err := s.data.TransitionOrderState(ctx, orderRecord.Code, order.StateArrangingPayment)
		if err != nil {
			return errors.Wrap(err, "error transitioning order to arranging payment")
		}
		orderRecord = updated
	}

	metadata, err := json.Marshal(item)
	if err != nil {
		return errors.Wrap(err, "error marshalling notification")
	}

	paymentState := payment.StateDeclined
	if item.Success.IsTrue() {
		paymentState = payment.StateAuthorized
	}

	err = s.data.CreatePayment(ctx, &payment.Record{
		OrderCode:     orderRecord.Code,
		Method:        *orderRecord.PaymentMethodCode,
		TransactionId: item.PspReference,
		Amount:        item.Amount.Value,
		Currency:      currency.Code(item.Amount.Currency),
		State:         paymentState,
		Metadata:      metadata,
	})
	if err == payment.ErrAlreadyExists {
		// Redelivery of an already-applied notification
		log.Info("skipping duplicate payment attachment")
		s.recordDropEvent(ctx, item, "duplicate_payment")
		return nil
	} else if err != nil {
		return errors.Wrap(err, "error creating payment")
	}

	if paymentState != payment.StateAuthorized {
		log.WithField("reason", item.Reason).Info("payment declined")
		return nil
	}

	updated, err := s.data.TransitionOrderState(ctx, orderRecord.Code, order.StatePaymentAuthorized)
	if err != nil {
		return errors.Wrap(err, "error transitioning order to payment authorized")
	}

	if updated.State == order.StatePaymentAuthorized {
		return s.settleExistingPayment(ctx, log, updated, item.PspReference)
	}
	return nil
}

// settleExistingPayment finalizes collection of funds for a payment that was
// previously attached to the order.
func (s *Service) settleExistingPayment(ctx context.Context, log *logrus.Entry, orderRecord *order.Record, transactionId string) error {
	_, err := s.data.GetPaymentByTransactionId(ctx, transactionId)
	if err == payment.ErrNotFound {
		return errors.Wrap(ErrPaymentNotFound, transactionId)
	} else if err != nil {
		return errors.Wrap(err, "error getting payment")
	}

	if _, err := s.data.MarkPaymentSettled(ctx, transactionId); err != nil {
		return errors.Wrap(err, "error settling payment")
	}

	if _, err := s.data.TransitionOrderState(ctx, orderRecord.Code, order.StatePaymentSettled); err != nil {
		return errors.Wrap(err, "error transitioning order to payment settled")
	}

	log.Info("payment settled")
	return nil
}

func (s *Service) recordDropEvent(ctx context.Context, item *notification.Item, reason string) {
	metrics.RecordEvent(ctx, eventNameStatusUpdateDropped, map[string]interface{}{
		"event_code":         item.EventCode,
		"merchant_reference": item.MerchantReference,
		"reason":             reason,
	})
}
