package session

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/commerce-payments/adyen-gateway/pkg/adyen/checkout"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order"
	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/paymentmethod"
	"github.com/commerce-payments/adyen-gateway/pkg/metrics"
)

const (
	metricsStructName = "session.service"

	eventNameIntentCreated = "PaymentIntentCreated"

	orderCodeQueryParam = "orderCode"

	// Provider-imposed maximum length for address fields
	maxAddressFieldLength = 3000
)

// IntentRequest carries everything known about the caller of an intent
// creation. UserId is only present for authenticated shoppers.
type IntentRequest struct {
	Session           string
	UserId            *string
	PaymentMethodCode string
}

type Service struct {
	log      *logrus.Entry
	conf     *conf
	data     data.Provider
	checkout checkout.Client
}

func New(configProvider ConfigProvider, dataProvider data.Provider, checkoutClient checkout.Client) *Service {
	return &Service{
		log:      logrus.StandardLogger().WithField("type", "adyen/session/service"),
		conf:     configProvider(),
		data:     dataProvider,
		checkout: checkoutClient,
	}
}

// CreatePaymentIntent validates that the caller's active order is ready for
// payment and starts a provider checkout session for it. Failures are always
// typed; the caller renders them, nothing is thrown.
//
// The selected payment method is written onto the order before the provider
// call goes out. The provider can deliver the first webhook for a session
// almost immediately, and a notification that arrives before attribution is
// recorded cannot be routed.
func (s *Service) CreatePaymentIntent(ctx context.Context, request *IntentRequest) (*Intent, *IntentError) {
	log := s.log.WithFields(logrus.Fields{
		"method":  "CreatePaymentIntent",
		"session": request.Session,
	})

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "CreatePaymentIntent")
	defer tracer.End()

	methodCode := request.PaymentMethodCode
	if len(methodCode) == 0 {
		methodCode = s.conf.defaultPaymentMethodCode.Get(ctx)
	}
	log = log.WithField("payment_method", methodCode)

	method, err := s.data.GetPaymentMethodByCode(ctx, methodCode)
	if err == paymentmethod.ErrNotFound {
		return nil, NewIntentError(ErrorCodePaymentMethodMissing, "payment method not found")
	} else if err != nil {
		tracer.OnError(err)
		log.WithError(err).Warn("failure getting payment method")
		return nil, NewIntentError(ErrorCodePaymentMethodMissing, "payment method unavailable")
	}
	if !method.Enabled {
		return nil, NewIntentError(ErrorCodePaymentMethodMissing, "payment method is not enabled")
	}

	orderRecord, err := s.data.GetActiveOrderBySession(ctx, request.Session)
	if err == order.ErrNotFound {
		return nil, NewIntentError(ErrorCodeOrderNotReady, "no active order for session")
	} else if err != nil {
		tracer.OnError(err)
		log.WithError(err).Warn("failure getting active order")
		return nil, NewIntentError(ErrorCodeOrderNotReady, "order unavailable")
	}
	log = log.WithField("order", orderRecord.Code)

	if len(orderRecord.Code) == 0 || !orderRecord.State.IsOpen() {
		return nil, NewIntentError(ErrorCodeOrderNotReady, "order is not open for payment")
	}
	if orderRecord.Total <= 0 {
		return nil, NewIntentError(ErrorCodeOrderNotReady, "order total must be positive")
	}

	if !method.IsConfigured() {
		return nil, NewIntentError(ErrorCodeMethodNotConfigured, "payment method is missing provider credentials")
	}

	customer := orderRecord.Customer
	if customer == nil || len(customer.FirstName) == 0 || len(customer.LastName) == 0 || len(customer.Email) == 0 {
		return nil, NewIntentError(ErrorCodeCustomerIncomplete, "customer requires first name, last name and email")
	}

	err = s.data.SetOrderPaymentMethodCode(ctx, orderRecord.Code, method.Code)
	if err == order.ErrAttributionConflict {
		return nil, NewIntentError(ErrorCodeAttributionConflict, "order is attributed to another payment method")
	} else if err != nil {
		tracer.OnError(err)
		log.WithError(err).Warn("failure attributing payment method to order")
		return nil, NewIntentError(ErrorCodeOrderNotReady, "order unavailable")
	}

	sessionRequest := s.buildSessionRequest(orderRecord, method, request.UserId)

	session, err := s.checkout.CreateSession(ctx, *method.ApiKey, sessionRequest)
	if err != nil {
		tracer.OnError(err)
		log.WithError(err).Warn("failure creating provider session")
		return nil, NewIntentError(ErrorCodeProviderFailure, "provider session creation failed")
	}
	if len(session.SessionData) == 0 {
		return nil, NewIntentError(ErrorCodeProviderFailure, "provider session has no session data")
	}

	metrics.RecordEvent(ctx, eventNameIntentCreated, map[string]interface{}{
		"order":          orderRecord.Code,
		"payment_method": method.Code,
	})

	return &Intent{
		SessionData:   session.SessionData,
		TransactionId: session.Id,
	}, nil
}

func (s *Service) buildSessionRequest(orderRecord *order.Record, method *paymentmethod.Record, userId *string) *checkout.SessionRequest {
	returnUrl := *method.RedirectUrl + "?" + orderCodeQueryParam + "=" + url.QueryEscape(orderRecord.Code)

	request := &checkout.SessionRequest{
		MerchantAccount: orderRecord.Channel,
		Amount: checkout.Amount{
			Currency: string(orderRecord.Currency),
			Value:    orderRecord.Total,
		},
		Reference:    orderRecord.Code,
		ReturnUrl:    returnUrl,
		ShopperEmail: orderRecord.Customer.Email,
	}

	for _, line := range orderRecord.Lines {
		request.LineItems = append(request.LineItems, checkout.LineItem{
			Id:                 line.Id,
			AmountIncludingTax: line.UnitPriceWithTax,
			Quantity:           int64(line.Quantity),
		})
	}

	if address := orderRecord.BillingAddress; address != nil {
		if len(address.StreetLine1) > 0 && len(address.City) > 0 && len(address.PostalCode) > 0 && len(address.Country) > 0 {
			request.BillingAddress = &checkout.Address{
				Street:            truncate(address.StreetLine1),
				HouseNumberOrName: truncate(address.StreetLine2),
				City:              truncate(address.City),
				PostalCode:        truncate(address.PostalCode),
				StateOrProvince:   truncate(address.Province),
				Country:           truncate(address.Country),
			}
		}
	}

	// Stored payment methods require a stable shopper identity, which only
	// authenticated shoppers have
	if userId != nil && len(*userId) > 0 {
		request.ShopperReference = *userId
		request.StorePaymentMethod = true
	}

	return request
}

func truncate(value string) string {
	if len(value) > maxAddressFieldLength {
		return value[:maxAddressFieldLength]
	}
	return value
}
