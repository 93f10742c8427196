package session

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/commerce-payments/adyen-gateway/pkg/pointer"
)

const (
	v1PathPrefix              = "/v1"
	v1CreatePaymentIntentPath = v1PathPrefix + "/createPaymentIntent"

	contentTypeHeaderName      = "content-type"
	jsonContentTypeHeaderValue = "application/json"
)

type Server struct {
	log     *logrus.Entry
	service *Service
}

func NewPaymentIntentServer(service *Service) *Server {
	return &Server{
		log:     logrus.StandardLogger().WithField("type", "adyen/session/server"),
		service: service,
	}
}

type createPaymentIntentRequestBody struct {
	Session           string `json:"session"`
	UserId            string `json:"userId,omitempty"`
	PaymentMethodCode string `json:"paymentMethodCode,omitempty"`
}

func (s *Server) createPaymentIntentHandler(path string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		log := s.log.WithField("path", path)

		statusCode, body := func() (int, GenericApiResponseBody) {
			ctx := r.Context()

			if r.Method != http.MethodPost {
				return http.StatusBadRequest, NewGenericApiFailureResponseBody(errors.New("http post expected"))
			}

			var requestBody createPaymentIntentRequestBody
			if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
				return http.StatusBadRequest, NewGenericApiFailureResponseBody(errors.New("invalid request body"))
			}
			if len(requestBody.Session) == 0 {
				return http.StatusBadRequest, NewGenericApiFailureResponseBody(errors.New("session is required"))
			}

			var userId *string
			if len(requestBody.UserId) > 0 {
				userId = pointer.String(requestBody.UserId)
			}

			intent, intentError := s.service.CreatePaymentIntent(ctx, &IntentRequest{
				Session:           requestBody.Session,
				UserId:            userId,
				PaymentMethodCode: requestBody.PaymentMethodCode,
			})
			if intentError != nil {
				log.WithField("code", intentError.Code).Info("payment intent creation failed")
				return http.StatusOK, NewIntentErrorResponseBody(intentError)
			}

			respBody := NewGenericApiSuccessResponseBody()
			respBody["sessionData"] = intent.SessionData
			respBody["transactionId"] = intent.TransactionId
			return http.StatusOK, respBody
		}()

		w.Header().Set(contentTypeHeaderName, jsonContentTypeHeaderValue)
		w.WriteHeader(statusCode)
		if _, err := w.Write([]byte(body.ToString())); err != nil {
			log.WithError(err).Info("failed to write body")
		}
	}
}

func (s *Server) GetHandlers() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		v1CreatePaymentIntentPath: s.createPaymentIntentHandler(v1CreatePaymentIntentPath),
	}
}
