package webhook

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/commerce-payments/adyen-gateway/pkg/adyen/notification"
	"github.com/commerce-payments/adyen-gateway/pkg/metrics"
)

const (
	v1PathPrefix           = "/v1"
	v1StandardWebhookPath  = v1PathPrefix + "/webhooks/adyen/standard"
	contentTypeHeaderName  = "content-type"
	textContentTypeHeader  = "text/plain"
	acknowledgementLiteral = "[accepted]"

	metricsStructName = "webhook.server"
)

// StatusUpdateHandler applies a verified notification item to commerce state
type StatusUpdateHandler interface {
	HandleStatusUpdate(ctx context.Context, item *notification.Item) error
}

type Server struct {
	log     *logrus.Entry
	conf    *conf
	handler StatusUpdateHandler
}

func NewWebhookServer(configProvider ConfigProvider, handler StatusUpdateHandler) *Server {
	return &Server{
		log:     logrus.StandardLogger().WithField("type", "adyen/webhook/server"),
		conf:    configProvider(),
		handler: handler,
	}
}

// standardWebhookHandler accepts a standard notification envelope. The
// provider retries deliveries that aren't acknowledged, so every
// authenticated request is answered with the fixed acknowledgement literal,
// including ones whose processing failed. Unauthenticated requests get no
// acknowledgement at all.
func (s *Server) standardWebhookHandler(path string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		// Deliveries have no provider-side id, so generate one to correlate
		// log lines for a single request
		log := s.log.WithFields(logrus.Fields{
			"path":        path,
			"delivery_id": uuid.New().String(),
		})

		statusCode, body := func() (int, string) {
			ctx := r.Context()

			tracer := metrics.TraceMethodCall(ctx, metricsStructName, "standardWebhookHandler")
			defer tracer.End()

			if r.Method != http.MethodPost {
				return http.StatusMethodNotAllowed, ""
			}

			if !s.authenticate(r) {
				log.Info("dropping webhook with invalid credentials")
				metrics.RecordCount(ctx, "webhook_auth_failure", 1)
				return http.StatusUnauthorized, ""
			}

			envelope, err := notification.FromReader(r.Body)
			if err != nil {
				log.WithError(err).Info("failed to decode webhook payload")
				return http.StatusBadRequest, ""
			}

			item, err := envelope.First()
			if err != nil {
				log.WithError(err).Info("webhook payload has no notification items")
				return http.StatusBadRequest, ""
			}

			if !s.verifySignature(item) {
				log.Info("dropping webhook with invalid signature")
				metrics.RecordCount(ctx, "webhook_signature_failure", 1)
				return http.StatusUnauthorized, ""
			}

			if err := s.handler.HandleStatusUpdate(ctx, item); err != nil {
				// Business logic failures must not trigger provider
				// redelivery, so they're still acknowledged.
				log.WithError(err).Warn("failure processing webhook notification")
				metrics.RecordCount(ctx, "webhook_processing_failure", 1)
			}

			return http.StatusOK, acknowledgementLiteral
		}()

		w.Header().Set(contentTypeHeaderName, textContentTypeHeader)
		w.WriteHeader(statusCode)
		if len(body) > 0 {
			if _, err := w.Write([]byte(body)); err != nil {
				log.WithError(err).Info("failed to write body")
			}
		}
	}
}

// authenticate applies the configured basic auth pair, if any
func (s *Server) authenticate(r *http.Request) bool {
	username := s.conf.webhookUsername.Get(r.Context())
	password := s.conf.webhookPassword.Get(r.Context())
	if len(username) == 0 && len(password) == 0 {
		return true
	}
	return AuthenticateBasic(r, username, password)
}

// verifySignature applies the configured HMAC key. Running live without a
// key configured fails closed.
func (s *Server) verifySignature(item *notification.Item) bool {
	ctx := context.Background()

	hmacKey := s.conf.hmacKey.Get(ctx)
	if len(hmacKey) == 0 {
		return s.conf.environment.Get(ctx) != EnvironmentLive
	}
	return VerifyHmacSignature(item, hmacKey)
}

func (s *Server) GetHandlers() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		v1StandardWebhookPath: s.standardWebhookHandler(v1StandardWebhookPath),
	}
}
