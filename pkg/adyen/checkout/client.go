package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/commerce-payments/adyen-gateway/pkg/metrics"
)

const (
	metricsStructName = "adyen.checkout.client"

	// TestBaseUrl is the provider's sandbox checkout endpoint
	TestBaseUrl = "https://checkout-test.adyen.com/v71"

	sessionsPath = "/sessions"

	apiKeyHeaderName           = "x-api-key"
	contentTypeHeaderName      = "content-type"
	jsonContentTypeHeaderValue = "application/json"
)

// Client starts hosted checkout sessions with the provider
type Client interface {
	// CreateSession starts a new checkout session. Calls are issued exactly
	// once. Whether a failed session creation can be safely retried is
	// undetermined for this provider, so failures surface to the caller
	// instead.
	CreateSession(ctx context.Context, apiKey string, request *SessionRequest) (*Session, error)
}

type client struct {
	baseUrl    string
	httpClient *http.Client
}

func NewClient(baseUrl string) Client {
	return &client{
		baseUrl: baseUrl,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateSession implements Client.CreateSession
func (c *client) CreateSession(ctx context.Context, apiKey string, request *SessionRequest) (*Session, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "CreateSession")
	defer tracer.End()

	marshalled, err := json.Marshal(request)
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+sessionsPath, bytes.NewReader(marshalled))
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set(apiKeyHeaderName, apiKey)
	req.Header.Set(contentTypeHeaderName, jsonContentTypeHeaderValue)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "failed to submit request")
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if httpResp.StatusCode != http.StatusOK && httpResp.StatusCode != http.StatusCreated {
		err = errors.Errorf("received non-success status code %d", httpResp.StatusCode)
		tracer.OnError(err)
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "failed to unmarshal response body")
	}

	return &session, nil
}
