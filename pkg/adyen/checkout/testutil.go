package checkout

import (
	"context"
	"sync"
)

// FakeClient is an in memory Client for tests
type FakeClient struct {
	mu sync.Mutex

	Requests []*SessionRequest

	NextSession *Session
	NextError   error

	LastApiKey string
}

func NewFakeClient() *FakeClient {
	return &FakeClient{}
}

// CreateSession implements Client.CreateSession
func (c *FakeClient) CreateSession(_ context.Context, apiKey string, request *SessionRequest) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Requests = append(c.Requests, request)
	c.LastApiKey = apiKey

	if c.NextError != nil {
		return nil, c.NextError
	}

	if c.NextSession != nil {
		return c.NextSession, nil
	}

	return &Session{
		Id:          "CS0000000000000000",
		SessionData: "Ab02b4c0...",
		Reference:   request.Reference,
		ReturnUrl:   request.ReturnUrl,
		Amount:      request.Amount,
	}, nil
}
