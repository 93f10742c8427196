package memory

import (
	"context"
	"sync"
	"time"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel"
)

type store struct {
	mu      sync.Mutex
	records []*channel.Record
	last    uint64
}

// New returns a new in memory channel.Store
func New() channel.Store {
	return &store{}
}

// Put implements channel.Store.Put
func (s *store) Put(_ context.Context, data *channel.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last++
	if item := s.findByToken(data.Token); item != nil {
		return channel.ErrAlreadyExists
	}

	data.Id = s.last
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	copied := data.Clone()
	s.records = append(s.records, &copied)

	return nil
}

// GetByToken implements channel.Store.GetByToken
func (s *store) GetByToken(_ context.Context, token string) (*channel.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByToken(token); item != nil {
		copied := item.Clone()
		return &copied, nil
	}
	return nil, channel.ErrNotFound
}

func (s *store) findByToken(token string) *channel.Record {
	for _, item := range s.records {
		if item.Token == token {
			return item
		}
	}
	return nil
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.last = 0
}
