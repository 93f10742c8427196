package memory

import (
	"context"
	"sync"
	"time"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/paymentmethod"
)

type store struct {
	mu      sync.Mutex
	records []*paymentmethod.Record
	last    uint64
}

// New returns a new in memory paymentmethod.Store
func New() paymentmethod.Store {
	return &store{}
}

// Put implements paymentmethod.Store.Put
func (s *store) Put(_ context.Context, data *paymentmethod.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last++
	if item := s.findByCode(data.Code); item != nil {
		return paymentmethod.ErrAlreadyExists
	}

	data.Id = s.last
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	copied := data.Clone()
	s.records = append(s.records, &copied)

	return nil
}

// GetByCode implements paymentmethod.Store.GetByCode
func (s *store) GetByCode(_ context.Context, code string) (*paymentmethod.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByCode(code); item != nil {
		copied := item.Clone()
		return &copied, nil
	}
	return nil, paymentmethod.ErrNotFound
}

func (s *store) findByCode(code string) *paymentmethod.Record {
	for _, item := range s.records {
		if item.Code == code {
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
