package memory

import (
	"context"
	"sync"
	"time"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order"
	"github.com/commerce-payments/adyen-gateway/pkg/pointer"
)

type store struct {
	mu      sync.Mutex
	last    uint64
	records []*order.Record
}

// New returns a new in memory order.Store
func New() order.Store {
	return &store{}
}

// Put implements order.Store.Put
func (s *store) Put(_ context.Context, data *order.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last++
	if item := s.findByCode(data.Code); item != nil {
		return order.ErrAlreadyExists
	}

	if data.Id == 0 {
		data.Id = s.last
	}
	data.CreatedAt = time.Now()

	cloned := data.Clone()
	s.records = append(s.records, &cloned)

	return nil
}

// GetByCode implements order.Store.GetByCode
func (s *store) GetByCode(_ context.Context, code string) (*order.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByCode(code)
	if item == nil {
		return nil, order.ErrNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

// GetActiveBySession implements order.Store.GetActiveBySession
func (s *store) GetActiveBySession(_ context.Context, session string) (*order.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *order.Record
	for _, item := range s.records {
		if item.Session != session {
			continue
		}

		if !item.State.IsOpen() {
			continue
		}

		if latest == nil || item.Id > latest.Id {
			latest = item
		}
	}

	if latest == nil {
		return nil, order.ErrNotFound
	}

	cloned := latest.Clone()
	return &cloned, nil
}

// SetPaymentMethodCode implements order.Store.SetPaymentMethodCode
func (s *store) SetPaymentMethodCode(_ context.Context, code, methodCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByCode(code)
	if item == nil {
		return order.ErrNotFound
	}

	if item.PaymentMethodCode != nil && *item.PaymentMethodCode != methodCode {
		return order.ErrAttributionConflict
	}

	item.PaymentMethodCode = pointer.String(methodCode)

	return nil
}

// TransitionState implements order.Store.TransitionState
func (s *store) TransitionState(_ context.Context, code string, next order.State) (*order.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByCode(code)
	if item == nil {
		return nil, order.ErrNotFound
	}

	if !item.State.CanTransitionTo(next) {
		return nil, order.ErrInvalidTransition
	}

	item.State = next

	cloned := item.Clone()
	return &cloned, nil
}

func (s *store) findByCode(code string) *order.Record {
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

	s.last = 0
	s.records = nil
}
