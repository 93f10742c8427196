package memory

import (
	"context"
	"sync"
	"time"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment"
)

type store struct {
	mu      sync.Mutex
	records []*payment.Record
	last    uint64
}

// New returns a new in memory payment.Store
func New() payment.Store {
	return &store{}
}

// Put implements payment.Store.Put
func (s *store) Put(_ context.Context, data *payment.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last++
	if item := s.find(data); item != nil {
		return payment.ErrAlreadyExists
	}

	data.Id = s.last
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	copied := data.Clone()
	s.records = append(s.records, &copied)

	return nil
}

// GetByTransactionId implements payment.Store.GetByTransactionId
func (s *store) GetByTransactionId(_ context.Context, transactionId string) (*payment.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByTransactionId(transactionId); item != nil {
		copied := item.Clone()
		return &copied, nil
	}
	return nil, payment.ErrNotFound
}

// GetAllByOrderCode implements payment.Store.GetAllByOrderCode
func (s *store) GetAllByOrderCode(_ context.Context, orderCode string) ([]*payment.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []*payment.Record
	for _, item := range s.records {
		if item.OrderCode == orderCode {
			copied := item.Clone()
			res = append(res, &copied)
		}
	}

	if len(res) == 0 {
		return nil, payment.ErrNotFound
	}
	return res, nil
}

// MarkSettled implements payment.Store.MarkSettled
func (s *store) MarkSettled(_ context.Context, transactionId string) (*payment.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByTransactionId(transactionId)
	if item == nil {
		return nil, payment.ErrNotFound
	}

	if item.State != payment.StateAuthorized {
		return nil, payment.ErrNotSettleable
	}

	item.State = payment.StateSettled

	copied := item.Clone()
	return &copied, nil
}

func (s *store) find(data *payment.Record) *payment.Record {
	for _, item := range s.records {
		if item.Id == data.Id {
			return item
		}

		if item.OrderCode == data.OrderCode && item.TransactionId == data.TransactionId {
			return item
		}
	}
	return nil
}

func (s *store) findByTransactionId(transactionId string) *payment.Record {
	for _, item := range s.records {
		if item.TransactionId == transactionId {
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
