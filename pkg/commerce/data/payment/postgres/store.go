package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres backed payment.Store
func New(db *sql.DB) payment.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements payment.Store.Put
func (s *store) Put(ctx context.Context, record *payment.Record) error {
	model, err := toModel(record)
	if err != nil {
		return err
	}

	err = model.dbPut(ctx, s.db)
	if err != nil {
		return err
	}

	fromModel(model).CopyTo(record)

	return nil
}

// GetByTransactionId implements payment.Store.GetByTransactionId
func (s *store) GetByTransactionId(ctx context.Context, transactionId string) (*payment.Record, error) {
	model, err := dbGetByTransactionId(ctx, s.db, transactionId)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}

// GetAllByOrderCode implements payment.Store.GetAllByOrderCode
func (s *store) GetAllByOrderCode(ctx context.Context, orderCode string) ([]*payment.Record, error) {
	models, err := dbGetAllByOrderCode(ctx, s.db, orderCode)
	if err != nil {
		return nil, err
	}

	res := make([]*payment.Record, len(models))
	for i, model := range models {
		res[i] = fromModel(model)
	}
	return res, nil
}

// MarkSettled implements payment.Store.MarkSettled
func (s *store) MarkSettled(ctx context.Context, transactionId string) (*payment.Record, error) {
	model, err := dbMarkSettled(ctx, s.db, transactionId)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}
