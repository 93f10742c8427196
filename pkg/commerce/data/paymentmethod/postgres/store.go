package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/paymentmethod"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres backed paymentmethod.Store
func New(db *sql.DB) paymentmethod.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements paymentmethod.Store.Put
func (s *store) Put(ctx context.Context, record *paymentmethod.Record) error {
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

// GetByCode implements paymentmethod.Store.GetByCode
func (s *store) GetByCode(ctx context.Context, code string) (*paymentmethod.Record, error) {
	model, err := dbGetByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}
