package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres backed order.Store
func New(db *sql.DB) order.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements order.Store.Put
func (s *store) Put(ctx context.Context, record *order.Record) error {
	model, err := toModel(record)
	if err != nil {
		return err
	}

	err = model.dbPut(ctx, s.db)
	if err != nil {
		return err
	}

	res, err := fromModel(model)
	if err != nil {
		return err
	}
	res.CopyTo(record)

	return nil
}

// GetByCode implements order.Store.GetByCode
func (s *store) GetByCode(ctx context.Context, code string) (*order.Record, error) {
	model, err := dbGetByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	return fromModel(model)
}

// GetActiveBySession implements order.Store.GetActiveBySession
func (s *store) GetActiveBySession(ctx context.Context, session string) (*order.Record, error) {
	model, err := dbGetActiveBySession(ctx, s.db, session)
	if err != nil {
		return nil, err
	}
	return fromModel(model)
}

// SetPaymentMethodCode implements order.Store.SetPaymentMethodCode
func (s *store) SetPaymentMethodCode(ctx context.Context, code, methodCode string) error {
	return dbSetPaymentMethodCode(ctx, s.db, code, methodCode)
}

// TransitionState implements order.Store.TransitionState
func (s *store) TransitionState(ctx context.Context, code string, next order.State) (*order.Record, error) {
	model, err := dbTransitionState(ctx, s.db, code, next)
	if err != nil {
		return nil, err
	}
	return fromModel(model)
}
