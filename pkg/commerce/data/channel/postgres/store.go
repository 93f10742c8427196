package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres backed channel.Store
func New(db *sql.DB) channel.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements channel.Store.Put
func (s *store) Put(ctx context.Context, record *channel.Record) error {
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

// GetByToken implements channel.Store.GetByToken
func (s *store) GetByToken(ctx context.Context, token string) (*channel.Record, error) {
	model, err := dbGetByToken(ctx, s.db, token)
	if err != nil {
		return nil, err
	}
	return fromModel(model), nil
}
