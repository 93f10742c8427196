package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/channel"
	"github.com/commerce-payments/adyen-gateway/pkg/currency"
	pgutil "github.com/commerce-payments/adyen-gateway/pkg/database/postgres"
)

const (
	tableName = "commerce__core_channel"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Token string `db:"token"`
	Name  string `db:"name"`

	DefaultCurrency string `db:"default_currency"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *channel.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		Token: obj.Token,
		Name:  obj.Name,

		DefaultCurrency: string(obj.DefaultCurrency),

		CreatedAt: obj.CreatedAt,
	}, nil
}

func fromModel(obj *model) *channel.Record {
	return &channel.Record{
		Id: uint64(obj.Id.Int64),

		Token: obj.Token,
		Name:  obj.Name,

		DefaultCurrency: currency.Code(obj.DefaultCurrency),

		CreatedAt: obj.CreatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(token, name, default_currency, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, token, name, default_currency, created_at
		`

		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}

		return tx.QueryRowxContext(
			ctx,
			query,
			m.Token,
			m.Name,
			m.DefaultCurrency,
			m.CreatedAt,
		).StructScan(m)
	})
	return pgutil.CheckUniqueViolation(err, channel.ErrAlreadyExists)
}

func dbGetByToken(ctx context.Context, db *sqlx.DB, token string) (*model, error) {
	res := &model{}

	query := `SELECT id, token, name, default_currency, created_at
		FROM ` + tableName + `
		WHERE token = $1
	`

	err := db.GetContext(ctx, res, query, token)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, channel.ErrNotFound)
	}
	return res, nil
}
