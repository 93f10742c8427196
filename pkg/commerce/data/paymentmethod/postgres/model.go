package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/paymentmethod"
	pgutil "github.com/commerce-payments/adyen-gateway/pkg/database/postgres"
	"github.com/commerce-payments/adyen-gateway/pkg/pointer"
)

const (
	tableName = "commerce__core_paymentmethod"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Code    string `db:"code"`
	Channel string `db:"channel"`

	Enabled bool `db:"enabled"`

	ApiKey      sql.NullString `db:"api_key"`
	RedirectUrl sql.NullString `db:"redirect_url"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *paymentmethod.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		Code:    obj.Code,
		Channel: obj.Channel,

		Enabled: obj.Enabled,

		ApiKey: sql.NullString{
			Valid:  obj.ApiKey != nil,
			String: *pointer.StringOrDefault(obj.ApiKey, ""),
		},
		RedirectUrl: sql.NullString{
			Valid:  obj.RedirectUrl != nil,
			String: *pointer.StringOrDefault(obj.RedirectUrl, ""),
		},

		CreatedAt: obj.CreatedAt,
	}, nil
}

func fromModel(obj *model) *paymentmethod.Record {
	return &paymentmethod.Record{
		Id: uint64(obj.Id.Int64),

		Code:    obj.Code,
		Channel: obj.Channel,

		Enabled: obj.Enabled,

		ApiKey:      pointer.StringIfValid(obj.ApiKey.Valid, obj.ApiKey.String),
		RedirectUrl: pointer.StringIfValid(obj.RedirectUrl.Valid, obj.RedirectUrl.String),

		CreatedAt: obj.CreatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(code, channel, enabled, api_key, redirect_url, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, code, channel, enabled, api_key, redirect_url, created_at
		`

		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}

		return tx.QueryRowxContext(
			ctx,
			query,
			m.Code,
			m.Channel,
			m.Enabled,
			m.ApiKey,
			m.RedirectUrl,
			m.CreatedAt,
		).StructScan(m)
	})
	return pgutil.CheckUniqueViolation(err, paymentmethod.ErrAlreadyExists)
}

func dbGetByCode(ctx context.Context, db *sqlx.DB, code string) (*model, error) {
	res := &model{}

	query := `SELECT id, code, channel, enabled, api_key, redirect_url, created_at
		FROM ` + tableName + `
		WHERE code = $1
	`

	err := db.GetContext(ctx, res, query, code)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, paymentmethod.ErrNotFound)
	}
	return res, nil
}
