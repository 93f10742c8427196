package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/payment"
	"github.com/commerce-payments/adyen-gateway/pkg/currency"
	pgutil "github.com/commerce-payments/adyen-gateway/pkg/database/postgres"
)

const (
	tableName = "commerce__core_payment"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	OrderCode     string `db:"order_code"`
	Method        string `db:"method"`
	TransactionId string `db:"transaction_id"`

	Amount   int64  `db:"amount"`
	Currency string `db:"currency"`

	State uint8 `db:"state"`

	Metadata []byte `db:"metadata"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *payment.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		OrderCode:     obj.OrderCode,
		Method:        obj.Method,
		TransactionId: obj.TransactionId,

		Amount:   obj.Amount,
		Currency: string(obj.Currency),

		State: uint8(obj.State),

		Metadata: obj.Metadata,

		CreatedAt: obj.CreatedAt,
	}, nil
}

func fromModel(obj *model) *payment.Record {
	return &payment.Record{
		Id: uint64(obj.Id.Int64),

		OrderCode:     obj.OrderCode,
		Method:        obj.Method,
		TransactionId: obj.TransactionId,

		Amount:   obj.Amount,
		Currency: currency.Code(obj.Currency),

		State: payment.State(obj.State),

		Metadata: obj.Metadata,

		CreatedAt: obj.CreatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(order_code, method, transaction_id, amount, currency, state, metadata, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, order_code, method, transaction_id, amount, currency, state, metadata, created_at
		`

		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}

		return tx.QueryRowxContext(
			ctx,
			query,
			m.OrderCode,
			m.Method,
			m.TransactionId,
			m.Amount,
			m.Currency,
			m.State,
			m.Metadata,
			m.CreatedAt,
		).StructScan(m)
	})
	return pgutil.CheckUniqueViolation(err, payment.ErrAlreadyExists)
}

func dbGetByTransactionId(ctx context.Context, db *sqlx.DB, transactionId string) (*model, error) {
	res := &model{}

	query := `SELECT id, order_code, method, transaction_id, amount, currency, state, metadata, created_at
		FROM ` + tableName + `
		WHERE transaction_id = $1
	`

	err := db.GetContext(ctx, res, query, transactionId)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, payment.ErrNotFound)
	}
	return res, nil
}

func dbGetAllByOrderCode(ctx context.Context, db *sqlx.DB, orderCode string) ([]*model, error) {
	var res []*model

	query := `SELECT id, order_code, method, transaction_id, amount, currency, state, metadata, created_at
		FROM ` + tableName + `
		WHERE order_code = $1
		ORDER BY id ASC
	`

	err := db.SelectContext(ctx, &res, query, orderCode)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, payment.ErrNotFound)
	}
	if len(res) == 0 {
		return nil, payment.ErrNotFound
	}
	return res, nil
}

func dbMarkSettled(ctx context.Context, db *sqlx.DB, transactionId string) (*model, error) {
	res := &model{}

	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		var current uint8
		err := tx.QueryRowxContext(ctx, `SELECT state FROM `+tableName+` WHERE transaction_id = $1 FOR UPDATE`, transactionId).Scan(&current)
		if pgutil.IsNoRows(err) {
			return payment.ErrNotFound
		} else if err != nil {
			return err
		}

		if payment.State(current) != payment.StateAuthorized {
			return payment.ErrNotSettleable
		}

		query := `UPDATE ` + tableName + `
			SET state = $2
			WHERE transaction_id = $1
			RETURNING id, order_code, method, transaction_id, amount, currency, state, metadata, created_at
		`
		return tx.QueryRowxContext(ctx, query, transactionId, uint8(payment.StateSettled)).StructScan(res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
