package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/commerce-payments/adyen-gateway/pkg/commerce/data/order"
	"github.com/commerce-payments/adyen-gateway/pkg/currency"
	pgutil "github.com/commerce-payments/adyen-gateway/pkg/database/postgres"
	"github.com/commerce-payments/adyen-gateway/pkg/pointer"
)

const (
	tableName = "commerce__core_order"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Code    string `db:"order_code"`
	Session string `db:"session_id"`
	Channel string `db:"channel"`

	State uint8 `db:"state"`

	Total    int64  `db:"total"`
	Currency string `db:"currency"`

	PaymentMethodCode sql.NullString `db:"payment_method_code"`

	Customer       []byte `db:"customer"`
	BillingAddress []byte `db:"billing_address"`
	Lines          []byte `db:"lines"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *order.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	var customer, billingAddress, lines []byte
	var err error
	if obj.Customer != nil {
		customer, err = json.Marshal(obj.Customer)
		if err != nil {
			return nil, err
		}
	}
	if obj.BillingAddress != nil {
		billingAddress, err = json.Marshal(obj.BillingAddress)
		if err != nil {
			return nil, err
		}
	}
	if len(obj.Lines) > 0 {
		lines, err = json.Marshal(obj.Lines)
		if err != nil {
			return nil, err
		}
	}

	return &model{
		Code:    obj.Code,
		Session: obj.Session,
		Channel: obj.Channel,

		State: uint8(obj.State),

		Total:    obj.Total,
		Currency: string(obj.Currency),

		PaymentMethodCode: sql.NullString{
			Valid:  obj.PaymentMethodCode != nil,
			String: *pointer.StringOrDefault(obj.PaymentMethodCode, ""),
		},

		Customer:       customer,
		BillingAddress: billingAddress,
		Lines:          lines,

		CreatedAt: obj.CreatedAt,
	}, nil
}

func fromModel(obj *model) (*order.Record, error) {
	var customer *order.Customer
	if len(obj.Customer) > 0 {
		customer = &order.Customer{}
		if err := json.Unmarshal(obj.Customer, customer); err != nil {
			return nil, err
		}
	}

	var billingAddress *order.Address
	if len(obj.BillingAddress) > 0 {
		billingAddress = &order.Address{}
		if err := json.Unmarshal(obj.BillingAddress, billingAddress); err != nil {
			return nil, err
		}
	}

	var lines []*order.Line
	if len(obj.Lines) > 0 {
		if err := json.Unmarshal(obj.Lines, &lines); err != nil {
			return nil, err
		}
	}

	return &order.Record{
		Id: uint64(obj.Id.Int64),

		Code:    obj.Code,
		Session: obj.Session,
		Channel: obj.Channel,

		State: order.State(obj.State),

		Total:    obj.Total,
		Currency: currency.Code(obj.Currency),

		PaymentMethodCode: pointer.StringIfValid(obj.PaymentMethodCode.Valid, obj.PaymentMethodCode.String),

		Customer:       customer,
		BillingAddress: billingAddress,
		Lines:          lines,

		CreatedAt: obj.CreatedAt,
	}, nil
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(order_code, session_id, channel, state, total, currency, payment_method_code, customer, billing_address, lines, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, order_code, session_id, channel, state, total, currency, payment_method_code, customer, billing_address, lines, created_at
		`

		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}

		return tx.QueryRowxContext(
			ctx,
			query,
			m.Code,
			m.Session,
			m.Channel,
			m.State,
			m.Total,
			m.Currency,
			m.PaymentMethodCode,
			m.Customer,
			m.BillingAddress,
			m.Lines,
			m.CreatedAt,
		).StructScan(m)
	})
	return pgutil.CheckUniqueViolation(err, order.ErrAlreadyExists)
}

func dbGetByCode(ctx context.Context, db *sqlx.DB, code string) (*model, error) {
	res := &model{}

	query := `SELECT id, order_code, session_id, channel, state, total, currency, payment_method_code, customer, billing_address, lines, created_at
		FROM ` + tableName + `
		WHERE order_code = $1
	`

	err := db.GetContext(ctx, res, query, code)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, order.ErrNotFound)
	}
	return res, nil
}

func dbGetActiveBySession(ctx context.Context, db *sqlx.DB, session string) (*model, error) {
	res := &model{}

	query := `SELECT id, order_code, session_id, channel, state, total, currency, payment_method_code, customer, billing_address, lines, created_at
		FROM ` + tableName + `
		WHERE session_id = $1 AND state IN ($2, $3)
		ORDER BY id DESC
		LIMIT 1
	`

	err := db.GetContext(ctx, res, query, session, uint8(order.StateAddingItems), uint8(order.StateArrangingPayment))
	if err != nil {
		return nil, pgutil.CheckNoRows(err, order.ErrNotFound)
	}
	return res, nil
}

func dbSetPaymentMethodCode(ctx context.Context, db *sqlx.DB, code, methodCode string) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `UPDATE ` + tableName + `
			SET payment_method_code = $2
			WHERE order_code = $1 AND (payment_method_code IS NULL OR payment_method_code = $2)
			RETURNING id
		`

		var id int64
		err := tx.QueryRowxContext(ctx, query, code, methodCode).Scan(&id)
		if err == nil {
			return nil
		}
		if !pgutil.IsNoRows(err) {
			return err
		}

		// Disambiguate a missing order from a conflicting attribution
		var existing string
		err = tx.QueryRowxContext(ctx, `SELECT order_code FROM `+tableName+` WHERE order_code = $1`, code).Scan(&existing)
		if pgutil.IsNoRows(err) {
			return order.ErrNotFound
		} else if err != nil {
			return err
		}
		return order.ErrAttributionConflict
	})
}

func dbTransitionState(ctx context.Context, db *sqlx.DB, code string, next order.State) (*model, error) {
	res := &model{}

	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		var current uint8
		err := tx.QueryRowxContext(ctx, `SELECT state FROM `+tableName+` WHERE order_code = $1 FOR UPDATE`, code).Scan(&current)
		if pgutil.IsNoRows(err) {
			return order.ErrNotFound
		} else if err != nil {
			return err
		}

		if !order.State(current).CanTransitionTo(next) {
			return order.ErrInvalidTransition
		}

		query := `UPDATE ` + tableName + `
			SET state = $2
			WHERE order_code = $1
			RETURNING id, order_code, session_id, channel, state, total, currency, payment_method_code, customer, billing_address, lines, created_at
		`
		return tx.QueryRowxContext(ctx, query, code, uint8(next)).StructScan(res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
