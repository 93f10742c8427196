package channel

import (
	"time"

	"github.com/pkg/errors"

	"github.com/commerce-payments/adyen-gateway/pkg/currency"
)

type Record struct {
	Id uint64

	Token string
	Name  string

	DefaultCurrency currency.Code

	CreatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Token) == 0 {
		return errors.New("channel token is required")
	}

	if len(r.Name) == 0 {
		return errors.New("channel name is required")
	}

	if len(r.DefaultCurrency) == 0 {
		return errors.New("default currency is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		Token: r.Token,
		Name:  r.Name,

		DefaultCurrency: r.DefaultCurrency,

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Token = r.Token
	dst.Name = r.Name

	dst.DefaultCurrency = r.DefaultCurrency

	dst.CreatedAt = r.CreatedAt
}
