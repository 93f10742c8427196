package paymentmethod

import (
	"time"

	"github.com/pkg/errors"

	"github.com/commerce-payments/adyen-gateway/pkg/pointer"
)

type Record struct {
	Id uint64

	Code    string
	Channel string

	Enabled bool

	// Provider credentials configured by an operator. Either value may be
	// absent when the method is only partially configured.
	ApiKey      *string
	RedirectUrl *string

	CreatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Code) == 0 {
		return errors.New("payment method code is required")
	}

	if len(r.Channel) == 0 {
		return errors.New("channel is required")
	}

	return nil
}

func (r *Record) Clone() Record {
	return Record{
		Id: r.Id,

		Code:    r.Code,
		Channel: r.Channel,

		Enabled: r.Enabled,

		ApiKey:      pointer.StringCopy(r.ApiKey),
		RedirectUrl: pointer.StringCopy(r.RedirectUrl),

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Code = r.Code
	dst.Channel = r.Channel

	dst.Enabled = r.Enabled

	dst.ApiKey = pointer.StringCopy(r.ApiKey)
	dst.RedirectUrl = pointer.StringCopy(r.RedirectUrl)

	dst.CreatedAt = r.CreatedAt
}

// IsConfigured indicates whether the method carries everything needed to
// start a provider session.
func (r *Record) IsConfigured() bool {
	return r.ApiKey != nil && len(*r.ApiKey) > 0 && r.RedirectUrl != nil && len(*r.RedirectUrl) > 0
}
