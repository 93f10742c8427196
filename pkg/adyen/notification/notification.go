package notification

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

const hmacSignatureKey = "hmacSignature"

var (
	ErrNoItems = errors.New("notification envelope has no items")
)

// Envelope is the wire format of a standard webhook delivery. A single
// delivery may batch multiple items, but processing only consumes the first.
type Envelope struct {
	Live              string          `json:"live"`
	NotificationItems []ItemContainer `json:"notificationItems"`
}

type ItemContainer struct {
	NotificationRequestItem Item `json:"NotificationRequestItem"`
}

type Item struct {
	AdditionalData      map[string]string `json:"additionalData,omitempty"`
	Amount              Amount            `json:"amount"`
	EventCode           string            `json:"eventCode"`
	EventDate           string            `json:"eventDate,omitempty"`
	MerchantAccountCode string            `json:"merchantAccountCode"`
	MerchantReference   string            `json:"merchantReference"`
	OriginalReference   string            `json:"originalReference,omitempty"`
	PspReference        string            `json:"pspReference"`
	Reason              string            `json:"reason,omitempty"`
	Success             Success           `json:"success"`
	Operations          []string          `json:"operations,omitempty"`
}

type Amount struct {
	Currency string `json:"currency"`
	Value    int64  `json:"value"`
}

// Success is the provider's string-encoded boolean outcome flag
type Success string

func (s Success) IsTrue() bool {
	return s == "true"
}

// FromReader decodes an envelope from a request body
func FromReader(r io.Reader) (*Envelope, error) {
	var envelope Envelope
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, errors.Wrap(err, "error decoding notification envelope")
	}
	return &envelope, nil
}

// First returns the first notification item in the envelope
func (e *Envelope) First() (*Item, error) {
	if len(e.NotificationItems) == 0 {
		return nil, ErrNoItems
	}
	return &e.NotificationItems[0].NotificationRequestItem, nil
}

// HmacSignature returns the signature attached by the provider, if any
func (i *Item) HmacSignature() (string, bool) {
	if i.AdditionalData == nil {
		return "", false
	}
	value, ok := i.AdditionalData[hmacSignatureKey]
	return value, ok
}
