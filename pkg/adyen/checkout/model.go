package checkout

type Amount struct {
	Currency string `json:"currency"`
	Value    int64  `json:"value"`
}

type LineItem struct {
	Id                 string `json:"id,omitempty"`
	Description        string `json:"description,omitempty"`
	AmountIncludingTax int64  `json:"amountIncludingTax"`
	Quantity           int64  `json:"quantity"`
}

type Address struct {
	Street            string `json:"street"`
	HouseNumberOrName string `json:"houseNumberOrName,omitempty"`
	City              string `json:"city"`
	PostalCode        string `json:"postalCode"`
	StateOrProvince   string `json:"stateOrProvince,omitempty"`
	Country           string `json:"country"`
}

// SessionRequest is the payload for starting a hosted checkout session
type SessionRequest struct {
	MerchantAccount    string     `json:"merchantAccount"`
	Amount             Amount     `json:"amount"`
	Reference          string     `json:"reference"`
	ReturnUrl          string     `json:"returnUrl"`
	ShopperEmail       string     `json:"shopperEmail,omitempty"`
	ShopperReference   string     `json:"shopperReference,omitempty"`
	StorePaymentMethod bool       `json:"storePaymentMethod,omitempty"`
	LineItems          []LineItem `json:"lineItems,omitempty"`
	BillingAddress     *Address   `json:"billingAddress,omitempty"`
}

// Session is the provider's view of a created checkout session. SessionData
// is the opaque token a client-side drop-in consumes.
type Session struct {
	Id          string `json:"id"`
	SessionData string `json:"sessionData"`
	Reference   string `json:"reference"`
	ReturnUrl   string `json:"returnUrl"`
	Amount      Amount `json:"amount"`
	ExpiresAt   string `json:"expiresAt,omitempty"`
}
