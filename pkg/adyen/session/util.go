package session

import (
	"encoding/json"
)

const (
	successJsonKey = "success"
	errorJsonKey   = "error"
	codeJsonKey    = "code"
)

type GenericApiResponseBody map[string]any

func NewGenericApiSuccessResponseBody() GenericApiResponseBody {
	return map[string]any{
		successJsonKey: true,
	}
}

func NewGenericApiFailureResponseBody(err error) GenericApiResponseBody {
	return map[string]any{
		successJsonKey: false,
		errorJsonKey:   err.Error(),
	}
}

func NewIntentErrorResponseBody(intentError *IntentError) GenericApiResponseBody {
	return map[string]any{
		successJsonKey: false,
		codeJsonKey:    string(intentError.Code),
		errorJsonKey:   intentError.Message,
	}
}

func (b *GenericApiResponseBody) ToString() string {
	marshalled, _ := json.Marshal(b)
	return string(marshalled)
}
