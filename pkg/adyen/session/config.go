package session

import (
	"github.com/commerce-payments/adyen-gateway/pkg/config"
	"github.com/commerce-payments/adyen-gateway/pkg/config/env"
	"github.com/commerce-payments/adyen-gateway/pkg/config/memory"
	"github.com/commerce-payments/adyen-gateway/pkg/config/wrapper"
)

const (
	envConfigPrefix = "ADYEN_GATEWAY_"

	DefaultPaymentMethodCodeConfigEnvName = envConfigPrefix + "DEFAULT_PAYMENT_METHOD_CODE"
	defaultDefaultPaymentMethodCode       = "payment-adyen"
)

type conf struct {
	defaultPaymentMethodCode config.String
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			defaultPaymentMethodCode: env.NewStringConfig(DefaultPaymentMethodCodeConfigEnvName, defaultDefaultPaymentMethodCode),
		}
	}
}

type testOverrides struct {
	defaultPaymentMethodCode string
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		defaultPaymentMethodCode := overrides.defaultPaymentMethodCode
		if len(defaultPaymentMethodCode) == 0 {
			defaultPaymentMethodCode = defaultDefaultPaymentMethodCode
		}

		return &conf{
			defaultPaymentMethodCode: wrapper.NewStringConfig(memory.NewConfig(defaultPaymentMethodCode), defaultDefaultPaymentMethodCode),
		}
	}
}
