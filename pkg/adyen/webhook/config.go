package webhook

import (
	"github.com/commerce-payments/adyen-gateway/pkg/config"
	"github.com/commerce-payments/adyen-gateway/pkg/config/env"
	"github.com/commerce-payments/adyen-gateway/pkg/config/memory"
	"github.com/commerce-payments/adyen-gateway/pkg/config/wrapper"
)

const (
	envConfigPrefix = "ADYEN_GATEWAY_"

	EnvironmentConfigEnvName = envConfigPrefix + "ENVIRONMENT"
	defaultEnvironment       = "TEST"

	HmacKeyConfigEnvName = envConfigPrefix + "HMAC_KEY"
	defaultHmacKey       = ""

	WebhookUsernameConfigEnvName = envConfigPrefix + "WEBHOOK_USERNAME"
	defaultWebhookUsername       = ""

	WebhookPasswordConfigEnvName = envConfigPrefix + "WEBHOOK_PASSWORD"
	defaultWebhookPassword       = ""
)

// EnvironmentLive is the environment mode where unverifiable notifications
// must be rejected outright.
const EnvironmentLive = "LIVE"

type conf struct {
	environment     config.String
	hmacKey         config.String
	webhookUsername config.String
	webhookPassword config.String
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			environment:     env.NewStringConfig(EnvironmentConfigEnvName, defaultEnvironment),
			hmacKey:         env.NewStringConfig(HmacKeyConfigEnvName, defaultHmacKey),
			webhookUsername: env.NewStringConfig(WebhookUsernameConfigEnvName, defaultWebhookUsername),
			webhookPassword: env.NewStringConfig(WebhookPasswordConfigEnvName, defaultWebhookPassword),
		}
	}
}

type testOverrides struct {
	environment     string
	hmacKey         string
	webhookUsername string
	webhookPassword string
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			environment:     wrapper.NewStringConfig(memory.NewConfig(overrides.environment), defaultEnvironment),
			hmacKey:         wrapper.NewStringConfig(memory.NewConfig(overrides.hmacKey), defaultHmacKey),
			webhookUsername: wrapper.NewStringConfig(memory.NewConfig(overrides.webhookUsername), defaultWebhookUsername),
			webhookPassword: wrapper.NewStringConfig(memory.NewConfig(overrides.webhookPassword), defaultWebhookPassword),
		}
	}
}
