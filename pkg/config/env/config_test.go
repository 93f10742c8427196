package env

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/commerce-payments/adyen-gateway/pkg/config"
)

func TestConfigDoesntExist(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"
	os.Setenv(env, "default")

	v, err := NewConfig(env).Get(context.Background())
	assert.Equal(t, []byte("default"), v)
	assert.Nil(t, err)

	os.Unsetenv(env)

	v, err = NewConfig(env).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestTypedConfigs(t *testing.T) {
	const env = "ENV_CONFIG_TEST_TYPED_VAR"

	os.Setenv(env, "15s")
	assert.Equal(t, 15*time.Second, NewDurationConfig(env, time.Minute).Get(context.Background()))

	os.Setenv(env, "true")
	assert.True(t, NewBoolConfig(env, false).Get(context.Background()))

	os.Setenv(env, "value")
	assert.Equal(t, "value", NewStringConfig(env, "default").Get(context.Background()))

	os.Unsetenv(env)
	assert.Equal(t, "default", NewStringConfig(env, "default").Get(context.Background()))
}
