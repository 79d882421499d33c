package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvFallsBackToDefaultWhenUnset(t *testing.T) {
	t.Setenv("GATEWAY_TEST_ENV_STRING", "")
	assert.Equal(t, "fallback", Env("GATEWAY_TEST_ENV_STRING", "fallback"))
}

func TestEnvReturnsSetValue(t *testing.T) {
	t.Setenv("GATEWAY_TEST_ENV_STRING", "configured")
	assert.Equal(t, "configured", Env("GATEWAY_TEST_ENV_STRING", "fallback"))
}

func TestEnvIntFallsBackOnUnsetOrInvalidOrNonPositive(t *testing.T) {
	tests := []struct {
		name string
		val  string
	}{
		{"unset", ""},
		{"non-numeric", "not-a-number"},
		{"zero", "0"},
		{"negative", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GATEWAY_TEST_ENV_INT", tt.val)
			assert.Equal(t, 42, EnvInt("GATEWAY_TEST_ENV_INT", 42))
		})
	}
}

func TestEnvIntReturnsSetValue(t *testing.T) {
	t.Setenv("GATEWAY_TEST_ENV_INT", "17")
	assert.Equal(t, 17, EnvInt("GATEWAY_TEST_ENV_INT", 42))
}
