package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyNamespaceIDDefaultsWithoutEnvOverride(t *testing.T) {
	t.Setenv("NETWORK_CURRENCY_NAMESPACE_ID", "")
	assert.Equal(t, defaultCurrencyNamespaceID, CurrencyNamespaceID())
}

func TestCurrencyNamespaceIDHonorsEnvOverride(t *testing.T) {
	t.Setenv("NETWORK_CURRENCY_NAMESPACE_ID", "DEADBEEFCAFEBABE")
	assert.Equal(t, "DEADBEEFCAFEBABE", CurrencyNamespaceID())
}

func TestHarvestNamespaceIDDefaultsWithoutEnvOverride(t *testing.T) {
	t.Setenv("NETWORK_HARVEST_NAMESPACE_ID", "")
	assert.Equal(t, defaultHarvestNamespaceID, HarvestNamespaceID())
}

func TestCurrencyAndHarvestNamespaceIDsAreDistinct(t *testing.T) {
	t.Setenv("NETWORK_CURRENCY_NAMESPACE_ID", "")
	t.Setenv("NETWORK_HARVEST_NAMESPACE_ID", "")
	assert.NotEqual(t, CurrencyNamespaceID(), HarvestNamespaceID())
}
