package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkByName(t *testing.T) {
	tests := []struct {
		name string
		want Network
	}{
		{"public_test", NetworkPublicTest},
		{"testnet", NetworkPublicTest},
		{"PUBLIC_TEST", NetworkPublicTest},
		{"private", NetworkPrivate},
		{"private_test", NetworkPrivateTest},
		{"", NetworkPublic},
		{"mainnet", NetworkPublic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NetworkByName(tt.name))
		})
	}
}

func TestFromPublicKeyIsDeterministic(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}
	a1 := FromPublicKey(key, NetworkPublic)
	a2 := FromPublicKey(key, NetworkPublic)
	assert.Equal(t, a1, a2)
}

func TestFromPublicKeyVariesByNetwork(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}
	public := FromPublicKey(key, NetworkPublic)
	testnet := FromPublicKey(key, NetworkPublicTest)
	assert.NotEqual(t, public, testnet)
	assert.Equal(t, byte(NetworkPublic), public[0])
	assert.Equal(t, byte(NetworkPublicTest), testnet[0])
}

func TestAddressRoundTripsThroughString(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i * 3)
	}
	addr := FromPublicKey(key, NetworkPublic)
	encoded := addr.String()
	assert.Len(t, encoded, 40)

	parsed, err := ParseAddress(encoded)
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)
}

func TestParsePublicKeyRejectsWrongLength(t *testing.T) {
	_, err := ParsePublicKey("deadbeef")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestParsePublicKeyRejectsNonHex(t *testing.T) {
	_, err := ParsePublicKey(strings.Repeat("zz", 32))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestParseAddressRejectsWrongLength(t *testing.T) {
	_, err := ParseAddress("TOOSHORT")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestResolveAccountKeyDispatchesByLength(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i * 7)
	}
	addr := FromPublicKey(key, NetworkPublic)
	hexKey := ""
	for _, b := range key {
		hexKey += string("0123456789abcdef"[b>>4]) + string("0123456789abcdef"[b&0xf])
	}

	fromAddr, err := ResolveAccountKey(addr.String(), NetworkPublic)
	require.NoError(t, err)
	assert.Equal(t, addr, fromAddr)

	fromKey, err := ResolveAccountKey(hexKey, NetworkPublic)
	require.NoError(t, err)
	assert.Equal(t, addr, fromKey)
}

func TestResolveAccountKeyRejectsOtherLengths(t *testing.T) {
	_, err := ResolveAccountKey("short", NetworkPublic)
	assert.ErrorIs(t, err, ErrInvalidKey)
}
