package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/symbol-chain/catapult-gateway/pkg/entities"
)

// TestProjectTransactionHashReducesToHashOnly backs the SPEC_FULL.md §10
// debug/projected formatter claim: the projector is a pure reduction over
// the same cursor row, never a separate engine path.
func TestProjectTransactionHashReducesToHashOnly(t *testing.T) {
	tx := entities.Transaction{Hash: "deadbeef"}
	got := projectTransactionHash(tx)
	assert.Equal(t, map[string]string{"hash": "deadbeef"}, got)
}

func TestProjectBlockHeightReducesToHeightOnly(t *testing.T) {
	b := entities.Block{Height: 42}
	got := projectBlockHeight(b)
	assert.Equal(t, map[string]uint64{"height": 42}, got)
}
