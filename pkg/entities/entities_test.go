package entities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symbol-chain/catapult-gateway/pkg/cursor"
	"github.com/symbol-chain/catapult-gateway/pkg/store"
)

// TestBlockDescriptorAbsoluteKeywordsResolveWithoutTouchingStore checks the
// block descriptor's sort fields and that its earliest/least keywords both
// resolve to the minimum tuple without ever touching a store, since the min
// anchor never depends on chain state. latest/most are not checked here:
// they read the chain height.
func TestBlockDescriptorAbsoluteKeywordsResolveWithoutTouchingStore(t *testing.T) {
	desc := NewBlockDescriptor(nil)
	assert.Equal(t, []string{"height", "doc_id"}, desc.SortFields)

	for _, kw := range []string{"earliest", "least"} {
		tuple, err := desc.Resolvers[0](context.Background(), kw)
		require.NoError(t, err)
		assert.Equal(t, cursor.Tuple{store.MinLong, store.MinDocID}, tuple)
	}
}

func TestTransactionDescriptorSortFieldsAndKeywords(t *testing.T) {
	desc := NewTransactionDescriptor(nil, TransactionsTable, true)
	assert.Equal(t, []string{"height", "index", "doc_id"}, desc.SortFields)

	minTuple, err := desc.Resolvers[0](context.Background(), "earliest")
	require.NoError(t, err)
	assert.Equal(t, cursor.Tuple{store.MinLong, int64(0), store.MinDocID}, minTuple)

	maxTuple, err := desc.Resolvers[0](context.Background(), "latest")
	require.NoError(t, err)
	assert.Equal(t, cursor.Tuple{store.MaxLong, store.MaxLong, store.MaxDocID}, maxTuple)
}

func TestSanitizeTransactionsPromotesDocIDToMetaID(t *testing.T) {
	id, err := store.ParseDocID("0123456789abcdef01234567")
	require.NoError(t, err)

	rows := []Transaction{{DocID: id, Height: 10}}
	out := sanitizeTransactions(rows)

	require.Len(t, out, 1)
	assert.Equal(t, store.DocID{}, out[0].DocID)
	require.NotNil(t, out[0].MetaID)
	assert.Equal(t, id, *out[0].MetaID)
}

func TestNewAccountDescriptorRejectsUnknownVariant(t *testing.T) {
	_, err := NewAccountDescriptor(nil, "not-a-real-variant")
	assert.ErrorIs(t, err, cursor.ErrInvalidFormat)
}

func TestNewAccountDescriptorBuildsKnownVariants(t *testing.T) {
	for variant, want := range map[string][]string{
		"importance":      {"importance", "public_key_height", "doc_id"},
		"harvestedBlocks": {"harvested_blocks", "public_key_height", "doc_id"},
		"harvestedFees":   {"harvested_fees", "harvested_blocks", "public_key_height", "doc_id"},
	} {
		t.Run(variant, func(t *testing.T) {
			desc, err := NewAccountDescriptor(nil, variant)
			require.NoError(t, err)
			assert.Equal(t, want, desc.SortFields)
		})
	}
}

func TestAccountVariantOutputColsSurviveEveryScaffoldExpr(t *testing.T) {
	// Regression guard for the bug where only the first scaffold column
	// reached the outer query: every variant's outputCols must name every
	// sort field it computes (other than public_key_height/doc_id, which
	// come from accountBaseColumns instead).
	v := accountVariants["harvestedFees"]
	assert.ElementsMatch(t, []string{"harvested_fees", "harvested_blocks"}, v.outputCols)
	assert.Len(t, v.scaffoldExprs, len(v.outputCols))
}

func TestAccountTupleMapsEachSortFieldToItsOwnColumn(t *testing.T) {
	row := Account{
		Importance:      5,
		HarvestedBlocks: 6,
		HarvestedFees:   7,
		Balance:         8,
		PublicKeyHeight: 9,
	}
	tuple := accountTuple(row, []string{"harvested_fees", "harvested_blocks", "public_key_height", "doc_id"})
	assert.Equal(t, cursor.Tuple{int64(7), int64(6), int64(9), row.DocID}, tuple)
}

func TestJoinComma(t *testing.T) {
	assert.Equal(t, "", joinComma(nil))
	assert.Equal(t, "a", joinComma([]string{"a"}))
	assert.Equal(t, "a, b, c", joinComma([]string{"a", "b", "c"}))
}
