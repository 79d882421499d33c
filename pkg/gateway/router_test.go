package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symbol-chain/catapult-gateway/pkg/entities"
)

func TestTransactionTableForMapsCollectionNames(t *testing.T) {
	assert.Equal(t, entities.UnconfirmedTransactionsTable, transactionTableFor("unconfirmed"))
	assert.Equal(t, entities.PartialTransactionsTable, transactionTableFor("partial"))
	assert.Equal(t, entities.TransactionsTable, transactionTableFor(""))
	assert.Equal(t, entities.TransactionsTable, transactionTableFor("something-else"))
}

// TestRouterMatchesEveryRouteShape checks every spec.md §6.1/§8 route shape
// resolves to a route (not a 404-by-no-match) without needing a live store,
// by inspecting mux's route match rather than invoking handlers.
func TestRouterMatchesEveryRouteShape(t *testing.T) {
	router := NewRouter(&App{})

	paths := []string{
		"/health",
		"/block/100",
		"/block/100/transactions",
		"/blocks/100/limit/30",
		"/blocks/from/latest/limit/25",
		"/transactions/from/latest/limit/25",
		"/transactions/from/latest/limit/25?fields=hash",
		"/blocks/from/latest/limit/25?fields=height",
		"/transactions/from/latest/type/transfer/limit/25",
		"/transactions/from/latest/type/transfer/filter/mosaic/limit/25",
		"/transactions/unconfirmed/from/latest/limit/25",
		"/transactions/partial/since/earliest/limit/25",
		"/transactions/0123456789abcdef01234567abcdef01234567abcdef01234567abcdef012345",
		"/namespaces/from/latest/limit/25",
		"/mosaics/from/latest/limit/25",
		"/accounts/importance/from/latest/limit/25",
		"/accounts/harvested/blocks/from/latest/limit/25",
		"/accounts/harvested/fees/from/latest/limit/25",
		"/accounts/balance/currency/from/latest/limit/25",
		"/accounts/balance/harvest/from/latest/limit/25",
		"/transactionStatements/deadbeef/merkle",
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, p, nil)
			var match mux.RouteMatch
			matched := router.Match(req, &match)
			require.True(t, matched, "expected a route to match %s", p)
			assert.Nil(t, match.MatchErr)
		})
	}
}
