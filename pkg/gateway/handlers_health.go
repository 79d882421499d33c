package gateway

import (
	"net/http"

	"github.com/symbol-chain/catapult-gateway/pkg/entities"
	"github.com/symbol-chain/catapult-gateway/pkg/store"
)

type healthBody struct {
	Status      string `json:"status"`
	ChainHeight uint64 `json:"chainHeight"`
	BlockCount  uint64 `json:"blockCount"`
}

// handleHealth pings the store and reports its block count, so a load
// balancer's health check catches a dead ClickHouse connection or a table
// the store can reach but not actually query, not just a live HTTP
// listener.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "store unreachable"})
		return
	}

	chainHeight, err := store.ChainHeight(r.Context(), a.Store)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "store unreachable"})
		return
	}
	blockCount, err := store.CountDocuments(r.Context(), a.Store, entities.BlocksTable)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "store unreachable"})
		return
	}

	writeJSON(w, http.StatusOK, healthBody{Status: "ok", ChainHeight: chainHeight, BlockCount: blockCount})
}
