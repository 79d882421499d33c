package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/symbol-chain/catapult-gateway/pkg/cursor"
	"github.com/symbol-chain/catapult-gateway/pkg/entities"
)

// handleTransactionsCursor serves the four transaction route shapes of
// spec.md §6.1: plain, +type, +type+filter, and the dedicated
// unconfirmed/partial collections. Which shape matched is carried in the
// mux route's own vars, so one handler covers all of them. A `?fields=hash`
// query parameter switches to the SPEC_FULL.md §10 projected-formatter
// output for the same route (see serveProjectedPage).
func (a *App) handleTransactionsCursor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dir, anchor := vars["dir"], vars["anchor"]
	table := transactionTableFor(vars["collection"])

	limit, err := parseLimit(vars["limit"])
	if err != nil {
		writeError(w, a.Logger, err)
		return
	}
	corrected, ok := a.CountRangePolicy.Validate(limit)
	if !ok {
		redirectVars(w, r, map[string]string{"limit": strconv.Itoa(corrected)})
		return
	}

	txType, hasType := vars["type"]
	filter, hasFilter := vars["filter"]

	var desc *cursor.Descriptor[entities.Transaction]
	if hasType && hasFilter {
		desc, err = entities.NewTransactionFilterDescriptor(r.Context(), a.Store, table, txType, filter)
		if err != nil {
			writeError(w, a.Logger, err)
			return
		}
	} else {
		desc = entities.NewTransactionDescriptor(a.Store, table, table != entities.PartialTransactionsTable)
		if hasType {
			fetch := desc.Fetch
			desc.Fetch = func(ctx context.Context, whereSQL string, args []any, limit int, ascending bool) ([]entities.Transaction, error) {
				return fetch(ctx, "type = ? AND ("+whereSQL+")", append([]any{txType}, args...), limit, ascending)
			}
		}
	}

	if r.URL.Query().Get("fields") == "hash" {
		serveProjectedPage(w, r, a.Logger, desc, dir, anchor, corrected, projectTransactionHash)
		return
	}
	servePage(w, r, a.Logger, desc, dir, anchor, corrected)
}

// projectTransactionHash is the SPEC_FULL.md §10 debug/projected formatter
// for transactions: the same cursor result reduced to its hash field.
func projectTransactionHash(t entities.Transaction) any {
	return map[string]string{"hash": t.Hash}
}

func transactionTableFor(collection string) string {
	switch collection {
	case "unconfirmed":
		return entities.UnconfirmedTransactionsTable
	case "partial":
		return entities.PartialTransactionsTable
	default:
		return entities.TransactionsTable
	}
}

// handleTransactionByKey serves the supplementary single-transaction
// lookup that backs the "dependent inclusion" testable property (spec.md
// §8), attaching aggregate children when present.
func (a *App) handleTransactionByKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	detail, err := entities.GetTransactionByKey(r.Context(), a.Store, key)
	if err != nil {
		writeError(w, a.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleMerklePath serves the SPEC_FULL.md §6.4 supplement: resolve the
// transaction's height via the same natural-key lookup the CE already
// performs, then delegate to the peer client.
func (a *App) handleMerklePath(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["hash"]
	detail, err := entities.GetTransactionByKey(r.Context(), a.Store, hash)
	if err != nil {
		writeError(w, a.Logger, err)
		return
	}
	path, err := a.Peer.AuditPath(r.Context(), detail.Height, hash)
	if err != nil {
		writeError(w, a.Logger, fmt.Errorf("merkle path: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, path)
}
