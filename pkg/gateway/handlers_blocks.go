package gateway

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/symbol-chain/catapult-gateway/pkg/cursor"
	"github.com/symbol-chain/catapult-gateway/pkg/entities"
)

// handleBlocksCursor serves /blocks/{dir}/{anchor}/limit/{limit} (spec.md
// §6.1). A `?fields=height` query parameter switches to the SPEC_FULL.md
// §10 projected-formatter output for the same route (see
// serveProjectedPage).
func (a *App) handleBlocksCursor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dir, anchor := vars["dir"], vars["anchor"]

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

	desc := entities.NewBlockDescriptor(a.Store)
	if r.URL.Query().Get("fields") == "height" {
		serveProjectedPage(w, r, a.Logger, desc, dir, anchor, corrected, projectBlockHeight)
		return
	}
	servePage(w, r, a.Logger, desc, dir, anchor, corrected)
}

// projectBlockHeight is the SPEC_FULL.md §10 debug/projected formatter for
// blocks: the same cursor result reduced to its height field.
func projectBlockHeight(b entities.Block) any {
	return map[string]uint64{"height": b.Height}
}

// handleBlockByHeight serves the supplementary /block/{height} single
// lookup (spec.md §8 scenarios 1-2).
func (a *App) handleBlockByHeight(w http.ResponseWriter, r *http.Request) {
	height, err := strconv.ParseUint(mux.Vars(r)["height"], 10, 64)
	if err != nil {
		writeError(w, a.Logger, fmt.Errorf("%w: bad height", cursor.ErrInvalidFormat))
		return
	}
	block, err := entities.GetBlockByHeight(r.Context(), a.Store, height)
	if err != nil {
		writeError(w, a.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, block)
}

// handleBlockTransactions serves the supplementary
// /block/{height}/transactions listing (spec.md §8 scenario 7).
func (a *App) handleBlockTransactions(w http.ResponseWriter, r *http.Request) {
	height, err := strconv.ParseUint(mux.Vars(r)["height"], 10, 64)
	if err != nil {
		writeError(w, a.Logger, fmt.Errorf("%w: bad height", cursor.ErrInvalidFormat))
		return
	}
	txs, err := entities.GetTransactionsByHeight(r.Context(), a.Store, height)
	if err != nil {
		writeError(w, a.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// handleBlockRange serves the supplementary /blocks/{height}/limit/{limit}
// ascending range listing (spec.md §8 scenarios 3-6), governed by
// pageSize.* rather than countRange.*, and with its own height-floor
// correction (height 0 has no meaning, so it redirects to 1 alongside any
// limit correction).
func (a *App) handleBlockRange(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	height, err := strconv.ParseUint(vars["height"], 10, 64)
	if err != nil {
		writeError(w, a.Logger, fmt.Errorf("%w: bad height", cursor.ErrInvalidFormat))
		return
	}
	limit, err := parseLimit(vars["limit"])
	if err != nil {
		writeError(w, a.Logger, err)
		return
	}

	correctedHeight := height
	if correctedHeight < 1 {
		correctedHeight = 1
	}
	correctedLimit, limitOK := a.PageSizePolicy.Validate(limit)

	if correctedHeight != height || !limitOK {
		redirectVars(w, r, map[string]string{
			"height": strconv.FormatUint(correctedHeight, 10),
			"limit":  strconv.Itoa(correctedLimit),
		})
		return
	}

	blocks, err := entities.GetBlockRange(r.Context(), a.Store, height, limit)
	if err != nil {
		writeError(w, a.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}
