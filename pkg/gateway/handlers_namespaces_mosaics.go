package gateway

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/symbol-chain/catapult-gateway/pkg/entities"
)

// handleNamespacesCursor serves /namespaces/{dir}/{anchor}/limit/{limit}.
func (a *App) handleNamespacesCursor(w http.ResponseWriter, r *http.Request) {
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

	desc := entities.NewNamespaceDescriptor(a.Store)
	servePage(w, r, a.Logger, desc, dir, anchor, corrected)
}

// handleMosaicsCursor serves /mosaics/{dir}/{anchor}/limit/{limit}.
func (a *App) handleMosaicsCursor(w http.ResponseWriter, r *http.Request) {
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

	desc := entities.NewMosaicDescriptor(a.Store)
	servePage(w, r, a.Logger, desc, dir, anchor, corrected)
}
