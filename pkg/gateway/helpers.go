package gateway

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/symbol-chain/catapult-gateway/pkg/cursor"
)

func parseLimit(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: bad limit", cursor.ErrInvalidFormat)
	}
	return n, nil
}

// redirectVars issues the 302 of spec.md §6.1 to the current route with the
// given named path variables overridden, reconstructed via mux's own
// route.URL so it works regardless of which route pattern matched.
func redirectVars(w http.ResponseWriter, r *http.Request, overrides map[string]string) {
	route := mux.CurrentRoute(r)
	vars := mux.Vars(r)
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		if ov, ok := overrides[k]; ok {
			v = ov
		}
		pairs = append(pairs, k, v)
	}
	url, err := route.URL(pairs...)
	if err != nil {
		http.Error(w, "redirect error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, url.String(), http.StatusFound)
}

// fetchPage runs one Descriptor.From/Since call, shared by servePage and
// serveProjectedPage regardless of entity type.
func fetchPage[T any](r *http.Request, desc *cursor.Descriptor[T], dir, anchor string, limit int) ([]T, error) {
	if dir == "since" {
		return desc.Since(r.Context(), anchor, limit)
	}
	return desc.From(r.Context(), anchor, limit)
}

// servePage runs one Descriptor.From/Since call and writes the result,
// shared by every cursor endpoint regardless of entity type.
func servePage[T any](w http.ResponseWriter, r *http.Request, logger *zap.Logger, desc *cursor.Descriptor[T], dir, anchor string, limit int) {
	rows, err := fetchPage(r, desc, dir, anchor, limit)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// serveProjectedPage runs the same Descriptor.From/Since call as servePage
// but writes each row through project first, backing the SPEC_FULL.md §10
// "debug/projected formatters" supplement: the same cursor result, reduced
// to a named field in the handler, never in the engine.
func serveProjectedPage[T any](w http.ResponseWriter, r *http.Request, logger *zap.Logger, desc *cursor.Descriptor[T], dir, anchor string, limit int, project func(T) any) {
	rows, err := fetchPage(r, desc, dir, anchor, limit)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	projected := make([]any, len(rows))
	for i, row := range rows {
		projected[i] = project(row)
	}
	writeJSON(w, http.StatusOK, projected)
}
