package gateway

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every route of spec.md §6.1 plus the supplements of
// SPEC_FULL.md §6.4 and §10, grounded on app/query/app.go's router
// construction.
func NewRouter(a *App) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)

	// Supplementary single-block / block-range endpoints (spec.md §8
	// scenarios 1-7), outside the from/since cursor surface.
	r.HandleFunc("/block/{height}", a.handleBlockByHeight).Methods(http.MethodGet)
	r.HandleFunc("/block/{height}/transactions", a.handleBlockTransactions).Methods(http.MethodGet)
	r.HandleFunc("/blocks/{height}/limit/{limit}", a.handleBlockRange).Methods(http.MethodGet)

	// Cursor endpoints (spec.md §6.1).
	r.HandleFunc("/blocks/{dir:from|since}/{anchor}/limit/{limit}", a.handleBlocksCursor).Methods(http.MethodGet)

	r.HandleFunc("/transactions/{dir:from|since}/{anchor}/limit/{limit}", a.handleTransactionsCursor).Methods(http.MethodGet)
	r.HandleFunc("/transactions/{dir:from|since}/{anchor}/type/{type}/limit/{limit}", a.handleTransactionsCursor).Methods(http.MethodGet)
	r.HandleFunc("/transactions/{dir:from|since}/{anchor}/type/{type}/filter/{filter}/limit/{limit}", a.handleTransactionsCursor).Methods(http.MethodGet)
	r.HandleFunc("/transactions/{collection:unconfirmed|partial}/{dir:from|since}/{anchor}/limit/{limit}", a.handleTransactionsCursor).Methods(http.MethodGet)
	r.HandleFunc("/transactions/{key}", a.handleTransactionByKey).Methods(http.MethodGet)

	r.HandleFunc("/namespaces/{dir:from|since}/{anchor}/limit/{limit}", a.handleNamespacesCursor).Methods(http.MethodGet)
	r.HandleFunc("/mosaics/{dir:from|since}/{anchor}/limit/{limit}", a.handleMosaicsCursor).Methods(http.MethodGet)

	r.HandleFunc("/accounts/{variant:importance}/{dir:from|since}/{anchor}/limit/{limit}", a.handleAccountsCursor).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{variant:harvested}/{kind:blocks|fees}/{dir:from|since}/{anchor}/limit/{limit}", a.handleAccountsCursor).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{variant:balance}/{kind:currency|harvest}/{dir:from|since}/{anchor}/limit/{limit}", a.handleAccountsCursor).Methods(http.MethodGet)

	// SPEC_FULL.md §6.4 supplement.
	r.HandleFunc("/transactionStatements/{hash}/merkle", a.handleMerklePath).Methods(http.MethodGet)

	return r
}
