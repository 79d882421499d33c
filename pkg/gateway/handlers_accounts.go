package gateway

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/symbol-chain/catapult-gateway/pkg/cursor"
	"github.com/symbol-chain/catapult-gateway/pkg/entities"
)

// handleAccountsCursor serves the five
// /accounts/{importance,harvested/blocks,harvested/fees,balance/currency,balance/harvest}/{dir}/{anchor}/limit/{limit}
// route shapes of spec.md §6.1. Which variant matched is carried in the
// route's {variant} (and, for harvested and balance, {kind}) vars.
func (a *App) handleAccountsCursor(w http.ResponseWriter, r *http.Request) {
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

	desc, err := a.accountDescriptorFor(r, vars)
	if err != nil {
		writeError(w, a.Logger, err)
		return
	}

	servePage(w, r, a.Logger, desc, dir, anchor, corrected)
}

func (a *App) accountDescriptorFor(r *http.Request, vars map[string]string) (*cursor.Descriptor[entities.Account], error) {
	switch vars["variant"] {
	case "importance":
		return entities.NewAccountDescriptor(a.Store, "importance")
	case "harvested":
		switch vars["kind"] {
		case "blocks":
			return entities.NewAccountDescriptor(a.Store, "harvestedBlocks")
		case "fees":
			return entities.NewAccountDescriptor(a.Store, "harvestedFees")
		default:
			return nil, fmt.Errorf("%w: unknown harvested sort kind %q", cursor.ErrInvalidFormat, vars["kind"])
		}
	case "balance":
		switch vars["kind"] {
		case "currency":
			return entities.NewAccountBalanceDescriptor(r.Context(), a.Store, entities.CurrencyNamespaceID())
		case "harvest":
			return entities.NewAccountBalanceDescriptor(r.Context(), a.Store, entities.HarvestNamespaceID())
		default:
			return nil, fmt.Errorf("%w: unknown balance sort kind %q", cursor.ErrInvalidFormat, vars["kind"])
		}
	default:
		return nil, fmt.Errorf("%w: unknown account sort variant %q", cursor.ErrInvalidFormat, vars["variant"])
	}
}
