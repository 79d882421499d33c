package entities

import (
	"context"
	"fmt"

	"github.com/symbol-chain/catapult-gateway/pkg/address"
	"github.com/symbol-chain/catapult-gateway/pkg/cursor"
	"github.com/symbol-chain/catapult-gateway/pkg/store"
	"github.com/symbol-chain/catapult-gateway/pkg/utils"
)

// AccountsTable is the collection named in spec.md §6.3.
const AccountsTable = "accounts"

// Account is a row of the accounts collection projected to what the
// gateway serves. Only the fields relevant to the requested sort variant
// are populated; the rest are left zero and omitted by their json tags.
type Account struct {
	DocID           store.DocID `ch:"doc_id" json:"-"`
	Address         string      `ch:"address" json:"address"`
	PublicKey       string      `ch:"public_key" json:"publicKey,omitempty"`
	PublicKeyHeight uint64      `ch:"public_key_height" json:"publicKeyHeight"`
	Importance      uint64      `ch:"importance" json:"importance,omitempty"`
	HarvestedBlocks uint64      `ch:"harvested_blocks" json:"harvestedBlocks,omitempty"`
	HarvestedFees   uint64      `ch:"harvested_fees" json:"harvestedFees,omitempty"`
	Balance         uint64      `ch:"balance" json:"balance,omitempty"`
}

const accountBaseColumns = "doc_id, address, public_key, public_key_height"

// accountVariant is one row of the entity table in spec.md §3.1's account
// section: a scaffold expression that materializes the variant's computed
// leading sort field, plus the full composite sort key it participates in.
type accountVariant struct {
	// scaffoldExprs computes every non-stored column the variant's sort key
	// or output needs, e.g. "arrayElement(...) AS importance".
	scaffoldExprs []string
	// outputCols names the computed columns (in scaffoldExprs) that must
	// survive into the outer query and the returned Account struct.
	outputCols []string
	sortFields []string
}

var accountVariants = map[string]accountVariant{
	// last element of account.importances[]; zero when the array is empty.
	"importance": {
		scaffoldExprs: []string{"arrayElement(importances, length(importances)) AS importance"},
		outputCols:    []string{"importance"},
		sortFields:    []string{"importance", "public_key_height", "doc_id"},
	},
	// count(account.activityBuckets)
	"harvestedBlocks": {
		scaffoldExprs: []string{"length(activity_buckets) AS harvested_blocks"},
		outputCols:    []string{"harvested_blocks"},
		sortFields:    []string{"harvested_blocks", "public_key_height", "doc_id"},
	},
	// sum(account.activityBuckets[].totalFeesPaid), tied to harvestedBlocks
	// for its second sort field.
	"harvestedFees": {
		scaffoldExprs: []string{
			"arraySum(activity_bucket_fees) AS harvested_fees",
			"length(activity_buckets) AS harvested_blocks",
		},
		outputCols: []string{"harvested_fees", "harvested_blocks"},
		sortFields: []string{"harvested_fees", "harvested_blocks", "public_key_height", "doc_id"},
	},
}

// NewAccountDescriptor builds the cursor.Descriptor for one of the
// "importance"/"harvestedBlocks"/"harvestedFees" account sort variants
// (spec.md §3.1). Use NewAccountBalanceDescriptor for the currency/harvest
// balance variants, whose scaffold expression additionally depends on a
// resolved well-known mosaic id (§4.2.7).
func NewAccountDescriptor(c *store.Client, variant string) (*cursor.Descriptor[Account], error) {
	v, ok := accountVariants[variant]
	if !ok {
		return nil, fmt.Errorf("%w: unknown account sort variant %q", cursor.ErrInvalidFormat, variant)
	}
	return newAccountDescriptor(c, v), nil
}

// NewAccountBalanceDescriptor builds the "currency"/"harvest" balance
// account sort variant (spec.md §4.2.7): balance is a reduce over
// account.mosaics[], summing amount for entries matching the mosaic id
// aliased by the corresponding well-known namespace. namespaceHexID must
// be CurrencyNamespaceID() or HarvestNamespaceID() — each field reads its
// own matching namespace, not the mismatched pairing the source is
// suspected to contain (see DESIGN.md).
func NewAccountBalanceDescriptor(ctx context.Context, c *store.Client, namespaceHexID string) (*cursor.Descriptor[Account], error) {
	mosaicID, err := ResolveAliasedMosaicID(ctx, c, namespaceHexID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cursor.ErrStoreError, err)
	}
	v := accountVariant{
		scaffoldExprs: []string{fmt.Sprintf(
			"arraySum(arrayMap((id, amt) -> if(id = %d, amt, toUInt64(0)), mosaic_ids, mosaic_amounts)) AS balance",
			mosaicID)},
		outputCols: []string{"balance"},
		sortFields: []string{"balance", "public_key_height", "doc_id"},
	}
	return newAccountDescriptor(c, v), nil
}

func newAccountDescriptor(c *store.Client, v accountVariant) *cursor.Descriptor[Account] {
	minTuple := make(cursor.Tuple, len(v.sortFields))
	maxTuple := make(cursor.Tuple, len(v.sortFields))
	for i, f := range v.sortFields {
		if f == "doc_id" {
			minTuple[i], maxTuple[i] = store.MinDocID, store.MaxDocID
		} else {
			minTuple[i], maxTuple[i] = store.MinLong, store.MaxLong
		}
	}

	// spec.md §6.1 names most/least for accounts; latest/earliest are
	// accepted as full synonyms per DESIGN.md's absolute-keyword decision.
	absolute := cursor.AbsoluteResolver(map[string]cursor.AnchorFunc{
		"most":     func(context.Context) (cursor.Tuple, error) { return maxTuple, nil },
		"latest":   func(context.Context) (cursor.Tuple, error) { return maxTuple, nil },
		"least":    func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
		"earliest": func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
	})

	byAccountKey := func(ctx context.Context, raw string) (cursor.Tuple, error) {
		addr, err := address.ResolveAccountKey(raw, address.NetworkByName(utils.Env("NETWORK_NAME", "")))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cursor.ErrInvalidFormat, err)
		}
		row, ok, err := lookupAccountByAddress(ctx, c, v, addr.String())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cursor.ErrNotFound
		}
		return accountTuple(row, v.sortFields), nil
	}

	return &cursor.Descriptor[Account]{
		SortFields: v.sortFields,
		Resolvers:  []cursor.Resolver{absolute, byAccountKey},
		Fetch:      fetchAccounts(c, v),
		Sanitize: func(rows []Account) []Account {
			return store.StripID(rows, func(a *Account) { a.DocID = store.DocID{} })
		},
	}
}

func accountTuple(row Account, sortFields []string) cursor.Tuple {
	tuple := make(cursor.Tuple, len(sortFields))
	for i, f := range sortFields {
		switch f {
		case "importance":
			tuple[i] = int64(row.Importance)
		case "harvested_blocks":
			tuple[i] = int64(row.HarvestedBlocks)
		case "harvested_fees":
			tuple[i] = int64(row.HarvestedFees)
		case "balance":
			tuple[i] = int64(row.Balance)
		case "public_key_height":
			tuple[i] = int64(row.PublicKeyHeight)
		case "doc_id":
			tuple[i] = row.DocID
		}
	}
	return tuple
}

func lookupAccountByAddress(ctx context.Context, c *store.Client, v accountVariant, addr string) (Account, bool, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE address = ? LIMIT 1",
		accountBaseColumns, joinComma(v.scaffoldExprs), AccountsTable)
	return store.FindOne[Account](ctx, c, query, addr)
}

func fetchAccounts(c *store.Client, v accountVariant) cursor.Fetch[Account] {
	return func(ctx context.Context, whereSQL string, args []any, limit int, ascending bool) ([]Account, error) {
		order := "DESC"
		if ascending {
			order = "ASC"
		}
		inner := fmt.Sprintf("SELECT %s, %s FROM %s", accountBaseColumns, joinComma(v.scaffoldExprs), AccountsTable)

		orderClauses := make([]string, len(v.sortFields))
		for i, f := range v.sortFields {
			orderClauses[i] = f + " " + order
		}
		query := fmt.Sprintf("SELECT %s, %s FROM (%s) WHERE %s ORDER BY %s LIMIT ?",
			accountBaseColumns, joinComma(v.outputCols), inner, whereSQL, joinComma(orderClauses))
		args = append(args, limit)
		return store.Find[Account](ctx, c, query, args...)
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
