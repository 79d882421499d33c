package entities

import (
	"context"
	"fmt"

	"github.com/symbol-chain/catapult-gateway/pkg/cursor"
	"github.com/symbol-chain/catapult-gateway/pkg/store"
)

// The three transaction collections named in spec.md §6.3. Only
// PartialTransactionsTable keeps aggregate-dependent sub-documents in
// cursor results (spec.md invariant 7).
const (
	TransactionsTable            = "transactions"
	UnconfirmedTransactionsTable = "unconfirmed_transactions"
	PartialTransactionsTable     = "partial_transactions"
)

// Transaction is a row of a transaction collection. AggregateID is the
// back-reference invariant 7 keys off: non-nil means this document is an
// aggregate's dependent, not a top-level transaction.
type Transaction struct {
	DocID       store.DocID  `ch:"doc_id" json:"-"`
	MetaID      *store.DocID `json:"id,omitempty"`
	Height      uint64       `ch:"height" json:"height"`
	Index       uint32       `ch:"index" json:"index"`
	Hash        string       `ch:"hash" json:"hash"`
	Type        string       `ch:"type" json:"type"`
	AggregateID *store.DocID `ch:"aggregate_id" json:"-"`
}

const transactionColumns = "doc_id, height, index, hash, type, aggregate_id"

func sanitizeTransactions(rows []Transaction) []Transaction {
	return store.PromoteIDToMeta(rows, func(t *Transaction) {
		id := t.DocID
		t.MetaID = &id
		t.DocID = store.DocID{}
	})
}

// NewTransactionDescriptor builds a plain (no type/filter) transaction
// cursor over table. excludeAggregates toggles invariant 7's exclusion of
// aggregate-dependent sub-documents: every collection except
// PartialTransactionsTable sets it true. Spec.md §9 design notes call for
// carrying this as an explicit descriptor flag rather than the source's
// string comparison against the collection name.
func NewTransactionDescriptor(c *store.Client, table string, excludeAggregates bool) *cursor.Descriptor[Transaction] {
	minTuple := cursor.Tuple{store.MinLong, int64(0), store.MinDocID}
	maxTuple := cursor.Tuple{store.MaxLong, store.MaxLong, store.MaxDocID}

	absolute := cursor.AbsoluteResolver(map[string]cursor.AnchorFunc{
		"earliest": func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
		"least":    func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
		"latest":   func(context.Context) (cursor.Tuple, error) { return maxTuple, nil },
		"most":     func(context.Context) (cursor.Tuple, error) { return maxTuple, nil },
	})

	byHash := cursor.HexStringResolver(64, func(ctx context.Context, raw string) (cursor.Tuple, error) {
		row, ok, err := lookupTransaction(ctx, c, table, "hash = ?", raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cursor.ErrNotFound
		}
		return cursor.Tuple{int64(row.Height), int64(row.Index), row.DocID}, nil
	})

	byDocID := cursor.HexStringResolver(24, func(ctx context.Context, raw string) (cursor.Tuple, error) {
		id, err := store.ParseDocID(raw)
		if err != nil {
			return nil, cursor.ErrInvalidFormat
		}
		row, ok, err := lookupTransaction(ctx, c, table, "doc_id = ?", id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cursor.ErrNotFound
		}
		return cursor.Tuple{int64(row.Height), int64(row.Index), row.DocID}, nil
	})

	return &cursor.Descriptor[Transaction]{
		SortFields: []string{"height", "index", "doc_id"},
		Resolvers:  []cursor.Resolver{absolute, byHash, byDocID},
		Fetch:      fetchTransactions(c, table, excludeAggregates),
		Sanitize:   sanitizeTransactions,
	}
}

func lookupTransaction(ctx context.Context, c *store.Client, table, cond string, arg any) (Transaction, bool, error) {
	return store.FindOne[Transaction](ctx, c, "SELECT "+transactionColumns+" FROM "+table+" WHERE "+cond+" LIMIT 1", arg)
}

func fetchTransactions(c *store.Client, table string, excludeAggregates bool) cursor.Fetch[Transaction] {
	return func(ctx context.Context, whereSQL string, args []any, limit int, ascending bool) ([]Transaction, error) {
		order := "DESC"
		if ascending {
			order = "ASC"
		}
		cond := whereSQL
		if excludeAggregates {
			cond = "aggregate_id IS NULL AND (" + whereSQL + ")"
		}
		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY height %s, index %s, doc_id %s LIMIT ?",
			transactionColumns, table, cond, order, order, order)
		args = append(args, limit)
		return store.Find[Transaction](ctx, c, query, args...)
	}
}

// NewTransactionFilterDescriptor builds the transaction-type-with-filter
// sub-machine of spec.md §4.2.6. Only (transfer, mosaic) and
// (transfer, multisig) are defined; any other pair is a hard error
// returned to the adaptor as an invalid-format condition (409, spec.md §7
// "unknown enum value").
func NewTransactionFilterDescriptor(ctx context.Context, c *store.Client, table, txType, filter string) (*cursor.Descriptor[Transaction], error) {
	if txType != "transfer" {
		return nil, fmt.Errorf("%w: unsupported transaction type %q", cursor.ErrInvalidFormat, txType)
	}

	var scaffoldExpr, matchExpr string
	switch filter {
	case "mosaic":
		currencyID, err := ResolveAliasedMosaicID(ctx, c, CurrencyNamespaceID())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cursor.ErrStoreError, err)
		}
		harvestID, err := ResolveAliasedMosaicID(ctx, c, HarvestNamespaceID())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cursor.ErrStoreError, err)
		}
		// hasMosaics = reduce(mosaic_ids, id NOT IN (currency, harvest), OR)
		scaffoldExpr = fmt.Sprintf("arrayExists(x -> x NOT IN (%d, %d), mosaic_ids) AS has_mosaics", currencyID, harvestID)
		matchExpr = "has_mosaics = 1"
	case "multisig":
		// array-localField lookup: join transaction addresses against the
		// multisig collection's account addresses, keep hits.
		scaffoldExpr = "length(arrayIntersect(addresses, (SELECT groupArray(account_address) FROM " + MultisigsTable + "))) AS multisig_matches"
		matchExpr = "multisig_matches > 0"
	default:
		return nil, fmt.Errorf("%w: unsupported filter %q", cursor.ErrInvalidFormat, filter)
	}

	minTuple := cursor.Tuple{store.MinLong, int64(0), store.MinDocID}
	maxTuple := cursor.Tuple{store.MaxLong, store.MaxLong, store.MaxDocID}
	absolute := cursor.AbsoluteResolver(map[string]cursor.AnchorFunc{
		"earliest": func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
		"least":    func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
		"latest":   func(context.Context) (cursor.Tuple, error) { return maxTuple, nil },
		"most":     func(context.Context) (cursor.Tuple, error) { return maxTuple, nil },
	})
	byHash := cursor.HexStringResolver(64, func(ctx context.Context, raw string) (cursor.Tuple, error) {
		row, ok, err := lookupTransaction(ctx, c, table, "hash = ?", raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cursor.ErrNotFound
		}
		return cursor.Tuple{int64(row.Height), int64(row.Index), row.DocID}, nil
	})
	byDocID := cursor.HexStringResolver(24, func(ctx context.Context, raw string) (cursor.Tuple, error) {
		id, err := store.ParseDocID(raw)
		if err != nil {
			return nil, cursor.ErrInvalidFormat
		}
		row, ok, err := lookupTransaction(ctx, c, table, "doc_id = ?", id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cursor.ErrNotFound
		}
		return cursor.Tuple{int64(row.Height), int64(row.Index), row.DocID}, nil
	})

	fetch := func(ctx context.Context, whereSQL string, args []any, limit int, ascending bool) ([]Transaction, error) {
		order := "DESC"
		if ascending {
			order = "ASC"
		}
		inner := fmt.Sprintf("SELECT %s, %s FROM %s WHERE type = 'transfer' AND aggregate_id IS NULL",
			transactionColumns, scaffoldExpr, table)
		query := fmt.Sprintf("SELECT %s FROM (%s) WHERE %s AND (%s) ORDER BY height %s, index %s, doc_id %s LIMIT ?",
			transactionColumns, inner, matchExpr, whereSQL, order, order, order)
		args = append(args, limit)
		return store.Find[Transaction](ctx, c, query, args...)
	}

	return &cursor.Descriptor[Transaction]{
		SortFields: []string{"height", "index", "doc_id"},
		Resolvers:  []cursor.Resolver{absolute, byHash, byDocID},
		Fetch:      fetch,
		Sanitize:   sanitizeTransactions,
	}, nil
}

// GetTransactionsByHeight lists the top-level (non-aggregate-dependent)
// transactions of one block (spec.md §8 scenario 7), 404ing when the
// height is above tip.
func GetTransactionsByHeight(ctx context.Context, c *store.Client, height uint64) ([]Transaction, error) {
	chainHeight, err := store.ChainHeight(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cursor.ErrStoreError, err)
	}
	if height > chainHeight {
		return nil, fmt.Errorf("chain height is too small: %w", cursor.ErrNotFound)
	}
	rows, err := store.Find[Transaction](ctx, c,
		"SELECT "+transactionColumns+" FROM "+TransactionsTable+" WHERE height = ? AND aggregate_id IS NULL ORDER BY index ASC", height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cursor.ErrStoreError, err)
	}
	return sanitizeTransactions(rows), nil
}

// TransactionDetail is the result of a single transaction lookup: the
// transaction itself, plus (if it is an aggregate) its dependent child
// transactions attached (spec.md §8 "dependent inclusion").
type TransactionDetail struct {
	Transaction
	Dependents []Transaction `json:"transactions,omitempty"`
}

// GetTransactionByKey resolves a transaction by its 64-hex hash or 24-hex
// document id, attaching dependents when it is an aggregate.
func GetTransactionByKey(ctx context.Context, c *store.Client, key string) (*TransactionDetail, error) {
	var row Transaction
	var ok bool
	var err error

	switch len(key) {
	case 64:
		row, ok, err = lookupTransaction(ctx, c, TransactionsTable, "hash = ?", key)
	case 24:
		var id store.DocID
		id, err = store.ParseDocID(key)
		if err != nil {
			return nil, cursor.ErrInvalidFormat
		}
		row, ok, err = lookupTransaction(ctx, c, TransactionsTable, "doc_id = ?", id)
	default:
		return nil, cursor.ErrInvalidFormat
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cursor.ErrStoreError, err)
	}
	if !ok {
		return nil, cursor.ErrNotFound
	}

	docID := row.DocID
	detail := &TransactionDetail{Transaction: row}
	detail.MetaID = &docID
	detail.DocID = store.DocID{}

	deps, err := store.Find[Transaction](ctx, c,
		"SELECT "+transactionColumns+" FROM "+TransactionsTable+" WHERE aggregate_id = ? ORDER BY index ASC", row.DocID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cursor.ErrStoreError, err)
	}
	detail.Dependents = sanitizeTransactions(deps)

	return detail, nil
}
