// Package entities wires the generic cursor engine (pkg/cursor) to
// concrete ClickHouse-backed collections, one file per entity family of
// spec.md §3.1. Each descriptor is composed, not inherited: a sort key, a
// fixed set of resolvers tried in order, a Fetch closure that knows how to
// query its own table, and a sanitizer.
package entities

import (
	"context"
	"fmt"
	"time"

	"github.com/symbol-chain/catapult-gateway/pkg/cursor"
	"github.com/symbol-chain/catapult-gateway/pkg/store"
)

// BlocksTable is the collection named in spec.md §6.3.
const BlocksTable = "blocks"

// Block is a row of the blocks collection, projected to what the gateway
// serves. DocID is stripped before a page is returned (invariant 6); it is
// only ever visible to the entity's own resolvers.
type Block struct {
	DocID     store.DocID `ch:"doc_id" json:"-"`
	Height    uint64      `ch:"height" json:"height"`
	Timestamp time.Time   `ch:"timestamp" json:"timestamp"`
	Hash      string      `ch:"hash" json:"hash"`
}

const blockColumns = "doc_id, height, timestamp, hash"

// NewBlockDescriptor builds the block entity's cursor.Descriptor. Blocks
// depend on chain state: the "latest"/"most" anchors must resolve to
// chainHeight+1 so the current tip block is itself included in
// from(latest) (spec.md §4.2.5).
func NewBlockDescriptor(c *store.Client) *cursor.Descriptor[Block] {
	minTuple := cursor.Tuple{store.MinLong, store.MinDocID}
	maxTuple := func(ctx context.Context) (cursor.Tuple, error) {
		height, err := store.ChainHeight(ctx, c)
		if err != nil {
			return nil, err
		}
		return cursor.Tuple{int64(height) + 1, store.MaxDocID}, nil
	}

	absolute := cursor.AbsoluteResolver(map[string]cursor.AnchorFunc{
		"earliest": func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
		"least":    func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
		"latest":   maxTuple,
		"most":     maxTuple,
	})

	byHeight := cursor.NumericKeyResolver(func(ctx context.Context, height uint64) (cursor.Tuple, error) {
		row, ok, err := store.FindOne[Block](ctx, c,
			"SELECT "+blockColumns+" FROM "+BlocksTable+" WHERE height = ? LIMIT 1", height)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cursor.ErrNotFound
		}
		return cursor.Tuple{int64(row.Height), row.DocID}, nil
	})

	byDocID := cursor.HexStringResolver(24, func(ctx context.Context, raw string) (cursor.Tuple, error) {
		id, err := store.ParseDocID(raw)
		if err != nil {
			return nil, cursor.ErrInvalidFormat
		}
		row, ok, err := store.FindOne[Block](ctx, c,
			"SELECT "+blockColumns+" FROM "+BlocksTable+" WHERE doc_id = ? LIMIT 1", id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cursor.ErrNotFound
		}
		return cursor.Tuple{int64(row.Height), row.DocID}, nil
	})

	return &cursor.Descriptor[Block]{
		SortFields: []string{"height", "doc_id"},
		Resolvers:  []cursor.Resolver{absolute, byHeight, byDocID},
		Fetch:      fetchBlocks(c),
		Sanitize: func(rows []Block) []Block {
			return store.StripID(rows, func(b *Block) { b.DocID = store.DocID{} })
		},
	}
}

// GetBlockByHeight is the supplementary single-block lookup (spec.md §8
// scenarios 1-2), outside the from/since cursor surface.
func GetBlockByHeight(ctx context.Context, c *store.Client, height uint64) (*Block, error) {
	row, ok, err := store.FindOne[Block](ctx, c, "SELECT "+blockColumns+" FROM "+BlocksTable+" WHERE height = ? LIMIT 1", height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cursor.ErrStoreError, err)
	}
	if !ok {
		if chainHeight, chErr := store.ChainHeight(ctx, c); chErr == nil && height > chainHeight {
			return nil, fmt.Errorf("chain height is too small: %w", cursor.ErrNotFound)
		}
		return nil, cursor.ErrNotFound
	}
	row.DocID = store.DocID{}
	return &row, nil
}

// GetBlockRange is the supplementary ascending block-range listing (spec.md
// §8 scenarios 3-6), a plain paged scan rather than a cursor.Descriptor
// page — it always starts at fromHeight and walks forward, with no anchor
// resolution.
func GetBlockRange(ctx context.Context, c *store.Client, fromHeight uint64, limit int) ([]Block, error) {
	rows, err := store.Find[Block](ctx, c,
		"SELECT "+blockColumns+" FROM "+BlocksTable+" WHERE height >= ? ORDER BY height ASC LIMIT ?", fromHeight, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cursor.ErrStoreError, err)
	}
	return store.StripID(rows, func(b *Block) { b.DocID = store.DocID{} }), nil
}

func fetchBlocks(c *store.Client) cursor.Fetch[Block] {
	return func(ctx context.Context, whereSQL string, args []any, limit int, ascending bool) ([]Block, error) {
		order := "DESC"
		if ascending {
			order = "ASC"
		}
		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY height %s, doc_id %s LIMIT ?",
			blockColumns, BlocksTable, whereSQL, order, order)
		args = append(args, limit)
		return store.Find[Block](ctx, c, query, args...)
	}
}
