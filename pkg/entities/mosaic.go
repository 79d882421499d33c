package entities

import (
	"context"
	"fmt"

	"github.com/symbol-chain/catapult-gateway/pkg/cursor"
	"github.com/symbol-chain/catapult-gateway/pkg/store"
)

// MosaicsTable is the collection named in spec.md §6.3.
const MosaicsTable = "mosaics"

// Mosaic is a row of the mosaics collection.
type Mosaic struct {
	DocID       store.DocID `ch:"doc_id" json:"-"`
	MosaicID    uint64      `ch:"mosaic_id" json:"mosaicId"`
	StartHeight uint64      `ch:"start_height" json:"startHeight"`
	OwnerAddr   string      `ch:"owner_address" json:"ownerAddress"`
}

const mosaicColumns = "doc_id, mosaic_id, start_height, owner_address"

// NewMosaicDescriptor builds the mosaic entity's cursor.Descriptor. Mosaics
// sort by (startHeight, _id), the two-clause collapse of the general
// range-condition walk noted in spec.md §4.2.3.
func NewMosaicDescriptor(c *store.Client) *cursor.Descriptor[Mosaic] {
	minTuple := cursor.Tuple{store.MinLong, store.MinDocID}
	maxTuple := cursor.Tuple{store.MaxLong, store.MaxDocID}

	absolute := cursor.AbsoluteResolver(map[string]cursor.AnchorFunc{
		"earliest": func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
		"least":    func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
		"latest":   func(context.Context) (cursor.Tuple, error) { return maxTuple, nil },
		"most":     func(context.Context) (cursor.Tuple, error) { return maxTuple, nil },
	})

	byID := cursor.HexU64Resolver(16, func(ctx context.Context, id uint64) (cursor.Tuple, error) {
		row, ok, err := store.FindOne[Mosaic](ctx, c,
			"SELECT "+mosaicColumns+" FROM "+MosaicsTable+" WHERE mosaic_id = ? LIMIT 1", id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cursor.ErrNotFound
		}
		return cursor.Tuple{int64(row.StartHeight), row.DocID}, nil
	})

	byDocID := cursor.HexStringResolver(24, func(ctx context.Context, raw string) (cursor.Tuple, error) {
		id, err := store.ParseDocID(raw)
		if err != nil {
			return nil, cursor.ErrInvalidFormat
		}
		row, ok, err := store.FindOne[Mosaic](ctx, c,
			"SELECT "+mosaicColumns+" FROM "+MosaicsTable+" WHERE doc_id = ? LIMIT 1", id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cursor.ErrNotFound
		}
		return cursor.Tuple{int64(row.StartHeight), row.DocID}, nil
	})

	return &cursor.Descriptor[Mosaic]{
		SortFields: []string{"start_height", "doc_id"},
		Resolvers:  []cursor.Resolver{absolute, byID, byDocID},
		Fetch:      fetchMosaics(c),
		Sanitize: func(rows []Mosaic) []Mosaic {
			return store.StripID(rows, func(m *Mosaic) { m.DocID = store.DocID{} })
		},
	}
}

func fetchMosaics(c *store.Client) cursor.Fetch[Mosaic] {
	return func(ctx context.Context, whereSQL string, args []any, limit int, ascending bool) ([]Mosaic, error) {
		order := "DESC"
		if ascending {
			order = "ASC"
		}
		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY start_height %s, doc_id %s LIMIT ?",
			mosaicColumns, MosaicsTable, whereSQL, order, order)
		args = append(args, limit)
		return store.Find[Mosaic](ctx, c, query, args...)
	}
}
