package entities

import (
	"context"
	"fmt"

	"github.com/symbol-chain/catapult-gateway/pkg/cursor"
	"github.com/symbol-chain/catapult-gateway/pkg/store"
)

// Namespace is a row of the namespaces collection.
type Namespace struct {
	DocID         store.DocID `ch:"doc_id" json:"-"`
	NamespaceID   uint64      `ch:"namespace_id" json:"namespaceId"`
	StartHeight   uint64      `ch:"start_height" json:"startHeight"`
	OwnerAddr     string      `ch:"owner_address" json:"ownerAddress"`
	AliasMosaicID uint64      `ch:"alias_mosaic_id" json:"aliasMosaicId,omitempty"`
}

const namespaceColumns = "doc_id, namespace_id, start_height, owner_address, alias_mosaic_id"

// NewNamespaceDescriptor builds the namespace entity's cursor.Descriptor.
// Shares its shape with mosaics: sort by (startHeight, _id).
func NewNamespaceDescriptor(c *store.Client) *cursor.Descriptor[Namespace] {
	minTuple := cursor.Tuple{store.MinLong, store.MinDocID}
	maxTuple := cursor.Tuple{store.MaxLong, store.MaxDocID}

	absolute := cursor.AbsoluteResolver(map[string]cursor.AnchorFunc{
		"earliest": func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
		"least":    func(context.Context) (cursor.Tuple, error) { return minTuple, nil },
		"latest":   func(context.Context) (cursor.Tuple, error) { return maxTuple, nil },
		"most":     func(context.Context) (cursor.Tuple, error) { return maxTuple, nil },
	})

	byID := cursor.HexU64Resolver(16, func(ctx context.Context, id uint64) (cursor.Tuple, error) {
		row, ok, err := store.FindOne[Namespace](ctx, c,
			"SELECT "+namespaceColumns+" FROM "+NamespacesTable+" WHERE namespace_id = ? LIMIT 1", id)
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
		row, ok, err := store.FindOne[Namespace](ctx, c,
			"SELECT "+namespaceColumns+" FROM "+NamespacesTable+" WHERE doc_id = ? LIMIT 1", id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cursor.ErrNotFound
		}
		return cursor.Tuple{int64(row.StartHeight), row.DocID}, nil
	})

	return &cursor.Descriptor[Namespace]{
		SortFields: []string{"start_height", "doc_id"},
		Resolvers:  []cursor.Resolver{absolute, byID, byDocID},
		Fetch:      fetchNamespaces(c),
		Sanitize: func(rows []Namespace) []Namespace {
			return store.StripID(rows, func(n *Namespace) { n.DocID = store.DocID{} })
		},
	}
}

func fetchNamespaces(c *store.Client) cursor.Fetch[Namespace] {
	return func(ctx context.Context, whereSQL string, args []any, limit int, ascending bool) ([]Namespace, error) {
		order := "DESC"
		if ascending {
			order = "ASC"
		}
		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY start_height %s, doc_id %s LIMIT ?",
			namespaceColumns, NamespacesTable, whereSQL, order, order)
		args = append(args, limit)
		return store.Find[Namespace](ctx, c, query, args...)
	}
}
