// Package cursor implements the cursor query engine: the entity-agnostic
// machinery that pages any collection (blocks, transactions, mosaics,
// namespaces, accounts) bidirectionally from an anchor over a composite,
// possibly-computed sort key.
//
// The design deliberately avoids the source system's string-concatenated
// method dispatch ('transactions' + duration + 'Earliest') and inheritance
// hierarchy (NamespaceDb/MosaicDb extending a shared base). Direction and
// anchor kind are tagged sum types dispatched through exhaustive switches,
// and an entity is nothing more than a composed Descriptor value — there is
// no base type to override.
package cursor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Direction selects which side of the anchor a page is drawn from. Both
// directions return results in descending sort-key order; Since walks the
// ascending range internally and reverses before returning (§4.2.4).
type Direction int

const (
	From Direction = iota
	Since
)

func (d Direction) String() string {
	if d == Since {
		return "since"
	}
	return "from"
}

// Tuple is an anchor resolved to a concrete point in an entity's composite
// sort order — one value per sort field, in sort-field order.
type Tuple []any

// Sentinel errors crossing the engine boundary (spec.md §7). Wrapped, never
// replaced, so the underlying cause survives errors.Is/errors.Unwrap.
var (
	ErrInvalidFormat = errors.New("cursor: invalid anchor format")
	ErrNotFound      = errors.New("cursor: anchor not found")
	ErrStoreError    = errors.New("cursor: store error")
)

// errSkip is an internal-only sentinel: it tells resolveAnchor "this
// resolver's syntax does not match, try the next one". It never crosses the
// package boundary.
var errSkip = errors.New("cursor: resolver does not accept this key syntax")

// AnchorFunc resolves one absolute keyword (or a natural key/opaque
// id/account key once already recognized) to its anchor tuple.
type AnchorFunc func(ctx context.Context) (Tuple, error)

// Resolver attempts to interpret a raw anchor string. It returns errSkip if
// the string's syntax does not belong to this resolver's key kind, letting
// the engine try the next resolver in the descriptor's fixed order
// (spec.md §4.3).
type Resolver func(ctx context.Context, raw string) (Tuple, error)

// Fetch executes the entity's underlying store query for the given range
// condition and returns rows in the requested order. ascending is true for
// Since (which needs the nearest-following window before the engine
// reverses it) and false for From.
type Fetch[T any] func(ctx context.Context, whereSQL string, args []any, limit int, ascending bool) ([]T, error)

// Descriptor is the entity descriptor of spec.md §3.2: everything the
// engine needs to page one entity collection, composed rather than
// inherited.
type Descriptor[T any] struct {
	// SortFields are the SQL column/expression names of the composite sort
	// key, in order; the last one is always the document id column.
	SortFields []string

	// Resolvers are tried in order for every anchor string; the first
	// non-skip result wins.
	Resolvers []Resolver

	// Fetch executes the entity's store query (a plain find for flat
	// entities, an addFields/match/sort/project/limit aggregation for
	// entities with computed sort fields).
	Fetch Fetch[T]

	// Sanitize applies the entity's fixed post-processor (stripId or
	// promoteIdToMeta) to a fetched page. May be nil.
	Sanitize func([]T) []T
}

// AbsoluteResolver builds a Resolver from a keyword→tuple-function map. Any
// string not present in the map is skipped so later resolvers get a turn.
func AbsoluteResolver(anchors map[string]AnchorFunc) Resolver {
	return func(ctx context.Context, raw string) (Tuple, error) {
		fn, ok := anchors[raw]
		if !ok {
			return nil, errSkip
		}
		return fn(ctx)
	}
}

// resolveAnchor tries each resolver in the descriptor's fixed order and
// returns the first that accepts the input, per spec.md §4.3.
func (d *Descriptor[T]) resolveAnchor(ctx context.Context, raw string) (Tuple, error) {
	for _, resolve := range d.Resolvers {
		tuple, err := resolve(ctx, raw)
		if errors.Is(err, errSkip) {
			continue
		}
		return tuple, err
	}
	return nil, ErrInvalidFormat
}

// From returns at most n documents strictly preceding anchor, in
// descending sort-key order.
func (d *Descriptor[T]) From(ctx context.Context, anchor string, n int) ([]T, error) {
	return d.page(ctx, anchor, n, From)
}

// Since returns at most n documents strictly following anchor, in
// descending sort-key order.
func (d *Descriptor[T]) Since(ctx context.Context, anchor string, n int) ([]T, error) {
	return d.page(ctx, anchor, n, Since)
}

func (d *Descriptor[T]) page(ctx context.Context, anchor string, n int, dir Direction) ([]T, error) {
	if n <= 0 {
		return []T{}, nil
	}

	tuple, err := d.resolveAnchor(ctx, anchor)
	if err != nil {
		return nil, classify(err)
	}

	whereSQL, args := BuildRangeCondition(d.SortFields, tuple, dir)

	rows, err := d.Fetch(ctx, whereSQL, args, n, dir == Since)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreError, err)
	}

	if dir == Since {
		reverseInPlace(rows)
	}

	if d.Sanitize != nil {
		rows = d.Sanitize(rows)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// classify wraps a resolver error with the appropriate sentinel unless it
// already carries one, so callers of From/Since always see one of
// ErrInvalidFormat/ErrNotFound/ErrStoreError.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrNotFound), errors.Is(err, ErrStoreError):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStoreError, err)
	}
}

// BuildRangeCondition builds the mandatory lexicographic OR-of-ANDs range
// predicate over fields for the resolved anchor tuple (spec.md §4.2.3):
//
//	(f1 < a1) OR (f1 = a1 AND f2 < a2) OR … OR (f1=a1 AND … AND f_{k-1}=a_{k-1} AND fk < ak)
//
// with '>' substituted for Since. This collapses to exactly two clauses
// when len(fields) == 2, matching the source's own blocks/mosaics/
// namespaces shortcut, without any entity-specific range-condition code.
func BuildRangeCondition(fields []string, tuple Tuple, dir Direction) (string, []any) {
	op := "<"
	if dir == Since {
		op = ">"
	}

	clauses := make([]string, 0, len(fields))
	var args []any
	for i := range fields {
		parts := make([]string, 0, i+1)
		for j := 0; j < i; j++ {
			parts = append(parts, fields[j]+" = ?")
			args = append(args, tuple[j])
		}
		parts = append(parts, fields[i]+" "+op+" ?")
		args = append(args, tuple[i])
		clauses = append(clauses, "("+strings.Join(parts, " AND ")+")")
	}
	return strings.Join(clauses, " OR "), args
}

func reverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
