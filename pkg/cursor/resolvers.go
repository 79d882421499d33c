package cursor

import (
	"context"
	"encoding/hex"
	"strconv"
)

// NumericKeyResolver builds a Resolver for a base-10 numeric natural key
// (e.g. block height). Any string containing a non-digit is skipped so a
// later resolver (or the keyword/hex resolvers tried before it) gets a
// chance.
func NumericKeyResolver(lookup func(ctx context.Context, key uint64) (Tuple, error)) Resolver {
	return func(ctx context.Context, raw string) (Tuple, error) {
		if raw == "" {
			return nil, errSkip
		}
		for _, r := range raw {
			if r < '0' || r > '9' {
				return nil, errSkip
			}
		}
		key, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, errSkip
		}
		return lookup(ctx, key)
	}
}

// HexU64Resolver builds a Resolver for a fixed-length hex-encoded 64-bit
// natural key (mosaic id, namespace id).
func HexU64Resolver(hexLen int, lookup func(ctx context.Context, id uint64) (Tuple, error)) Resolver {
	return func(ctx context.Context, raw string) (Tuple, error) {
		if len(raw) != hexLen {
			return nil, errSkip
		}
		id, err := strconv.ParseUint(raw, 16, 64)
		if err != nil {
			return nil, errSkip
		}
		return lookup(ctx, id)
	}
}

// HexStringResolver builds a Resolver for a fixed-length hex-encoded
// opaque value compared as-is (transaction hash, document id).
func HexStringResolver(hexLen int, lookup func(ctx context.Context, raw string) (Tuple, error)) Resolver {
	return func(ctx context.Context, raw string) (Tuple, error) {
		if len(raw) != hexLen {
			return nil, errSkip
		}
		if _, err := hex.DecodeString(raw); err != nil {
			return nil, errSkip
		}
		return lookup(ctx, raw)
	}
}
