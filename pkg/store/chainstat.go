package store

import "context"

// ChainStatisticTable is the collection named in spec.md §6.3.
const ChainStatisticTable = "chain_statistic"

// ChainHeight reads the current chain tip height fresh from the
// chainStatistic collection. It is never cached: entities with
// dependsOnChainStatistic set must re-read it on every latest/most
// resolution (spec.md §4.2.7, SPEC_FULL.md §10), since the design permits
// the value to change between calls.
func ChainHeight(ctx context.Context, c *Client) (uint64, error) {
	row := c.QueryRow(ctx, "SELECT height FROM "+ChainStatisticTable+" ORDER BY height DESC LIMIT 1")
	var height uint64
	if err := row.Scan(&height); err != nil {
		return 0, err
	}
	return height, nil
}
