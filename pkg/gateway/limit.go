package gateway

import "github.com/symbol-chain/catapult-gateway/pkg/utils"

// LimitPolicy is spec.md §6.2's pageSize/countRange configuration group,
// generalized into one shape shared by both the supplementary block-range
// endpoint (pageSize.*) and the cursor from/since endpoints (countRange.*):
// a requested limit outside [Min, Max] clamps to the nearest bound
// (scenarios 4-5), one that lands inside the range but off the Step grid
// falls back to Preset (scenario 6, where the requested 0 is below Min and
// clamps; Preset covers the step-misaligned case the scenarios don't spell
// out but the config table's separate Step and Preset fields imply).
type LimitPolicy struct {
	Min, Max, Step, Preset int
}

// Validate returns the limit to use and whether requested was already
// valid. When it returns false, the caller must redirect to the corrected
// value rather than serve the request (spec.md §6.1: 302, not clamp-and-200).
func (p LimitPolicy) Validate(requested int) (corrected int, ok bool) {
	switch {
	case requested < p.Min:
		return p.Min, false
	case requested > p.Max:
		return p.Max, false
	case p.Step > 0 && (requested-p.Min)%p.Step != 0:
		return p.Preset, false
	default:
		return requested, true
	}
}

// PageSizePolicyFromEnv reads pageSize.{min,max,step} (spec.md §6.2),
// governing the supplementary non-cursor block-range endpoint.
func PageSizePolicyFromEnv() LimitPolicy {
	return LimitPolicy{
		Min:    utils.EnvInt("PAGE_SIZE_MIN", 30),
		Max:    utils.EnvInt("PAGE_SIZE_MAX", 80),
		Step:   utils.EnvInt("PAGE_SIZE_STEP", 10),
		Preset: utils.EnvInt("PAGE_SIZE_PRESET", 30),
	}
}

// CountRangePolicyFromEnv reads countRange.{min,max,preset} (spec.md
// §6.2), governing every cursor from/since endpoint.
func CountRangePolicyFromEnv() LimitPolicy {
	return LimitPolicy{
		Min:    utils.EnvInt("COUNT_RANGE_MIN", 1),
		Max:    utils.EnvInt("COUNT_RANGE_MAX", 100),
		Step:   utils.EnvInt("COUNT_RANGE_STEP", 1),
		Preset: utils.EnvInt("COUNT_RANGE_PRESET", 25),
	}
}
