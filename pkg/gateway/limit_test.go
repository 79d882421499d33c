package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLimitPolicyValidate exercises spec.md §8's three concrete
// pageSize/countRange scenarios (a below-Min request clamps to Min, an
// above-Max request clamps to Max, a zero request clamps to Min) plus the
// already-valid pass-through cases and an in-range but off-step request
// falling back to Preset.
func TestLimitPolicyValidate(t *testing.T) {
	policy := LimitPolicy{Min: 30, Max: 80, Step: 10, Preset: 30}

	tests := []struct {
		name          string
		requested     int
		wantCorrected int
		wantOK        bool
	}{
		{"below min clamps to min", 29, 30, false},
		{"above max clamps to max", 100, 80, false},
		{"zero clamps to min", 0, 30, false},
		{"already valid passes through", 40, 40, true},
		{"exactly min passes through", 30, 30, true},
		{"exactly max passes through", 80, 80, true},
		{"in range but off-step falls back to preset", 35, 30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corrected, ok := policy.Validate(tt.requested)
			assert.Equal(t, tt.wantCorrected, corrected)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestCountRangePolicyValidate(t *testing.T) {
	policy := LimitPolicy{Min: 1, Max: 100, Step: 1, Preset: 25}

	corrected, ok := policy.Validate(25)
	assert.True(t, ok)
	assert.Equal(t, 25, corrected)

	corrected, ok = policy.Validate(0)
	assert.False(t, ok)
	assert.Equal(t, 1, corrected)

	corrected, ok = policy.Validate(500)
	assert.False(t, ok)
	assert.Equal(t, 100, corrected)
}
