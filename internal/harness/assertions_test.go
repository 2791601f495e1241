package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/pulsenet/internal/analysis"
)

func TestCheckExpect(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		expect Expect
		want   []string
	}{
		{
			name:   "all unset",
			result: Result{Low: 1, High: 2},
			want:   nil,
		},
		{
			name:   "low mismatch",
			result: Result{Low: 1},
			expect: Expect{Low: int64p(2)},
			want:   []string{"low: expected 2, got 1"},
		},
		{
			name:   "answer mismatch",
			result: Result{Answer: 60},
			expect: Expect{Answer: uint64p(61)},
			want:   []string{"answer: expected 61, got 60"},
		},
		{
			name: "periods mismatch",
			result: Result{Periods: []analysis.Period{
				{Node: "x", Period: 3},
				{Node: "y", Period: 4},
			}},
			expect: Expect{Periods: []uint64{3, 5}},
			want:   []string{"periods: expected [3 5], got [3 4]"},
		},
		{
			name:   "error matches",
			result: Result{ErrorCode: "NON_PERIODIC_FEEDER"},
			expect: Expect{Error: "NON_PERIODIC_FEEDER", Low: int64p(5)},
			want:   nil,
		},
		{
			name:   "wrong error",
			result: Result{ErrorCode: "UNREACHABLE_TARGET"},
			expect: Expect{Error: "NON_PERIODIC_FEEDER"},
			want:   []string{"error: expected NON_PERIODIC_FEEDER, got UNREACHABLE_TARGET"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.result
			r.Pass = true
			checkExpect(&r, tt.expect)
			assert.Equal(t, tt.want, r.Errors)
			assert.Equal(t, len(tt.want) == 0, r.Pass)
		})
	}
}
