package harness

import (
	"fmt"
	"slices"
)

// checkExpect compares r against e and records every mismatch on r.
// Error codes must match exactly. A run that failed has no numbers to
// compare.
func checkExpect(r *Result, e Expect) {
	if e.Error != "" || r.ErrorCode != "" {
		if r.ErrorCode != e.Error {
			r.AddError(fmt.Sprintf("error: expected %s, got %s", orNone(e.Error), orNone(r.ErrorCode)))
		}
		if r.ErrorCode != "" {
			return
		}
	}

	checkInt("low", e.Low, r.Low, r)
	checkInt("high", e.High, r.High, r)
	checkInt("product", e.Product, r.Product, r)

	if e.Answer != nil && *e.Answer != r.Answer {
		r.AddError(fmt.Sprintf("answer: expected %d, got %d", *e.Answer, r.Answer))
	}
	if len(e.Periods) > 0 {
		if got := r.PeriodValues(); !slices.Equal(got, e.Periods) {
			r.AddError(fmt.Sprintf("periods: expected %v, got %v", e.Periods, got))
		}
	}
}

func checkInt(field string, want *int64, got int64, r *Result) {
	if want != nil && *want != got {
		r.AddError(fmt.Sprintf("%s: expected %d, got %d", field, *want, got))
	}
}

func orNone(code string) string {
	if code == "" {
		return "no error"
	}
	return code
}
