package scoring

import (
	"exam-proctor-be/internal/constant"
	"exam-proctor-be/internal/entity"
)

const BaseScore = 100

// Weights are the per-category deduction rules. Each accepted event of a
// category subtracts its weight from the base score.
var Weights = map[string]int{
	constant.CategoryFocusLost:      2,
	constant.CategoryNoFace:         3,
	constant.CategoryMultipleFaces:  5,
	constant.CategoryDeviceDetected: 7,
	constant.CategoryBooksDetected:  8,
	constant.CategoryPhoneDetected:  10,
}

// Engine turns a counter snapshot into a bounded integrity score.
// Pure and deterministic: same counters always yield the same score, and
// the result never depends on a previously stored score.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Score returns max(0, 100 - Σ count[c]*weight[c]). Always in [0,100].
func (e *Engine) Score(counters entity.CounterSnapshot) int {
	deduction := e.Deduction(counters)
	score := BaseScore - deduction
	if score < 0 {
		return 0
	}
	return score
}

// Deduction returns the total weighted deduction for a snapshot.
func (e *Engine) Deduction(counters entity.CounterSnapshot) int {
	deduction := 0
	for category, weight := range Weights {
		deduction += counters.ByCategory(category) * weight
	}
	return deduction
}
