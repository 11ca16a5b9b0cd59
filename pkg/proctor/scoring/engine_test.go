package scoring

import (
	"testing"

	"exam-proctor-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		counters entity.CounterSnapshot
		expected int
	}{
		{
			name:     "no events keeps the base score",
			counters: entity.CounterSnapshot{},
			expected: 100,
		},
		{
			name:     "single focus loss",
			counters: entity.CounterSnapshot{FocusLost: 1},
			expected: 98,
		},
		{
			name:     "mixed categories",
			counters: entity.CounterSnapshot{FocusLost: 2, PhoneDetected: 1},
			expected: 86,
		},
		{
			name:     "every category once",
			counters: entity.CounterSnapshot{FocusLost: 1, MultipleFaces: 1, NoFace: 1, PhoneDetected: 1, BooksDetected: 1, DeviceDetected: 1},
			expected: 65,
		},
		{
			name:     "deductions clamp at zero",
			counters: entity.CounterSnapshot{PhoneDetected: 11},
			expected: 0,
		},
		{
			name:     "exactly zero",
			counters: entity.CounterSnapshot{PhoneDetected: 10},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.Score(tt.counters))
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	engine := NewEngine()
	counters := entity.CounterSnapshot{FocusLost: 3, NoFace: 2, BooksDetected: 1}

	first := engine.Score(counters)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.Score(counters))
	}
}

func TestScoreStaysInBounds(t *testing.T) {
	engine := NewEngine()

	snapshots := []entity.CounterSnapshot{
		{},
		{FocusLost: 1000},
		{PhoneDetected: 500, BooksDetected: 500},
		{NoFace: 1},
	}

	for _, counters := range snapshots {
		score := engine.Score(counters)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, BaseScore)
	}
}

func TestDeduction(t *testing.T) {
	engine := NewEngine()

	assert.Equal(t, 0, engine.Deduction(entity.CounterSnapshot{}))
	assert.Equal(t, 35, engine.Deduction(entity.CounterSnapshot{FocusLost: 0, MultipleFaces: 1, NoFace: 0, PhoneDetected: 3}))
}
