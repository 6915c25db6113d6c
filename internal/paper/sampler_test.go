package paper

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *Sampler {
	return NewSampler(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func pool(marks ...int) []Question {
	qs := make([]Question, len(marks))
	for i, m := range marks {
		qs[i] = Question{ID: int64(i + 1), Unit: "Unit 1", Text: fmt.Sprintf("Q%d", i+1), Marks: m, Difficulty: Medium}
	}
	return qs
}

func TestSample_FourFourSixSixTargetTen(t *testing.T) {
	p := pool(4, 4, 6, 6)

	exact := false
	for seed := range uint64(50) {
		selected, total := seeded(seed).Sample(10, []int{4, 6}, p)

		require.NotEmpty(t, selected)
		assert.GreaterOrEqual(t, total, 10, "seed %d", seed)
		assert.LessOrEqual(t, total, 16, "seed %d", seed)
		assert.Equal(t, TotalMarks(selected), total)
		assert.LessOrEqual(t, len(selected), 3)
		if len(selected) == 2 && total == 10 {
			exact = true
		}
	}
	assert.True(t, exact, "no seed produced one 4 and one 6")
}

func TestSample_Invariants(t *testing.T) {
	p := pool(2, 2, 2, 4, 4, 6, 6, 6, 6, 8, 10)
	allowed := []int{2, 6}

	for seed := range uint64(100) {
		selected, total := seeded(seed).Sample(20, allowed, p)

		seen := map[int64]bool{}
		for _, q := range selected {
			assert.Contains(t, allowed, q.Marks)
			assert.False(t, seen[q.ID], "question %d selected twice", q.ID)
			seen[q.ID] = true
		}
		assert.Equal(t, TotalMarks(selected), total)
	}
}

func TestSample_OvershootIsAtMostOneQuestion(t *testing.T) {
	p := pool(2, 4, 6, 2, 4, 6, 2, 4, 6)

	for seed := range uint64(100) {
		selected, total := seeded(seed).Sample(11, []int{2, 4, 6}, p)
		require.NotEmpty(t, selected)
		last := selected[len(selected)-1]
		assert.Less(t, total-last.Marks, 11, "seed %d: stopped too late", seed)
	}
}

func TestSample_PoolExhaustedBeforeTarget(t *testing.T) {
	p := pool(4, 6, 2)

	selected, total := seeded(1).Sample(100, []int{4, 6}, p)
	assert.Len(t, selected, 2)
	assert.Equal(t, 10, total)
}

func TestSample_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		target  int
		allowed []int
		pool    []Question
	}{
		{"empty pool", 10, []int{4, 6}, nil},
		{"empty allowed", 10, nil, pool(4, 6)},
		{"no usable buckets", 10, []int{2}, pool(4, 6)},
		{"zero target", 0, []int{4, 6}, pool(4, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, total := seeded(7).Sample(tt.target, tt.allowed, tt.pool)
			assert.Empty(t, selected)
			assert.Zero(t, total)
		})
	}
}

func TestSample_DuplicateAllowedValues(t *testing.T) {
	selected, total := seeded(3).Sample(100, []int{4, 4, 6}, pool(4, 6))
	assert.Len(t, selected, 2)
	assert.Equal(t, 10, total)
}

func TestSample_Deterministic(t *testing.T) {
	p := pool(2, 2, 4, 4, 6, 6, 2, 4, 6)

	a, totalA := seeded(42).Sample(14, []int{2, 4, 6}, p)
	b, totalB := seeded(42).Sample(14, []int{2, 4, 6}, p)
	assert.Equal(t, a, b)
	assert.Equal(t, totalA, totalB)
}

func TestSample_DoesNotMutatePool(t *testing.T) {
	p := pool(4, 4, 6, 6)
	before := append([]Question(nil), p...)

	_, _ = seeded(9).Sample(10, []int{4, 6}, p)
	assert.Equal(t, before, p)
}

func TestSample_PackageFunc(t *testing.T) {
	selected, total := Sample(8, []int{4}, pool(4, 4, 4))
	assert.Len(t, selected, 2)
	assert.Equal(t, 8, total)
}
