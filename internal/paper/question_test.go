package paper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in     string
		want   Difficulty
		wantOK bool
	}{
		{"Easy", Easy, true},
		{"medium", Medium, true},
		{" HARD ", Hard, true},
		{"Expert", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDifficulty(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestNormalizeDifficulty(t *testing.T) {
	assert.Equal(t, Hard, NormalizeDifficulty("hard"))
	assert.Equal(t, Medium, NormalizeDifficulty("impossible"))
	assert.Equal(t, Medium, NormalizeDifficulty(""))
}

func TestDifficultyValid(t *testing.T) {
	assert.True(t, Easy.Valid())
	assert.False(t, Difficulty("easy").Valid())
	assert.False(t, Difficulty("").Valid())
}

func TestQuestionLine(t *testing.T) {
	q := Question{Unit: "Unit 2", Text: "Explain deadlock.", Marks: 6, Difficulty: Hard}
	assert.Equal(t, "3. [6M] (Hard) Explain deadlock. — Unit 2", q.Line(3))
}

func TestTotalMarks(t *testing.T) {
	assert.Equal(t, 0, TotalMarks(nil))
	assert.Equal(t, 10, TotalMarks([]Question{{Marks: 4}, {Marks: 6}}))
}
