package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar_Percent(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{4, 4, 1},
		{6, 4, 1},
		{-1, 4, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NewProgressBar("", tt.done, tt.total, 40).Percent(), 1e-9)
	}
}

func TestProgressBar_ViewShowsCounter(t *testing.T) {
	view := NewProgressBar("Units", 2, 5, 40).View()
	assert.Contains(t, view, "Units")
	assert.Contains(t, view, "2/5")
}
