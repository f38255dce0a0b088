package components

import (
	"strings"
	"testing"
)

func TestProgressBarFraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{0, 5, 0},
		{2, 4, 0.5},
		{5, 5, 1},
		{7, 5, 1},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.done, tt.total, 40).Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBarView(t *testing.T) {
	view := NewProgressBar("Answered", 3, 5, 40).View()
	if !strings.Contains(view, "Answered") || !strings.Contains(view, "3/5") {
		t.Errorf("unexpected view %q", view)
	}
}
