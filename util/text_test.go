package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"water plants", 20, "water plants"},
		{"water plants", 12, "water plants"},
		{"water plants", 6, "water…"},
		{"héllo", 3, "hé…"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateText(tt.in, tt.width), "%q/%d", tt.in, tt.width)
	}
}
