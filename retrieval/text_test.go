package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lowercases and splits",
			input: "Titanium Grade 5",
			want:  []string{"titanium", "grade", "5"},
		},
		{
			name:  "trims punctuation",
			input: "What's the density of PEEK?",
			want:  []string{"what's", "the", "density", "of", "peek"},
		},
		{
			name:  "drops empty terms",
			input: "steel -- ... alloy",
			want:  []string{"steel", "alloy"},
		},
		{
			name:  "empty input",
			input: "   ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.input))
		})
	}
}
