package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase passthrough",
			input:    "netflix",
			expected: "netflix",
		},
		{
			name:     "uppercase and digits stripped",
			input:    "NETFLIX 123",
			expected: "netflix",
		},
		{
			name:     "punctuation stripped",
			input:    "netflix!",
			expected: "netflix",
		},
		{
			name:     "store number stripped and trimmed",
			input:    "Coffee Shop #42",
			expected: "coffee shop",
		},
		{
			name:     "interior whitespace preserved",
			input:    "Migros  Supermarket",
			expected: "migros  supermarket",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \t ",
			expected: "",
		},
		{
			name:     "digits and symbols only",
			input:    "12345-#!",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDescription(tt.input))
		})
	}
}

func TestNormalizeDescriptionDeterministic(t *testing.T) {
	input := "Café #42 Downtown"
	assert.Equal(t, NormalizeDescription(input), NormalizeDescription(input))
}
