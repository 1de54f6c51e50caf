package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "trims whitespace", input: []string{" pending ", "paid "}, expected: []string{"pending", "paid"}},
		{name: "drops empty parts", input: []string{"pending", "", "  ", "paid"}, expected: []string{"pending", "paid"}},
		{name: "keeps first occurrence", input: []string{"paid", "pending", "paid"}, expected: []string{"paid", "pending"}},
		{name: "case is significant", input: []string{"inEscrow", "inescrow"}, expected: []string{"inEscrow", "inescrow"}},
		{name: "only blanks", input: []string{"", " "}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
