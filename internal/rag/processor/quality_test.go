package processor

import (
	"strings"
	"testing"
)

func TestIsAcceptable(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected bool
	}{
		{
			name:     "normal paragraph",
			content:  "this paragraph carries enough substance to be worth storing.",
			expected: true,
		},
		{
			name:     "too short",
			content:  "tiny fragment",
			expected: false,
		},
		{
			name:     "too long",
			content:  strings.Repeat("a", 3001),
			expected: false,
		},
		{
			name:     "whitespace only",
			content:  "   \n\t  ",
			expected: false,
		},
		{
			name:     "punctuation only",
			content:  "--- *** !!! ??? ... --- *** !!! ??? ...",
			expected: false,
		},
		{
			name:     "page marker",
			content:  "Page 12 some trailing text copied along with the page footer",
			expected: false,
		},
		{
			name:     "chapter marker case insensitive",
			content:  "CHAPTER 3 introduction to the wider topic of the document",
			expected: false,
		},
		{
			name:     "copyright line",
			content:  "© 2024 Example Corp. Some boilerplate legal text follows here.",
			expected: false,
		},
		{
			name:     "all rights reserved footer",
			content:  "All rights reserved. Reproduction without permission is prohibited.",
			expected: false,
		},
		{
			name:     "confidential stamp",
			content:  "Confidential - internal distribution only, do not forward this.",
			expected: false,
		},
		{
			name:     "length boundary is inclusive",
			content:  strings.Repeat("b", 30),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAcceptable(tt.content); got != tt.expected {
				t.Errorf("IsAcceptable(%q) = %v; want %v", tt.content, got, tt.expected)
			}
		})
	}
}
