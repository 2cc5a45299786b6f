package emailblocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractGeneratedContent(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected GeneratedContent
	}{
		{
			name:     "subject line and body",
			output:   "Subject: Welcome aboard\nThanks for joining us.",
			expected: GeneratedContent{Subject: "Welcome aboard", HasSubject: true, BodyHTML: "<p>Thanks for joining us.</p>"},
		},
		{
			name:     "case insensitive label",
			output:   "SUBJECT: Big news\n\nLine one\nLine two",
			expected: GeneratedContent{Subject: "Big news", HasSubject: true, BodyHTML: "<p>Line one</p><p>Line two</p>"},
		},
		{
			name:     "body only",
			output:   "  Hello there  ",
			expected: GeneratedContent{BodyHTML: "<p>Hello there</p>"},
		},
		{
			name:     "subject only",
			output:   "Subject: Just a subject",
			expected: GeneratedContent{Subject: "Just a subject", HasSubject: true},
		},
		{
			name:     "other labels are not subjects",
			output:   "Title: Hello\nBody",
			expected: GeneratedContent{BodyHTML: "<p>Title: Hello</p><p>Body</p>"},
		},
		{
			name:     "labels after the keyword are kept",
			output:   "Subject Line: Hello\nBody",
			expected: GeneratedContent{Subject: "Line: Hello", HasSubject: true, BodyHTML: "<p>Body</p>"},
		},
		{
			name:     "empty output",
			output:   "",
			expected: GeneratedContent{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractGeneratedContent(tt.output))
		})
	}
}
