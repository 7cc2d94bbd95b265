package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare object",
			content: `{"text": "hello"}`,
			want:    `{"text": "hello"}`,
		},
		{
			name:    "json fence",
			content: "```json\n{\"text\": \"hello\"}\n```",
			want:    `{"text": "hello"}`,
		},
		{
			name:    "plain fence",
			content: "```\n{\"text\": \"hello\"}\n```",
			want:    `{"text": "hello"}`,
		},
		{
			name:    "surrounding whitespace",
			content: "  \n{\"text\": \"hello\"}\n  ",
			want:    `{"text": "hello"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.content))
		})
	}
}
