package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "Object surrounded by prose",
			text: `Here is the JSON: {"project":{"name":"X"}} thanks!`,
			want: `{"project":{"name":"X"}}`,
		},
		{
			name: "Markdown fenced object",
			text: "```json\n{\"project\": {\"name\": \"Budget Plan\"}}\n```",
			want: `{"project": {"name": "Budget Plan"}}`,
		},
		{
			name: "Trailing object is not swallowed",
			text: `{"a":1} and later {"b":2}`,
			want: `{"a":1}`,
		},
		{
			name: "Braces inside strings are ignored",
			text: `note {"text":"use } and { freely","n":"\"}"} end`,
			want: `{"text":"use } and { freely","n":"\"}"}`,
		},
		{
			name: "Invalid first span falls through to the next object",
			text: `{not json} then {"project":{"name":"Y"}}`,
			want: `{"project":{"name":"Y"}}`,
		},
		{
			name: "Invalid span with nested braces is skipped whole",
			text: `{bad {"name": "inner"}} {"project":{"name":"Z"}}`,
			want: `{"project":{"name":"Z"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("No object returns extraction error", func(t *testing.T) {
		_, err := ExtractJSONObject("I could not find any meetings.")
		assert.ErrorIs(t, err, ErrExtraction)
	})

	t.Run("Only unbalanced braces returns extraction error", func(t *testing.T) {
		_, err := ExtractJSONObject(`{"project": {"name": "X"}`)
		assert.ErrorIs(t, err, ErrExtraction)
	})

	t.Run("Truncated output does not yield an inner object", func(t *testing.T) {
		_, err := ExtractJSONObject(`{"project": {"name": "Budget Plan", "url": "https://x.org"}, "meetings": [{"title": "Q1", "topics": [{"name": "Fund`)
		assert.ErrorIs(t, err, ErrExtraction)
	})

	t.Run("Many unmatched openers fail fast", func(t *testing.T) {
		start := time.Now()
		_, err := ExtractJSONObject(strings.Repeat("{", 200000))
		assert.ErrorIs(t, err, ErrExtraction)
		assert.Less(t, time.Since(start), time.Second)
	})
}
