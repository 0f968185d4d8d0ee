package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		contentType string
		want        string
	}{
		{
			name: "Strips script, style and noscript",
			html: `<html><head><title>Council</title><style>p {color: red}</style></head>
				<body><script>var x = "{}";</script><noscript>Enable JS</noscript>
				<h1>Budget   Plan</h1><p>Meeting on<br>2024-01-10</p></body></html>`,
			want: "Council Budget Plan Meeting on 2024-01-10",
		},
		{
			name: "Separates adjacent elements",
			html: `<ul><li>Funding</li><li>Parks</li></ul>`,
			want: "Funding Parks",
		},
		{
			name: "Empty document",
			html: ``,
			want: "",
		},
		{
			name:        "Decodes declared charset",
			html:        "<p>Caf\xe9</p>",
			contentType: "text/html; charset=iso-8859-1",
			want:        "Café",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanHTML(strings.NewReader(tt.html), tt.contentType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Decodes meta charset", func(t *testing.T) {
		var buf bytes.Buffer
		buf.WriteString(`<html><head><meta charset="windows-1252"></head><body>`)
		buf.WriteByte(0x93)
		buf.WriteString("quoted")
		buf.WriteByte(0x94)
		buf.WriteString(`</body></html>`)

		got, err := CleanHTML(&buf, "text/html")
		require.NoError(t, err)
		assert.Equal(t, "“quoted”", got)
	})
}
