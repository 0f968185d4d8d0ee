package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject returns the first balanced {...} span of text that
// decodes as JSON. Braces inside string literals are not counted, so nested
// objects and prose around the payload are both handled. A span that never
// closes ends the search; a closed span that is not JSON is skipped whole.
func ExtractJSONObject(text string) (string, error) {
	offset := 0
	for {
		start := strings.IndexByte(text[offset:], '{')
		if start < 0 {
			return "", fmt.Errorf("%w: no JSON object found", ErrExtraction)
		}
		start += offset

		end, ok := matchBrace(text, start)
		if !ok {
			return "", fmt.Errorf("%w: unbalanced JSON object at offset %d", ErrExtraction, start)
		}

		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
		offset = end + 1
	}
}

// matchBrace returns the index of the brace closing the one at start.
func matchBrace(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
