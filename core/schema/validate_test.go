package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, payload string) interface{} {
	t.Helper()
	var raw interface{}
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestValidate(t *testing.T) {
	t.Run("Valid call Validate", func(t *testing.T) {
		raw := decodeRaw(t, `{
			"project": {"name": "Budget Plan", "url": "https://example.org"},
			"meetings": [{
				"title": "Q1 Review", "date": "2024-01-10", "type": "regular",
				"committee": {"name": "Finance", "hasVotingPower": "yes"},
				"topics": [{"name": "Funding", "category": "budget"}],
				"documents": [{"title": "Draft", "url": "https://example.org/d.pdf"}],
				"statements": [{"text": "Approved.", "speaker": "Chair"}]
			}]
		}`)

		record, err := Validate(raw)
		require.NoError(t, err, "Expected Validate to not return an error")
		assert.Equal(t, "Budget Plan", record.Project.Name)
		require.NotNil(t, record.Project.URL)
		assert.Equal(t, "https://example.org", *record.Project.URL)
		assert.Nil(t, record.Project.Description, "Expected absent description to be nil")

		require.Len(t, record.Meetings, 1)
		m := record.Meetings[0]
		assert.Equal(t, "Q1 Review", m.Title)
		assert.Equal(t, "2024-01-10", m.Date)
		require.NotNil(t, m.Committee)
		require.NotNil(t, m.Committee.HasVotingPower)
		assert.True(t, *m.Committee.HasVotingPower)
		require.Len(t, m.Topics, 1)
		assert.Equal(t, "Funding", *m.Topics[0].Name)
		require.Len(t, m.Documents, 1)
		assert.Nil(t, m.Documents[0].Type)
		require.Len(t, m.Statements, 1)
		assert.Equal(t, "Chair", *m.Statements[0].Speaker)
	})

	t.Run("Invalid call Validate with non-object", func(t *testing.T) {
		for _, raw := range []interface{}{nil, "text", 42.0, []interface{}{}} {
			_, err := Validate(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchema)
			assert.Contains(t, err.Error(), "not an object")
		}
	})

	t.Run("Invalid call Validate without project name", func(t *testing.T) {
		payloads := []string{
			`{}`,
			`{"project": "Budget Plan"}`,
			`{"project": {}}`,
			`{"project": {"name": ""}}`,
			`{"project": {"name": "   "}}`,
			`{"project": {"name": null}, "meetings": [{"title": "Q1", "date": "2024"}]}`,
		}
		for _, payload := range payloads {
			_, err := Validate(decodeRaw(t, payload))
			require.Error(t, err, "payload %s", payload)
			assert.ErrorIs(t, err, ErrSchema)
			assert.Contains(t, err.Error(), "missing project/name")
		}
	})

	t.Run("Wrong typed lists become empty", func(t *testing.T) {
		record, err := Validate(decodeRaw(t, `{
			"project": {"name": "X"},
			"meetings": [{"title": "T", "date": "D", "topics": "none", "documents": {}, "statements": null}]
		}`))
		require.NoError(t, err)
		require.Len(t, record.Meetings, 1)
		assert.NotNil(t, record.Meetings[0].Topics)
		assert.Empty(t, record.Meetings[0].Topics)
		assert.Empty(t, record.Meetings[0].Documents)
		assert.Empty(t, record.Meetings[0].Statements)
	})

	t.Run("Missing meetings become empty", func(t *testing.T) {
		for _, payload := range []string{`{"project": {"name": "X"}}`, `{"project": {"name": "X"}, "meetings": "soon"}`} {
			record, err := Validate(decodeRaw(t, payload))
			require.NoError(t, err)
			assert.NotNil(t, record.Meetings)
			assert.Empty(t, record.Meetings)
		}
	})

	t.Run("Meetings without identity are kept for the writer to skip", func(t *testing.T) {
		record, err := Validate(decodeRaw(t, `{"project": {"name": "X"}, "meetings": [{"date": "2024-01-10"}, "junk"]}`))
		require.NoError(t, err)
		require.Len(t, record.Meetings, 1, "Expected non-object entries to be dropped")
		assert.Empty(t, record.Meetings[0].Title)
		assert.Equal(t, "2024-01-10", record.Meetings[0].Date)
	})

	t.Run("Scalars are stringified", func(t *testing.T) {
		record, err := Validate(decodeRaw(t, `{"project": {"name": 2024}, "meetings": [{"title": "Session", "date": 20240110}]}`))
		require.NoError(t, err)
		assert.Equal(t, "2024", record.Project.Name)
		assert.Equal(t, "20240110", record.Meetings[0].Date)
	})

	t.Run("Committee voting power is tri-state", func(t *testing.T) {
		tests := map[string]*bool{
			`true`:      boolPtr(true),
			`"No"`:      boolPtr(false),
			`0`:         boolPtr(false),
			`"unknown"`: nil,
			`null`:      nil,
			`7`:         nil,
		}
		for value, want := range tests {
			record, err := Validate(decodeRaw(t, `{"project": {"name": "X"}, "meetings": [{"title": "T", "date": "D", "committee": {"name": "C", "hasVotingPower": `+value+`}}]}`))
			require.NoError(t, err)
			assert.Equal(t, want, record.Meetings[0].Committee.HasVotingPower, "hasVotingPower %s", value)
		}
	})

	t.Run("Committee that is not an object is absent", func(t *testing.T) {
		record, err := Validate(decodeRaw(t, `{"project": {"name": "X"}, "meetings": [{"title": "T", "date": "D", "committee": "Finance"}]}`))
		require.NoError(t, err)
		assert.Nil(t, record.Meetings[0].Committee)
	})
}

func TestDecode(t *testing.T) {
	t.Run("Recovers embedded object", func(t *testing.T) {
		record, err := Decode(`Here is the JSON: {"project":{"name":"X"}} thanks!`)
		require.NoError(t, err)
		assert.Equal(t, "X", record.Project.Name)
		assert.Empty(t, record.Meetings)
	})

	t.Run("Non JSON output is an extraction error", func(t *testing.T) {
		_, err := Decode("The page does not mention any project.")
		assert.ErrorIs(t, err, ErrExtraction)
		assert.NotErrorIs(t, err, ErrSchema)
	})

	t.Run("Truncated output is an extraction error", func(t *testing.T) {
		_, err := Decode(`{"project": {"name": "Budget Plan", "url": "https://x.org"}, "meetings": [{"title": "Q1", "date": "2024-01-10", "topics": [{"name": "Fund`)
		assert.ErrorIs(t, err, ErrExtraction)
		assert.NotErrorIs(t, err, ErrSchema)
	})

	t.Run("Recovered object without project is a schema error", func(t *testing.T) {
		_, err := Decode(`{"meetings": []}`)
		assert.ErrorIs(t, err, ErrSchema)
	})
}

func boolPtr(b bool) *bool {
	return &b
}
