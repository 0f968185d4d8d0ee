// Package schema turns the loosely typed output of the extractor into a
// model.Record. Only the project identity is enforced here; every other
// field is coerced on a best-effort basis.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/siherrmann/meetinggraph/model"
)

// Decode recovers the JSON object embedded in text and validates it.
func Decode(text string) (*model.Record, error) {
	span, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var raw interface{}
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	return Validate(raw)
}

// Validate checks raw has a project identity and normalizes the rest.
func Validate(raw interface{}) (*model.Record, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: not an object", ErrSchema)
	}

	project, ok := obj["project"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing project/name", ErrSchema)
	}
	name := asString(project["name"])
	if name == nil {
		return nil, fmt.Errorf("%w: missing project/name", ErrSchema)
	}

	record := &model.Record{
		Project: model.Project{
			Name:        *name,
			URL:         asString(project["url"]),
			Description: asString(project["description"]),
		},
		Meetings: []model.Meeting{},
	}

	for _, item := range asList(obj["meetings"]) {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		record.Meetings = append(record.Meetings, meeting(m))
	}

	return record, nil
}

func meeting(m map[string]interface{}) model.Meeting {
	out := model.Meeting{
		Title:      valueOrEmpty(asString(m["title"])),
		Date:       valueOrEmpty(asString(m["date"])),
		Type:       asString(m["type"]),
		Topics:     []model.Topic{},
		Documents:  []model.Document{},
		Statements: []model.Statement{},
	}

	if c, ok := m["committee"].(map[string]interface{}); ok {
		out.Committee = &model.Committee{
			Name:           asString(c["name"]),
			HasVotingPower: asBool(c["hasVotingPower"]),
		}
	}

	for _, item := range asList(m["topics"]) {
		if t, ok := item.(map[string]interface{}); ok {
			out.Topics = append(out.Topics, model.Topic{
				Name:     asString(t["name"]),
				Category: asString(t["category"]),
			})
		}
	}

	for _, item := range asList(m["documents"]) {
		if d, ok := item.(map[string]interface{}); ok {
			out.Documents = append(out.Documents, model.Document{
				Title: asString(d["title"]),
				URL:   asString(d["url"]),
				Type:  asString(d["type"]),
			})
		}
	}

	for _, item := range asList(m["statements"]) {
		if s, ok := item.(map[string]interface{}); ok {
			out.Statements = append(out.Statements, model.Statement{
				Text:    asString(s["text"]),
				Speaker: asString(s["speaker"]),
			})
		}
	}

	return out
}

func asList(v interface{}) []interface{} {
	list, _ := v.([]interface{})
	return list
}

// asString returns a trimmed copy of v, stringifying numbers and booleans.
// Empty and non-scalar values become nil.
func asString(v interface{}) *string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		s = t.String()
	case bool:
		s = strconv.FormatBool(t)
	default:
		return nil
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// asBool maps the extractor's voting power notation onto a tri-state.
func asBool(v interface{}) *bool {
	var b bool
	switch t := v.(type) {
	case bool:
		b = t
	case float64:
		if t != 0 && t != 1 {
			return nil
		}
		b = t == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1":
			b = true
		case "false", "no", "n", "0":
			b = false
		default:
			return nil
		}
	default:
		return nil
	}
	return &b
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
