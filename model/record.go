package model

// Record is a validated extraction result. Optional fields are always
// present and nil when the extractor did not provide them.
type Record struct {
	Project  Project   `json:"project"`
	Meetings []Meeting `json:"meetings"`
}

// Project is the root of every record.
type Project struct {
	Name        string  `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
}

// Meeting belongs to a project. Title and date form its identity and may be
// empty here; the writer skips such meetings.
type Meeting struct {
	Title      string      `json:"title"`
	Date       string      `json:"date"`
	Type       *string     `json:"type"`
	Committee  *Committee  `json:"committee"`
	Topics     []Topic     `json:"topics"`
	Documents  []Document  `json:"documents"`
	Statements []Statement `json:"statements"`
}

// Committee holds a meeting. HasVotingPower is nil when unknown.
type Committee struct {
	Name           *string `json:"name"`
	HasVotingPower *bool   `json:"hasVotingPower"`
}

type Topic struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

type Document struct {
	Title *string `json:"title"`
	URL   *string `json:"url"`
	Type  *string `json:"type"`
}

// Statement is an utterance recorded in a meeting. It has no identity.
type Statement struct {
	Text    *string `json:"text"`
	Speaker *string `json:"speaker"`
}

func (p Project) Attributes() Properties {
	return Properties{
		"name":        p.Name,
		"url":         deref(p.URL),
		"description": deref(p.Description),
	}
}

func (m Meeting) Attributes() Properties {
	return Properties{
		"title": m.Title,
		"date":  m.Date,
		"type":  deref(m.Type),
	}
}

func (c Committee) Attributes() Properties {
	var votingPower interface{}
	if c.HasVotingPower != nil {
		votingPower = *c.HasVotingPower
	}
	return Properties{
		"name":           deref(c.Name),
		"hasVotingPower": votingPower,
	}
}

func (t Topic) Attributes() Properties {
	return Properties{
		"name":     deref(t.Name),
		"category": deref(t.Category),
	}
}

func (d Document) Attributes() Properties {
	return Properties{
		"title": deref(d.Title),
		"url":   deref(d.URL),
		"type":  deref(d.Type),
	}
}

func (s Statement) Attributes() Properties {
	return Properties{
		"text":    deref(s.Text),
		"speaker": deref(s.Speaker),
	}
}

// deref turns a nil string pointer into an untyped nil so it is stored as null.
func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
