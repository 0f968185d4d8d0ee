package model

import (
	"time"

	"github.com/google/uuid"
)

// Label is the node label of a graph entity.
type Label string

const (
	LabelProject   Label = "Project"
	LabelMeeting   Label = "Meeting"
	LabelCommittee Label = "Committee"
	LabelTopic     Label = "Topic"
	LabelDocument  Label = "Document"
	LabelStatement Label = "Statement"
)

// Labels lists every label in write order.
var Labels = []Label{
	LabelProject,
	LabelMeeting,
	LabelCommittee,
	LabelTopic,
	LabelDocument,
	LabelStatement,
}

// Valid reports whether l is one of the known labels.
func (l Label) Valid() bool {
	for _, known := range Labels {
		if l == known {
			return true
		}
	}
	return false
}

// RelType is the type of a relationship between two nodes.
type RelType string

const (
	RelHasMeeting        RelType = "HAS_MEETING"
	RelHeldBy            RelType = "HELD_BY"
	RelDiscussed         RelType = "DISCUSSED"
	RelHasDocument       RelType = "HAS_DOCUMENT"
	RelRecordedStatement RelType = "RECORDED_STATEMENT"
)

// RelTypes lists every relationship type.
var RelTypes = []RelType{
	RelHasMeeting,
	RelHeldBy,
	RelDiscussed,
	RelHasDocument,
	RelRecordedStatement,
}

var relEndpoints = map[RelType][2]Label{
	RelHasMeeting:        {LabelProject, LabelMeeting},
	RelHeldBy:            {LabelMeeting, LabelCommittee},
	RelDiscussed:         {LabelMeeting, LabelTopic},
	RelHasDocument:       {LabelMeeting, LabelDocument},
	RelRecordedStatement: {LabelMeeting, LabelStatement},
}

// Valid reports whether r is one of the known relationship types.
func (r RelType) Valid() bool {
	_, ok := relEndpoints[r]
	return ok
}

// Endpoints returns the source and target labels a relationship connects.
func (r RelType) Endpoints() (source Label, target Label) {
	e := relEndpoints[r]
	return e[0], e[1]
}

// Node is a stored graph node. Key holds the identity properties and is
// empty for nodes that are never matched (statements).
type Node struct {
	ID         uuid.UUID  `json:"id"`
	Label      Label      `json:"label"`
	Key        Properties `json:"key,omitempty"`
	Properties Properties `json:"properties,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Edge is a stored directed relationship.
type Edge struct {
	ID        uuid.UUID `json:"id"`
	SourceID  uuid.UUID `json:"source_id"`
	TargetID  uuid.UUID `json:"target_id"`
	Type      RelType   `json:"rel_type"`
	CreatedAt time.Time `json:"created_at"`
}
