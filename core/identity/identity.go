// Package identity decides how each graph entity is matched against
// existing nodes before it is written.
package identity

import (
	"fmt"
	"strings"

	"github.com/siherrmann/meetinggraph/model"
)

// keyFields is the fixed identity key per label. Statement has none and is
// always created.
var keyFields = map[model.Label][]string{
	model.LabelProject:   {"name"},
	model.LabelMeeting:   {"title", "date"},
	model.LabelCommittee: {"name"},
	model.LabelTopic:     {"name"},
	model.LabelDocument:  {"title"},
}

// Pair is one identity component.
type Pair struct {
	Name  string
	Value interface{}
}

// Key is the node-matching predicate of an entity.
type Key struct {
	Label        model.Label
	Pairs        []Pair
	AlwaysCreate bool
}

// Fields returns the identity property names of label, in key order.
// It returns nil for labels that are never matched.
func Fields(label model.Label) []string {
	return keyFields[label]
}

// Resolve returns the identity key of an entity with the given attributes.
// It does not validate: missing components come back as nil values.
func Resolve(label model.Label, attrs model.Properties) Key {
	fields, ok := keyFields[label]
	if !ok {
		return Key{Label: label, AlwaysCreate: true}
	}

	pairs := make([]Pair, 0, len(fields))
	for _, f := range fields {
		pairs = append(pairs, Pair{Name: f, Value: attrs[f]})
	}
	return Key{Label: label, Pairs: pairs}
}

// SplitAttributes resolves the key of attrs and returns the remaining
// non-key attributes, which are the ones overwritten on every write.
func SplitAttributes(label model.Label, attrs model.Properties) (Key, model.Properties) {
	key := Resolve(label, attrs)

	rest := make(model.Properties, len(attrs))
	for k, v := range attrs {
		rest[k] = v
	}
	for _, p := range key.Pairs {
		delete(rest, p.Name)
	}
	return key, rest
}

// Complete reports whether every key component is a non-empty string.
// Always-create keys are trivially complete.
func (k Key) Complete() bool {
	if k.AlwaysCreate {
		return true
	}
	if len(k.Pairs) == 0 {
		return false
	}
	for _, p := range k.Pairs {
		s, ok := p.Value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}

// Properties renders the key pairs as a property map.
func (k Key) Properties() model.Properties {
	if k.AlwaysCreate {
		return nil
	}
	props := make(model.Properties, len(k.Pairs))
	for _, p := range k.Pairs {
		props[p.Name] = p.Value
	}
	return props
}

func (k Key) String() string {
	if k.AlwaysCreate {
		return fmt.Sprintf("%s{new}", k.Label)
	}
	parts := make([]string, 0, len(k.Pairs))
	for _, p := range k.Pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", p.Name, fmt.Sprint(p.Value)))
	}
	return fmt.Sprintf("%s{%s}", k.Label, strings.Join(parts, ", "))
}
