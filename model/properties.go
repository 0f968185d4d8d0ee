package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"

	"github.com/siherrmann/meetinggraph/helper"
)

// Properties is a node property map, stored as JSONB in Postgres and as
// native properties in Neo4j. A nil value clears the property.
type Properties map[string]interface{}

// Value implements the driver.Valuer interface for database storage.
// A nil map is stored as SQL NULL.
func (p Properties) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return p.Marshal()
}

// Scan implements the sql.Scanner interface for database retrieval
func (p *Properties) Scan(value interface{}) error {
	return p.Unmarshal(value)
}

// Marshal converts Properties to JSON bytes
func (p Properties) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Unmarshal converts JSON bytes, a JSON string or Properties to Properties
func (p *Properties) Unmarshal(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = Properties{}
		return nil
	case Properties:
		*p = v
		return nil
	case string:
		value = []byte(v)
	}

	b, ok := value.([]byte)
	if !ok {
		return helper.NewError("byte assertion", errors.New("type assertion to []byte failed"))
	}

	return json.Unmarshal(b, p)
}

// Keys returns the property names in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithoutNulls returns a copy holding only the non-nil values.
func (p Properties) WithoutNulls() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		if v != nil {
			out[k] = v
		}
	}
	return out
}
