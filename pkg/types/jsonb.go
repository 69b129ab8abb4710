package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB holds a raw JSON document column. Decoding is deferred to the caller
// so that one malformed row does not fail a whole query.
type JSONB []byte

// Value writes the raw document, defaulting to JSON null.
func (j JSONB) Value() (driver.Value, error) {
	if len(bytes.TrimSpace(j)) == 0 {
		return "null", nil
	}
	return string(j), nil
}

// Scan copies the raw column bytes.
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case string:
		*j = JSONB(v)
	case []byte:
		buf := make([]byte, len(v))
		copy(buf, v)
		*j = JSONB(buf)
	default:
		return fmt.Errorf("jsonb: unsupported scan type %T", value)
	}
	return nil
}

// MarshalJSON emits the stored document verbatim, or null when it is not
// valid JSON.
func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(j)) == 0 || !json.Valid(j) {
		return []byte("null"), nil
	}
	return []byte(j), nil
}

// UnmarshalJSON stores a copy of the raw document.
func (j *JSONB) UnmarshalJSON(data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	*j = JSONB(buf)
	return nil
}

// Decode unmarshals the document into dest.
func (j JSONB) Decode(dest any) error {
	if len(bytes.TrimSpace(j)) == 0 {
		return fmt.Errorf("jsonb: empty document")
	}
	return json.Unmarshal(j, dest)
}

// NewJSONB marshals v into a JSONB value.
func NewJSONB(v any) (JSONB, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return JSONB(buf), nil
}
