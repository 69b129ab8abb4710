package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a list of labels persisted as a JSON array. Older imports
// stored the same data as comma separated text, which Scan also accepts.
type StringList []string

// Value marshals the list into JSON.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	buf, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes a JSON array or a legacy comma separated value.
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("string list: unsupported scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*s = StringList{}
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		*s = StringList(list)
		return nil
	}

	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "{"), "}")
	out := StringList{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.Trim(part, `"`))
		if part != "" {
			out = append(out, part)
		}
	}
	*s = out
	return nil
}

// UnmarshalJSON accepts either an array of strings or a single string.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = StringList(list)
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("string list: %w", err)
	}
	single = strings.TrimSpace(single)
	if single == "" {
		*s = StringList{}
		return nil
	}
	*s = StringList{single}
	return nil
}
