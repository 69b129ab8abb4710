package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/partsfinder-backend/pkg/errors"
)

const maxQueryValueLen = 200

// QueryString returns the trimmed query value, cut to maxQueryValueLen.
func QueryString(r *http.Request, key string) string {
	return SanitizeString(r.URL.Query().Get(key), maxQueryValueLen)
}

// OptionalQueryString is QueryString with blank values reported as nil.
func OptionalQueryString(r *http.Request, key string) *string {
	value := QueryString(r, key)
	if value == "" {
		return nil
	}
	return &value
}

// OptionalQueryInt parses an integer query value. A blank value is nil; a
// non-numeric one is an INVALID_QUERY error naming the field.
func OptionalQueryInt(r *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidQuery, "query parameter must be numeric").
			WithDetails(map[string]string{key: "must be numeric"})
	}
	return &value, nil
}
