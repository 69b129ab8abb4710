package matching

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/angelmondragon/partsfinder-backend/pkg/config"
)

// LoadReferenceNames reads a {"Brand name": ["Model name", ...]} file. An
// empty path yields no reference names.
func LoadReferenceNames(path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference names: %w", err)
	}
	var names map[string][]string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("decode reference names %s: %w", path, err)
	}
	return names, nil
}

// NewFromCatalog builds the matcher shared by the API, the cron worker and the
// backfill command from the catalog settings.
func NewFromCatalog(cfg config.CatalogConfig) (*Matcher, error) {
	names, err := LoadReferenceNames(cfg.ReferenceModelsFile)
	if err != nil {
		return nil, err
	}
	opts := DefaultOptions()
	if cfg.FuzzyThreshold > 0 {
		opts.Threshold = cfg.FuzzyThreshold
	}
	opts.ReferenceNames = names
	return New(opts), nil
}
