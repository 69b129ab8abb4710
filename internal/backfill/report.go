package backfill

import (
	"encoding/json"
	"io"
	"time"

	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/google/uuid"
)

// Decision actions.
const (
	ActionApplied   = "applied"
	ActionDryRun    = "dry_run"
	ActionReview    = "review"
	ActionConflict  = "conflict"
	ActionSkipped   = "skipped"
	ActionFailed    = "failed"
	ActionUnmatched = "unmatched"
)

// Decision records what the job did with one brand-less model.
type Decision struct {
	ModelID          uuid.UUID `json:"modelId"`
	ModelName        string    `json:"modelName"`
	ModelSlug        string    `json:"modelSlug"`
	BrandID          uuid.UUID `json:"brandId"`
	BrandSlug        string    `json:"brandSlug"`
	BrandName        string    `json:"brandName"`
	MatchedModelSlug string    `json:"matchedModelSlug,omitempty"`
	Strategy         string    `json:"strategy"`
	Action           string    `json:"action"`
}

// Unmatched is a model no strategy could place.
type Unmatched struct {
	ModelID   uuid.UUID `json:"modelId"`
	ModelName string    `json:"modelName"`
	ModelSlug string    `json:"modelSlug"`
}

// Report summarises one backfill run. Linked holds applied (or, in a dry
// run, would-be applied) decisions; Review holds fuzzy matches left for a
// human.
type Report struct {
	VehicleType enums.VehicleType `json:"vehicleType"`
	DryRun      bool              `json:"dryRun"`
	ApplyFuzzy  bool              `json:"applyFuzzy"`
	StartedAt   time.Time         `json:"startedAt"`
	FinishedAt  time.Time         `json:"finishedAt"`
	Scanned     int               `json:"scanned"`
	ByStrategy  map[string]int    `json:"byStrategy"`
	Linked      []Decision        `json:"linked"`
	Review      []Decision        `json:"review"`
	Conflicts   []Decision        `json:"conflicts"`
	Failed      []Decision        `json:"failed"`
	Unmatched   []Unmatched       `json:"unmatched"`
}

func newReport(vt enums.VehicleType, dryRun, applyFuzzy bool, now time.Time) *Report {
	return &Report{
		VehicleType: vt,
		DryRun:      dryRun,
		ApplyFuzzy:  applyFuzzy,
		StartedAt:   now,
		ByStrategy:  map[string]int{},
		Linked:      []Decision{},
		Review:      []Decision{},
		Conflicts:   []Decision{},
		Failed:      []Decision{},
		Unmatched:   []Unmatched{},
	}
}

func (r *Report) add(d Decision) {
	switch d.Action {
	case ActionApplied, ActionDryRun:
		r.Linked = append(r.Linked, d)
	case ActionReview:
		r.Review = append(r.Review, d)
	case ActionConflict, ActionSkipped:
		r.Conflicts = append(r.Conflicts, d)
	case ActionFailed:
		r.Failed = append(r.Failed, d)
	}
}

// Summary flattens the counts for structured logs.
func (r *Report) Summary() map[string]any {
	return map[string]any{
		"vehicle_type": r.VehicleType.String(),
		"dry_run":      r.DryRun,
		"scanned":      r.Scanned,
		"linked":       len(r.Linked),
		"review":       len(r.Review),
		"conflicts":    len(r.Conflicts),
		"failed":       len(r.Failed),
		"unmatched":    len(r.Unmatched),
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
