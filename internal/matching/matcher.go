package matching

import (
	"strings"

	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/slug"
)

const (
	// DefaultThreshold is the minimum slug containment ratio a fuzzy
	// candidate needs.
	DefaultThreshold = 0.7

	minBrandNameLen = 3
)

// Options configures a Matcher.
type Options struct {
	// Threshold is the fuzzy acceptance ratio in (0, 1]. Zero selects
	// DefaultThreshold.
	Threshold float64

	// Aliases rewrite free text before any strategy runs.
	Aliases slug.Aliases

	// ReferenceNames maps canonical brand names to known model names and
	// lets the exact-name strategy recognise a brand from a model name that
	// is not in the candidate set.
	ReferenceNames map[string][]string
}

// DefaultOptions returns the options used by the API and the backfill job
// when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Aliases:   slug.NewAliases(slug.DefaultAliases),
	}
}

// Match is a resolved vehicle description. Model is nil when only the brand
// could be identified.
type Match struct {
	Brand    models.Brand
	Model    *models.VehicleModel
	Strength Strength
}

// BrandOnly reports whether the match stopped at the manufacturer.
func (m Match) BrandOnly() bool {
	return m.Model == nil
}

// Matcher associates free-text brand/model descriptions with canonical
// records. Strategies run in a fixed order and the first one that succeeds
// wins:
//
//  1. exact slug
//  2. exact name (case-insensitive), backed by the reference names
//  3. brand name contained in the model text
//  4. fuzzy slug containment above the threshold
//
// A Matcher holds no mutable state and is safe for concurrent use.
type Matcher struct {
	threshold float64
	aliases   slug.Aliases
	reference map[string]map[string]struct{}
}

// New builds a Matcher from opts.
func New(opts Options) *Matcher {
	threshold := opts.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	reference := make(map[string]map[string]struct{}, len(opts.ReferenceNames))
	for brand, names := range opts.ReferenceNames {
		key := normalizeName(brand)
		if key == "" {
			continue
		}
		set := reference[key]
		if set == nil {
			set = make(map[string]struct{}, len(names))
			reference[key] = set
		}
		for _, name := range names {
			if n := normalizeName(name); n != "" {
				set[n] = struct{}{}
			}
		}
	}
	return &Matcher{threshold: threshold, aliases: opts.Aliases, reference: reference}
}

// Threshold returns the fuzzy acceptance ratio in use.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match resolves freeBrand/freeModel against the candidate brands and models.
// ok is false when no strategy succeeds, which callers treat as "no link".
func (m *Matcher) Match(freeBrand, freeModel string, brands []models.Brand, vmodels []models.VehicleModel) (Match, bool) {
	return m.MatchIn(NewCandidates(brands, vmodels), freeBrand, freeModel)
}

// MatchIn is Match over a prebuilt candidate set.
func (m *Matcher) MatchIn(c *Candidates, freeBrand, freeModel string) (Match, bool) {
	if c == nil || len(c.brands) == 0 {
		return Match{}, false
	}
	q := query{
		brand: strings.TrimSpace(m.aliases.Apply(freeBrand)),
		model: strings.TrimSpace(m.aliases.Apply(freeModel)),
	}
	if q.brand == "" && q.model == "" {
		return Match{}, false
	}
	q.brandSlug = slug.Make(q.brand)
	q.modelSlug = slug.Make(q.model)

	strategies := []func(*Candidates, query) (Match, bool){
		m.exactSlug,
		m.exactName,
		m.brandInName,
		m.fuzzy,
	}
	for _, strategy := range strategies {
		if match, ok := strategy(c, q); ok {
			return match, true
		}
	}
	return Match{}, false
}

type query struct {
	brand     string
	model     string
	brandSlug string
	modelSlug string
}

func (m *Matcher) exactSlug(c *Candidates, q query) (Match, bool) {
	if q.brand != "" {
		brand, ok := findBrand(c, func(b models.Brand) bool { return b.Slug == q.brandSlug })
		if !ok {
			return Match{}, false
		}
		if q.model == "" {
			return Match{Brand: brand, Strength: StrengthExactSlug}, true
		}
		for _, vm := range c.modelsOf(brand.ID) {
			if vm.Slug == q.modelSlug {
				return c.full(vm, StrengthExactSlug), true
			}
		}
		return Match{}, false
	}
	if q.modelSlug == "" {
		return Match{}, false
	}
	return unique(c, func(vm models.VehicleModel) bool { return vm.Slug == q.modelSlug }, StrengthExactSlug)
}

func (m *Matcher) exactName(c *Candidates, q query) (Match, bool) {
	brandName := normalizeName(q.brand)
	modelName := normalizeName(q.model)

	if brandName != "" {
		brand, ok := findBrand(c, func(b models.Brand) bool { return normalizeName(b.Name) == brandName })
		if !ok {
			return Match{}, false
		}
		if modelName == "" {
			return Match{Brand: brand, Strength: StrengthExactName}, true
		}
		for _, vm := range c.modelsOf(brand.ID) {
			if normalizeName(vm.Name) == modelName {
				return c.full(vm, StrengthExactName), true
			}
		}
		if m.referenceHas(brandName, modelName) {
			return Match{Brand: brand, Strength: StrengthExactName}, true
		}
		return Match{}, false
	}

	if modelName == "" {
		return Match{}, false
	}
	if match, ok := unique(c, func(vm models.VehicleModel) bool { return normalizeName(vm.Name) == modelName }, StrengthExactName); ok {
		return match, true
	}
	// A model name listed under exactly one reference brand identifies that
	// brand even when the model itself is not a candidate.
	var found *models.Brand
	for _, b := range c.brands {
		if !m.referenceHas(normalizeName(b.Name), modelName) {
			continue
		}
		if found != nil {
			return Match{}, false
		}
		brand := b
		found = &brand
	}
	if found == nil {
		return Match{}, false
	}
	return Match{Brand: *found, Strength: StrengthExactName}, true
}

func (m *Matcher) brandInName(c *Candidates, q query) (Match, bool) {
	haystack := slug.Fold(q.model)
	if haystack == "" {
		return Match{}, false
	}

	var (
		best     models.Brand
		bestName string
		found    bool
	)
	for _, b := range c.brands {
		name := slug.Fold(strings.TrimSpace(b.Name))
		if len(name) < minBrandNameLen || !strings.Contains(haystack, name) {
			continue
		}
		// brands are slug ordered, so the first of equal length wins ties
		if !found || len(name) > len(bestName) {
			best, bestName, found = b, name, true
		}
	}
	if !found {
		return Match{}, false
	}

	idx := strings.Index(haystack, bestName)
	remainder := strings.TrimSpace(haystack[:idx] + " " + haystack[idx+len(bestName):])
	if remainder == "" {
		return Match{Brand: best, Strength: StrengthBrandInName}, true
	}
	remainderSlug := slug.Make(remainder)
	remainderName := normalizeName(remainder)
	for _, vm := range c.modelsOf(best.ID) {
		if vm.Slug == remainderSlug || normalizeName(vm.Name) == remainderName {
			return c.full(vm, StrengthBrandInName), true
		}
	}
	return Match{Brand: best, Strength: StrengthBrandInName}, true
}

func (m *Matcher) fuzzy(c *Candidates, q query) (Match, bool) {
	var allowed []models.Brand
	if q.brandSlug != "" {
		for _, b := range c.brands {
			if Similarity(q.brandSlug, b.Slug) >= m.threshold {
				allowed = append(allowed, b)
			}
		}
		if len(allowed) == 0 {
			return Match{}, false
		}
	}

	if q.modelSlug == "" {
		if len(allowed) == 0 {
			return Match{}, false
		}
		return Match{Brand: bestBrand(allowed, q.brandSlug), Strength: StrengthFuzzy}, true
	}

	var pool []models.VehicleModel
	if len(allowed) > 0 {
		for _, b := range allowed {
			pool = append(pool, c.modelsOf(b.ID)...)
		}
	} else {
		pool = c.models
	}

	var (
		best        models.VehicleModel
		bestOverlap int
		found       bool
	)
	for _, vm := range pool {
		if Similarity(q.modelSlug, vm.Slug) < m.threshold {
			continue
		}
		overlap := Overlap(q.modelSlug, vm.Slug)
		if !found || betterFuzzy(overlap, vm, bestOverlap, best, c) {
			best, bestOverlap, found = vm, overlap, true
		}
	}
	if found {
		return c.full(best, StrengthFuzzy), true
	}
	if len(allowed) > 0 {
		return Match{Brand: bestBrand(allowed, q.brandSlug), Strength: StrengthFuzzy}, true
	}
	return Match{}, false
}

func (m *Matcher) referenceHas(brandName, modelName string) bool {
	set, ok := m.reference[brandName]
	if !ok {
		return false
	}
	_, ok = set[modelName]
	return ok
}

// betterFuzzy orders fuzzy candidates: longest overlap, then the shorter
// slug, then slug order, then brand slug order.
func betterFuzzy(overlap int, vm models.VehicleModel, bestOverlap int, best models.VehicleModel, c *Candidates) bool {
	if overlap != bestOverlap {
		return overlap > bestOverlap
	}
	if len(vm.Slug) != len(best.Slug) {
		return len(vm.Slug) < len(best.Slug)
	}
	if vm.Slug != best.Slug {
		return vm.Slug < best.Slug
	}
	return c.brandOf(vm).Slug < c.brandOf(best).Slug
}

func bestBrand(brands []models.Brand, target string) models.Brand {
	best := brands[0]
	bestOverlap := Overlap(target, best.Slug)
	for _, b := range brands[1:] {
		overlap := Overlap(target, b.Slug)
		if overlap > bestOverlap || (overlap == bestOverlap && len(b.Slug) < len(best.Slug)) {
			best, bestOverlap = b, overlap
		}
	}
	return best
}

func findBrand(c *Candidates, pred func(models.Brand) bool) (models.Brand, bool) {
	for _, b := range c.brands {
		if pred(b) {
			return b, true
		}
	}
	return models.Brand{}, false
}

// unique returns the single model satisfying pred. Several hits across
// different brands make the description ambiguous.
func unique(c *Candidates, pred func(models.VehicleModel) bool, strength Strength) (Match, bool) {
	var hit *models.VehicleModel
	for i := range c.models {
		if !pred(c.models[i]) {
			continue
		}
		if hit != nil && *hit.BrandID != *c.models[i].BrandID {
			return Match{}, false
		}
		if hit == nil {
			hit = &c.models[i]
		}
	}
	if hit == nil {
		return Match{}, false
	}
	return c.full(*hit, strength), true
}

func normalizeName(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}
