package matching

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/slug"
)

type fixture struct {
	brands []models.Brand
	models []models.VehicleModel
}

func (f *fixture) brand(name string) models.Brand {
	b := models.Brand{ID: uuid.New(), Name: name, Slug: slug.Make(name), IsActive: true, VehicleType: enums.VehicleTypeCar}
	f.brands = append(f.brands, b)
	return b
}

func (f *fixture) model(brand models.Brand, name string) models.VehicleModel {
	return f.modelWithSlug(brand, name, slug.Make(name))
}

func (f *fixture) modelWithSlug(brand models.Brand, name, modelSlug string) models.VehicleModel {
	id := brand.ID
	vm := models.VehicleModel{ID: uuid.New(), Name: name, Slug: modelSlug, BrandID: &id, VehicleType: enums.VehicleTypeCar}
	f.models = append(f.models, vm)
	return vm
}

func catalogFixture() *fixture {
	f := &fixture{}
	abarth := f.brand("Abarth")
	citroen := f.brand("Citroën")
	peugeot := f.brand("Peugeot")
	renault := f.brand("Renault")
	alfa := f.brand("Alfa Romeo")
	ds := f.brand("DS")

	f.model(abarth, "124 Spider")
	f.model(abarth, "500")
	f.model(citroen, "C4")
	f.model(citroen, "C4 Picasso")
	f.model(peugeot, "208")
	f.model(peugeot, "208 GTi")
	f.model(renault, "Clio")
	f.model(renault, "Clio IV Estate")
	f.modelWithSlug(alfa, "Giulietta", "giulietta-940")
	f.model(ds, "3")

	// legacy model without a brand is never a candidate
	f.models = append(f.models, models.VehicleModel{ID: uuid.New(), Name: "Zoe", Slug: "zoe", VehicleType: enums.VehicleTypeCar})
	return f
}

func assertMatch(t *testing.T, got Match, ok bool, brandSlug, modelSlug string, strength Strength) {
	t.Helper()
	if !ok {
		t.Fatalf("expected match %s/%s, got none", brandSlug, modelSlug)
	}
	if got.Brand.Slug != brandSlug {
		t.Fatalf("expected brand %q, got %q", brandSlug, got.Brand.Slug)
	}
	if modelSlug == "" {
		if !got.BrandOnly() {
			t.Fatalf("expected brand-only match, got model %q", got.Model.Slug)
		}
	} else {
		if got.BrandOnly() {
			t.Fatalf("expected model %q, got brand-only match", modelSlug)
		}
		if got.Model.Slug != modelSlug {
			t.Fatalf("expected model %q, got %q", modelSlug, got.Model.Slug)
		}
	}
	if got.Strength != strength {
		t.Fatalf("expected strength %s, got %s", strength, got.Strength)
	}
}

func TestMatchExactSlug(t *testing.T) {
	f := catalogFixture()
	m := New(DefaultOptions())

	got, ok := m.Match("ABARTH", "124 Spider", f.brands, f.models)
	assertMatch(t, got, ok, "abarth", "124-spider", StrengthExactSlug)

	got, ok = m.Match("Citroën", "", f.brands, f.models)
	assertMatch(t, got, ok, "citroen", "", StrengthExactSlug)

	got, ok = m.Match("", "Clio", f.brands, f.models)
	assertMatch(t, got, ok, "renault", "clio", StrengthExactSlug)
}

func TestMatchExactSlugRequiresUniqueModelWithoutBrand(t *testing.T) {
	f := &fixture{}
	fiat := f.brand("Fiat")
	alfa := f.brand("Alfa Romeo")
	f.model(fiat, "Spider")
	f.model(alfa, "Spider")

	got, ok := New(DefaultOptions()).Match("", "Spider", f.brands, f.models)
	if ok && got.Strength == StrengthExactSlug {
		t.Fatalf("ambiguous model slug must not resolve by exact slug, got %s/%s", got.Brand.Slug, got.Model.Slug)
	}
}

func TestMatchCitronAlias(t *testing.T) {
	f := catalogFixture()

	if got, ok := New(Options{}).Match("CITRON", "C4", f.brands, f.models); ok && got.Brand.Slug == "citroen" {
		t.Fatalf("CITRON must not resolve to citroen without the alias, got %s", got.Strength)
	}

	got, ok := New(DefaultOptions()).Match("CITRON", "C4", f.brands, f.models)
	assertMatch(t, got, ok, "citroen", "c4", StrengthExactSlug)

	got, ok = New(DefaultOptions()).Match("", "CITRON C4 Picasso", f.brands, f.models)
	assertMatch(t, got, ok, "citroen", "c4-picasso", StrengthBrandInName)
}

func TestMatchExactName(t *testing.T) {
	f := catalogFixture()
	m := New(Options{ReferenceNames: map[string][]string{
		"Renault": {"Zoe", "Twingo"},
		"Dacia":   {"Sandero"},
	}})

	got, ok := m.Match("alfa romeo", " GIULIETTA ", f.brands, f.models)
	assertMatch(t, got, ok, "alfa-romeo", "giulietta-940", StrengthExactName)

	got, ok = m.Match("Renault", "ZOE", f.brands, f.models)
	assertMatch(t, got, ok, "renault", "", StrengthExactName)

	got, ok = m.Match("", "twingo", f.brands, f.models)
	assertMatch(t, got, ok, "renault", "", StrengthExactName)

	if _, ok := m.Match("", "Sandero", f.brands, f.models); ok {
		t.Fatalf("reference brand absent from candidates must not match")
	}
}

func TestMatchBrandInName(t *testing.T) {
	f := catalogFixture()
	m := New(DefaultOptions())

	got, ok := m.Match("", "PEUGEOT 208", f.brands, f.models)
	assertMatch(t, got, ok, "peugeot", "208", StrengthBrandInName)

	got, ok = m.Match("", "Peugeot 9999 Concept", f.brands, f.models)
	assertMatch(t, got, ok, "peugeot", "", StrengthBrandInName)

	got, ok = m.Match("", "ALFA ROMEO Giulietta", f.brands, f.models)
	assertMatch(t, got, ok, "alfa-romeo", "giulietta-940", StrengthBrandInName)
}

func TestMatchBrandInNameIgnoresShortBrands(t *testing.T) {
	f := catalogFixture()

	got, ok := New(DefaultOptions()).Match("", "DS 3", f.brands, f.models)
	if ok && got.Strength == StrengthBrandInName {
		t.Fatalf("two-letter brand names must not be searched in free text")
	}
}

func TestMatchBrandInNamePrefersLongestBrand(t *testing.T) {
	f := &fixture{}
	mini := f.brand("Mini")
	f.brand("Mini Cooper")
	f.model(mini, "Clubman")

	got, ok := New(DefaultOptions()).Match("", "MINI COOPER S", f.brands, f.models)
	assertMatch(t, got, ok, "mini-cooper", "", StrengthBrandInName)
}

func TestMatchFuzzy(t *testing.T) {
	f := catalogFixture()

	got, ok := New(DefaultOptions()).Match("Citroen", "C4 Picasso II", f.brands, f.models)
	assertMatch(t, got, ok, "citroen", "c4-picasso", StrengthFuzzy)

	t.Run("longest overlap wins", func(t *testing.T) {
		got, ok := New(Options{Threshold: 0.5}).Match("Renault", "Clio IV", f.brands, f.models)
		assertMatch(t, got, ok, "renault", "clio-iv-estate", StrengthFuzzy)
	})

	t.Run("shorter slug breaks overlap ties", func(t *testing.T) {
		g := &fixture{}
		peugeot := g.brand("Peugeot")
		g.model(peugeot, "208 GTi Line")
		g.model(peugeot, "208 GT")
		got, ok := New(Options{Threshold: 0.3}).Match("Peugeot", "208 G", g.brands, g.models)
		assertMatch(t, got, ok, "peugeot", "208-gt", StrengthFuzzy)
	})

	t.Run("below threshold", func(t *testing.T) {
		if got, ok := New(DefaultOptions()).Match("Renault", "Clio IV", f.brands, f.models); ok && !got.BrandOnly() {
			t.Fatalf("clio-iv must not fuzzy match at 0.7, got %s", got.Model.Slug)
		}
	})
}

func TestExactSlugTakesPrecedenceOverFuzzy(t *testing.T) {
	f := &fixture{}
	lotus := f.brand("Lotus")
	lotusCars := f.brand("Lotus Cars")
	f.model(lotus, "Elise")
	f.model(lotusCars, "Elise")

	m := New(Options{Threshold: 0.5})
	c := NewCandidates(f.brands, f.models)
	q := query{brand: "Lotus Cars", model: "Elise", brandSlug: "lotus-cars", modelSlug: "elise"}

	fuzzy, ok := m.fuzzy(c, q)
	assertMatch(t, fuzzy, ok, "lotus", "elise", StrengthFuzzy)

	got, ok := m.Match("Lotus Cars", "Elise", f.brands, f.models)
	assertMatch(t, got, ok, "lotus-cars", "elise", StrengthExactSlug)
}

func TestMatchNoMatch(t *testing.T) {
	f := catalogFixture()
	m := New(DefaultOptions())

	cases := []struct {
		name  string
		brand string
		model string
	}{
		{name: "unknown vehicle", brand: "Lada", model: "Niva"},
		{name: "empty", brand: "", model: ""},
		{name: "whitespace", brand: "  ", model: "\t"},
		{name: "legacy model without brand", brand: "", model: "Zoe"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got, ok := m.Match(tc.brand, tc.model, f.brands, f.models); ok {
				t.Fatalf("expected no match, got %s/%v (%s)", got.Brand.Slug, got.Model, got.Strength)
			}
		})
	}

	if _, ok := m.Match("Abarth", "500", nil, nil); ok {
		t.Fatalf("empty candidate set must not match")
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	f := catalogFixture()
	m := New(Options{Threshold: 0.3, Aliases: slug.NewAliases(slug.DefaultAliases)})
	queries := [][2]string{
		{"Abarth", "124 Spider"},
		{"", "Clio"},
		{"Citron", "C4 Pic"},
		{"", "PEUGEOT 208 GTi"},
		{"Peug", "20"},
		{"", "Spider"},
	}

	rng := rand.New(rand.NewSource(7))
	for _, q := range queries {
		first, firstOK := m.Match(q[0], q[1], f.brands, f.models)
		for i := 0; i < 5; i++ {
			brands := append([]models.Brand(nil), f.brands...)
			vmodels := append([]models.VehicleModel(nil), f.models...)
			rng.Shuffle(len(brands), func(a, b int) { brands[a], brands[b] = brands[b], brands[a] })
			rng.Shuffle(len(vmodels), func(a, b int) { vmodels[a], vmodels[b] = vmodels[b], vmodels[a] })

			got, ok := m.Match(q[0], q[1], brands, vmodels)
			if ok != firstOK || !reflect.DeepEqual(got, first) {
				t.Fatalf("query %v not deterministic: %+v vs %+v", q, first, got)
			}
		}
	}
}

func TestMatchDoesNotMutateInputs(t *testing.T) {
	f := catalogFixture()
	brands := append([]models.Brand(nil), f.brands...)
	vmodels := append([]models.VehicleModel(nil), f.models...)

	New(DefaultOptions()).Match("", "PEUGEOT 208", brands, vmodels)

	if !reflect.DeepEqual(brands, f.brands) || !reflect.DeepEqual(vmodels, f.models) {
		t.Fatalf("Match reordered or modified its inputs")
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"clio", "clio", 1},
		{"clio", "clio-iv", 4.0 / 7.0},
		{"clio-iv", "clio", 4.0 / 7.0},
		{"citron", "citroen", 0},
		{"", "clio", 0},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Fatalf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStrengthOrdering(t *testing.T) {
	order := []Strength{StrengthNone, StrengthFuzzy, StrengthBrandInName, StrengthExactName, StrengthExactSlug}
	for i := 1; i < len(order); i++ {
		if !order[i].AtLeast(order[i-1]) || order[i-1].AtLeast(order[i]) {
			t.Fatalf("%s should be stronger than %s", order[i], order[i-1])
		}
	}
	parsed, err := ParseStrength("brand_in_name")
	if err != nil || parsed != StrengthBrandInName {
		t.Fatalf("unexpected parse result %v %v", parsed, err)
	}
	if _, err := ParseStrength("bogus"); err == nil {
		t.Fatalf("expected error for unknown strength")
	}
}
