package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "CITROËN", want: "citroen"},
		{in: "Peugeot & Citroën", want: "peugeot-and-citroen"},
		{in: "124 Spider", want: "124-spider"},
		{in: "  Alfa   Romeo  ", want: "alfa-romeo"},
		{in: "Mercedes-Benz", want: "mercedes-benz"},
		{in: "Škoda Octavia III (5E3)", want: "skoda-octavia-iii-5e3"},
		{in: "Garçon", want: "garcon"},
		{in: "--already-a-slug--", want: "already-a-slug"},
		{in: "", want: ""},
		{in: "***", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Make(tt.in); got != tt.want {
				t.Fatalf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	inputs := []string{
		"CITROËN",
		"Peugeot & Citroën",
		"Land Rover / Range Rover",
		"DS 3 Crossback E-Tense",
		"Über  Café--Déjà vu",
		"ﬁat",
	}
	for _, in := range inputs {
		once := Make(in)
		if twice := Make(once); twice != once {
			t.Fatalf("Make not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestAliasesApply(t *testing.T) {
	aliases := NewAliases(DefaultAliases)

	if got := aliases.Apply("CITRON C4 Picasso"); got != "CITROEN C4 Picasso" {
		t.Fatalf("unexpected alias result %q", got)
	}
	if got := aliases.Apply("citron"); got != "CITROEN" {
		t.Fatalf("alias should be case-insensitive, got %q", got)
	}
	if got := aliases.Apply("CITRONELLA"); got != "CITRONELLA" {
		t.Fatalf("alias must only replace whole words, got %q", got)
	}
	if got := Make(aliases.Apply("CITRON")); got != "citroen" {
		t.Fatalf("aliased slug = %q, want citroen", got)
	}
	if Make("CITRON") == "citroen" {
		t.Fatalf("un-aliased CITRON must not slugify to citroen")
	}
}

func TestZeroAliasesIsNoop(t *testing.T) {
	var aliases Aliases
	if got := aliases.Apply("CITRON"); got != "CITRON" {
		t.Fatalf("zero aliases changed input: %q", got)
	}
	if aliases.Len() != 0 {
		t.Fatalf("expected no rules")
	}
}

func TestFold(t *testing.T) {
	if got := Fold("CITROËN C4 Picasso"); got != "citroen c4 picasso" {
		t.Fatalf("unexpected fold %q", got)
	}
	if got := Fold("Alfa  Romeo"); got != "alfa  romeo" {
		t.Fatalf("fold must keep spacing, got %q", got)
	}
}
