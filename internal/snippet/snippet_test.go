package snippet

import (
	"errors"
	"testing"

	"github.com/promptsave/promptsave/internal/models"
)

func TestParse(t *testing.T) {
	raw := `const eminemSound_drdreProducer = { era: "2000s", genre: "hip-hop, rap" };`

	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Title != "eminem, drdre" {
		t.Errorf("Title = %q, want %q", result.Title, "eminem, drdre")
	}

	want := models.ArtistStyle{Era: "2000s", Genre: "hip-hop, rap"}
	if result.Style != want {
		t.Errorf("Style = %+v, want %+v", result.Style, want)
	}
}

func TestParseFullRecord(t *testing.T) {
	raw := `const daftpunkSound = {
		era: "1990s-2000s",
		genre: "french house",
		style: 'filtered disco loops',
		vocals: "vocoder",
		mood: "euphoric",
		instrumentation: "analog synths, drum machines",
		mastering: "loud, compressed",
		bpm: 120,
		extra: "dropped",
	};`

	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Title != "daftpunk" {
		t.Errorf("Title = %q, want %q", result.Title, "daftpunk")
	}
	if result.Style.Style != "filtered disco loops" {
		t.Errorf("single-quoted value lost: %+v", result.Style)
	}
	if result.Style.Mastering != "loud, compressed" {
		t.Errorf("Mastering = %q", result.Style.Mastering)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{"empty input", "", reasonMissingIdentifier},
		{"no assignment", "let x = {}", reasonMissingIdentifier},
		{"no object body", "const x = 5;", reasonMissingObjectBody},
		{"unbalanced braces", "const x = { era: \"90s\"", reasonMissingObjectBody},
		{"function call value", `const x = { era: getEra() };`, reasonUnparseableObject},
		{"bare garbage body", `const x = { ]]] };`, reasonUnparseableObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("Parse(%q) error = %v, want *FormatError", tt.raw, err)
			}
			if formatErr.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", formatErr.Reason, tt.reason)
			}
		})
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		identifier string
		want       string
	}{
		{"eminemSound_drdreProducer", "eminem, drdre"},
		{"eminemSound", "eminem"},
		{"bigBandProfile", "big Band"},
		{"Sound_Producer", "Sound_Producer"}, // every word is a keyword
		{"lana_del_rey", "lana del rey"},     // underscores split words, not groups
		{"queenLyrical bowieArtistic", "queen, bowie"},
	}

	for _, tt := range tests {
		if got := deriveTitle(tt.identifier); got != tt.want {
			t.Errorf("deriveTitle(%q) = %q, want %q", tt.identifier, got, tt.want)
		}
	}
}

func TestParseObjectLiteralValues(t *testing.T) {
	values, err := parseObjectLiteral(`{
		"quoted": "v",
		num: -3.5,
		yes: true,
		no: false,
		nothing: null,
		list: ["a", "b"],
		nested: { inner: 1 },
	}`)
	if err != nil {
		t.Fatalf("parseObjectLiteral returned error: %v", err)
	}

	if values["quoted"] != "v" {
		t.Errorf("quoted = %v", values["quoted"])
	}
	if values["num"] != -3.5 {
		t.Errorf("num = %v", values["num"])
	}
	if values["yes"] != true || values["no"] != false {
		t.Errorf("bools = %v, %v", values["yes"], values["no"])
	}
	if values["nothing"] != nil {
		t.Errorf("nothing = %v", values["nothing"])
	}
	if list, ok := values["list"].([]interface{}); !ok || len(list) != 2 {
		t.Errorf("list = %v", values["list"])
	}
	if nested, ok := values["nested"].(map[string]interface{}); !ok || nested["inner"] != 1.0 {
		t.Errorf("nested = %v", values["nested"])
	}
}

func TestParseObjectLiteralEscapes(t *testing.T) {
	values, err := parseObjectLiteral(`{ a: "say \"hi\"\n" }`)
	if err != nil {
		t.Fatalf("parseObjectLiteral returned error: %v", err)
	}
	if values["a"] != "say \"hi\"\n" {
		t.Errorf("a = %q", values["a"])
	}
}
