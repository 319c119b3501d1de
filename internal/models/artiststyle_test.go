package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestArtistStyleRoundTrip(t *testing.T) {
	style := ArtistStyle{
		Era:             "1970s",
		Genre:           "funk",
		Style:           "syncopated",
		Vocals:          "falsetto",
		Mood:            "playful",
		Instrumentation: "bass, horns",
		Mastering:       "warm tape",
	}

	if got := ParseArtistStyle(style.Serialize()); got != style {
		t.Errorf("round trip = %+v, want %+v", got, style)
	}
}

func TestSerializeEmitsAllSevenKeys(t *testing.T) {
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(ArtistStyle{}.Serialize()), &decoded); err != nil {
		t.Fatalf("serialized record is not valid JSON: %v", err)
	}
	if len(decoded) != 7 {
		t.Errorf("serialized record has %d keys, want 7: %v", len(decoded), decoded)
	}
	for _, key := range styleKeys {
		if _, ok := decoded[key]; !ok {
			t.Errorf("serialized record missing key %q", key)
		}
	}
}

func TestParseArtistStyleInvalid(t *testing.T) {
	for _, raw := range []string{"not valid", "", "[1,2]", `"plain string"`} {
		if got := ParseArtistStyle(raw); !got.IsZero() {
			t.Errorf("ParseArtistStyle(%q) = %+v, want zero record", raw, got)
		}
	}
}

func TestParseArtistStyleDropsUnknownAndCoerces(t *testing.T) {
	got := ParseArtistStyle(`{"era": 1990, "bpm": 120, "genre": "rock", "mood": true}`)
	if got.Era != "1990" {
		t.Errorf("Era = %q, want %q", got.Era, "1990")
	}
	if got.Genre != "rock" || got.Mood != "true" {
		t.Errorf("got %+v", got)
	}
	if got.Style != "" || got.Vocals != "" {
		t.Errorf("missing keys should stay empty: %+v", got)
	}
}

func TestStyleFields(t *testing.T) {
	fields := ArtistStyle{Era: "80s"}.Fields()
	if len(fields) != 7 {
		t.Fatalf("Fields() returned %d entries", len(fields))
	}
	if fields[0].Key != "era" || fields[0].Label != "Era" || fields[0].Value != "80s" {
		t.Errorf("first field = %+v", fields[0])
	}
	if fields[6].Key != "mastering" {
		t.Errorf("last field = %+v", fields[6])
	}
}

func TestPromptMarshalNullFolder(t *testing.T) {
	data, err := json.Marshal(Prompt{ID: "p1", Title: "t"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"folderId":null`) {
		t.Errorf("uncategorized prompt should marshal a null folderId: %s", data)
	}

	data, err = json.Marshal(Prompt{ID: "p2", FolderID: "f1"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"folderId":"f1"`) {
		t.Errorf("folder reference lost: %s", data)
	}
}

func TestCoerceString(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{"plain", "plain"},
		{float64(2000), "2000"},
		{2.5, "2.5"},
		{true, "true"},
		{nil, ""},
		{[]interface{}{"a", "b"}, "a, b"},
		{map[string]interface{}{"x": 1}, ""},
	}
	for _, tt := range tests {
		if got := CoerceString(tt.in); got != tt.want {
			t.Errorf("CoerceString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
