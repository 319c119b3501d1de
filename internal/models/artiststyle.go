package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ArtistStyle is the fixed-shape record behind artist-style prompts. A record
// always has exactly these seven fields; parsing drops unknown keys and fills
// missing ones with the empty string.
type ArtistStyle struct {
	Era             string `json:"era"`
	Genre           string `json:"genre"`
	Style           string `json:"style"`
	Vocals          string `json:"vocals"`
	Mood            string `json:"mood"`
	Instrumentation string `json:"instrumentation"`
	Mastering       string `json:"mastering"`
}

// StyleField is one schema field paired with its current value.
type StyleField struct {
	Key   string
	Label string
	Value string
}

// styleKeys lists the schema keys in canonical order.
var styleKeys = []string{"era", "genre", "style", "vocals", "mood", "instrumentation", "mastering"}

// ParseArtistStyle decodes a stored record. Decode failures return the
// all-empty default record; the caller decides whether that matters.
func ParseArtistStyle(raw string) ArtistStyle {
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return ArtistStyle{}
	}
	return StyleFromValues(decoded)
}

// StyleFromValues projects a key/value structure onto the schema. Unknown
// keys are ignored, known values are coerced to strings.
func StyleFromValues(values map[string]interface{}) ArtistStyle {
	var s ArtistStyle
	for key, value := range values {
		s.set(key, CoerceString(value))
	}
	return s
}

// Serialize encodes the record for storage as prompt content. The encoded
// form always carries exactly the seven schema keys.
func (s ArtistStyle) Serialize() string {
	data, err := json.Marshal(s)
	if err != nil {
		// A struct of strings cannot fail to marshal.
		return "{}"
	}
	return string(data)
}

// Fields returns the schema fields in canonical order.
func (s ArtistStyle) Fields() []StyleField {
	fields := make([]StyleField, 0, len(styleKeys))
	for _, key := range styleKeys {
		fields = append(fields, StyleField{
			Key:   key,
			Label: strings.ToUpper(key[:1]) + key[1:],
			Value: s.get(key),
		})
	}
	return fields
}

// IsZero reports whether every field is empty.
func (s ArtistStyle) IsZero() bool {
	return s == ArtistStyle{}
}

// Summary joins the first non-empty fields into a short preview line.
func (s ArtistStyle) Summary() string {
	var parts []string
	for _, f := range s.Fields() {
		if f.Value == "" {
			continue
		}
		parts = append(parts, f.Label+": "+f.Value)
		if len(parts) == 3 {
			break
		}
	}
	return strings.Join(parts, ", ")
}

func (s *ArtistStyle) set(key, value string) {
	switch key {
	case "era":
		s.Era = value
	case "genre":
		s.Genre = value
	case "style":
		s.Style = value
	case "vocals":
		s.Vocals = value
	case "mood":
		s.Mood = value
	case "instrumentation":
		s.Instrumentation = value
	case "mastering":
		s.Mastering = value
	}
}

func (s ArtistStyle) get(key string) string {
	switch key {
	case "era":
		return s.Era
	case "genre":
		return s.Genre
	case "style":
		return s.Style
	case "vocals":
		return s.Vocals
	case "mood":
		return s.Mood
	case "instrumentation":
		return s.Instrumentation
	case "mastering":
		return s.Mastering
	}
	return ""
}

// CoerceString renders a decoded scalar as the string a record field stores.
// Arrays join their scalar elements with ", "; nested objects and nulls
// contribute nothing.
func CoerceString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []interface{}:
		var parts []string
		for _, elem := range v {
			if s := CoerceString(elem); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
