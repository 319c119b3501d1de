// Package snippet parses code-like artist-style snippets of the shape
//
//	const eminemSound_drdreProducer = { era: "2000s", genre: "hip-hop" };
//
// into a derived title plus a structured record. The object body is read by a
// restricted literal parser, never evaluated, so untrusted snippets cannot
// execute anything.
package snippet

import (
	"regexp"
	"strings"

	"github.com/promptsave/promptsave/internal/models"
)

// FormatError reports a snippet that does not match the expected shape.
// The reason is user-facing; existing form state must be left untouched by
// callers when they receive one.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "snippet format error: " + e.Reason
}

const (
	reasonMissingIdentifier = "missing identifier"
	reasonMissingObjectBody = "missing object body"
	reasonUnparseableObject = "unparseable object"
)

// Result is a parsed snippet: the title derived from the identifier and the
// record projected from the object body.
type Result struct {
	Title string
	Style models.ArtistStyle
}

// identifierPattern locates "const <identifier> =". Identifiers may contain
// letters, digits, underscores and spaces.
var identifierPattern = regexp.MustCompile(`const\s+([A-Za-z][A-Za-z0-9_ ]*?)\s*=`)

// titleKeywords delimit word groups in an identifier; the keyword itself is
// discarded from the title.
var titleKeywords = map[string]struct{}{
	"sound":    {},
	"producer": {},
	"lyrical":  {},
	"profile":  {},
	"artistic": {},
}

// Parse reads a snippet into a title and record. It fails with a
// *FormatError when the identifier is absent, the object body is absent, or
// the body is not a well-formed object literal.
func Parse(raw string) (Result, error) {
	match := identifierPattern.FindStringSubmatch(raw)
	if match == nil {
		return Result{}, &FormatError{Reason: reasonMissingIdentifier}
	}
	identifier := strings.TrimSpace(match[1])

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return Result{}, &FormatError{Reason: reasonMissingObjectBody}
	}

	values, err := parseObjectLiteral(raw[start : end+1])
	if err != nil {
		return Result{}, &FormatError{Reason: reasonUnparseableObject}
	}

	return Result{
		Title: deriveTitle(identifier),
		Style: models.StyleFromValues(values),
	}, nil
}

// deriveTitle turns an identifier like "eminemSound_drdreProducer" into
// "eminem, drdre": the identifier is split into words, keyword words close
// the current group, and groups join with ", ". When every word is a keyword
// the raw identifier is returned unchanged.
func deriveTitle(identifier string) string {
	words := splitWords(identifier)

	var groups []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			groups = append(groups, strings.Join(current, " "))
			current = nil
		}
	}

	for _, word := range words {
		if _, ok := titleKeywords[strings.ToLower(word)]; ok {
			flush()
			continue
		}
		current = append(current, word)
	}
	flush()

	if len(groups) == 0 {
		return identifier
	}
	return strings.Join(groups, ", ")
}

// splitWords breaks an identifier on underscores and spaces, and at every
// lowercase-to-uppercase transition.
func splitWords(identifier string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	var prev rune
	for _, r := range identifier {
		switch {
		case r == '_' || r == ' ':
			flush()
		case isLower(prev) && isUpper(r):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()
	return words
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
