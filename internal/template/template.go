// Package template implements the placeholder engine for prompt content.
//
// A placeholder is a bracketed span like [name]. Tokens are compared
// byte-for-byte, so [Name] and [name] are distinct, and the same token
// appearing several times is still a single variable.
package template

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/promptsave/promptsave/internal/errors"
	"github.com/promptsave/promptsave/internal/models"
)

// tokenPattern matches a bracketed span with at least one interior character.
// The interior excludes the closing bracket and newlines, so [] is not a
// placeholder and a span never crosses lines.
var tokenPattern = regexp.MustCompile(`\[[^\]\n]+\]`)

// Extract returns the unique placeholder tokens of a template in
// first-occurrence order. Each token keeps its brackets. A template without
// placeholders yields an empty slice, not an error.
func Extract(template string) []string {
	matches := tokenPattern.FindAllString(template, -1)
	seen := make(map[string]struct{}, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		tokens = append(tokens, m)
	}
	return tokens
}

// Label strips the brackets from a token for display.
func Label(token string) string {
	return strings.TrimSuffix(strings.TrimPrefix(token, "["), "]")
}

// HasPlaceholders reports whether the template contains at least one token.
func HasPlaceholders(template string) bool {
	return tokenPattern.MatchString(template)
}

// Substitute replaces every occurrence of every extracted token with its
// value. Tokens without a value are replaced with the empty string.
// Replacement is literal substring replacement applied in extraction order,
// so tokens containing regexp metacharacters need no escaping.
func Substitute(template string, values map[string]string) string {
	result := template
	for _, token := range Extract(template) {
		result = strings.ReplaceAll(result, token, values[token])
	}
	return result
}

// Rebind reconciles a value map with the current template: keys become
// exactly the extracted token set, values of surviving tokens are kept,
// new tokens start empty.
func Rebind(template string, old map[string]string) map[string]string {
	values := make(map[string]string)
	for _, token := range Extract(template) {
		values[token] = old[token]
	}
	return values
}

// ApplyJSONValues fills placeholder values from a flat JSON object whose
// keys are bare labels. Keys that are not current placeholders are ignored.
// A payload that is not a JSON object is rejected with a decode error and
// leaves values untouched.
func ApplyJSONValues(tokens []string, values map[string]string, raw string) error {
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return errors.DecodeError("placeholder values", err)
	}

	byLabel := make(map[string]string, len(tokens))
	for _, token := range tokens {
		byLabel[Label(token)] = token
	}

	for key, value := range decoded {
		if token, ok := byLabel[key]; ok {
			values[token] = models.CoerceString(value)
		}
	}
	return nil
}
