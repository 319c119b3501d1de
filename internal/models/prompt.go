package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Prompt represents one reusable text or record template plus its metadata.
// Field names in the JSON form match the interchange format of library
// backups, so exported files can be re-imported byte-compatibly.
type Prompt struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"` // for image prompts this is the main positive prompt
	NegativePrompt string    `json:"negativePrompt,omitempty"`
	Parameters     string    `json:"parameters,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	FolderID       string    `json:"folderId"` // empty means uncategorized
	PromptType     string    `json:"promptType"`
	Model          string    `json:"model"`
	Color          string    `json:"color"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MarshalJSON emits a null folderId for uncategorized prompts, matching the
// interchange format where the reference is nullable.
func (p Prompt) MarshalJSON() ([]byte, error) {
	type alias Prompt
	var folderID *string
	if p.FolderID != "" {
		folderID = &p.FolderID
	}
	return json.Marshal(struct {
		alias
		FolderID *string `json:"folderId"`
	}{alias(p), folderID})
}

// IsImage reports whether the prompt carries image-generation extras.
func (p *Prompt) IsImage() bool {
	return p.PromptType == PromptTypeImage
}

// IsArtistStyle reports whether the content is a serialized ArtistStyle record.
func (p *Prompt) IsArtistStyle() bool {
	return p.PromptType == PromptTypeArtistStyle
}

// FilterValue returns the value used for filtering in bubbles lists. The
// Title field name is taken by data, so the UI wraps prompts in an item
// adapter that delegates here and to Describe.
func (p Prompt) FilterValue() string {
	return cleanString(p.Title)
}

// Describe returns the secondary line shown under a prompt in lists.
func (p Prompt) Describe() string {
	var parts []string

	if p.PromptType != "" {
		parts = append(parts, p.PromptType)
	}
	if p.Model != "" {
		parts = append(parts, p.Model)
	}

	if p.IsArtistStyle() {
		style := ParseArtistStyle(p.Content)
		if summary := style.Summary(); summary != "" {
			parts = append(parts, summary)
		}
	} else if p.Content != "" {
		snippet := cleanString(p.Content)
		if len(snippet) > 60 {
			snippet = snippet[:57] + "..."
		}
		parts = append(parts, snippet)
	}

	result := strings.Join(parts, " • ")
	if len(result) > 100 {
		result = result[:97] + "..."
	}
	return cleanString(result)
}

// cleanString removes problematic characters that might cause rendering issues
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteByte(' ')
		} else if r >= 32 && r != 127 {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}
	return strings.TrimSpace(cleaned)
}
