package export

import (
	"encoding/json"

	apperrors "github.com/promptsave/promptsave/internal/errors"
	"github.com/promptsave/promptsave/internal/models"
)

// promptPayload is the single-prompt interchange form: the prompt's own
// fields minus id, folder reference and creation time, so an imported prompt
// always lands as a fresh entry wherever it is opened.
type promptPayload struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	PromptType string `json:"promptType"`
	Model      string `json:"model"`
	Color      string `json:"color"`
}

type imagePromptPayload struct {
	promptPayload
	NegativePrompt string `json:"negativePrompt"`
	Parameters     string `json:"parameters"`
	ImageURL       string `json:"imageUrl"`
}

// PromptJSON encodes a single prompt for file export. Image prompts carry
// their extras, but the image URL is always blanked: exports must stay
// portable and free of embedded data URLs.
func PromptJSON(p *models.Prompt) ([]byte, error) {
	base := promptPayload{
		Title:      p.Title,
		Content:    p.Content,
		PromptType: p.PromptType,
		Model:      p.Model,
		Color:      p.Color,
	}

	var payload interface{} = base
	if p.IsImage() {
		payload = imagePromptPayload{
			promptPayload:  base,
			NegativePrompt: p.NegativePrompt,
			Parameters:     p.Parameters,
			ImageURL:       "",
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, apperrors.StorageError("encode prompt", err)
	}
	return data, nil
}

// PromptImport is a decoded single-prompt file, normalized against the known
// type/model/color sets.
type PromptImport struct {
	Title          string
	Content        string
	PromptType     string
	Model          string
	Color          string
	NegativePrompt string
	Parameters     string
}

// ParsePromptJSON decodes a single-prompt file. Title and content must be
// present as strings; unknown types, models and colors fall back to the
// defaults rather than failing.
func ParsePromptJSON(data []byte) (PromptImport, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return PromptImport{}, apperrors.DecodeError("prompt file", err)
	}

	title, titleOK := raw["title"].(string)
	content, contentOK := raw["content"].(string)
	if !titleOK || !contentOK {
		return PromptImport{}, apperrors.NewAppError(apperrors.ErrCodeDecodeFailure, "prompt file must carry string title and content")
	}

	imp := PromptImport{
		Title:      title,
		Content:    content,
		PromptType: models.DefaultPromptType,
		Model:      models.DefaultModel,
		Color:      models.DefaultColor,
	}
	if t, ok := raw["promptType"].(string); ok && models.KnownPromptType(t) {
		imp.PromptType = t
	}
	if m, ok := raw["model"].(string); ok && models.KnownModel(m) {
		imp.Model = m
	}
	if c, ok := raw["color"].(string); ok && models.KnownColor(c) {
		imp.Color = c
	}

	// Image extras only mean something for image prompts; the image URL is
	// never imported, the user re-attaches a local image.
	if imp.PromptType == models.PromptTypeImage {
		if neg, ok := raw["negativePrompt"].(string); ok {
			imp.NegativePrompt = neg
		}
		if params, ok := raw["parameters"].(string); ok {
			imp.Parameters = params
		}
	}
	return imp, nil
}
