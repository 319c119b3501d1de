package service

import (
	"strings"

	"github.com/promptsave/promptsave/internal/config"
	apperrors "github.com/promptsave/promptsave/internal/errors"
	"github.com/promptsave/promptsave/internal/models"
)

// PromptForm carries the editable state of a prompt. An empty ID means a new
// prompt; a non-empty ID edits the existing one in place.
type PromptForm struct {
	ID             string
	Title          string
	Content        string
	NegativePrompt string
	Parameters     string
	ImageURL       string
	FolderID       string
	PromptType     string
	Model          string
	Color          string
	Style          models.ArtistStyle // used when PromptType is the artist-style type
}

// SavePrompt assembles a form into a persisted prompt. Content assembly
// branches on the prompt type: artist-style serializes the record, image
// prompts carry their trimmed extras, everything else stores trimmed text.
// Validation failures block the save and leave the library untouched.
func (s *Service) SavePrompt(form PromptForm) (*models.Prompt, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return nil, apperrors.MissingFieldError("title")
	}

	isImage := form.PromptType == models.PromptTypeImage
	isStyle := form.PromptType == models.PromptTypeArtistStyle

	var content string
	if isStyle {
		// An all-empty record is a valid artist-style prompt.
		content = form.Style.Serialize()
	} else {
		content = strings.TrimSpace(form.Content)
		if content == "" {
			return nil, apperrors.MissingFieldError("content")
		}
	}

	var prompt *models.Prompt
	if form.ID != "" {
		existing, err := s.GetPrompt(form.ID)
		if err != nil {
			return nil, err
		}
		prompt = existing
	} else {
		prompt = &models.Prompt{
			ID:        s.newID(),
			CreatedAt: s.now(),
		}
		s.prompts = append([]*models.Prompt{prompt}, s.prompts...)
	}

	// id and createdAt are assigned once and never change on edit.
	prompt.Title = title
	prompt.Content = content
	prompt.FolderID = form.FolderID
	prompt.PromptType = form.PromptType
	prompt.Model = form.Model
	prompt.Color = form.Color

	if isImage {
		prompt.NegativePrompt = strings.TrimSpace(form.NegativePrompt)
		prompt.Parameters = strings.TrimSpace(form.Parameters)
		prompt.ImageURL = strings.TrimSpace(form.ImageURL)
	} else {
		prompt.NegativePrompt = ""
		prompt.Parameters = ""
		prompt.ImageURL = ""
	}

	if err := s.storage.SavePrompts(s.prompts); err != nil {
		return nil, err
	}

	s.rememberSettings(form)
	return prompt, nil
}

// rememberSettings stores the last-used form defaults; failures are not
// worth surfacing over a successful save.
func (s *Service) rememberSettings(form PromptForm) {
	s.settings = config.Settings{
		PromptType: form.PromptType,
		FolderID:   form.FolderID,
		Model:      form.Model,
	}
	_ = config.Save(s.storage.RootPath(), s.settings)
}
