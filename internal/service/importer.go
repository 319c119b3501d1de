package service

import (
	"strings"

	"github.com/promptsave/promptsave/internal/export"
	"github.com/promptsave/promptsave/internal/models"
)

// ImportSummary reports what a library import changed.
type ImportSummary struct {
	PromptsAdded  int
	FoldersAdded  int
	FoldersMerged int
}

// ImportLibrary merges a JSON backup into the library. Folders match
// existing ones case-insensitively by name and are reused; unmatched folders
// are recreated with fresh ids. Every imported prompt gets a fresh id, and
// its folder reference is remapped through the merge (or dropped when the
// referenced folder is not part of the backup).
func (s *Service) ImportLibrary(data []byte) (ImportSummary, error) {
	prompts, folders, err := export.ParseLibraryJSON(data)
	if err != nil {
		return ImportSummary{}, err
	}

	var summary ImportSummary
	idMap := make(map[string]string)

	existingByName := make(map[string]*models.Folder, len(s.folders))
	for _, f := range s.folders {
		existingByName[strings.ToLower(f.Name)] = f
	}

	var newFolders []*models.Folder
	for _, imported := range folders {
		key := strings.ToLower(imported.Name)
		if existing, ok := existingByName[key]; ok {
			idMap[imported.ID] = existing.ID
			summary.FoldersMerged++
			continue
		}

		folder := &models.Folder{
			ID:        s.newID(),
			Name:      imported.Name,
			CreatedAt: imported.CreatedAt,
		}
		idMap[imported.ID] = folder.ID
		newFolders = append(newFolders, folder)
		existingByName[key] = folder
		summary.FoldersAdded++
	}

	var newPrompts []*models.Prompt
	for _, imported := range prompts {
		prompt := *imported
		prompt.ID = s.newID()
		prompt.FolderID = idMap[imported.FolderID] // unmapped references become uncategorized
		newPrompts = append(newPrompts, &prompt)
		summary.PromptsAdded++
	}

	s.folders = append(s.folders, newFolders...)
	s.prompts = append(newPrompts, s.prompts...)

	if err := s.storage.SaveFolders(s.folders); err != nil {
		return ImportSummary{}, err
	}
	if err := s.storage.SavePrompts(s.prompts); err != nil {
		return ImportSummary{}, err
	}
	return summary, nil
}

// ImportPrompt decodes a single-prompt JSON file and saves it as a fresh
// uncategorized prompt. Unknown types, models and colors arrive already
// clamped to the defaults by the parse.
func (s *Service) ImportPrompt(data []byte) (*models.Prompt, error) {
	imported, err := export.ParsePromptJSON(data)
	if err != nil {
		return nil, err
	}

	form := PromptForm{
		Title:          imported.Title,
		Content:        imported.Content,
		PromptType:     imported.PromptType,
		Model:          imported.Model,
		Color:          imported.Color,
		NegativePrompt: imported.NegativePrompt,
		Parameters:     imported.Parameters,
	}
	if imported.PromptType == models.PromptTypeArtistStyle {
		form.Style = models.ParseArtistStyle(imported.Content)
	}
	return s.SavePrompt(form)
}
