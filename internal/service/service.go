// Package service orchestrates the prompt library: save assembly, folder
// management, filtering and sorting, and library interchange. It owns the
// in-memory collections and talks to storage; interfaces (TUI, CLI) only
// talk to the service.
package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promptsave/promptsave/internal/config"
	apperrors "github.com/promptsave/promptsave/internal/errors"
	"github.com/promptsave/promptsave/internal/export"
	"github.com/promptsave/promptsave/internal/models"
	"github.com/promptsave/promptsave/internal/storage"
)

// FolderAll is the sentinel folder filter meaning "every prompt".
const FolderAll = "all"

// FolderNone is the sentinel folder filter meaning "uncategorized only".
const FolderNone = "none"

// Service coordinates prompt and folder operations over storage.
type Service struct {
	storage  *storage.Storage
	prompts  []*models.Prompt
	folders  []*models.Folder
	settings config.Settings

	// overridable in tests
	now   func() time.Time
	newID func() string
}

// NewService creates a service rooted at the given library path (empty uses
// the default root) and loads both collections.
func NewService(rootPath string) (*Service, error) {
	store, err := storage.NewStorage(rootPath)
	if err != nil {
		return nil, err
	}

	prompts, err := store.LoadPrompts()
	if err != nil {
		return nil, err
	}
	folders, err := store.LoadFolders()
	if err != nil {
		return nil, err
	}

	return &Service{
		storage:  store,
		prompts:  prompts,
		folders:  folders,
		settings: config.Load(store.RootPath()),
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// InitLibrary creates the library directory structure.
func (s *Service) InitLibrary() error {
	return s.storage.InitLibrary()
}

// RootPath returns the library root directory.
func (s *Service) RootPath() string {
	return s.storage.RootPath()
}

// Settings returns the last-used form defaults.
func (s *Service) Settings() config.Settings {
	return s.settings
}

// ListPrompts returns all prompts in library order (newest saved first).
func (s *Service) ListPrompts() []*models.Prompt {
	return s.prompts
}

// GetPrompt returns the prompt with the given id.
func (s *Service) GetPrompt(id string) (*models.Prompt, error) {
	for _, p := range s.prompts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.NotFoundError("prompt " + id)
}

// ListFolders returns folders sorted by name.
func (s *Service) ListFolders() []*models.Folder {
	folders := make([]*models.Folder, len(s.folders))
	copy(folders, s.folders)
	sort.SliceStable(folders, func(i, j int) bool {
		return strings.ToLower(folders[i].Name) < strings.ToLower(folders[j].Name)
	})
	return folders
}

// GetFolder returns the folder with the given id.
func (s *Service) GetFolder(id string) (*models.Folder, error) {
	for _, f := range s.folders {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, apperrors.NotFoundError("folder " + id)
}

// FolderName resolves a folder id to its name; uncategorized resolves to "".
func (s *Service) FolderName(id string) string {
	for _, f := range s.folders {
		if f.ID == id {
			return f.Name
		}
	}
	return ""
}

// AddFolder creates a folder with a trimmed, non-empty name.
func (s *Service) AddFolder(name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.MissingFieldError("folder name")
	}

	folder := &models.Folder{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: s.now(),
	}
	s.folders = append(s.folders, folder)
	if err := s.storage.SaveFolders(s.folders); err != nil {
		return nil, err
	}
	return folder, nil
}

// RenameFolder changes a folder's name; empty names are rejected.
func (s *Service) RenameFolder(id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return apperrors.MissingFieldError("folder name")
	}

	folder, err := s.GetFolder(id)
	if err != nil {
		return err
	}
	folder.Name = newName
	return s.storage.SaveFolders(s.folders)
}

// DeleteFolder removes a folder and detaches its prompts: every prompt that
// referenced it becomes uncategorized. Prompts are never deleted with their
// folder.
func (s *Service) DeleteFolder(id string) error {
	if _, err := s.GetFolder(id); err != nil {
		return err
	}

	remaining := s.folders[:0]
	for _, f := range s.folders {
		if f.ID != id {
			remaining = append(remaining, f)
		}
	}
	s.folders = remaining

	detached := false
	for _, p := range s.prompts {
		if p.FolderID == id {
			p.FolderID = ""
			detached = true
		}
	}

	if err := s.storage.SaveFolders(s.folders); err != nil {
		return err
	}
	if detached {
		return s.storage.SavePrompts(s.prompts)
	}
	return nil
}

// DeletePrompt removes a prompt from the library.
func (s *Service) DeletePrompt(id string) error {
	for i, p := range s.prompts {
		if p.ID == id {
			s.prompts = append(s.prompts[:i], s.prompts[i+1:]...)
			return s.storage.SavePrompts(s.prompts)
		}
	}
	return apperrors.NotFoundError("prompt " + id)
}

// ExportLibraryJSON encodes the whole library as a JSON backup.
func (s *Service) ExportLibraryJSON() ([]byte, error) {
	return export.LibraryJSON(s.prompts, s.folders)
}

// ExportLibraryTXT renders the whole library as a readable text document.
func (s *Service) ExportLibraryTXT() string {
	return export.LibraryTXT(s.prompts, s.folders)
}
