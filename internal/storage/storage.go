// Package storage persists the prompt library as two named JSON collections,
// "prompts" and "folders", under the library root. Callers work with plain
// model values; nothing above this package touches the files.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/promptsave/promptsave/internal/errors"
	"github.com/promptsave/promptsave/internal/models"
)

const (
	promptsCollection = "prompts"
	foldersCollection = "folders"
)

// Storage handles all file system operations for the prompt library
type Storage struct {
	rootPath string
}

// NewStorage creates a new storage instance. An empty rootPath falls back to
// $PROMPTSAVE_DIR, then to ~/.promptsave.
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		rootPath = os.Getenv("PROMPTSAVE_DIR")
	}
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".promptsave")
	}

	return &Storage{rootPath: rootPath}, nil
}

// InitLibrary creates the directory structure for a prompt library
func (s *Storage) InitLibrary() error {
	if err := os.MkdirAll(s.rootPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", s.rootPath, err)
	}
	return nil
}

// RootPath returns the root path of the storage
func (s *Storage) RootPath() string {
	return s.rootPath
}

// LoadPrompts loads the prompts collection. A missing file yields an empty
// collection; a corrupt file is a decode failure the caller surfaces.
func (s *Storage) LoadPrompts() ([]*models.Prompt, error) {
	var prompts []*models.Prompt
	if err := s.loadCollection(promptsCollection, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// SavePrompts writes the prompts collection.
func (s *Storage) SavePrompts(prompts []*models.Prompt) error {
	if prompts == nil {
		prompts = []*models.Prompt{}
	}
	return s.saveCollection(promptsCollection, prompts)
}

// LoadFolders loads the folders collection.
func (s *Storage) LoadFolders() ([]*models.Folder, error) {
	var folders []*models.Folder
	if err := s.loadCollection(foldersCollection, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// SaveFolders writes the folders collection.
func (s *Storage) SaveFolders(folders []*models.Folder) error {
	if folders == nil {
		folders = []*models.Folder{}
	}
	return s.saveCollection(foldersCollection, folders)
}

func (s *Storage) collectionPath(name string) string {
	return filepath.Join(s.rootPath, name+".json")
}

func (s *Storage) loadCollection(name string, target interface{}) error {
	data, err := os.ReadFile(s.collectionPath(name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return apperrors.StorageError("read "+name, err).WithDetails(s.collectionPath(name))
	}

	if err := json.Unmarshal(data, target); err != nil {
		return apperrors.DecodeError(name+" collection", err).WithDetails(s.collectionPath(name))
	}
	return nil
}

// saveCollection writes through a temp file and renames so a crash mid-write
// never leaves a truncated collection behind.
func (s *Storage) saveCollection(name string, value interface{}) error {
	if err := os.MkdirAll(s.rootPath, 0755); err != nil {
		return apperrors.StorageError("create library root", err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return apperrors.StorageError("encode "+name, err)
	}

	path := s.collectionPath(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return apperrors.StorageError("write "+name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return apperrors.StorageError("replace "+name, err)
	}
	return nil
}
