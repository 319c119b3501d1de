package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/promptsave/promptsave/internal/errors"
	"github.com/promptsave/promptsave/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	return s
}

func TestLoadMissingCollectionsIsEmpty(t *testing.T) {
	s := newTestStorage(t)

	prompts, err := s.LoadPrompts()
	if err != nil {
		t.Fatalf("LoadPrompts failed: %v", err)
	}
	if len(prompts) != 0 {
		t.Errorf("expected empty prompts, got %d", len(prompts))
	}

	folders, err := s.LoadFolders()
	if err != nil {
		t.Fatalf("LoadFolders failed: %v", err)
	}
	if len(folders) != 0 {
		t.Errorf("expected empty folders, got %d", len(folders))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	prompts := []*models.Prompt{
		{ID: "p1", Title: "First", Content: "hello [name]", PromptType: models.PromptTypeText, CreatedAt: created},
		{ID: "p2", Title: "Pic", Content: "a cat", PromptType: models.PromptTypeImage, NegativePrompt: "blurry", FolderID: "f1", CreatedAt: created},
	}
	folders := []*models.Folder{{ID: "f1", Name: "Work", CreatedAt: created}}

	if err := s.SavePrompts(prompts); err != nil {
		t.Fatalf("SavePrompts failed: %v", err)
	}
	if err := s.SaveFolders(folders); err != nil {
		t.Fatalf("SaveFolders failed: %v", err)
	}

	gotPrompts, err := s.LoadPrompts()
	if err != nil {
		t.Fatalf("LoadPrompts failed: %v", err)
	}
	if len(gotPrompts) != 2 {
		t.Fatalf("loaded %d prompts, want 2", len(gotPrompts))
	}
	if gotPrompts[0].Title != "First" || gotPrompts[0].Content != "hello [name]" {
		t.Errorf("first prompt did not round trip: %+v", gotPrompts[0])
	}
	if gotPrompts[1].NegativePrompt != "blurry" || gotPrompts[1].FolderID != "f1" {
		t.Errorf("second prompt did not round trip: %+v", gotPrompts[1])
	}
	if !gotPrompts[0].CreatedAt.Equal(created) {
		t.Errorf("createdAt = %v, want %v", gotPrompts[0].CreatedAt, created)
	}

	gotFolders, err := s.LoadFolders()
	if err != nil {
		t.Fatalf("LoadFolders failed: %v", err)
	}
	if len(gotFolders) != 1 || gotFolders[0].Name != "Work" {
		t.Errorf("folders did not round trip: %+v", gotFolders)
	}
}

func TestNullFolderRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SavePrompts([]*models.Prompt{{ID: "p1", Title: "loose"}}); err != nil {
		t.Fatalf("SavePrompts failed: %v", err)
	}

	got, err := s.LoadPrompts()
	if err != nil {
		t.Fatalf("LoadPrompts failed: %v", err)
	}
	if got[0].FolderID != "" {
		t.Errorf("null folderId should load as empty, got %q", got[0].FolderID)
	}
}

func TestCorruptCollectionIsDecodeFailure(t *testing.T) {
	s := newTestStorage(t)
	path := filepath.Join(s.RootPath(), "prompts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	_, err := s.LoadPrompts()
	if err == nil {
		t.Fatal("expected decode error for corrupt collection")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeDecodeFailure {
		t.Errorf("error = %v, want DECODE_FAILURE AppError", err)
	}
}
