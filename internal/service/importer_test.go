package service

import (
	"testing"

	"github.com/promptsave/promptsave/internal/export"
	"github.com/promptsave/promptsave/internal/models"
)

func TestImportLibraryMergesFoldersByName(t *testing.T) {
	svc := newTestService(t)
	existing, err := svc.AddFolder("Work")
	if err != nil {
		t.Fatalf("AddFolder failed: %v", err)
	}

	backup, err := export.LibraryJSON(
		[]*models.Prompt{
			{ID: "remote-p1", Title: "Matched", Content: "c", FolderID: "remote-work", PromptType: models.PromptTypeText},
			{ID: "remote-p2", Title: "Fresh folder", Content: "c", FolderID: "remote-new", PromptType: models.PromptTypeText},
			{ID: "remote-p3", Title: "Dangling", Content: "c", FolderID: "remote-ghost", PromptType: models.PromptTypeText},
		},
		[]*models.Folder{
			{ID: "remote-work", Name: "WORK"}, // case-insensitive match
			{ID: "remote-new", Name: "Ideas"},
		},
	)
	if err != nil {
		t.Fatalf("LibraryJSON failed: %v", err)
	}

	summary, err := svc.ImportLibrary(backup)
	if err != nil {
		t.Fatalf("ImportLibrary failed: %v", err)
	}
	if summary.PromptsAdded != 3 || summary.FoldersAdded != 1 || summary.FoldersMerged != 1 {
		t.Errorf("summary = %+v", summary)
	}

	folders := svc.ListFolders()
	if len(folders) != 2 {
		t.Fatalf("expected 2 folders after merge, got %d", len(folders))
	}

	var matched, fresh, dangling *models.Prompt
	for _, p := range svc.ListPrompts() {
		switch p.Title {
		case "Matched":
			matched = p
		case "Fresh folder":
			fresh = p
		case "Dangling":
			dangling = p
		}
	}

	if matched.FolderID != existing.ID {
		t.Errorf("matched folder reference should remap to existing id %q, got %q", existing.ID, matched.FolderID)
	}
	ideas, err := svc.GetFolder(fresh.FolderID)
	if err != nil || ideas.Name != "Ideas" {
		t.Errorf("fresh folder reference broken: %v, %v", fresh.FolderID, err)
	}
	if ideas.ID == "remote-new" {
		t.Error("imported folders must get fresh ids")
	}
	if dangling.FolderID != "" {
		t.Errorf("dangling reference should become uncategorized, got %q", dangling.FolderID)
	}

	for _, p := range []*models.Prompt{matched, fresh, dangling} {
		if p.ID == "remote-p1" || p.ID == "remote-p2" || p.ID == "remote-p3" {
			t.Errorf("imported prompt kept its original id: %q", p.ID)
		}
	}
}

func TestImportLibraryRejectsMalformedPayload(t *testing.T) {
	svc := newTestService(t)
	mustSave(t, svc, textForm("Keep", "c"))

	if _, err := svc.ImportLibrary([]byte("not json")); err == nil {
		t.Fatal("malformed payload should abort the import")
	}
	if len(svc.ListPrompts()) != 1 {
		t.Error("failed import must leave the library untouched")
	}
}

func TestImportPromptSavesFreshEntry(t *testing.T) {
	svc := newTestService(t)

	payload := []byte(`{
		"title": "Imported image",
		"content": "a cat",
		"promptType": "Image Generation",
		"model": "Midjourney",
		"color": "#3b82f6",
		"negativePrompt": "blurry",
		"parameters": "--ar 16:9",
		"imageUrl": "data:image/png;base64,AA"
	}`)

	prompt, err := svc.ImportPrompt(payload)
	if err != nil {
		t.Fatalf("ImportPrompt failed: %v", err)
	}
	if prompt.Title != "Imported image" || prompt.Content != "a cat" {
		t.Errorf("imported fields wrong: %+v", prompt)
	}
	if prompt.NegativePrompt != "blurry" || prompt.Parameters != "--ar 16:9" {
		t.Errorf("image extras not carried: %+v", prompt)
	}
	if prompt.ImageURL != "" {
		t.Error("image URLs must never be imported")
	}
	if prompt.FolderID != "" {
		t.Errorf("imported prompts start uncategorized, got folder %q", prompt.FolderID)
	}
	if len(svc.ListPrompts()) != 1 {
		t.Error("imported prompt not persisted")
	}
}

func TestImportPromptArtistStyleContent(t *testing.T) {
	svc := newTestService(t)

	payload := []byte(`{
		"title": "Eminem sound",
		"content": "{\"era\":\"2000s\",\"genre\":\"hip hop\"}",
		"promptType": "Artist Style"
	}`)

	prompt, err := svc.ImportPrompt(payload)
	if err != nil {
		t.Fatalf("ImportPrompt failed: %v", err)
	}
	record := models.ParseArtistStyle(prompt.Content)
	if record.Era != "2000s" || record.Genre != "hip hop" {
		t.Errorf("record fields lost on import: %q", prompt.Content)
	}
}

func TestImportPromptRejectsMalformedPayload(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.ImportPrompt([]byte(`{"title": 5}`)); err == nil {
		t.Fatal("payload without string title/content should be rejected")
	}
	if len(svc.ListPrompts()) != 0 {
		t.Error("failed import must not touch the library")
	}
}

func TestImportLibraryDoesNotDuplicateWithinBackup(t *testing.T) {
	svc := newTestService(t)

	backup, err := export.LibraryJSON(nil, []*models.Folder{
		{ID: "r1", Name: "Ideas"},
		{ID: "r2", Name: "ideas"},
	})
	if err != nil {
		t.Fatalf("LibraryJSON failed: %v", err)
	}

	if _, err := svc.ImportLibrary(backup); err != nil {
		t.Fatalf("ImportLibrary failed: %v", err)
	}
	if got := len(svc.ListFolders()); got != 1 {
		t.Errorf("same-named folders inside one backup should merge, got %d folders", got)
	}
}
