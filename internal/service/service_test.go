package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/promptsave/promptsave/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(t.TempDir())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	// Deterministic ids and clock.
	counter := 0
	svc.newID = func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		counter++
		return base.Add(time.Duration(counter) * time.Minute)
	}
	return svc
}

func mustSave(t *testing.T, svc *Service, form PromptForm) *models.Prompt {
	t.Helper()
	p, err := svc.SavePrompt(form)
	if err != nil {
		t.Fatalf("SavePrompt failed: %v", err)
	}
	return p
}

func textForm(title, content string) PromptForm {
	return PromptForm{
		Title:      title,
		Content:    content,
		PromptType: models.PromptTypeText,
		Model:      models.DefaultModel,
		Color:      models.DefaultColor,
	}
}

func TestSavePromptValidation(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.SavePrompt(textForm("   ", "content")); err == nil {
		t.Error("blank title should block the save")
	}
	if _, err := svc.SavePrompt(textForm("title", "  \n ")); err == nil {
		t.Error("blank content should block a non-structured save")
	}
	if len(svc.ListPrompts()) != 0 {
		t.Error("failed saves must not touch the library")
	}

	// An all-empty record is still a valid artist-style prompt.
	form := PromptForm{Title: "Empty style", PromptType: models.PromptTypeArtistStyle}
	p := mustSave(t, svc, form)
	if !models.ParseArtistStyle(p.Content).IsZero() {
		t.Errorf("content = %q", p.Content)
	}
}

func TestSavePromptTrimsAndBranches(t *testing.T) {
	svc := newTestService(t)

	image := mustSave(t, svc, PromptForm{
		Title:          "  Pic  ",
		Content:        " a cat ",
		PromptType:     models.PromptTypeImage,
		NegativePrompt: " blurry ",
		Parameters:     " --ar 16:9 ",
		ImageURL:       " data:image/png;base64,AA ",
	})
	if image.Title != "Pic" || image.Content != "a cat" {
		t.Errorf("fields not trimmed: %+v", image)
	}
	if image.NegativePrompt != "blurry" || image.Parameters != "--ar 16:9" {
		t.Errorf("image extras not trimmed: %+v", image)
	}

	plain := mustSave(t, svc, PromptForm{
		Title:          "Plain",
		Content:        "text",
		PromptType:     models.PromptTypeText,
		NegativePrompt: "should vanish",
		Parameters:     "should vanish",
		ImageURL:       "should vanish",
	})
	if plain.NegativePrompt != "" || plain.Parameters != "" || plain.ImageURL != "" {
		t.Errorf("image-only fields must never attach to non-image prompts: %+v", plain)
	}

	style := mustSave(t, svc, PromptForm{
		Title:      "Style",
		PromptType: models.PromptTypeArtistStyle,
		Style:      models.ArtistStyle{Era: "80s"},
	})
	if got := models.ParseArtistStyle(style.Content); got.Era != "80s" {
		t.Errorf("style content = %q", style.Content)
	}
}

func TestSavePromptEditPreservesIdentity(t *testing.T) {
	svc := newTestService(t)

	created := mustSave(t, svc, textForm("Original", "content"))
	id, createdAt := created.ID, created.CreatedAt

	edited := mustSave(t, svc, PromptForm{
		ID:         id,
		Title:      "Renamed",
		Content:    "new content",
		PromptType: models.PromptTypeText,
	})

	if edited.ID != id {
		t.Errorf("edit changed id: %q -> %q", id, edited.ID)
	}
	if !edited.CreatedAt.Equal(createdAt) {
		t.Errorf("edit changed createdAt: %v -> %v", createdAt, edited.CreatedAt)
	}
	if len(svc.ListPrompts()) != 1 {
		t.Errorf("edit must not duplicate the prompt")
	}
	if svc.ListPrompts()[0].Title != "Renamed" {
		t.Errorf("edit not applied: %+v", svc.ListPrompts()[0])
	}
}

func TestSavePromptUnknownIDFails(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.SavePrompt(PromptForm{ID: "ghost", Title: "t", Content: "c", PromptType: models.PromptTypeText}); err == nil {
		t.Error("editing a missing prompt should fail")
	}
}

func TestNewPromptsPrepend(t *testing.T) {
	svc := newTestService(t)
	mustSave(t, svc, textForm("first", "a"))
	mustSave(t, svc, textForm("second", "b"))

	prompts := svc.ListPrompts()
	if prompts[0].Title != "second" || prompts[1].Title != "first" {
		t.Errorf("new prompts should prepend: %v, %v", prompts[0].Title, prompts[1].Title)
	}
}

func TestDeleteFolderDetachesPrompts(t *testing.T) {
	svc := newTestService(t)

	folder, err := svc.AddFolder("Work")
	if err != nil {
		t.Fatalf("AddFolder failed: %v", err)
	}

	form := textForm("In folder", "c")
	form.FolderID = folder.ID
	mustSave(t, svc, form)
	mustSave(t, svc, textForm("Loose", "c"))

	if err := svc.DeleteFolder(folder.ID); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}

	if len(svc.ListFolders()) != 0 {
		t.Error("folder not removed")
	}
	for _, p := range svc.ListPrompts() {
		if p.FolderID != "" {
			t.Errorf("prompt %q still references deleted folder %q", p.Title, p.FolderID)
		}
	}
	if len(svc.ListPrompts()) != 2 {
		t.Error("deleting a folder must not delete its prompts")
	}
}

func TestAddFolderRejectsBlankName(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.AddFolder("   "); err == nil {
		t.Error("blank folder name should be rejected")
	}
}

func TestFilterPrompts(t *testing.T) {
	svc := newTestService(t)
	folder, _ := svc.AddFolder("Work")

	inFolder := textForm("Slogans", "write [n] slogans")
	inFolder.FolderID = folder.ID
	inFolder.Color = models.ColorPalette[0]
	mustSave(t, svc, inFolder)

	loose := textForm("Summary", "summarize text")
	loose.Color = models.ColorPalette[1]
	mustSave(t, svc, loose)

	if got := svc.FilterPrompts(Query{FolderID: folder.ID}); len(got) != 1 || got[0].Title != "Slogans" {
		t.Errorf("folder filter: %+v", got)
	}
	if got := svc.FilterPrompts(Query{FolderID: FolderNone}); len(got) != 1 || got[0].Title != "Summary" {
		t.Errorf("uncategorized filter: %+v", got)
	}
	if got := svc.FilterPrompts(Query{Search: "SLOGANS"}); len(got) != 1 {
		t.Errorf("search should be case-insensitive: %+v", got)
	}
	if got := svc.FilterPrompts(Query{Search: "summarize"}); len(got) != 1 {
		t.Errorf("search should match content: %+v", got)
	}
	if got := svc.FilterPrompts(Query{Color: models.ColorPalette[0]}); len(got) != 1 || got[0].Title != "Slogans" {
		t.Errorf("color filter: %+v", got)
	}
	if got := svc.FilterPrompts(Query{}); len(got) != 2 {
		t.Errorf("no filter should return everything: %+v", got)
	}
}

func TestSortPrompts(t *testing.T) {
	svc := newTestService(t)

	a := textForm("alpha", "c")
	a.PromptType = models.PromptTypeTask
	mustSave(t, svc, a)

	b := textForm("Beta", "c")
	b.PromptType = models.PromptTypeImage
	mustSave(t, svc, b)

	titles := func(prompts []*models.Prompt) []string {
		out := make([]string, len(prompts))
		for i, p := range prompts {
			out[i] = p.Title
		}
		return out
	}

	if got := titles(svc.FilterPrompts(Query{Sort: SortCreatedDesc})); got[0] != "Beta" {
		t.Errorf("createdAt_desc: %v", got)
	}
	if got := titles(svc.FilterPrompts(Query{Sort: SortCreatedAsc})); got[0] != "alpha" {
		t.Errorf("createdAt_asc: %v", got)
	}
	if got := titles(svc.FilterPrompts(Query{Sort: SortTitleAsc})); got[0] != "alpha" {
		t.Errorf("title_asc should compare case-insensitively: %v", got)
	}
	if got := titles(svc.FilterPrompts(Query{Sort: SortTitleDesc})); got[0] != "Beta" {
		t.Errorf("title_desc: %v", got)
	}
	if got := titles(svc.FilterPrompts(Query{Sort: SortTypeAsc})); got[0] != "Beta" {
		t.Errorf("promptType_asc (Image < Tasks): %v", got)
	}
}

// The original implementation's descending type sort compared a value with
// itself and never reordered anything. The comparator here is the
// conventional reversed comparison; this test pins that choice.
func TestSortPromptsByTypeDesc(t *testing.T) {
	svc := newTestService(t)

	a := textForm("img", "c")
	a.PromptType = models.PromptTypeImage
	mustSave(t, svc, a)

	b := textForm("task", "c")
	b.PromptType = models.PromptTypeTask
	mustSave(t, svc, b)

	got := svc.FilterPrompts(Query{Sort: SortTypeDesc})
	if got[0].PromptType != models.PromptTypeTask {
		t.Errorf("promptType_desc should order %q before %q", models.PromptTypeTask, models.PromptTypeImage)
	}
}

func TestSearchPromptsFuzzy(t *testing.T) {
	svc := newTestService(t)
	mustSave(t, svc, textForm("Marketing slogans", "c"))
	mustSave(t, svc, textForm("Code review", "c"))

	got := svc.SearchPrompts("mkt")
	if len(got) == 0 || got[0].Title != "Marketing slogans" {
		t.Errorf("fuzzy search: %+v", got)
	}
	if got := svc.SearchPrompts(""); len(got) != 2 {
		t.Errorf("empty query returns everything: %+v", got)
	}
}

func TestPersistenceAcrossServices(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewService(dir)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if _, err := svc.SavePrompt(textForm("Persisted", "c")); err != nil {
		t.Fatalf("SavePrompt failed: %v", err)
	}

	reloaded, err := NewService(dir)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.ListPrompts()) != 1 || reloaded.ListPrompts()[0].Title != "Persisted" {
		t.Errorf("library did not persist: %+v", reloaded.ListPrompts())
	}
	if reloaded.Settings().PromptType != models.PromptTypeText {
		t.Errorf("last-used settings did not persist: %+v", reloaded.Settings())
	}
}
