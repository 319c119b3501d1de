package cli

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/promptsave/promptsave/internal/errors"
	"github.com/promptsave/promptsave/internal/service"
)

func newTestCLI(t *testing.T) (*CLI, *service.Service) {
	t.Helper()
	svc, err := service.NewService(t.TempDir())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return NewCLI(svc), svc
}

func TestImportPromptCommand(t *testing.T) {
	c, svc := newTestCLI(t)

	path := filepath.Join(t.TempDir(), "prompt.json")
	payload := `{"title": "From file", "content": "hello [name]", "promptType": "Text Generation"}`
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}

	if err := c.ExecuteCommand([]string{"import", "--prompt", path}); err != nil {
		t.Fatalf("import --prompt failed: %v", err)
	}

	prompts := svc.ListPrompts()
	if len(prompts) != 1 || prompts[0].Title != "From file" {
		t.Errorf("prompt not imported: %+v", prompts)
	}
}

func TestImportPromptCommandUsage(t *testing.T) {
	c, _ := newTestCLI(t)
	if err := c.ExecuteCommand([]string{"import", "--prompt"}); err == nil {
		t.Error("missing file argument should fail")
	}
}

func TestListRejectsUnknownType(t *testing.T) {
	c, _ := newTestCLI(t)

	err := c.ExecuteCommand([]string{"list", "--type", "Video Generation"})
	if err == nil {
		t.Fatal("unknown prompt type should be rejected")
	}
	if appErr := apperrors.GetAppError(err); appErr.Code != apperrors.ErrCodeValidation {
		t.Errorf("error code = %s, want %s", appErr.Code, apperrors.ErrCodeValidation)
	}
}

func TestResolvePromptByPrefixAndTitle(t *testing.T) {
	c, svc := newTestCLI(t)
	saved, err := svc.SavePrompt(service.PromptForm{
		Title: "Marketing slogans", Content: "c", PromptType: "Text Generation",
	})
	if err != nil {
		t.Fatalf("SavePrompt failed: %v", err)
	}

	byPrefix, err := c.resolvePrompt(saved.ID[:8])
	if err != nil || byPrefix.ID != saved.ID {
		t.Errorf("prefix resolution: %v, %v", byPrefix, err)
	}
	byTitle, err := c.resolvePrompt("marketing SLOGANS")
	if err != nil || byTitle.ID != saved.ID {
		t.Errorf("title resolution: %v, %v", byTitle, err)
	}
	if _, err := c.resolvePrompt("missing"); err == nil {
		t.Error("unknown reference should fail")
	}
}
