package ui

import (
	"testing"

	"github.com/promptsave/promptsave/internal/models"
)

func TestCanFill(t *testing.T) {
	tests := []struct {
		name   string
		prompt *models.Prompt
		want   bool
	}{
		{"placeholders", &models.Prompt{Content: "write [n] slogans", PromptType: models.PromptTypeText}, true},
		{"no placeholders", &models.Prompt{Content: "plain text", PromptType: models.PromptTypeText}, false},
		{"artist style with bracketed value", &models.Prompt{
			Content:    `{"era":"","genre":"[unreleased]","style":"","vocals":"","mood":"","instrumentation":"","mastering":""}`,
			PromptType: models.PromptTypeArtistStyle,
		}, false},
		{"nil prompt", nil, false},
	}

	for _, tt := range tests {
		if got := canFill(tt.prompt); got != tt.want {
			t.Errorf("%s: canFill = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFillFormSubstitutesAsTyped(t *testing.T) {
	p := &models.Prompt{Content: "Hello [name], you are [age].", PromptType: models.PromptTypeText}
	form := newFillForm(p)

	form.inputs[0].SetValue("Ann")
	form.inputs[1].SetValue("30")
	if got := form.Result(); got != "Hello Ann, you are 30." {
		t.Errorf("Result = %q", got)
	}
}
