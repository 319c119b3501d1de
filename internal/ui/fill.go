package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptsave/promptsave/internal/models"
	"github.com/promptsave/promptsave/internal/template"
)

// fillAction reports what a fill-form keypress resolved to.
type fillAction int

const (
	fillNone fillAction = iota
	fillCancelled
	fillCopy
)

// canFill reports whether the fill flow applies to a prompt. Artist-style
// content is a serialized record, so a bracketed span inside it is data, not
// a placeholder.
func canFill(p *models.Prompt) bool {
	return p != nil && !p.IsArtistStyle() && template.HasPlaceholders(p.Content)
}

// fillForm collects values for a prompt's placeholders and previews the
// substituted text as they are typed.
type fillForm struct {
	title   string
	content string
	tokens  []string
	inputs  []textinput.Model
	focus   int
}

func newFillForm(p *models.Prompt) *fillForm {
	tokens := template.Extract(p.Content)
	inputs := make([]textinput.Model, len(tokens))
	for i, token := range tokens {
		ti := textinput.New()
		ti.Placeholder = template.Label(token)
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}
	return &fillForm{
		title:   p.Title,
		content: p.Content,
		tokens:  tokens,
		inputs:  inputs,
	}
}

func (f *fillForm) Update(msg tea.KeyMsg) (fillAction, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return fillCancelled, nil

	case "ctrl+y":
		return fillCopy, nil

	case "enter":
		if f.focus == len(f.inputs)-1 {
			return fillCopy, nil
		}
		return fillNone, f.setFocus(f.focus + 1)

	case "tab", "down":
		return fillNone, f.setFocus((f.focus + 1) % len(f.inputs))

	case "shift+tab", "up":
		return fillNone, f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return fillNone, cmd
}

func (f *fillForm) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[i].Focus()
}

func (f *fillForm) values() map[string]string {
	values := make(map[string]string, len(f.tokens))
	for i, token := range f.tokens {
		values[token] = f.inputs[i].Value()
	}
	return values
}

// Result returns the substituted text, ready for the clipboard.
func (f *fillForm) Result() string {
	return template.Substitute(f.content, f.values())
}

func (f *fillForm) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Use: "+f.title) + "\n\n")

	for i, token := range f.tokens {
		label := StyleFormLabel.Render(template.Label(token))
		if i == f.focus {
			label = StyleFormLabel.Foreground(ColorAccent).Render(template.Label(token))
		}
		b.WriteString(label + "\n" + f.inputs[i].View() + "\n")
	}

	// Empty fields keep their token visible in the preview.
	preview := make(map[string]string, len(f.tokens))
	for token, value := range f.values() {
		if value == "" {
			preview[token] = token
		} else {
			preview[token] = value
		}
	}
	b.WriteString("\n" + StyleFormLabel.Render("Preview") + "\n")
	b.WriteString(StyleTextMuted.Render(template.Substitute(f.content, preview)) + "\n")

	b.WriteString("\n" + CreateHelp("Enter next/copy • Ctrl+y copy now • Esc cancel"))
	return StyleModal.Render(b.String())
}
