package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptsave/promptsave/internal/models"
	"github.com/promptsave/promptsave/internal/service"
	"github.com/promptsave/promptsave/internal/snippet"
)

// formAction reports what a form keypress resolved to.
type formAction int

const (
	formNone formAction = iota
	formCancelled
	formSubmitted
)

// Form field identifiers. Which ones are active depends on the prompt type.
const (
	fieldTitle = iota
	fieldType
	fieldFolder
	fieldModel
	fieldColor
	fieldContent
	fieldNegative
	fieldParams
	fieldImageURL
	fieldStyleBase // artist-style fields occupy fieldStyleBase..fieldStyleBase+6
)

// promptForm is the create/edit view for a single prompt.
type promptForm struct {
	service *service.Service
	editID  string

	title    textinput.Model
	content  textarea.Model
	negative textinput.Model
	params   textinput.Model
	imageURL textinput.Model
	style    []textinput.Model

	// Snippet paste overlay, available for artist-style prompts.
	snippet     textarea.Model
	snippetMode bool

	promptType string
	folders    []*models.Folder
	folderIdx  int // 0 = uncategorized, i>0 = folders[i-1]
	modelIdx   int
	colorIdx   int

	focus  int
	fields []int

	width  int
	height int
	errMsg string
}

func newPromptForm(svc *service.Service, editing *models.Prompt) *promptForm {
	f := &promptForm{
		service:    svc,
		folders:    svc.ListFolders(),
		promptType: svc.Settings().PromptType,
	}
	if f.promptType == "" {
		f.promptType = models.DefaultPromptType
	}

	f.title = textinput.New()
	f.title.Placeholder = "Prompt title"
	f.title.CharLimit = 200

	f.content = textarea.New()
	f.content.Placeholder = "Prompt text; use [name] for fill-in variables"

	f.negative = textinput.New()
	f.negative.Placeholder = "Things to avoid (optional)"

	f.params = textinput.New()
	f.params.Placeholder = "--ar 16:9 --v 6 (optional)"

	f.imageURL = textinput.New()
	f.imageURL.Placeholder = "Reference image data URL (optional)"

	f.style = make([]textinput.Model, 0, 7)
	for _, field := range (models.ArtistStyle{}).Fields() {
		ti := textinput.New()
		ti.Placeholder = field.Label
		f.style = append(f.style, ti)
	}

	f.snippet = textarea.New()
	f.snippet.Placeholder = "Paste a const-style snippet, e.g. const eminemSound = { era: \"2000s\", ... }"

	f.modelIdx = indexOrDefault(models.AIModels, svc.Settings().Model, models.DefaultModel)
	f.colorIdx = indexOrDefault(models.ColorPalette, "", models.DefaultColor)

	if svc.Settings().FolderID != "" {
		for i, folder := range f.folders {
			if folder.ID == svc.Settings().FolderID {
				f.folderIdx = i + 1
			}
		}
	}

	if editing != nil {
		f.editID = editing.ID
		f.title.SetValue(editing.Title)
		f.promptType = editing.PromptType
		f.modelIdx = indexOrDefault(models.AIModels, editing.Model, models.DefaultModel)
		f.colorIdx = indexOrDefault(models.ColorPalette, editing.Color, models.DefaultColor)
		f.folderIdx = 0
		for i, folder := range f.folders {
			if folder.ID == editing.FolderID {
				f.folderIdx = i + 1
			}
		}
		if editing.IsArtistStyle() {
			record := models.ParseArtistStyle(editing.Content)
			for i, field := range record.Fields() {
				f.style[i].SetValue(field.Value)
			}
		} else {
			f.content.SetValue(editing.Content)
		}
		f.negative.SetValue(editing.NegativePrompt)
		f.params.SetValue(editing.Parameters)
		f.imageURL.SetValue(editing.ImageURL)
	}

	f.rebuildFields()
	f.setFocus(0)
	return f
}

// rebuildFields recomputes the focus order for the current prompt type.
func (f *promptForm) rebuildFields() {
	f.fields = []int{fieldTitle, fieldType, fieldFolder, fieldModel, fieldColor}
	switch f.promptType {
	case models.PromptTypeArtistStyle:
		for i := range f.style {
			f.fields = append(f.fields, fieldStyleBase+i)
		}
	case models.PromptTypeImage:
		f.fields = append(f.fields, fieldContent, fieldNegative, fieldParams, fieldImageURL)
	default:
		f.fields = append(f.fields, fieldContent)
	}
	if f.focus >= len(f.fields) {
		f.focus = len(f.fields) - 1
	}
}

func (f *promptForm) setFocus(i int) tea.Cmd {
	f.blurAll()
	f.focus = i
	switch field := f.fields[i]; {
	case field == fieldTitle:
		return f.title.Focus()
	case field == fieldContent:
		return f.content.Focus()
	case field == fieldNegative:
		return f.negative.Focus()
	case field == fieldParams:
		return f.params.Focus()
	case field == fieldImageURL:
		return f.imageURL.Focus()
	case field >= fieldStyleBase:
		return f.style[field-fieldStyleBase].Focus()
	}
	return nil
}

func (f *promptForm) blurAll() {
	f.title.Blur()
	f.content.Blur()
	f.negative.Blur()
	f.params.Blur()
	f.imageURL.Blur()
	for i := range f.style {
		f.style[i].Blur()
	}
}

func (f *promptForm) Resize(width, height int) {
	f.width = width
	f.height = height

	inputWidth := width - 20
	if inputWidth < 30 {
		inputWidth = 30
	}
	f.title.Width = inputWidth
	f.negative.Width = inputWidth
	f.params.Width = inputWidth
	f.imageURL.Width = inputWidth
	for i := range f.style {
		f.style[i].Width = inputWidth
	}
	f.content.SetWidth(inputWidth)
	f.content.SetHeight(max(5, height-16))
	f.snippet.SetWidth(inputWidth)
	f.snippet.SetHeight(max(5, height-10))
}

// Update handles a keypress. The returned action tells the parent model
// whether the form finished.
func (f *promptForm) Update(msg tea.KeyMsg) (formAction, tea.Cmd) {
	if f.snippetMode {
		return f.updateSnippet(msg)
	}

	switch msg.String() {
	case "esc":
		return formCancelled, nil

	case "ctrl+s":
		return formSubmitted, nil

	case "ctrl+p":
		if f.promptType == models.PromptTypeArtistStyle {
			f.snippetMode = true
			f.errMsg = ""
			return formNone, f.snippet.Focus()
		}

	case "tab", "down":
		// The content textarea keeps "down" for cursor movement.
		if msg.String() == "down" && f.fields[f.focus] == fieldContent {
			break
		}
		return formNone, f.setFocus((f.focus + 1) % len(f.fields))

	case "shift+tab", "up":
		if msg.String() == "up" && f.fields[f.focus] == fieldContent {
			break
		}
		return formNone, f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))

	case "left", "right":
		if f.cycleChoice(msg.String() == "right") {
			return formNone, nil
		}
	}

	var cmd tea.Cmd
	switch field := f.fields[f.focus]; {
	case field == fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case field == fieldContent:
		f.content, cmd = f.content.Update(msg)
	case field == fieldNegative:
		f.negative, cmd = f.negative.Update(msg)
	case field == fieldParams:
		f.params, cmd = f.params.Update(msg)
	case field == fieldImageURL:
		f.imageURL, cmd = f.imageURL.Update(msg)
	case field >= fieldStyleBase:
		f.style[field-fieldStyleBase], cmd = f.style[field-fieldStyleBase].Update(msg)
	}
	return formNone, cmd
}

// updateSnippet handles the paste overlay. A failed parse reports the reason
// and keeps the pasted text so it can be corrected.
func (f *promptForm) updateSnippet(msg tea.KeyMsg) (formAction, tea.Cmd) {
	switch msg.String() {
	case "esc":
		f.snippetMode = false
		f.snippet.Blur()
		return formNone, nil

	case "ctrl+s":
		result, err := snippet.Parse(f.snippet.Value())
		if err != nil {
			f.errMsg = err.Error()
			return formNone, nil
		}
		if strings.TrimSpace(f.title.Value()) == "" {
			f.title.SetValue(result.Title)
		}
		for i, field := range result.Style.Fields() {
			f.style[i].SetValue(field.Value)
		}
		f.snippetMode = false
		f.snippet.Blur()
		f.snippet.Reset()
		f.errMsg = ""
		return formNone, nil
	}

	var cmd tea.Cmd
	f.snippet, cmd = f.snippet.Update(msg)
	return formNone, cmd
}

// cycleChoice advances the selector under focus. Returns false when the
// focused field is free text, so arrow keys reach the input instead.
func (f *promptForm) cycleChoice(forward bool) bool {
	step := func(current, length int) int {
		if forward {
			return (current + 1) % length
		}
		return (current - 1 + length) % length
	}

	switch f.fields[f.focus] {
	case fieldType:
		idx := indexOrDefault(models.PromptTypes, f.promptType, models.DefaultPromptType)
		f.promptType = models.PromptTypes[step(idx, len(models.PromptTypes))]
		f.rebuildFields()
		return true
	case fieldFolder:
		f.folderIdx = step(f.folderIdx, len(f.folders)+1)
		return true
	case fieldModel:
		f.modelIdx = step(f.modelIdx, len(models.AIModels))
		return true
	case fieldColor:
		f.colorIdx = step(f.colorIdx, len(models.ColorPalette))
		return true
	}
	return false
}

// Result builds the save request from the current form state.
func (f *promptForm) Result() service.PromptForm {
	form := service.PromptForm{
		ID:         f.editID,
		Title:      f.title.Value(),
		PromptType: f.promptType,
		Model:      models.AIModels[f.modelIdx],
		Color:      models.ColorPalette[f.colorIdx],
	}
	if f.folderIdx > 0 {
		form.FolderID = f.folders[f.folderIdx-1].ID
	}

	switch f.promptType {
	case models.PromptTypeArtistStyle:
		values := make(map[string]interface{}, len(f.style))
		for i, field := range (models.ArtistStyle{}).Fields() {
			values[field.Key] = f.style[i].Value()
		}
		form.Style = models.StyleFromValues(values)
	case models.PromptTypeImage:
		form.Content = f.content.Value()
		form.NegativePrompt = f.negative.Value()
		form.Parameters = f.params.Value()
		form.ImageURL = f.imageURL.Value()
	default:
		form.Content = f.content.Value()
	}
	return form
}

func (f *promptForm) View() string {
	if f.snippetMode {
		var b strings.Builder
		b.WriteString(StyleTitle.Render("Paste style snippet") + "\n\n")
		b.WriteString(f.snippet.View() + "\n")
		if f.errMsg != "" {
			b.WriteString(StyleError.Render(f.errMsg) + "\n")
		}
		b.WriteString(CreateHelp("Ctrl+s apply • Esc back"))
		return AddMainPadding(b.String())
	}

	var b strings.Builder
	if f.editID != "" {
		b.WriteString(StyleTitle.Render("Edit prompt") + "\n\n")
	} else {
		b.WriteString(StyleTitle.Render("New prompt") + "\n\n")
	}

	b.WriteString(f.renderField(fieldTitle, "Title", f.title.View()))
	b.WriteString(f.renderField(fieldType, "Type", f.selectorView(fieldType)))
	b.WriteString(f.renderField(fieldFolder, "Folder", f.selectorView(fieldFolder)))
	b.WriteString(f.renderField(fieldModel, "Model", f.selectorView(fieldModel)))
	b.WriteString(f.renderField(fieldColor, "Color", f.selectorView(fieldColor)))

	switch f.promptType {
	case models.PromptTypeArtistStyle:
		for i, field := range (models.ArtistStyle{}).Fields() {
			b.WriteString(f.renderField(fieldStyleBase+i, field.Label, f.style[i].View()))
		}
	case models.PromptTypeImage:
		b.WriteString(f.renderField(fieldContent, "Prompt", f.content.View()))
		b.WriteString(f.renderField(fieldNegative, "Negative", f.negative.View()))
		b.WriteString(f.renderField(fieldParams, "Parameters", f.params.View()))
		b.WriteString(f.renderField(fieldImageURL, "Image URL", f.imageURL.View()))
	default:
		b.WriteString(f.renderField(fieldContent, "Content", f.content.View()))
	}

	if f.errMsg != "" {
		b.WriteString(StyleError.Render(f.errMsg) + "\n")
	}

	helpLine := "Tab next • ←/→ change choice • Ctrl+s save • Esc cancel"
	if f.promptType == models.PromptTypeArtistStyle {
		helpLine += " • Ctrl+p paste snippet"
	}
	b.WriteString("\n" + CreateHelp(helpLine))
	return AddMainPadding(b.String())
}

func (f *promptForm) renderField(field int, label, value string) string {
	style := StyleFormLabel
	if f.fields[f.focus] == field {
		style = StyleFormLabel.Foreground(ColorAccent)
	}
	return style.Render(label) + "\n" + value + "\n"
}

func (f *promptForm) selectorView(field int) string {
	var value string
	switch field {
	case fieldType:
		value = f.promptType
	case fieldFolder:
		if f.folderIdx == 0 {
			value = "Uncategorized"
		} else {
			value = f.folders[f.folderIdx-1].Name
		}
	case fieldModel:
		value = models.AIModels[f.modelIdx]
	case fieldColor:
		value = swatch(models.ColorPalette[f.colorIdx]) + " " + models.ColorPalette[f.colorIdx]
	}

	if f.fields[f.focus] == field {
		return StyleFocused.Render("◀ " + value + " ▶")
	}
	return StyleTextMuted.Render("  " + value)
}

// folderNameInput is the one-line input used by the folder management view.
type folderNameInput struct {
	input textinput.Model
	label string
}

func newFolderNameInput(label, initial string) folderNameInput {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40
	ti.SetValue(initial)
	ti.Focus()
	return folderNameInput{input: ti, label: label}
}

// Update returns done=true when the input was confirmed or abandoned; the
// value is empty on abandon.
func (n *folderNameInput) Update(msg tea.KeyMsg) (bool, string) {
	switch msg.String() {
	case "esc":
		return true, ""
	case "enter":
		return true, strings.TrimSpace(n.input.Value())
	}
	n.input, _ = n.input.Update(msg)
	return false, ""
}

func (n folderNameInput) View() string {
	return StyleFormLabel.Render(n.label) + "\n" + n.input.View()
}

func indexOrDefault(choices []string, value, fallback string) int {
	for i, c := range choices {
		if c == value {
			return i
		}
	}
	for i, c := range choices {
		if c == fallback {
			return i
		}
	}
	return 0
}
