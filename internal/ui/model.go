// Package ui implements the interactive terminal interface.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/promptsave/promptsave/internal/clipboard"
	"github.com/promptsave/promptsave/internal/export"
	"github.com/promptsave/promptsave/internal/models"
	"github.com/promptsave/promptsave/internal/service"
	"github.com/promptsave/promptsave/internal/template"
)

// createGlamourRenderer creates a glamour renderer matched to the terminal's
// color capabilities and background.
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	var styleOption glamour.TermRendererOption
	switch {
	case profile != termenv.TrueColor && profile != termenv.ANSI256:
		styleOption = glamour.WithAutoStyle()
	case lipgloss.HasDarkBackground():
		styleOption = glamour.WithStandardStyle("dark")
	default:
		styleOption = glamour.WithStandardStyle("light")
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewLibrary ViewMode = iota
	ViewPromptDetail
	ViewFill
	ViewForm
	ViewFolders
)

// promptItem adapts a prompt for the library list.
type promptItem struct {
	prompt *models.Prompt
	folder string
}

func (i promptItem) Title() string {
	return swatch(i.prompt.Color) + " " + i.prompt.Title
}

func (i promptItem) Description() string {
	desc := i.prompt.Describe()
	if i.folder != "" {
		return i.folder + " • " + desc
	}
	return desc
}

func (i promptItem) FilterValue() string {
	return i.prompt.FilterValue()
}

// folderMode tracks what the folder view is currently doing.
type folderMode int

const (
	folderBrowse folderMode = iota
	folderAdd
	folderRename
)

// Model represents the TUI application state
type Model struct {
	service  *service.Service
	viewMode ViewMode

	// UI components
	promptList list.Model
	viewport   viewport.Model
	help       help.Model
	keys       KeyMap

	// Library filter state
	query service.Query

	selectedPrompt *models.Prompt
	deleteConfirm  bool

	// Sub-views
	form *promptForm
	fill *fillForm

	// Folder management state
	folders     []*models.Folder
	folderIdx   int
	folderMode  folderMode
	folderInput folderNameInput

	glamourRenderer *glamour.TermRenderer

	width  int
	height int

	statusMsg     string
	statusType    string
	statusTimeout int

	err error
}

// KeyMap defines all key bindings
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Quit       key.Binding
	Help       key.Binding
	Search     key.Binding
	Copy       key.Binding
	Fill       key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Folders    key.Binding
	NextFolder key.Binding
	NextType   key.Binding
	NextSort   key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Search, k.Copy, k.Fill, k.New},
		{k.Edit, k.Delete, k.Folders},
		{k.NextFolder, k.NextType, k.NextSort},
		{k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Fill: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "use (fill variables)"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new prompt"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Folders: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "manage folders"),
	),
	NextFolder: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter folder"),
	),
	NextType: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "filter type"),
	),
	NextSort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "change sort"),
	),
}

// NewModel creates a new TUI model
func NewModel(svc *service.Service) (*Model, error) {
	initializeColors()
	initializeStyles()

	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	renderer, err := createGlamourRenderer(60)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	m := &Model{
		service:         svc,
		viewMode:        ViewLibrary,
		promptList:      l,
		viewport:        vp,
		help:            help.New(),
		keys:            keys,
		query:           service.Query{FolderID: service.FolderAll},
		glamourRenderer: renderer,
	}
	if !clipboard.IsAvailable() {
		m.statusMsg = "Warning: no clipboard utility found; copy will not work"
		m.statusType = "error"
		m.statusTimeout = 5
	}

	m.refreshList()
	return m, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.statusMsg != "" {
		return clearStatusCmd()
	}
	return nil
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) setStatus(text, statusType string) tea.Cmd {
	m.statusMsg = text
	m.statusType = statusType
	m.statusTimeout = 3
	return clearStatusCmd()
}

// refreshList rebuilds the library list from the current filter state.
func (m *Model) refreshList() {
	prompts := m.service.FilterPrompts(m.query)
	items := make([]list.Item, len(prompts))
	for i, p := range prompts {
		items[i] = promptItem{prompt: p, folder: m.service.FolderName(p.FolderID)}
	}
	m.promptList.SetItems(items)
}

func (m *Model) selectedItem() *models.Prompt {
	if item, ok := m.promptList.SelectedItem().(promptItem); ok {
		return item.prompt
	}
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		const reservedHeight = 8
		availableHeight := msg.Height - reservedHeight
		if availableHeight < 5 {
			availableHeight = 5
		}

		m.promptList.SetSize(msg.Width, availableHeight)

		viewportWidth := msg.Width - 12
		if viewportWidth < 40 {
			viewportWidth = 40
		}
		m.viewport.Width = viewportWidth
		m.viewport.Height = availableHeight
		if renderer, err := createGlamourRenderer(viewportWidth); err == nil {
			m.glamourRenderer = renderer
		}
		if m.form != nil {
			m.form.Resize(msg.Width, availableHeight)
		}
		if m.viewMode == ViewPromptDetail && m.selectedPrompt != nil {
			m.renderPreview()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.viewMode {
		case ViewLibrary:
			return m.updateLibrary(msg)
		case ViewPromptDetail:
			return m.updateDetail(msg)
		case ViewFill:
			return m.updateFill(msg)
		case ViewForm:
			return m.updateForm(msg)
		case ViewFolders:
			return m.updateFolders(msg)
		}
	}

	return m, nil
}

func (m Model) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list's filter input is active it owns the keyboard.
	if m.promptList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.promptList, cmd = m.promptList.Update(msg)
		return m, cmd
	}

	if m.deleteConfirm {
		m.deleteConfirm = false
		if msg.String() == "y" {
			if p := m.selectedItem(); p != nil {
				if err := m.service.DeletePrompt(p.ID); err != nil {
					return m, m.setStatus(fmt.Sprintf("Delete failed: %v", err), "error")
				}
				m.refreshList()
				return m, m.setStatus("Prompt deleted", "success")
			}
		}
		return m, m.setStatus("Delete cancelled", "")
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if p := m.selectedItem(); p != nil {
			m.selectedPrompt = p
			m.viewMode = ViewPromptDetail
			m.renderPreview()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if p := m.selectedItem(); p != nil {
			return m, m.copyPrompt(p)
		}
		return m, nil

	case key.Matches(msg, m.keys.Fill):
		if p := m.selectedItem(); canFill(p) {
			m.fill = newFillForm(p)
			m.viewMode = ViewFill
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.form = newPromptForm(m.service, nil)
		m.form.Resize(m.width, m.height-8)
		m.viewMode = ViewForm
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if p := m.selectedItem(); p != nil {
			m.form = newPromptForm(m.service, p)
			m.form.Resize(m.width, m.height-8)
			m.viewMode = ViewForm
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.selectedItem() != nil {
			m.deleteConfirm = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Folders):
		m.folders = m.service.ListFolders()
		m.folderIdx = 0
		m.folderMode = folderBrowse
		m.viewMode = ViewFolders
		return m, nil

	case key.Matches(msg, m.keys.NextFolder):
		m.query.FolderID = m.nextFolderFilter()
		m.refreshList()
		return m, m.setStatus("Folder: "+m.folderFilterLabel(), "")

	case key.Matches(msg, m.keys.NextType):
		m.query.PromptType = nextChoice(m.query.PromptType, append([]string{""}, models.PromptTypes...))
		m.refreshList()
		label := m.query.PromptType
		if label == "" {
			label = "All"
		}
		return m, m.setStatus("Type: "+label, "")

	case key.Matches(msg, m.keys.NextSort):
		m.query.Sort = service.SortOrder(nextChoice(string(m.query.Sort), sortOrderStrings()))
		m.refreshList()
		return m, m.setStatus("Sort: "+string(m.query.Sort), "")
	}

	var cmd tea.Cmd
	m.promptList, cmd = m.promptList.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.viewMode = ViewLibrary
		m.selectedPrompt = nil
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyPrompt(m.selectedPrompt)

	case key.Matches(msg, m.keys.Fill):
		if canFill(m.selectedPrompt) {
			m.fill = newFillForm(m.selectedPrompt)
			m.viewMode = ViewFill
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		m.form = newPromptForm(m.service, m.selectedPrompt)
		m.form.Resize(m.width, m.height-8)
		m.viewMode = ViewForm
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateFill(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.fill.Update(msg)
	switch action {
	case fillCancelled:
		m.fill = nil
		if m.selectedPrompt != nil {
			m.viewMode = ViewPromptDetail
		} else {
			m.viewMode = ViewLibrary
		}
	case fillCopy:
		text := m.fill.Result()
		m.fill = nil
		if m.selectedPrompt != nil {
			m.viewMode = ViewPromptDetail
		} else {
			m.viewMode = ViewLibrary
		}
		if note, err := clipboard.CopyWithFallback(text); err != nil {
			return m, m.setStatus(err.Error(), "error")
		} else {
			return m, m.setStatus(note, "success")
		}
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.form.Update(msg)
	switch action {
	case formCancelled:
		m.form = nil
		m.viewMode = ViewLibrary
		m.refreshList()
		return m, nil

	case formSubmitted:
		saved, err := m.service.SavePrompt(m.form.Result())
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("Save failed: %v", err), "error")
		}
		m.form = nil
		m.viewMode = ViewLibrary
		m.refreshList()
		if m.selectedPrompt != nil && m.selectedPrompt.ID == saved.ID {
			m.selectedPrompt = saved
		}
		return m, m.setStatus(fmt.Sprintf("Saved %q", saved.Title), "success")
	}
	return m, cmd
}

func (m Model) updateFolders(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.folderMode != folderBrowse {
		done, value := m.folderInput.Update(msg)
		if !done {
			return m, nil
		}
		mode := m.folderMode
		m.folderMode = folderBrowse
		if value == "" {
			return m, nil
		}
		var err error
		if mode == folderAdd {
			_, err = m.service.AddFolder(value)
		} else if m.folderIdx < len(m.folders) {
			err = m.service.RenameFolder(m.folders[m.folderIdx].ID, value)
		}
		m.folders = m.service.ListFolders()
		if err != nil {
			return m, m.setStatus(err.Error(), "error")
		}
		return m, m.setStatus("Folders updated", "success")
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.viewMode = ViewLibrary
		m.refreshList()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.folderIdx > 0 {
			m.folderIdx--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.folderIdx < len(m.folders)-1 {
			m.folderIdx++
		}
		return m, nil

	case msg.String() == "a":
		m.folderInput = newFolderNameInput("New folder name", "")
		m.folderMode = folderAdd
		return m, nil

	case msg.String() == "r":
		if m.folderIdx < len(m.folders) {
			m.folderInput = newFolderNameInput("Rename folder", m.folders[m.folderIdx].Name)
			m.folderMode = folderRename
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.folderIdx < len(m.folders) {
			folder := m.folders[m.folderIdx]
			if err := m.service.DeleteFolder(folder.ID); err != nil {
				return m, m.setStatus(err.Error(), "error")
			}
			m.folders = m.service.ListFolders()
			if m.folderIdx >= len(m.folders) && m.folderIdx > 0 {
				m.folderIdx--
			}
			return m, m.setStatus(fmt.Sprintf("Deleted %q; prompts kept as uncategorized", folder.Name), "success")
		}
		return m, nil
	}
	return m, nil
}

// copyPrompt puts the prompt's clipboard form on the system clipboard.
func (m *Model) copyPrompt(p *models.Prompt) tea.Cmd {
	note, err := clipboard.CopyWithFallback(export.ClipboardText(p))
	if err != nil {
		return m.setStatus(err.Error(), "error")
	}
	return m.setStatus(note, "success")
}

// renderPreview renders the selected prompt as markdown into the viewport.
func (m *Model) renderPreview() {
	p := m.selectedPrompt
	if p == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	meta := p.PromptType + " • " + p.Model
	if folder := m.service.FolderName(p.FolderID); folder != "" {
		meta += " • " + folder
	}
	fmt.Fprintf(&b, "*%s*\n\n", meta)

	if p.IsArtistStyle() {
		for _, f := range models.ParseArtistStyle(p.Content).Fields() {
			if f.Value != "" {
				fmt.Fprintf(&b, "- **%s**: %s\n", f.Label, f.Value)
			}
		}
	} else {
		fmt.Fprintf(&b, "```\n%s\n```\n", p.Content)
		if p.NegativePrompt != "" {
			fmt.Fprintf(&b, "\n**Negative:** %s\n", p.NegativePrompt)
		}
		if p.Parameters != "" {
			fmt.Fprintf(&b, "\n**Parameters:** %s\n", p.Parameters)
		}
	}

	if tokens := template.Extract(p.Content); len(tokens) > 0 {
		labels := make([]string, len(tokens))
		for i, t := range tokens {
			labels[i] = template.Label(t)
		}
		fmt.Fprintf(&b, "\n**Variables:** %s\n", strings.Join(labels, ", "))
	}

	rendered, err := m.glamourRenderer.Render(b.String())
	if err != nil {
		rendered = b.String()
	}
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
}

// nextFolderFilter cycles all -> each folder -> uncategorized -> all.
func (m *Model) nextFolderFilter() string {
	choices := []string{service.FolderAll}
	for _, f := range m.service.ListFolders() {
		choices = append(choices, f.ID)
	}
	choices = append(choices, service.FolderNone)
	return nextChoice(m.query.FolderID, choices)
}

func (m *Model) folderFilterLabel() string {
	switch m.query.FolderID {
	case service.FolderAll:
		return "All"
	case service.FolderNone:
		return "Uncategorized"
	default:
		return m.service.FolderName(m.query.FolderID)
	}
}

func nextChoice(current string, choices []string) string {
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)]
		}
	}
	if len(choices) == 0 {
		return current
	}
	return choices[0]
}

func sortOrderStrings() []string {
	out := make([]string, len(service.SortOrders))
	for i, s := range service.SortOrders {
		out[i] = string(s)
	}
	return out
}

// View renders the current view
func (m Model) View() string {
	var content string
	switch m.viewMode {
	case ViewLibrary:
		content = m.viewLibrary()
	case ViewPromptDetail:
		content = m.viewDetail()
	case ViewFill:
		return CenterModal(m.fill.View(), m.width, m.height)
	case ViewForm:
		content = m.form.View()
	case ViewFolders:
		content = m.viewFolders()
	}

	var footer []string
	if m.statusMsg != "" {
		footer = append(footer, CreateStatus(m.statusMsg, m.statusType))
	}
	if m.deleteConfirm {
		footer = append(footer, StyleError.Render("Delete this prompt? (y/n)"))
	}

	parts := append([]string{content}, footer...)
	return strings.Join(parts, "\n")
}

func (m Model) viewLibrary() string {
	header := StyleTitle.Render("PromptSave")
	filters := StyleMetadata.Render(fmt.Sprintf("folder: %s  •  type: %s  •  sort: %s",
		m.folderFilterLabel(), orAll(m.query.PromptType), m.query.Sort.OrDefault()))
	helpLine := CreateHelp("Enter open • c copy • u use • n new • e edit • d delete • f/t/s filters • F folders • / search • q quit")
	if m.help.ShowAll {
		helpLine = m.help.View(m.keys)
	}
	return AddMainPadding(strings.Join([]string{header, filters, m.promptList.View(), helpLine}, "\n"))
}

func (m Model) viewDetail() string {
	helpLine := CreateHelp("c copy • u use • e edit • Esc back")
	return AddMainPadding(StyleContentBox.Render(m.viewport.View()) + "\n" + helpLine)
}

func (m Model) viewFolders() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Folders") + "\n\n")

	if len(m.folders) == 0 {
		b.WriteString(StyleTextMuted.Render("No folders yet.") + "\n")
	}
	for i, f := range m.folders {
		count := len(m.service.FilterPrompts(service.Query{FolderID: f.ID}))
		line := fmt.Sprintf("%s (%d)", f.Name, count)
		if i == m.folderIdx {
			b.WriteString(StyleFocused.Render("▶ "+line) + "\n")
		} else {
			b.WriteString(StyleText.Render("  "+line) + "\n")
		}
	}

	if m.folderMode != folderBrowse {
		b.WriteString("\n" + m.folderInput.View() + "\n")
	}

	b.WriteString("\n" + CreateHelp("a add • r rename • d delete • Esc back"))
	return AddMainPadding(b.String())
}

func orAll(s string) string {
	if s == "" {
		return "All"
	}
	return s
}
