// Package export renders prompts for the clipboard and for file interchange.
// It only produces and consumes strings and byte payloads; writing files or
// driving the clipboard belongs to the callers.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "github.com/promptsave/promptsave/internal/errors"
	"github.com/promptsave/promptsave/internal/models"
)

// negativeMarker prefixes the negative prompt when an image prompt is
// flattened into a single command line.
const negativeMarker = "--no"

// promptDivider separates prompts inside a TXT library export.
const promptDivider = "===================="

// ClipboardText renders a prompt as the string that lands on the clipboard.
// Artist-style prompts become a pasteable code literal, image prompts are
// flattened with their parameters and negative prompt, everything else
// copies its content verbatim.
func ClipboardText(p *models.Prompt) string {
	switch {
	case p.IsArtistStyle():
		return styleLiteral(p)
	case p.IsImage():
		parts := make([]string, 0, 3)
		if p.Content != "" {
			parts = append(parts, p.Content)
		}
		if p.Parameters != "" {
			parts = append(parts, p.Parameters)
		}
		if p.NegativePrompt != "" {
			parts = append(parts, negativeMarker+" "+p.NegativePrompt)
		}
		return strings.TrimSpace(strings.Join(parts, " "))
	default:
		return p.Content
	}
}

// styleLiteral renders stored artist-style content as a const assignment.
// Content that does not decode falls back to the raw string.
func styleLiteral(p *models.Prompt) string {
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(p.Content), &decoded); err != nil {
		return p.Content
	}
	style := models.StyleFromValues(decoded)

	var b strings.Builder
	b.WriteString("const " + styleVarName(p.Title) + " = {\n")
	fields := style.Fields()
	for i, f := range fields {
		b.WriteString(fmt.Sprintf("  %s: %q", f.Key, f.Value))
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("};")
	return b.String()
}

// styleVarName strips a title down to an identifier for the code literal.
func styleVarName(title string) string {
	var b strings.Builder
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "artistStyle"
	}
	return b.String()
}

// FileBaseName derives a file-safe name from a prompt title.
func FileBaseName(title string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		return "prompt"
	}
	if len(name) > 30 {
		name = strings.Trim(name[:30], "_")
	}
	return name
}

// BackupFileName names a full-library JSON backup for the given day.
func BackupFileName(now time.Time) string {
	return "promptsave_backup_" + now.Format("2006-01-02") + ".json"
}

// TXTFileName names a full-library TXT export for the given day.
func TXTFileName(now time.Time) string {
	return "promptsave_export_" + now.Format("2006-01-02") + ".txt"
}

// PromptTXT renders one prompt as a labeled human-readable block.
func PromptTXT(p *models.Prompt) string {
	var b strings.Builder
	b.WriteString("Title: " + p.Title + "\n")
	b.WriteString("Model: " + p.Model + "\n")
	b.WriteString("Type: " + p.PromptType + "\n")
	b.WriteString("Color: " + p.Color + "\n")
	b.WriteString("--- PROMPT ---\n" + p.Content + "\n")

	switch {
	case p.IsImage():
		if p.NegativePrompt != "" {
			b.WriteString("--- NEGATIVE PROMPT ---\n" + p.NegativePrompt + "\n")
		}
		if p.Parameters != "" {
			b.WriteString("--- PARAMETERS ---\n" + p.Parameters + "\n")
		}
	case p.IsArtistStyle():
		b.WriteString("--- STYLE DETAILS ---\n")
		for _, f := range models.ParseArtistStyle(p.Content).Fields() {
			if f.Value == "" {
				continue
			}
			b.WriteString(f.Label + ": " + f.Value + "\n")
		}
	}
	return b.String()
}

// LibraryTXT renders the whole library grouped by folder: uncategorized
// first, then folders alphabetically, newest prompt first within each group.
func LibraryTXT(prompts []*models.Prompt, folders []*models.Folder) string {
	sorted := make([]*models.Prompt, len(prompts))
	copy(sorted, prompts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	byFolder := make(map[string][]*models.Prompt)
	for _, p := range sorted {
		byFolder[p.FolderID] = append(byFolder[p.FolderID], p)
	}

	sortedFolders := make([]*models.Folder, len(folders))
	copy(sortedFolders, folders)
	sort.SliceStable(sortedFolders, func(i, j int) bool {
		return strings.ToLower(sortedFolders[i].Name) < strings.ToLower(sortedFolders[j].Name)
	})

	var b strings.Builder
	writeGroup := func(heading string, group []*models.Prompt) {
		b.WriteString("## " + heading + "\n\n")
		blocks := make([]string, len(group))
		for i, p := range group {
			blocks[i] = PromptTXT(p)
		}
		b.WriteString(strings.Join(blocks, "\n"+promptDivider+"\n\n"))
		b.WriteString("\n\n")
	}

	if group, ok := byFolder[""]; ok {
		writeGroup("Uncategorized", group)
	}
	for _, folder := range sortedFolders {
		if group, ok := byFolder[folder.ID]; ok {
			writeGroup("Folder: "+folder.Name, group)
		}
	}
	return b.String()
}

// Library is the full-library JSON interchange payload.
type Library struct {
	Prompts []*models.Prompt `json:"prompts"`
	Folders []*models.Folder `json:"folders"`
}

// LibraryJSON encodes a full-library backup.
func LibraryJSON(prompts []*models.Prompt, folders []*models.Folder) ([]byte, error) {
	if prompts == nil {
		prompts = []*models.Prompt{}
	}
	if folders == nil {
		folders = []*models.Folder{}
	}
	data, err := json.MarshalIndent(Library{Prompts: prompts, Folders: folders}, "", "  ")
	if err != nil {
		return nil, apperrors.StorageError("encode library backup", err)
	}
	return data, nil
}

// ParseLibraryJSON decodes a full-library backup. Both collections must be
// present as arrays; anything else is a decode failure the UI shows to the
// user before aborting the import.
func ParseLibraryJSON(data []byte) ([]*models.Prompt, []*models.Folder, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, apperrors.DecodeError("library backup", err)
	}

	promptsRaw, ok := raw["prompts"]
	if !ok {
		return nil, nil, apperrors.NewAppError(apperrors.ErrCodeDecodeFailure, "library backup has no prompts array")
	}
	foldersRaw, ok := raw["folders"]
	if !ok {
		return nil, nil, apperrors.NewAppError(apperrors.ErrCodeDecodeFailure, "library backup has no folders array")
	}

	var prompts []*models.Prompt
	if err := json.Unmarshal(promptsRaw, &prompts); err != nil {
		return nil, nil, apperrors.DecodeError("prompts array", err)
	}
	var folders []*models.Folder
	if err := json.Unmarshal(foldersRaw, &folders); err != nil {
		return nil, nil, apperrors.DecodeError("folders array", err)
	}
	return prompts, folders, nil
}
