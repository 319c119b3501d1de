// Package cli implements the non-interactive command surface. Commands are
// one-shot: parse arguments, call the service, print, exit.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/promptsave/promptsave/internal/clipboard"
	apperrors "github.com/promptsave/promptsave/internal/errors"
	"github.com/promptsave/promptsave/internal/export"
	"github.com/promptsave/promptsave/internal/models"
	"github.com/promptsave/promptsave/internal/service"
	"github.com/promptsave/promptsave/internal/template"
)

// CLI handles command-line interface operations
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI handler
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand dispatches a command with its arguments.
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command specified")
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "list", "ls":
		return c.listPrompts(rest)
	case "search":
		return c.searchPrompts(rest)
	case "show", "get":
		return c.showPrompt(rest)
	case "copy":
		return c.copyPrompt(rest)
	case "render":
		return c.renderPrompt(rest)
	case "vars":
		return c.listVars(rest)
	case "delete", "rm":
		return c.deletePrompt(rest)
	case "folders":
		return c.listFolders()
	case "folder":
		return c.folderCommand(rest)
	case "export":
		return c.exportCommand(rest)
	case "import":
		return c.importCommand(rest)
	case "help":
		c.printHelp()
		return nil
	default:
		return fmt.Errorf("unknown command %q (try 'help')", command)
	}
}

func (c *CLI) listPrompts(args []string) error {
	query := service.Query{Sort: service.SortCreatedDesc}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--folder":
			if i+1 >= len(args) {
				return fmt.Errorf("--folder requires a value")
			}
			i++
			folder, err := c.resolveFolder(args[i])
			if err != nil {
				return err
			}
			query.FolderID = folder.ID
		case "--type":
			if i+1 >= len(args) {
				return fmt.Errorf("--type requires a value")
			}
			i++
			if !models.KnownPromptType(args[i]) {
				return apperrors.ValidationError("unknown prompt type " + args[i])
			}
			query.PromptType = args[i]
		case "--search":
			if i+1 >= len(args) {
				return fmt.Errorf("--search requires a value")
			}
			i++
			query.Search = args[i]
		case "--color":
			if i+1 >= len(args) {
				return fmt.Errorf("--color requires a hex value")
			}
			i++
			query.Color = args[i]
		default:
			return fmt.Errorf("unknown flag %q", args[i])
		}
	}

	prompts := c.service.FilterPrompts(query)
	if len(prompts) == 0 {
		fmt.Println("No prompts found.")
		return nil
	}

	for _, p := range prompts {
		folder := c.service.FolderName(p.FolderID)
		if folder == "" {
			folder = "-"
		}
		fmt.Printf("%-36s  %-30s  %-22s  %s\n", p.ID, truncate(p.Title, 30), truncate(p.PromptType, 22), folder)
	}
	return nil
}

// searchPrompts ranks the library with fuzzy matching on titles.
func (c *CLI) searchPrompts(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: search <query>")
	}

	prompts := c.service.SearchPrompts(strings.Join(args, " "))
	if len(prompts) == 0 {
		fmt.Println("No prompts found.")
		return nil
	}
	for _, p := range prompts {
		fmt.Printf("%-36s  %-30s  %s\n", p.ID, truncate(p.Title, 30), truncate(p.PromptType, 22))
	}
	return nil
}

func (c *CLI) showPrompt(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: show <id>")
	}
	prompt, err := c.resolvePrompt(args[0])
	if err != nil {
		return err
	}
	fmt.Print(export.PromptTXT(prompt))
	return nil
}

func (c *CLI) copyPrompt(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: copy <id>")
	}
	prompt, err := c.resolvePrompt(args[0])
	if err != nil {
		return err
	}

	msg, err := clipboard.CopyWithFallback(export.ClipboardText(prompt))
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

// renderPrompt substitutes placeholder values given as --var name=value and
// prints the result. Unbound placeholders substitute to empty strings.
func (c *CLI) renderPrompt(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: render <id> [--var name=value ...]")
	}
	prompt, err := c.resolvePrompt(args[0])
	if err != nil {
		return err
	}

	values := template.Rebind(prompt.Content, nil)
	for i := 1; i < len(args); i++ {
		if args[i] != "--var" {
			return fmt.Errorf("unknown flag %q", args[i])
		}
		if i+1 >= len(args) {
			return fmt.Errorf("--var requires name=value")
		}
		i++
		name, value, found := strings.Cut(args[i], "=")
		if !found {
			return fmt.Errorf("invalid --var %q, want name=value", args[i])
		}
		values["["+name+"]"] = value
	}

	fmt.Println(template.Substitute(prompt.Content, values))
	return nil
}

func (c *CLI) listVars(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: vars <id>")
	}
	prompt, err := c.resolvePrompt(args[0])
	if err != nil {
		return err
	}

	tokens := template.Extract(prompt.Content)
	if len(tokens) == 0 {
		fmt.Println("No variables in this prompt.")
		return nil
	}
	for _, token := range tokens {
		fmt.Println(template.Label(token))
	}
	return nil
}

func (c *CLI) deletePrompt(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: delete <id>")
	}
	prompt, err := c.resolvePrompt(args[0])
	if err != nil {
		return err
	}
	if err := c.service.DeletePrompt(prompt.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %q\n", prompt.Title)
	return nil
}

func (c *CLI) listFolders() error {
	folders := c.service.ListFolders()
	if len(folders) == 0 {
		fmt.Println("No folders.")
		return nil
	}
	for _, f := range folders {
		count := len(c.service.FilterPrompts(service.Query{FolderID: f.ID}))
		fmt.Printf("%-36s  %-30s  %d prompts\n", f.ID, truncate(f.Name, 30), count)
	}
	return nil
}

func (c *CLI) folderCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: folder <add|rm|rename> ...")
	}
	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: folder add <name>")
		}
		folder, err := c.service.AddFolder(strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("Created folder %q (%s)\n", folder.Name, folder.ID)
		return nil
	case "rm", "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: folder rm <id|name>")
		}
		folder, err := c.resolveFolder(args[1])
		if err != nil {
			return err
		}
		if err := c.service.DeleteFolder(folder.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted folder %q; its prompts are now uncategorized\n", folder.Name)
		return nil
	case "rename":
		if len(args) < 3 {
			return fmt.Errorf("usage: folder rename <id|name> <new name>")
		}
		folder, err := c.resolveFolder(args[1])
		if err != nil {
			return err
		}
		newName := strings.Join(args[2:], " ")
		if err := c.service.RenameFolder(folder.ID, newName); err != nil {
			return err
		}
		fmt.Printf("Renamed folder to %q\n", strings.TrimSpace(newName))
		return nil
	default:
		return fmt.Errorf("unknown folder command %q", args[0])
	}
}

func (c *CLI) exportCommand(args []string) error {
	kind := "json"
	output := ""
	var promptRef string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "json", "txt":
			kind = args[i]
		case "--output", "-o":
			if i+1 >= len(args) {
				return fmt.Errorf("--output requires a path")
			}
			i++
			output = args[i]
		case "--prompt":
			if i+1 >= len(args) {
				return fmt.Errorf("--prompt requires an id")
			}
			i++
			promptRef = args[i]
		default:
			return fmt.Errorf("unknown export argument %q", args[i])
		}
	}

	var data []byte
	var defaultName string
	if promptRef != "" {
		prompt, err := c.resolvePrompt(promptRef)
		if err != nil {
			return err
		}
		if kind == "txt" {
			data = []byte(export.PromptTXT(prompt))
		} else {
			encoded, err := export.PromptJSON(prompt)
			if err != nil {
				return err
			}
			data = encoded
		}
		defaultName = export.FileBaseName(prompt.Title) + "." + kind
	} else {
		if kind == "txt" {
			data = []byte(c.service.ExportLibraryTXT())
			defaultName = export.TXTFileName(time.Now())
		} else {
			encoded, err := c.service.ExportLibraryJSON()
			if err != nil {
				return err
			}
			data = encoded
			defaultName = export.BackupFileName(time.Now())
		}
	}

	if output == "" {
		output = defaultName
	}
	if output == "-" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return apperrors.StorageError("write export file", err)
	}
	fmt.Printf("Exported to %s\n", output)
	return nil
}

func (c *CLI) importCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: import [--prompt] <file.json>")
	}

	singlePrompt := false
	if args[0] == "--prompt" {
		singlePrompt = true
		args = args[1:]
		if len(args) < 1 {
			return fmt.Errorf("usage: import --prompt <file.json>")
		}
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return apperrors.StorageError("read import file", err)
	}

	if singlePrompt {
		prompt, err := c.service.ImportPrompt(data)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %q (%s)\n", prompt.Title, prompt.ID)
		return nil
	}

	summary, err := c.service.ImportLibrary(data)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d prompts; %d folders created, %d merged into existing folders\n",
		summary.PromptsAdded, summary.FoldersAdded, summary.FoldersMerged)
	return nil
}

// resolvePrompt accepts an exact id, a unique id prefix, or an exact title
// (case-insensitive).
func (c *CLI) resolvePrompt(ref string) (*models.Prompt, error) {
	if p, err := c.service.GetPrompt(ref); err == nil {
		return p, nil
	}

	var byPrefix []*models.Prompt
	for _, p := range c.service.ListPrompts() {
		if strings.HasPrefix(p.ID, ref) {
			byPrefix = append(byPrefix, p)
		}
		if strings.EqualFold(p.Title, ref) {
			return p, nil
		}
	}
	switch len(byPrefix) {
	case 1:
		return byPrefix[0], nil
	case 0:
		return nil, apperrors.NotFoundError("prompt " + ref)
	default:
		return nil, fmt.Errorf("prompt id prefix %q is ambiguous (%d matches)", ref, len(byPrefix))
	}
}

// resolveFolder accepts an exact id or a folder name (case-insensitive).
func (c *CLI) resolveFolder(ref string) (*models.Folder, error) {
	if f, err := c.service.GetFolder(ref); err == nil {
		return f, nil
	}
	for _, f := range c.service.ListFolders() {
		if strings.EqualFold(f.Name, ref) {
			return f, nil
		}
	}
	return nil, apperrors.NotFoundError("folder " + ref)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func (c *CLI) printHelp() {
	fmt.Print(`promptsave commands:

  list, ls [--folder name] [--type t] [--search q] [--color hex]
                                                     List prompts
  search <query>                                     Fuzzy-search prompt titles
  show, get <id>                                     Show a prompt
  copy <id>                                          Copy a prompt to the clipboard
  render <id> [--var name=value ...]                 Substitute placeholders and print
  vars <id>                                          List a prompt's placeholders
  delete, rm <id>                                    Delete a prompt
  folders                                            List folders
  folder add <name>                                  Create a folder
  folder rm <id|name>                                Delete a folder (prompts are detached)
  folder rename <id|name> <new name>                 Rename a folder
  export [json|txt] [--prompt id] [--output path]    Export the library or one prompt
  import <file.json>                                 Merge a library backup
  import --prompt <file.json>                        Import a single exported prompt
  help                                               Show this help
`)
}
