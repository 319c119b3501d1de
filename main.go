package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/promptsave/promptsave/internal/cli"
	apperrors "github.com/promptsave/promptsave/internal/errors"
	"github.com/promptsave/promptsave/internal/service"
	"github.com/promptsave/promptsave/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// printError renders an error for the terminal. Application errors print
// their message and details without the internal code prefix.
func printError(err error) {
	if !apperrors.IsAppError(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	appErr := apperrors.GetAppError(err)
	fmt.Fprintf(os.Stderr, "Error: %s\n", appErr.Message)
	if appErr.Details != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", appErr.Details)
	}
}

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`promptsave - Terminal-based prompt library

USAGE:
    promptsave [OPTIONS] [COMMAND]

OPTIONS:
    --help      Show this help information
    --version   Print version information
    --init      Initialize a new prompt library
    --dir       Library directory (overrides PROMPTSAVE_DIR)

COMMANDS:
    (no command)        Start interactive TUI mode
    list, ls            List prompts
    search <query>      Fuzzy-search prompt titles
    show, get <id>      Show a prompt
    copy <id>           Copy a prompt to the clipboard
    render <id>         Substitute placeholder variables and print
    vars <id>           List a prompt's placeholders
    delete, rm <id>     Delete a prompt
    folders             List folders
    folder              Folder management (add, rm, rename)
    export              Export the library or a single prompt
    import              Merge a library backup or a single exported prompt
    help                Show CLI command help

EXAMPLES:
    promptsave                                   # Start interactive mode
    promptsave --init                            # Initialize new library
    promptsave list --folder Work                # List prompts in a folder
    promptsave render my-prompt --var name=Ann   # Fill in a variable
    promptsave export txt --output library.txt   # Export as text
    promptsave import promptsave_backup.json     # Merge a backup

STORAGE:
    Default directory: ~/.promptsave
    Override with: PROMPTSAVE_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool
	var libraryDir string

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize a new prompt library")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.StringVar(&libraryDir, "dir", "", "Library directory")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("promptsave version %s\n", version)
		os.Exit(0)
	}

	svc, err := service.NewService(libraryDir)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if initLib {
		if err := svc.InitLibrary(); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing library: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Initialized prompt library at", svc.RootPath())
		return
	}

	args := flag.Args()
	if len(args) > 0 {
		cliHandler := cli.NewCLI(svc)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			printError(err)
			os.Exit(1)
		}
		return
	}

	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
