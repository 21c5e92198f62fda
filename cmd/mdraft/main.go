package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mdraft/mdraft-cli/cmd/commands"
	"github.com/mdraft/mdraft-cli/internal/cli"
	"github.com/mdraft/mdraft-cli/pkg/files"
	"github.com/mdraft/mdraft-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	flagQuiet   bool
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "mdraft [file]",
	Short: "Terminal markdown editor with live preview and an AI writing assistant",
	Long: `mdraft is a terminal markdown editor. It shows a live preview beside
the editor, keeps both panes scroll-aligned, and can continue, optimize,
translate or summarize your writing through any OpenAI-compatible API.
Everything is stored as plain files; settings live in .mdraft/settings.yaml.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Check if .mdraft directory exists
		if _, err := os.Stat(files.MdraftDir); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: No .mdraft directory found in the current directory.\n")
			fmt.Fprintf(os.Stderr, "Please run 'mdraft init' first to initialize a new project.\n")
			os.Exit(1)
		}

		root, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to determine current directory: %v\n", err)
			os.Exit(1)
		}

		initialPath := ""
		if len(args) == 1 {
			initialPath = args[0]
		}

		settings := files.ReadSettings()
		app := tui.NewApp(root, settings, initialPath)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
			fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mdraft",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mdraft version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	cobra.OnInitialize(func() {
		cli.SetQuiet(flagQuiet)
		cli.SetNoColor(flagNoColor)
	})

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewCheckAICommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
