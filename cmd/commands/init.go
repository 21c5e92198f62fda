package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdraft/mdraft-cli/internal/cli"
	"github.com/mdraft/mdraft-cli/pkg/files"
	"github.com/mdraft/mdraft-cli/pkg/templates"
)

var (
	initTemplate string
	initForce    bool
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdraft project",
		Long: `Creates the .mdraft folder structure in the current directory,
with default settings and an uploads directory.

Examples:
  # Initialize with the welcome document
  mdraft init

  # Initialize with a specific starter template
  mdraft init --template article

  # Initialize without any starter document
  mdraft init --template none`,
		RunE: runInit,
	}

	cmd.Flags().StringVarP(&initTemplate, "template", "t", "welcome", "starter document (welcome, note, article, none)")
	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing starter documents")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine current directory: %w", err)
	}

	cli.PrintInfo("Initializing mdraft project in %s", cwd)

	if err := files.InitProjectStructure(); err != nil {
		return fmt.Errorf("failed to initialize project structure: %w", err)
	}
	cli.PrintSuccess("Created %s folder structure", files.MdraftDir)

	if initTemplate != "none" {
		tmpl, ok := templates.Get(initTemplate)
		if !ok {
			return fmt.Errorf("unknown template %q (available: welcome, note, article)", initTemplate)
		}
		installed, err := templates.Install(tmpl, cwd, initForce)
		if err != nil {
			cli.PrintInfo("Skipped starter document: %v", err)
		} else if installed {
			cli.PrintSuccess("Created %s", tmpl.Filename)
		}
	}

	cli.PrintInfo("Run 'mdraft' to start writing")
	return nil
}
