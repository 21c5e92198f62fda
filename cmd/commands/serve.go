package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdraft/mdraft-cli/internal/cli"
	"github.com/mdraft/mdraft-cli/internal/server"
)

var serveAddr string

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the project over HTTP",
		Long: `Starts an HTTP server exposing the project's file tree, file
contents, image uploads and uploaded assets, for use by external
preview frontends.

Endpoints:
  GET  /health            - liveness probe
  GET  /api/files/tree    - project file tree (markdown files and folders)
  GET  /api/files/{path}  - file content, confined to the project root
  POST /api/upload-image  - image upload (multipart field "image")
  GET  /uploads/{name}    - uploaded assets

Examples:
  # Serve the current project
  mdraft serve

  # Serve on a specific address
  mdraft serve --addr :9000`,
		RunE: runServe,
	}

	cmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8964", "listen address")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	if err := ctx.ValidateProject(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	srv := server.New(ctx.ProjectPath, logger)

	cli.PrintInfo("Serving %s on %s", ctx.ProjectPath, serveAddr)
	if err := srv.Start(serveAddr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
