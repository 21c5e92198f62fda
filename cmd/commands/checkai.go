package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdraft/mdraft-cli/internal/cli"
	"github.com/mdraft/mdraft-cli/pkg/assistant"
)

// NewCheckAICommand creates the check-ai command
func NewCheckAICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-ai",
		Short: "Verify the writing assistant configuration",
		Long: `Checks the assistant settings and, when configured, probes the
endpoint's model listing to confirm the credentials work. No completion
is requested.`,
		RunE: runCheckAI,
	}
}

func runCheckAI(cmd *cobra.Command, args []string) error {
	cctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	if err := cctx.ValidateProject(); err != nil {
		return err
	}

	settings := cctx.LoadSettings()
	client := assistant.New(settings.AI)

	if !client.Available() {
		cli.PrintInfo("Assistant is not configured")
		if !settings.AI.Enabled {
			cli.PrintInfo("Enable it in settings (ai.enabled)")
		}
		if settings.AI.APIURL == "" {
			cli.PrintInfo("Set the API URL (ai.api_url)")
		}
		if settings.AI.APIKey == "" {
			cli.PrintInfo("Set the API key (ai.api_key)")
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result := client.TestConnection(ctx)
	if !result.Success {
		return fmt.Errorf("connection test failed: %s", result.Err)
	}

	cli.PrintSuccess("Assistant reachable at %s (model %s)", settings.AI.APIURL, settings.AI.Model)
	return nil
}
