// ABOUTME: Read-only listing commands for remote platform entities
// ABOUTME: Shows what currently exists before a provisioning run
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/intempus/phonetree/config"
)

// ListToolsCommand prints every remote tool with its id.
func ListToolsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tools", flag.ExitOnError)
	_ = fs.Parse(args)

	client, err := newPlatformClient(cfg)
	if err != nil {
		return err
	}

	tools, err := client.ListTools(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}

	for _, t := range tools {
		fmt.Printf("  %s  %s  (%s, %d destinations)\n", t.ID, t.FunctionName(), t.Type, len(t.Destinations))
	}
	fmt.Printf("\n✓ %d tools\n", len(tools))
	return nil
}

// ListAssistantsCommand prints every remote assistant with its id.
func ListAssistantsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("assistants", flag.ExitOnError)
	_ = fs.Parse(args)

	client, err := newPlatformClient(cfg)
	if err != nil {
		return err
	}

	assistants, err := client.ListAssistants(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list assistants: %w", err)
	}

	for _, a := range assistants {
		fmt.Printf("  %s  %s\n", a.ID, a.Name)
	}
	fmt.Printf("\n✓ %d assistants\n", len(assistants))
	return nil
}
