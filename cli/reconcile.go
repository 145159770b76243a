// ABOUTME: Offline audit command comparing the sheet against generated artifacts
// ABOUTME: Discrepancies are printed as warnings; nothing is mutated
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/intempus/phonetree/audit"
	"github.com/intempus/phonetree/config"
)

// ReconcileCommand cross-checks the contact sheet against the legacy
// prompt file and the exported redirect-tool JSON.
func ReconcileCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("reconcile", flag.ExitOnError)
	promptPath := fs.String("prompt", "legacy-prompt.txt", "Path to the legacy system-prompt file")
	exportPath := fs.String("export", "redirect-tool.json", "Path to the exported redirect-tool JSON")
	_ = fs.Parse(args)

	cache, err := newCache(cfg)
	if err != nil {
		return err
	}

	fmt.Println("Fetching contacts sheet...")
	contacts, _, err := cache.Get(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch contacts: %w", err)
	}

	checker := audit.NewChecker(contacts, *promptPath, *exportPath)
	warnings, err := checker.Reconcile()
	if err != nil {
		return err
	}

	if len(warnings) == 0 {
		fmt.Println("✓ No discrepancies found")
		return nil
	}

	fmt.Printf("%d discrepancies:\n", len(warnings))
	for _, w := range warnings {
		fmt.Printf("  ✗ %s\n", w)
	}
	return nil
}
