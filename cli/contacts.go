// ABOUTME: Contacts command printing the normalized sheet snapshot
// ABOUTME: Surfaces normalizer warnings alongside the contact list
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/intempus/phonetree/config"
)

// ContactsCommand fetches the sheet, normalizes it, and prints the
// resulting snapshot with every warning the normalizer produced.
func ContactsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("contacts", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print contacts as JSON")
	_ = fs.Parse(args)

	cache, err := newCache(cfg)
	if err != nil {
		return err
	}

	fmt.Println("Fetching contacts sheet...")
	contacts, warnings, err := cache.Get(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch contacts: %w", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(contacts)
	}

	for _, c := range contacts {
		line := fmt.Sprintf("  %s  %s", c.Name, c.E164())
		if c.PrimaryEmail() != "" {
			line += "  " + c.PrimaryEmail()
		}
		if c.Description != "" {
			line += "  (" + c.Description + ")"
		}
		fmt.Println(line)
		if len(c.PhoneNumbers) > 1 {
			fmt.Printf("      also: %s\n", strings.Join(c.PhoneNumbers[1:], ", "))
		}
	}

	fmt.Printf("\n✓ %d contacts\n", len(contacts))
	if len(warnings) > 0 {
		fmt.Printf("\n%d warnings:\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  ✗ %s\n", w)
		}
	}

	return nil
}
