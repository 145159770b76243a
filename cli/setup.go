// ABOUTME: Shared constructors wiring config into clients, cache, and builders
// ABOUTME: Each command assembles only the pieces it needs
package cli

import (
	"fmt"

	"github.com/intempus/phonetree/builder"
	"github.com/intempus/phonetree/config"
	"github.com/intempus/phonetree/provision"
	"github.com/intempus/phonetree/sheet"
	"github.com/intempus/phonetree/vapi"
)

func newPlatformClient(cfg *config.Config) (*vapi.Client, error) {
	if err := cfg.RequirePlatform(); err != nil {
		return nil, err
	}
	return vapi.NewClient(cfg.VapiBaseURL, cfg.VapiAPIKey), nil
}

func newCache(cfg *config.Config) (*sheet.Cache, error) {
	if err := cfg.RequireSheet(); err != nil {
		return nil, err
	}

	token, err := sheet.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("no Google credentials found, run 'phonetree auth' first: %w", err)
	}

	svc, err := sheet.NewSheetsClient(token)
	if err != nil {
		return nil, err
	}

	source := sheet.NewSource(svc, cfg.SheetID, cfg.SheetTab)
	return sheet.NewCache(source.FetchRows), nil
}

func builderConfig(cfg *config.Config) (builder.Config, error) {
	if err := cfg.RequireWebhook(); err != nil {
		return builder.Config{}, err
	}
	return builder.Config{ServerURL: cfg.WebhookURL, Secret: cfg.WebhookSecret}, nil
}

func newProvisioner(cfg *config.Config) (*provision.Provisioner, error) {
	client, err := newPlatformClient(cfg)
	if err != nil {
		return nil, err
	}
	cache, err := newCache(cfg)
	if err != nil {
		return nil, err
	}
	bcfg, err := builderConfig(cfg)
	if err != nil {
		return nil, err
	}
	return provision.New(client, cache, bcfg), nil
}

// printOutcomes reports batch settlements and returns the failure count.
func printOutcomes(outcomes []provision.Outcome) int {
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Printf("  ✗ %s: %v\n", o.Name, o.Err)
			continue
		}
		verb := "updated"
		if o.Created {
			verb = "created"
		}
		fmt.Printf("  ✓ %s %s (id %s)\n", verb, o.Name, o.ID)
	}
	return failed
}
