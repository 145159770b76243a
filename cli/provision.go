// ABOUTME: Provisioning commands reconciling desired state against the platform
// ABOUTME: tools, assistants, squad, or the whole deployment in dependency order
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/intempus/phonetree/config"
)

// ProvisionToolsCommand credates every tool from the contact snapshot.
func ProvisionToolsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tools", flag.ExitOnError)
	_ = fs.Parse(args)

	p, err := newProvisioner(cfg)
	if err != nil {
		return err
	}

	fmt.Println("Provisioning tools...")
	outcomes, err := p.CredateTools(context.Background())
	if err != nil {
		return err
	}
	if failed := printOutcomes(outcomes); failed > 0 {
		return fmt.Errorf("%d tools failed to provision", failed)
	}
	return nil
}

// ProvisionAssistantsCommand credates every registered assistant variant.
func ProvisionAssistantsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("assistants", flag.ExitOnError)
	_ = fs.Parse(args)

	p, err := newProvisioner(cfg)
	if err != nil {
		return err
	}

	fmt.Println("Provisioning assistants...")
	outcomes, err := p.CredateAssistants(context.Background())
	if err != nil {
		return err
	}
	if failed := printOutcomes(outcomes); failed > 0 {
		return fmt.Errorf("%d assistants failed to provision", failed)
	}
	return nil
}

// ProvisionSquadCommand assembles and credates the IVR squad.
func ProvisionSquadCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("squad", flag.ExitOnError)
	_ = fs.Parse(args)

	p, err := newProvisioner(cfg)
	if err != nil {
		return err
	}

	fmt.Println("Provisioning squad...")
	squad, err := p.CredateSquad(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("  ✓ %s (id %s, %d members)\n", squad.Name, squad.ID, len(squad.Members))
	return nil
}

// ProvisionAllCommand provisions the whole deployment in dependency
// order: tools, assistants, squad. Item failures are reported per item;
// the command fails if any item did.
func ProvisionAllCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("all", flag.ExitOnError)
	_ = fs.Parse(args)

	p, err := newProvisioner(cfg)
	if err != nil {
		return err
	}

	fmt.Println("Provisioning deployment...")
	outcomes, err := p.CredateAll(context.Background())
	if err != nil {
		return err
	}
	if failed := printOutcomes(outcomes); failed > 0 {
		return fmt.Errorf("%d items failed to provision", failed)
	}
	fmt.Println("\n✓ Deployment is up to date")
	return nil
}
