// ABOUTME: Batch provisioning of tools, assistants, and the IVR squad
// ABOUTME: Independent credates fan out and settle per item; no fail-fast, no retry
package provision

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/intempus/phonetree/builder"
	"github.com/intempus/phonetree/models"
	"github.com/intempus/phonetree/sheet"
	"github.com/intempus/phonetree/vapi"
)

// credateConcurrency bounds parallel platform writes per batch.
const credateConcurrency = 4

// Provisioner drives the desired-state build against the platform.
type Provisioner struct {
	client PlatformClient
	cache  *sheet.Cache
	cfg    builder.Config
}

// New creates a provisioner over the given platform client and contact
// cache.
func New(client PlatformClient, cache *sheet.Cache, cfg builder.Config) *Provisioner {
	return &Provisioner{client: client, cache: cache, cfg: cfg}
}

// Outcome is one item's settlement in a batch operation. A batch never
// aborts on the first failure; callers inspect every outcome.
type Outcome struct {
	Name    string
	ID      string
	Created bool
	Err     error
}

// Failed reports whether any outcome in the batch carries an error.
func Failed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}

// CredateTools builds every tool payload from the contact snapshot and
// reconciles each against the platform. The contact fetch and the
// existing-tool list run concurrently.
func (p *Provisioner) CredateTools(ctx context.Context) ([]Outcome, error) {
	var contacts []models.Contact
	var existingTools []vapi.Tool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contacts, _, err = p.cache.Get(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch contacts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		existingTools, err = p.client.ListTools(gctx)
		if err != nil {
			return fmt.Errorf("failed to list existing tools: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	desired := []models.ToolPayload{
		builder.BuildRedirectTool(p.cfg, contacts),
		builder.BuildSendEmailTool(p.cfg, contacts),
		builder.BuildDispatchCallTool(p.cfg, contacts),
		builder.BuildGuessStateTool(p.cfg),
	}

	byFunction := make(map[string]*vapi.Tool)
	for i := range existingTools {
		byFunction[existingTools[i].FunctionName()] = &existingTools[i]
	}

	outcomes := make([]Outcome, len(desired))
	fanout, fctx := errgroup.WithContext(ctx)
	fanout.SetLimit(credateConcurrency)
	for i, payload := range desired {
		fanout.Go(func() error {
			name := payload.FunctionName()
			existing := byFunction[name]
			tool, err := CredateTool(fctx, p.client, payload, existing)
			outcomes[i] = settle(name, existing == nil, err, func() string { return tool.ID })
			return nil
		})
	}
	_ = fanout.Wait()

	return outcomes, nil
}

// CredateAssistants builds every registered assistant variant against
// the current contact snapshot and tool ids, reconciling each by name.
func (p *Provisioner) CredateAssistants(ctx context.Context) ([]Outcome, error) {
	var contacts []models.Contact
	var tools []vapi.Tool
	var assistants []vapi.Assistant

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contacts, _, err = p.cache.Get(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch contacts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tools, err = p.client.ListTools(gctx)
		if err != nil {
			return fmt.Errorf("failed to list existing tools: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		assistants, err = p.client.ListAssistants(gctx)
		if err != nil {
			return fmt.Errorf("failed to list existing assistants: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	toolIDs := make(map[string]string, len(tools))
	for _, t := range tools {
		if name := t.FunctionName(); name != "" {
			toolIDs[name] = t.ID
		}
	}

	registry := builder.Registry()
	outcomes := make([]Outcome, len(registry))
	fanout, fctx := errgroup.WithContext(ctx)
	fanout.SetLimit(credateConcurrency)
	for i, reg := range registry {
		fanout.Go(func() error {
			existing := findAssistant(assistants, reg.Name)

			params := builder.BuildParams{
				Config:   p.cfg,
				Contacts: contacts,
				ToolIDs:  toolIDs,
			}
			if existing != nil {
				params.Existing = &existing.AssistantPayload
			}

			payload, err := reg.Build(params)
			if err != nil {
				outcomes[i] = Outcome{Name: reg.Name, Err: err}
				return nil
			}

			assistant, err := CredateAssistant(fctx, p.client, payload, existing)
			outcomes[i] = settle(reg.Name, existing == nil, err, func() string { return assistant.ID })
			return nil
		})
	}
	_ = fanout.Wait()

	return outcomes, nil
}

// CredateSquad assembles the IVR squad from the existing assistants and
// reconciles it by name. Missing members are fatal, never partial.
func (p *Provisioner) CredateSquad(ctx context.Context) (*vapi.Squad, error) {
	assistants, err := p.client.ListAssistants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing assistants: %w", err)
	}

	refs := make(map[string]builder.AssistantRef, len(assistants))
	for _, a := range assistants {
		refs[a.Name] = builder.AssistantRef{ID: a.ID, Name: a.Name}
	}

	payload, err := builder.AssembleIVR(p.cfg, refs)
	if err != nil {
		return nil, err
	}

	existing, found, err := p.client.FindSquadByName(ctx, builder.SquadName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up squad: %w", err)
	}
	if !found {
		existing = nil
	}

	squad, err := CredateSquad(ctx, p.client, payload, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to credate squad: %w", err)
	}
	return squad, nil
}

// CredateAll provisions the whole deployment: tools, then assistants,
// then the squad. Item failures inside a stage are collected, not
// fatal; the squad stage runs only when every assistant settled, since
// a partial squad is never created.
func (p *Provisioner) CredateAll(ctx context.Context) ([]Outcome, error) {
	outcomes, err := p.CredateTools(ctx)
	if err != nil {
		return nil, err
	}

	assistantOutcomes, err := p.CredateAssistants(ctx)
	if err != nil {
		return outcomes, err
	}
	outcomes = append(outcomes, assistantOutcomes...)

	if Failed(assistantOutcomes) {
		outcomes = append(outcomes, Outcome{
			Name: builder.SquadName,
			Err:  fmt.Errorf("skipped: one or more assistants failed to provision"),
		})
		return outcomes, nil
	}

	squad, err := p.CredateSquad(ctx)
	if err != nil {
		outcomes = append(outcomes, Outcome{Name: builder.SquadName, Err: err})
		return outcomes, nil
	}
	outcomes = append(outcomes, Outcome{Name: builder.SquadName, ID: squad.ID})

	return outcomes, nil
}

func findAssistant(assistants []vapi.Assistant, name string) *vapi.Assistant {
	for i := range assistants {
		if assistants[i].Name == name {
			return &assistants[i]
		}
	}
	return nil
}

func settle(name string, created bool, err error, id func() string) Outcome {
	if err != nil {
		return Outcome{Name: name, Err: fmt.Errorf("failed to credate %q: %w", name, err)}
	}
	return Outcome{Name: name, ID: id(), Created: created}
}
