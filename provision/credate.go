// ABOUTME: Create-or-update reconciliation against remote platform entities
// ABOUTME: Create when absent, update keyed by id with update-safe payload shapes
package provision

import (
	"context"

	"github.com/intempus/phonetree/models"
	"github.com/intempus/phonetree/vapi"
)

// PlatformClient is the platform-client contract the reconciler depends
// on. *vapi.Client satisfies it; tests substitute fakes.
type PlatformClient interface {
	ListTools(ctx context.Context) ([]vapi.Tool, error)
	CreateTool(ctx context.Context, payload models.ToolPayload) (*vapi.Tool, error)
	UpdateTool(ctx context.Context, id string, payload models.ToolUpdate) (*vapi.Tool, error)

	ListAssistants(ctx context.Context) ([]vapi.Assistant, error)
	CreateAssistant(ctx context.Context, payload models.AssistantPayload) (*vapi.Assistant, error)
	UpdateAssistant(ctx context.Context, id string, payload models.AssistantPayload) (*vapi.Assistant, error)

	CreateSquad(ctx context.Context, payload models.SquadPayload) (*vapi.Squad, error)
	UpdateSquad(ctx context.Context, id string, payload models.SquadPayload) (*vapi.Squad, error)
	FindSquadByName(ctx context.Context, name string) (*vapi.Squad, bool, error)
}

// CredateTool creates the tool when no existing entity is given,
// otherwise updates it by id. The update goes through the typed update
// payload, so immutable create-only fields are never sent.
func CredateTool(ctx context.Context, client PlatformClient, desired models.ToolPayload, existing *vapi.Tool) (*vapi.Tool, error) {
	if existing == nil {
		return client.CreateTool(ctx, desired)
	}
	return client.UpdateTool(ctx, existing.ID, desired.Update())
}

// CredateAssistant creates or updates an assistant by id.
func CredateAssistant(ctx context.Context, client PlatformClient, desired models.AssistantPayload, existing *vapi.Assistant) (*vapi.Assistant, error) {
	if existing == nil {
		return client.CreateAssistant(ctx, desired)
	}
	return client.UpdateAssistant(ctx, existing.ID, desired)
}

// CredateSquad creates or updates a squad by id.
func CredateSquad(ctx context.Context, client PlatformClient, desired models.SquadPayload, existing *vapi.Squad) (*vapi.Squad, error) {
	if existing == nil {
		return client.CreateSquad(ctx, desired)
	}
	return client.UpdateSquad(ctx, existing.ID, desired)
}
