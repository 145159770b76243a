// ABOUTME: Squad assembler wiring assistants into the star-shaped IVR graph
// ABOUTME: Main enters at Introduction; leaves can only hop back through the hub
package builder

import (
	"fmt"

	"github.com/intempus/phonetree/models"
)

// SquadName is the deployment squad's by-name lookup key.
const SquadName = "Intempus IVR"

// AssistantRef is a previously created assistant: its platform id and
// name. The assembler consumes these rather than the full entities.
type AssistantRef struct {
	ID   string
	Name string
}

// AssembleIVR builds the squad from existing assistants keyed by name.
// Member ordering encodes precedence: Main first with a handoff to
// Introduction only, Introduction second with handoffs to every leaf,
// then each leaf with a handoff back to Introduction. Deprecated
// variants are excluded from wiring entirely. Any missing member is a
// fatal configuration error naming the assistant.
func AssembleIVR(cfg Config, existing map[string]AssistantRef) (models.SquadPayload, error) {
	intro, ok := existing[AssistantIntroduction]
	if !ok {
		return models.SquadPayload{}, fmt.Errorf("required assistant %q not found", AssistantIntroduction)
	}
	main, ok := existing[AssistantMain]
	if !ok {
		return models.SquadPayload{}, fmt.Errorf("required assistant %q not found", AssistantMain)
	}

	var leaves []AssistantRef
	for _, reg := range Registry() {
		if reg.Deprecated || reg.Name == AssistantMain || reg.Name == AssistantIntroduction {
			continue
		}
		ref, ok := existing[reg.Name]
		if !ok {
			return models.SquadPayload{}, fmt.Errorf("required assistant %q not found", reg.Name)
		}
		leaves = append(leaves, ref)
	}

	toIntro, err := BuildHandoffTool(cfg, []HandoffTarget{targetFor(intro)})
	if err != nil {
		return models.SquadPayload{}, err
	}

	leafTargets := make([]HandoffTarget, 0, len(leaves))
	for _, leaf := range leaves {
		leafTargets = append(leafTargets, targetFor(leaf))
	}
	toLeaves, err := BuildHandoffTool(cfg, leafTargets)
	if err != nil {
		return models.SquadPayload{}, err
	}

	members := []models.SquadMember{
		{AssistantID: main.ID, AssistantOverrides: &models.AssistantOverrides{Tools: []models.ToolPayload{toIntro}}},
		{AssistantID: intro.ID, AssistantOverrides: &models.AssistantOverrides{Tools: []models.ToolPayload{toLeaves}}},
	}
	for _, leaf := range leaves {
		members = append(members, models.SquadMember{
			AssistantID:        leaf.ID,
			AssistantOverrides: &models.AssistantOverrides{Tools: []models.ToolPayload{toIntro}},
		})
	}

	return models.SquadPayload{Name: SquadName, Members: members}, nil
}

func targetFor(ref AssistantRef) HandoffTarget {
	return HandoffTarget{
		AssistantID: ref.ID,
		Description: fmt.Sprintf("Hand the caller off to %s", ref.Name),
	}
}
