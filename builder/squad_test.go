// ABOUTME: Tests for the star-topology squad assembler
package builder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRefs() map[string]AssistantRef {
	refs := make(map[string]AssistantRef)
	for i, reg := range Registry() {
		refs[reg.Name] = AssistantRef{ID: fmt.Sprintf("asst-%d", i), Name: reg.Name}
	}
	return refs
}

func TestAssembleIVR(t *testing.T) {
	refs := fullRefs()
	squad, err := AssembleIVR(testConfig, refs)
	require.NoError(t, err)

	assert.Equal(t, SquadName, squad.Name)

	// Main, Introduction, then the five leaves. Deprecated variants are
	// never wired in.
	require.Len(t, squad.Members, 7)
	assert.Equal(t, refs[AssistantMain].ID, squad.Members[0].AssistantID)
	assert.Equal(t, refs[AssistantIntroduction].ID, squad.Members[1].AssistantID)
	for _, m := range squad.Members {
		assert.NotEqual(t, refs[AssistantBot].ID, m.AssistantID)
		assert.NotEqual(t, refs[AssistantNext].ID, m.AssistantID)
	}

	// Main can only hop to the hub.
	mainTools := squad.Members[0].AssistantOverrides.Tools
	require.Len(t, mainTools, 1)
	require.Len(t, mainTools[0].Destinations, 1)
	assert.Equal(t, refs[AssistantIntroduction].ID, mainTools[0].Destinations[0].AssistantID)

	// The hub can hop to every leaf.
	hubTools := squad.Members[1].AssistantOverrides.Tools
	require.Len(t, hubTools, 1)
	assert.Len(t, hubTools[0].Destinations, 5)

	// Every leaf hops back to the hub and nowhere else.
	for _, m := range squad.Members[2:] {
		tools := m.AssistantOverrides.Tools
		require.Len(t, tools, 1)
		require.Len(t, tools[0].Destinations, 1)
		assert.Equal(t, refs[AssistantIntroduction].ID, tools[0].Destinations[0].AssistantID)
	}
}

func TestAssembleIVRMissingIntroduction(t *testing.T) {
	refs := fullRefs()
	delete(refs, AssistantIntroduction)

	_, err := AssembleIVR(testConfig, refs)
	require.Error(t, err)
	assert.Equal(t, `required assistant "Intempus Introduction" not found`, err.Error())
}

func TestAssembleIVRMissingLeaf(t *testing.T) {
	refs := fullRefs()
	delete(refs, AssistantCallback)

	_, err := AssembleIVR(testConfig, refs)
	require.Error(t, err)
	assert.Equal(t, `required assistant "Intempus Callback" not found`, err.Error())
}

func TestAssembleIVRIgnoresMissingDeprecated(t *testing.T) {
	refs := fullRefs()
	delete(refs, AssistantBot)
	delete(refs, AssistantNext)

	squad, err := AssembleIVR(testConfig, refs)
	require.NoError(t, err)
	assert.Len(t, squad.Members, 7)
}
