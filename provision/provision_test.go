// ABOUTME: Tests for the batch provisioner with a fake platform client
// ABOUTME: Covers create-vs-update decisions, per-item settlement, and squad gating
package provision

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intempus/phonetree/builder"
	"github.com/intempus/phonetree/models"
	"github.com/intempus/phonetree/sheet"
	"github.com/intempus/phonetree/vapi"
)

// fakeClient is an in-memory PlatformClient. Entities are keyed by
// their platform id; failCreate injects errors by entity name.
type fakeClient struct {
	mu         sync.Mutex
	nextID     int
	tools      []vapi.Tool
	assistants []vapi.Assistant
	squads     []vapi.Squad

	failCreate map[string]error

	createdTools      []string
	updatedTools      []string
	createdAssistants []string
	updatedAssistants []string
	createdSquads     []string
	updatedSquads     []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{failCreate: make(map[string]error)}
}

func (f *fakeClient) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeClient) ListTools(ctx context.Context) ([]vapi.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]vapi.Tool{}, f.tools...), nil
}

func (f *fakeClient) CreateTool(ctx context.Context, payload models.ToolPayload) (*vapi.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := payload.FunctionName()
	if err := f.failCreate[name]; err != nil {
		return nil, err
	}
	tool := vapi.Tool{ID: f.id("tool"), ToolPayload: payload}
	f.tools = append(f.tools, tool)
	f.createdTools = append(f.createdTools, name)
	return &tool, nil
}

func (f *fakeClient) UpdateTool(ctx context.Context, id string, payload models.ToolUpdate) (*vapi.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tools {
		if f.tools[i].ID == id {
			f.tools[i].Function = payload.Function
			f.tools[i].Destinations = payload.Destinations
			f.tools[i].Messages = payload.Messages
			f.tools[i].Server = payload.Server
			f.updatedTools = append(f.updatedTools, f.tools[i].FunctionName())
			return &f.tools[i], nil
		}
	}
	return nil, fmt.Errorf("tool %s not found", id)
}

func (f *fakeClient) ListAssistants(ctx context.Context) ([]vapi.Assistant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]vapi.Assistant{}, f.assistants...), nil
}

func (f *fakeClient) CreateAssistant(ctx context.Context, payload models.AssistantPayload) (*vapi.Assistant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failCreate[payload.Name]; err != nil {
		return nil, err
	}
	assistant := vapi.Assistant{ID: f.id("asst"), AssistantPayload: payload}
	f.assistants = append(f.assistants, assistant)
	f.createdAssistants = append(f.createdAssistants, payload.Name)
	return &assistant, nil
}

func (f *fakeClient) UpdateAssistant(ctx context.Context, id string, payload models.AssistantPayload) (*vapi.Assistant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.assistants {
		if f.assistants[i].ID == id {
			f.assistants[i].AssistantPayload = payload
			f.updatedAssistants = append(f.updatedAssistants, payload.Name)
			return &f.assistants[i], nil
		}
	}
	return nil, fmt.Errorf("assistant %s not found", id)
}

func (f *fakeClient) CreateSquad(ctx context.Context, payload models.SquadPayload) (*vapi.Squad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failCreate[payload.Name]; err != nil {
		return nil, err
	}
	squad := vapi.Squad{ID: f.id("squad"), SquadPayload: payload}
	f.squads = append(f.squads, squad)
	f.createdSquads = append(f.createdSquads, payload.Name)
	return &squad, nil
}

func (f *fakeClient) UpdateSquad(ctx context.Context, id string, payload models.SquadPayload) (*vapi.Squad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.squads {
		if f.squads[i].ID == id {
			f.squads[i].SquadPayload = payload
			f.updatedSquads = append(f.updatedSquads, payload.Name)
			return &f.squads[i], nil
		}
	}
	return nil, fmt.Errorf("squad %s not found", id)
}

func (f *fakeClient) FindSquadByName(ctx context.Context, name string) (*vapi.Squad, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.squads {
		if f.squads[i].Name == name {
			return &f.squads[i], true, nil
		}
	}
	return nil, false, nil
}

var testConfig = builder.Config{ServerURL: "https://hooks.example.com/webhook", Secret: "s3cret"}

func testCache() *sheet.Cache {
	header := map[string]int{"Name": 0, "PhoneNumber": 1, "EmailAddresses": 2}
	return sheet.NewCache(func(ctx context.Context) ([]sheet.Row, error) {
		return []sheet.Row{
			sheet.NewRow(header, []interface{}{"Jane Doe", "5551112222", "jane@example.com"}),
			sheet.NewRow(header, []interface{}{"Pat Obrien", "5553334444", "pat@example.com"}),
		}, nil
	})
}

func TestCredateToolsCreatesAll(t *testing.T) {
	client := newFakeClient()
	p := New(client, testCache(), testConfig)

	outcomes, err := p.CredateTools(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	for _, o := range outcomes {
		require.NoError(t, o.Err, "tool %q", o.Name)
		assert.True(t, o.Created, "tool %q", o.Name)
		assert.NotEmpty(t, o.ID)
	}
	assert.False(t, Failed(outcomes))
	assert.ElementsMatch(t,
		[]string{models.ToolRedirectCall, models.ToolSendEmail, models.ToolDispatchCall, models.ToolGuessState},
		client.createdTools)
	assert.Empty(t, client.updatedTools)
}

func TestCredateToolsUpdatesExisting(t *testing.T) {
	client := newFakeClient()
	p := New(client, testCache(), testConfig)

	_, err := p.CredateTools(context.Background())
	require.NoError(t, err)

	outcomes, err := p.CredateTools(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 4)
	for _, o := range outcomes {
		require.NoError(t, o.Err)
		assert.False(t, o.Created, "tool %q should be updated on second run", o.Name)
	}
	assert.Len(t, client.updatedTools, 4)
	assert.Len(t, client.createdTools, 4)
}

func TestCredateToolsPartialFailure(t *testing.T) {
	client := newFakeClient()
	client.failCreate[models.ToolSendEmail] = errors.New("rate limited")
	p := New(client, testCache(), testConfig)

	outcomes, err := p.CredateTools(context.Background())
	require.NoError(t, err, "item failures settle, they never abort the batch")
	require.Len(t, outcomes, 4)

	var failed, ok int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			assert.Equal(t, models.ToolSendEmail, o.Name)
			assert.Contains(t, o.Err.Error(), "rate limited")
		} else {
			ok++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 3, ok)
	assert.True(t, Failed(outcomes))
}

func TestCredateAssistants(t *testing.T) {
	client := newFakeClient()
	p := New(client, testCache(), testConfig)

	_, err := p.CredateTools(context.Background())
	require.NoError(t, err)

	outcomes, err := p.CredateAssistants(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, len(builder.Registry()))
	for _, o := range outcomes {
		require.NoError(t, o.Err, "assistant %q", o.Name)
		assert.True(t, o.Created)
	}

	// Second run converges by name: every assistant is updated, none
	// created again.
	outcomes, err = p.CredateAssistants(context.Background())
	require.NoError(t, err)
	for _, o := range outcomes {
		require.NoError(t, o.Err)
		assert.False(t, o.Created)
	}
	assert.Len(t, client.createdAssistants, len(builder.Registry()))
	assert.Len(t, client.updatedAssistants, len(builder.Registry()))
}

func TestCredateAssistantsWithoutTools(t *testing.T) {
	client := newFakeClient()
	p := New(client, testCache(), testConfig)

	outcomes, err := p.CredateAssistants(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, len(builder.Registry()))
	for _, o := range outcomes {
		require.Error(t, o.Err, "assistant %q must fail without tool ids", o.Name)
		assert.Contains(t, o.Err.Error(), "not found in tool id map")
	}
	assert.Empty(t, client.createdAssistants)
}

func TestCredateSquad(t *testing.T) {
	client := newFakeClient()
	p := New(client, testCache(), testConfig)
	ctx := context.Background()

	_, err := p.CredateTools(ctx)
	require.NoError(t, err)
	_, err = p.CredateAssistants(ctx)
	require.NoError(t, err)

	squad, err := p.CredateSquad(ctx)
	require.NoError(t, err)
	assert.Equal(t, builder.SquadName, squad.Name)
	assert.Len(t, client.createdSquads, 1)

	// Second run updates the same squad by name.
	again, err := p.CredateSquad(ctx)
	require.NoError(t, err)
	assert.Equal(t, squad.ID, again.ID)
	assert.Len(t, client.updatedSquads, 1)
}

func TestCredateSquadMissingAssistant(t *testing.T) {
	client := newFakeClient()
	p := New(client, testCache(), testConfig)

	_, err := p.CredateSquad(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required assistant")
}

func TestCredateAll(t *testing.T) {
	client := newFakeClient()
	p := New(client, testCache(), testConfig)

	outcomes, err := p.CredateAll(context.Background())
	require.NoError(t, err)
	// 4 tools + 9 assistants + 1 squad.
	require.Len(t, outcomes, 14)
	for _, o := range outcomes {
		require.NoError(t, o.Err, "%q", o.Name)
	}
	assert.Equal(t, builder.SquadName, outcomes[13].Name)
	assert.NotEmpty(t, outcomes[13].ID)
}

func TestCredateAllSkipsSquadOnAssistantFailure(t *testing.T) {
	client := newFakeClient()
	client.failCreate[builder.AssistantCallback] = errors.New("server error")
	p := New(client, testCache(), testConfig)

	outcomes, err := p.CredateAll(context.Background())
	require.NoError(t, err)

	last := outcomes[len(outcomes)-1]
	assert.Equal(t, builder.SquadName, last.Name)
	require.Error(t, last.Err)
	assert.Contains(t, last.Err.Error(), "skipped")
	assert.Empty(t, client.createdSquads)
}
