// ABOUTME: Voice-platform HTTP client for tools, assistants, and squads
// ABOUTME: Thin CRUD wrapper plus by-name lookup helpers where absence is not an error
package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/intempus/phonetree/models"
)

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Tool is a remote tool entity: the payload plus its platform-assigned id.
type Tool struct {
	ID string `json:"id"`
	models.ToolPayload
}

// Assistant is a remote assistant entity.
type Assistant struct {
	ID string `json:"id"`
	models.AssistantPayload
}

// Squad is a remote squad entity.
type Squad struct {
	ID string `json:"id"`
	models.SquadPayload
}

// Client talks to the voice-platform REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    HTTPClient
}

// NewClient creates a platform client with the default HTTP client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    http.DefaultClient,
	}
}

// NewClientWithHTTP creates a platform client with an injected HTTP
// client, used by tests.
func NewClientWithHTTP(baseURL, apiKey string, httpClient HTTPClient) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request returned non-2xx status: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListTools fetches every tool in the deployment.
func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	var tools []Tool
	if err := c.do(ctx, http.MethodGet, "/tool", nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// GetTool fetches a tool by id.
func (c *Client) GetTool(ctx context.Context, id string) (*Tool, error) {
	var tool Tool
	if err := c.do(ctx, http.MethodGet, "/tool/"+id, nil, &tool); err != nil {
		return nil, err
	}
	return &tool, nil
}

// CreateTool creates a new tool.
func (c *Client) CreateTool(ctx context.Context, payload models.ToolPayload) (*Tool, error) {
	var tool Tool
	if err := c.do(ctx, http.MethodPost, "/tool", payload, &tool); err != nil {
		return nil, err
	}
	return &tool, nil
}

// UpdateTool updates an existing tool. The update shape carries no type
// discriminator; the platform rejects it on update.
func (c *Client) UpdateTool(ctx context.Context, id string, payload models.ToolUpdate) (*Tool, error) {
	var tool Tool
	if err := c.do(ctx, http.MethodPatch, "/tool/"+id, payload, &tool); err != nil {
		return nil, err
	}
	return &tool, nil
}

// FindToolByFunction scans the full tool list for a case-sensitive
// function-name match. A miss returns (nil, false, nil) so callers can
// branch on create vs update.
func (c *Client) FindToolByFunction(ctx context.Context, name string) (*Tool, bool, error) {
	tools, err := c.ListTools(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range tools {
		if tools[i].FunctionName() == name {
			return &tools[i], true, nil
		}
	}
	return nil, false, nil
}

// ListAssistants fetches every assistant in the deployment.
func (c *Client) ListAssistants(ctx context.Context) ([]Assistant, error) {
	var assistants []Assistant
	if err := c.do(ctx, http.MethodGet, "/assistant", nil, &assistants); err != nil {
		return nil, err
	}
	return assistants, nil
}

// GetAssistant fetches an assistant by id.
func (c *Client) GetAssistant(ctx context.Context, id string) (*Assistant, error) {
	var assistant Assistant
	if err := c.do(ctx, http.MethodGet, "/assistant/"+id, nil, &assistant); err != nil {
		return nil, err
	}
	return &assistant, nil
}

// CreateAssistant creates a new assistant.
func (c *Client) CreateAssistant(ctx context.Context, payload models.AssistantPayload) (*Assistant, error) {
	var assistant Assistant
	if err := c.do(ctx, http.MethodPost, "/assistant", payload, &assistant); err != nil {
		return nil, err
	}
	return &assistant, nil
}

// UpdateAssistant updates an existing assistant.
func (c *Client) UpdateAssistant(ctx context.Context, id string, payload models.AssistantPayload) (*Assistant, error) {
	var assistant Assistant
	if err := c.do(ctx, http.MethodPatch, "/assistant/"+id, payload, &assistant); err != nil {
		return nil, err
	}
	return &assistant, nil
}

// FindAssistantByName scans the full assistant list for a case-sensitive
// name match. A miss returns (nil, false, nil).
func (c *Client) FindAssistantByName(ctx context.Context, name string) (*Assistant, bool, error) {
	assistants, err := c.ListAssistants(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range assistants {
		if assistants[i].Name == name {
			return &assistants[i], true, nil
		}
	}
	return nil, false, nil
}

// ListSquads fetches every squad in the deployment.
func (c *Client) ListSquads(ctx context.Context) ([]Squad, error) {
	var squads []Squad
	if err := c.do(ctx, http.MethodGet, "/squad", nil, &squads); err != nil {
		return nil, err
	}
	return squads, nil
}

// CreateSquad creates a new squad.
func (c *Client) CreateSquad(ctx context.Context, payload models.SquadPayload) (*Squad, error) {
	var squad Squad
	if err := c.do(ctx, http.MethodPost, "/squad", payload, &squad); err != nil {
		return nil, err
	}
	return &squad, nil
}

// UpdateSquad updates an existing squad.
func (c *Client) UpdateSquad(ctx context.Context, id string, payload models.SquadPayload) (*Squad, error) {
	var squad Squad
	if err := c.do(ctx, http.MethodPatch, "/squad/"+id, payload, &squad); err != nil {
		return nil, err
	}
	return &squad, nil
}

// FindSquadByName scans the full squad list for a case-sensitive name
// match. A miss returns (nil, false, nil).
func (c *Client) FindSquadByName(ctx context.Context, name string) (*Squad, bool, error) {
	squads, err := c.ListSquads(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range squads {
		if squads[i].Name == name {
			return &squads[i], true, nil
		}
	}
	return nil, false, nil
}
