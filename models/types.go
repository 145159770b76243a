// ABOUTME: Data models for phone-tree entities
// ABOUTME: Defines Contact plus the Vapi tool/assistant/squad payload shapes
package models

import "strings"

// Contact is a normalized person or department record sourced from the
// contacts sheet. Phone numbers are canonical 10-digit US numbers; the
// first entry is the primary transfer target.
type Contact struct {
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	TimeZone       string   `json:"time_zone,omitempty"`
	PhoneNumbers   []string `json:"phone_numbers"`
	EmailAddresses []string `json:"email_addresses,omitempty"`
}

// PrimaryPhone returns the primary transfer target, or "" if the contact
// has no phone numbers.
func (c *Contact) PrimaryPhone() string {
	if len(c.PhoneNumbers) == 0 {
		return ""
	}
	return c.PhoneNumbers[0]
}

// PrimaryEmail returns the first email address, or "" if none exist.
func (c *Contact) PrimaryEmail() string {
	if len(c.EmailAddresses) == 0 {
		return ""
	}
	return c.EmailAddresses[0]
}

// E164 returns the primary phone in +1XXXXXXXXXX form.
func (c *Contact) E164() string {
	p := c.PrimaryPhone()
	if p == "" {
		return ""
	}
	return "+1" + p
}

// Tool type discriminators.
const (
	ToolTypeFunction     = "function"
	ToolTypeTransferCall = "transferCall"
	ToolTypeHandoff      = "handoff"
)

// Well-known tool function names.
const (
	ToolRedirectCall = "redirectCall"
	ToolSendEmail    = "sendEmail"
	ToolDispatchCall = "dispatchCall"
	ToolGuessState   = "guessState"
	ToolHandoff      = "handoff"
)

// Destination type discriminators.
const (
	DestinationNumber    = "number"
	DestinationAssistant = "assistant"
)

// Transfer plan modes.
const (
	TransferModeWarmSummary = "warm-transfer-wait-for-operator-to-speak-first-and-then-say-summary"
	TransferModeSayMessage  = "warm-transfer-say-message"
)

// ToolPayload is the desired state of a platform tool. The Type
// discriminator is immutable once created; updates go through ToolUpdate.
type ToolPayload struct {
	Type         string        `json:"type"`
	Function     *ToolFunction `json:"function,omitempty"`
	Destinations []Destination `json:"destinations,omitempty"`
	Messages     []ToolMessage `json:"messages,omitempty"`
	Server       *Server       `json:"server,omitempty"`
}

// Update derives the update-safe variant of the payload. The platform
// rejects the type discriminator on update, so it is not part of the
// update shape at all.
func (t ToolPayload) Update() ToolUpdate {
	return ToolUpdate{
		Function:     t.Function,
		Destinations: t.Destinations,
		Messages:     t.Messages,
		Server:       t.Server,
	}
}

// FunctionName returns the tool's function name, the unique key the
// platform identifies tools by.
func (t ToolPayload) FunctionName() string {
	if t.Function == nil {
		return ""
	}
	return t.Function.Name
}

// ToolUpdate is the payload shape accepted by tool update calls.
type ToolUpdate struct {
	Function     *ToolFunction `json:"function,omitempty"`
	Destinations []Destination `json:"destinations,omitempty"`
	Messages     []ToolMessage `json:"messages,omitempty"`
	Server       *Server       `json:"server,omitempty"`
}

// ToolFunction describes the callable surface of a tool.
type ToolFunction struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// Schema is the JSON-schema-like parameter description the platform
// consumes. Enum values are populated from contact data where applicable.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Destination is one transfer or handoff target.
type Destination struct {
	Type                   string                  `json:"type"`
	Number                 string                  `json:"number,omitempty"`
	AssistantID            string                  `json:"assistantId,omitempty"`
	AssistantName          string                  `json:"assistantName,omitempty"`
	Message                string                  `json:"message,omitempty"`
	Description            string                  `json:"description,omitempty"`
	TransferPlan           *TransferPlan           `json:"transferPlan,omitempty"`
	VariableExtractionPlan *VariableExtractionPlan `json:"variableExtractionPlan,omitempty"`
}

// TransferPlan configures how a call transfer is executed.
type TransferPlan struct {
	Mode        string       `json:"mode"`
	Message     string       `json:"message,omitempty"`
	SummaryPlan *SummaryPlan `json:"summaryPlan,omitempty"`
}

// SummaryPlan tells the platform how to summarize the call for the
// operator picking up a warm transfer.
type SummaryPlan struct {
	Enabled  bool          `json:"enabled"`
	Messages []PlanMessage `json:"messages,omitempty"`
}

// PlanMessage is a role/content pair used in summary plans and model
// system prompts.
type PlanMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// VariableExtractionPlan forces the platform to carry structured fields
// across a handoff.
type VariableExtractionPlan struct {
	Schema *Schema `json:"schema"`
}

// ToolMessage is spoken while a tool runs. Conditions select the message
// variant by exact argument match.
type ToolMessage struct {
	Type       string             `json:"type"`
	Content    string             `json:"content"`
	Conditions []MessageCondition `json:"conditions,omitempty"`
}

// MessageCondition guards a tool message on an argument value.
// Matching is exact and case-sensitive on the platform side.
type MessageCondition struct {
	Param    string `json:"param"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Tool message types.
const (
	MessageRequestStart    = "request-start"
	MessageRequestComplete = "request-complete"
	MessageRequestFailed   = "request-failed"
)

// Server is the callback descriptor attached to every tool and
// assistant. The secret also rides in a custom header because the
// platform drops the top-level secret on some tool callbacks.
type Server struct {
	URL            string            `json:"url"`
	TimeoutSeconds int               `json:"timeoutSeconds,omitempty"`
	Secret         string            `json:"secret,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
}

// SecretHeader is the custom header carrying the duplicate webhook secret.
const SecretHeader = "x-phonetree-secret"

// AssistantPayload is the desired state of a platform assistant.
type AssistantPayload struct {
	Name         string             `json:"name"`
	FirstMessage string             `json:"firstMessage,omitempty"`
	Model        *AssistantModel    `json:"model,omitempty"`
	Voice        *VoiceConfig       `json:"voice,omitempty"`
	Transcriber  *TranscriberConfig `json:"transcriber,omitempty"`
	Server       *Server            `json:"server,omitempty"`
}

// AssistantModel binds the system prompt and tool ids to an LLM.
type AssistantModel struct {
	Provider string        `json:"provider"`
	Model    string        `json:"model"`
	Messages []PlanMessage `json:"messages,omitempty"`
	ToolIDs  []string      `json:"toolIds,omitempty"`
}

// SystemPrompt returns the content of the first system message, or "".
func (m *AssistantModel) SystemPrompt() string {
	if m == nil {
		return ""
	}
	for _, msg := range m.Messages {
		if strings.EqualFold(msg.Role, "system") {
			return msg.Content
		}
	}
	return ""
}

// VoiceConfig is passed through to the platform unchanged.
type VoiceConfig struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId,omitempty"`
}

// TranscriberConfig biases speech recognition, most importantly with
// keyterms derived from contact names.
type TranscriberConfig struct {
	Provider string   `json:"provider"`
	Model    string   `json:"model,omitempty"`
	Language string   `json:"language,omitempty"`
	Keyterms []string `json:"keyterm,omitempty"`
}

// SquadPayload wires assistants into one call-routing graph.
type SquadPayload struct {
	Name    string        `json:"name"`
	Members []SquadMember `json:"members"`
}

// SquadMember references an assistant by platform id. Ordering encodes
// IVR precedence: the entry assistant must come first.
type SquadMember struct {
	AssistantID        string              `json:"assistantId"`
	AssistantOverrides *AssistantOverrides `json:"assistantOverrides,omitempty"`
}

// AssistantOverrides carries per-member tool overrides, used to give
// each squad member its own handoff edges.
type AssistantOverrides struct {
	Tools []ToolPayload `json:"tools,omitempty"`
}
