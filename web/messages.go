// ABOUTME: Webhook payload shapes for tool-call and end-of-call messages
// ABOUTME: Mirrors the platform's server-message envelope and results contract
package web

import "encoding/json"

// Server message types the webhook handles.
const (
	MessageToolCalls       = "tool-calls"
	MessageEndOfCallReport = "end-of-call-report"
)

// Envelope is the outer shape of every platform callback.
type Envelope struct {
	Message Message `json:"message"`
}

// Message is the platform callback body. Fields are populated depending
// on Type; unknown types are acknowledged and ignored.
type Message struct {
	Type            string     `json:"type"`
	ToolCallList    []ToolCall `json:"toolCallList,omitempty"`
	Call            *Call      `json:"call,omitempty"`
	Summary         string     `json:"summary,omitempty"`
	EndedReason     string     `json:"endedReason,omitempty"`
	DurationSeconds float64    `json:"durationSeconds,omitempty"`
}

// ToolCall is one pending tool invocation awaiting a result.
type ToolCall struct {
	ID       string           `json:"id"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction names the function and carries its raw arguments.
type ToolCallFunction struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Call identifies the live call a message belongs to.
type Call struct {
	ID       string    `json:"id"`
	Customer *Customer `json:"customer,omitempty"`
}

// Customer is the caller, identified by phone number.
type Customer struct {
	Number string `json:"number"`
}

// ToolCallResult is one settled tool invocation.
type ToolCallResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     string `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ToolCallResponse is the body returned for tool-calls messages.
type ToolCallResponse struct {
	Results []ToolCallResult `json:"results"`
}

// sendEmailArgs are the arguments of the sendEmail tool.
type sendEmailArgs struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// dispatchCallArgs are the arguments of the dispatchCall tool.
type dispatchCallArgs struct {
	Name string `json:"name"`
}
