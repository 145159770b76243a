// ABOUTME: Webhook server receiving tool invocations and end-of-call reports
// ABOUTME: Validates the shared secret, executes side effects, and returns tool results
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/intempus/phonetree/models"
	"github.com/intempus/phonetree/sheet"
)

// Server handles platform callbacks for the deployment.
type Server struct {
	cache  *sheet.Cache
	mailer Mailer
	secret string
}

// NewServer creates the webhook server over the contact cache and
// mailer.
func NewServer(cache *sheet.Cache, mailer Mailer, secret string) *Server {
	return &Server{cache: cache, mailer: mailer, secret: secret}
}

// Handler returns the HTTP handler for the webhook routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start runs the server on the given port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting webhook server at http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// authorized checks the shared secret. The platform sends it both as
// its own secret header and in the duplicate custom header; either one
// passes.
func (s *Server) authorized(r *http.Request) bool {
	if s.secret == "" {
		return false
	}
	return r.Header.Get("x-vapi-secret") == s.secret ||
		r.Header.Get(models.SecretHeader) == s.secret
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.authorized(r) {
		log.Printf("[%s] webhook rejected: bad secret", reqID)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var envelope Envelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		log.Printf("[%s] webhook rejected: %v", reqID, err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	msg := envelope.Message
	log.Printf("[%s] webhook message type=%s", reqID, msg.Type)

	switch msg.Type {
	case MessageToolCalls:
		s.handleToolCalls(r.Context(), w, reqID, msg)
	case MessageEndOfCallReport:
		s.handleEndOfCall(w, reqID, msg)
	default:
		// Unknown message types are acknowledged for forward compatibility.
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) handleToolCalls(ctx context.Context, w http.ResponseWriter, reqID string, msg Message) {
	var caller string
	if msg.Call != nil && msg.Call.Customer != nil {
		caller = sheet.CanonicalizePhone(msg.Call.Customer.Number)
	}

	results := make([]ToolCallResult, 0, len(msg.ToolCallList))
	for _, call := range msg.ToolCallList {
		result := s.executeToolCall(ctx, reqID, call, caller)
		results = append(results, result)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ToolCallResponse{Results: results}); err != nil {
		log.Printf("[%s] failed to encode tool results: %v", reqID, err)
	}
}

func (s *Server) executeToolCall(ctx context.Context, reqID string, call ToolCall, caller string) ToolCallResult {
	log.Printf("[%s] tool call %s (%s)", reqID, call.Function.Name, call.ID)

	switch call.Function.Name {
	case models.ToolSendEmail:
		return s.runSendEmail(ctx, call)
	case models.ToolDispatchCall:
		return s.runDispatchCall(ctx, call)
	case models.ToolGuessState:
		return s.runGuessState(call, caller)
	default:
		return ToolCallResult{
			ToolCallID: call.ID,
			Error:      fmt.Sprintf("unknown tool: %s", call.Function.Name),
		}
	}
}

func (s *Server) runSendEmail(ctx context.Context, call ToolCall) ToolCallResult {
	var args sendEmailArgs
	if err := json.Unmarshal(call.Function.Arguments, &args); err != nil {
		return ToolCallResult{ToolCallID: call.ID, Error: fmt.Sprintf("invalid sendEmail arguments: %v", err)}
	}
	if args.To == "" {
		return ToolCallResult{ToolCallID: call.ID, Error: "sendEmail requires a destination"}
	}

	if err := s.mailer.Send(ctx, args.To, args.Subject, args.Text); err != nil {
		return ToolCallResult{ToolCallID: call.ID, Error: err.Error()}
	}
	return ToolCallResult{ToolCallID: call.ID, Result: fmt.Sprintf("Email sent to %s.", args.To)}
}

// runDispatchCall looks the named contact up in the cached snapshot and
// returns transfer instructions for the assistant to follow. An unknown
// name is a result, not an error, so the assistant can recover in
// conversation.
func (s *Server) runDispatchCall(ctx context.Context, call ToolCall) ToolCallResult {
	var args dispatchCallArgs
	if err := json.Unmarshal(call.Function.Arguments, &args); err != nil {
		return ToolCallResult{ToolCallID: call.ID, Error: fmt.Sprintf("invalid dispatchCall arguments: %v", err)}
	}

	contact, found, err := s.cache.Lookup(ctx, args.Name)
	if err != nil {
		return ToolCallResult{ToolCallID: call.ID, Error: fmt.Sprintf("contact lookup failed: %v", err)}
	}
	if !found {
		return ToolCallResult{
			ToolCallID: call.ID,
			Result:     fmt.Sprintf("No contact named \"%s\" was found. Tell the caller and offer to take a message with sendEmail instead.", args.Name),
		}
	}

	instructions := fmt.Sprintf("Call redirectCall with destination %s to transfer the caller to %s.", contact.E164(), contact.Name)
	if contact.Description != "" {
		instructions += fmt.Sprintf(" Note: %s.", contact.Description)
	}
	if contact.TimeZone != "" {
		instructions += fmt.Sprintf(" Their time zone is %s; warn the caller if it is outside business hours there.", contact.TimeZone)
	}
	return ToolCallResult{ToolCallID: call.ID, Result: instructions}
}

func (s *Server) runGuessState(call ToolCall, caller string) ToolCallResult {
	if caller == "" {
		return ToolCallResult{ToolCallID: call.ID, Result: "The caller's number is unavailable; ask them which state their property is in."}
	}
	state, ok := guessState(caller)
	if !ok {
		return ToolCallResult{ToolCallID: call.ID, Result: "The caller's state could not be determined; ask them which state their property is in."}
	}
	return ToolCallResult{ToolCallID: call.ID, Result: fmt.Sprintf("The caller is most likely calling from %s.", state)}
}

func (s *Server) handleEndOfCall(w http.ResponseWriter, reqID string, msg Message) {
	callID := ""
	if msg.Call != nil {
		callID = msg.Call.ID
	}
	log.Printf("[%s] call %s ended (%s) after %.0fs: %s",
		reqID, callID, msg.EndedReason, msg.DurationSeconds, msg.Summary)
	w.WriteHeader(http.StatusOK)
}
