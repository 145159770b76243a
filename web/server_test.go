// ABOUTME: Webhook server tests using httptest, a fake mailer, and a canned contact cache
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intempus/phonetree/sheet"
)

const testSecret = "hook-secret"

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to, subject, text string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, text: text})
	return nil
}

func testServer(mailer Mailer) *Server {
	header := map[string]int{"Name": 0, "PhoneNumber": 1, "Description": 3, "TimeZone": 4}
	cache := sheet.NewCache(func(ctx context.Context) ([]sheet.Row, error) {
		return []sheet.Row{
			sheet.NewRow(header, []interface{}{"Jane Doe", "5551112222", "", "On-site manager", "America/Chicago"}),
			sheet.NewRow(header, []interface{}{"Pat Obrien", "5553334444"}),
		}, nil
	})
	return NewServer(cache, mailer, testSecret)
}

func postWebhook(t *testing.T, handler http.Handler, secret string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(raw))
	if secret != "" {
		req.Header.Set("x-vapi-secret", secret)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func toolCallEnvelope(name string, args interface{}, caller string) Envelope {
	raw, _ := json.Marshal(args)
	msg := Message{
		Type:         MessageToolCalls,
		ToolCallList: []ToolCall{{ID: "call-1", Function: ToolCallFunction{Name: name, Arguments: raw}}},
	}
	if caller != "" {
		msg.Call = &Call{ID: "c-1", Customer: &Customer{Number: caller}}
	}
	return Envelope{Message: msg}
}

func decodeResults(t *testing.T, rec *httptest.ResponseRecorder) []ToolCallResult {
	t.Helper()
	var resp ToolCallResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	return resp.Results
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()

	rec := postWebhook(t, handler, "wrong", toolCallEnvelope("guessState", struct{}{}, ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postWebhook(t, handler, "", toolCallEnvelope("guessState", struct{}{}, ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookRejectsEmptyConfiguredSecret(t *testing.T) {
	server := NewServer(nil, &fakeMailer{}, "")
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookAcceptsCustomSecretHeader(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()

	raw, _ := json.Marshal(toolCallEnvelope("guessState", struct{}{}, ""))
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(raw))
	req.Header.Set("x-phonetree-secret", testSecret)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookRejectsGet(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()
	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWebhookSendEmail(t *testing.T) {
	mailer := &fakeMailer{}
	handler := testServer(mailer).Handler()

	rec := postWebhook(t, handler, testSecret, toolCallEnvelope("sendEmail",
		map[string]string{"to": "jane@example.com", "subject": "Callback", "text": "Please call Bob"}, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	results := decodeResults(t, rec)
	assert.Equal(t, "call-1", results[0].ToolCallID)
	assert.Empty(t, results[0].Error)
	assert.Equal(t, "Email sent to jane@example.com.", results[0].Result)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, sentMail{to: "jane@example.com", subject: "Callback", text: "Please call Bob"}, mailer.sent[0])
}

func TestWebhookSendEmailMailerError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	handler := testServer(mailer).Handler()

	rec := postWebhook(t, handler, testSecret, toolCallEnvelope("sendEmail",
		map[string]string{"to": "jane@example.com", "subject": "x", "text": "y"}, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	results := decodeResults(t, rec)
	assert.Equal(t, "smtp down", results[0].Error)
}

func TestWebhookSendEmailMissingDestination(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()

	rec := postWebhook(t, handler, testSecret, toolCallEnvelope("sendEmail",
		map[string]string{"subject": "x", "text": "y"}, ""))
	results := decodeResults(t, rec)
	assert.Equal(t, "sendEmail requires a destination", results[0].Error)
}

func TestWebhookDispatchCall(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()

	rec := postWebhook(t, handler, testSecret, toolCallEnvelope("dispatchCall",
		map[string]string{"name": "Jane Doe"}, ""))
	results := decodeResults(t, rec)
	assert.Empty(t, results[0].Error)
	assert.Contains(t, results[0].Result, "Call redirectCall with destination +15551112222 to transfer the caller to Jane Doe.")
	assert.Contains(t, results[0].Result, "On-site manager")
	assert.Contains(t, results[0].Result, "America/Chicago")
}

func TestWebhookDispatchCallUnknownName(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()

	rec := postWebhook(t, handler, testSecret, toolCallEnvelope("dispatchCall",
		map[string]string{"name": "Nobody Here"}, ""))
	results := decodeResults(t, rec)
	// Unknown names come back as results so the assistant can recover.
	assert.Empty(t, results[0].Error)
	assert.Contains(t, results[0].Result, `No contact named "Nobody Here" was found.`)
}

func TestWebhookGuessState(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()

	rec := postWebhook(t, handler, testSecret, toolCallEnvelope("guessState", struct{}{}, "+1 (415) 555-0100"))
	results := decodeResults(t, rec)
	assert.Equal(t, "The caller is most likely calling from California.", results[0].Result)
}

func TestWebhookGuessStateNoCaller(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()

	rec := postWebhook(t, handler, testSecret, toolCallEnvelope("guessState", struct{}{}, ""))
	results := decodeResults(t, rec)
	assert.Contains(t, results[0].Result, "ask them which state")
}

func TestWebhookGuessStateUnknownAreaCode(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()

	rec := postWebhook(t, handler, testSecret, toolCallEnvelope("guessState", struct{}{}, "+1 (999) 555-0100"))
	results := decodeResults(t, rec)
	assert.Contains(t, results[0].Result, "could not be determined")
}

func TestWebhookUnknownTool(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()

	rec := postWebhook(t, handler, testSecret, toolCallEnvelope("launchRocket", struct{}{}, ""))
	results := decodeResults(t, rec)
	assert.Equal(t, "unknown tool: launchRocket", results[0].Error)
}

func TestWebhookUnknownMessageTypeAcknowledged(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()

	rec := postWebhook(t, handler, testSecret, Envelope{Message: Message{Type: "speech-update"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookEndOfCallReport(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()

	rec := postWebhook(t, handler, testSecret, Envelope{Message: Message{
		Type:            MessageEndOfCallReport,
		Call:            &Call{ID: "c-9"},
		Summary:         "Caller asked for Jane and was transferred.",
		EndedReason:     "assistant-forwarded-call",
		DurationSeconds: 92,
	}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthz(t *testing.T) {
	handler := testServer(&fakeMailer{}).Handler()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestGuessStateTable(t *testing.T) {
	tests := []struct {
		phone string
		state string
		ok    bool
	}{
		{"4155550100", "California", true},
		{"5035550100", "Oregon", true},
		{"2125550100", "New York", true},
		{"0005550100", "", false},
		{"41", "", false},
	}
	for _, tt := range tests {
		state, ok := guessState(tt.phone)
		assert.Equal(t, tt.ok, ok, "phone %s", tt.phone)
		assert.Equal(t, tt.state, state, "phone %s", tt.phone)
	}
}
