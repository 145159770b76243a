// ABOUTME: Assistant variant builders and the kind registry
// ABOUTME: Each variant shares one contract and differs in prompt task, tools, and transcriber
package builder

import (
	"fmt"

	"github.com/intempus/phonetree/models"
)

// Deployment assistant names, the by-name lookup keys on the platform.
const (
	AssistantMain         = "Intempus Main"
	AssistantIntroduction = "Intempus Introduction"
	AssistantHOA          = "Intempus HOA"
	AssistantOwners       = "Intempus Property Owners"
	AssistantDirectory    = "Intempus Directory"
	AssistantFAQ          = "Intempus FAQ"
	AssistantCallback     = "Intempus Callback"
	AssistantBot          = "Intempus Bot"
	AssistantNext         = "Intempus Next"
)

// Kind enumerates the assistant variants. The registry maps each kind
// to its builder so dispatch is exhaustive rather than keyed on loose
// strings.
type Kind int

const (
	KindMain Kind = iota
	KindIntroduction
	KindHOA
	KindOwners
	KindDirectory
	KindFAQ
	KindCallback
	KindBot
	KindNext
)

// BuildParams is the shared input of every assistant builder.
type BuildParams struct {
	Config   Config
	Contacts []models.Contact
	// ToolIDs maps tool function names to platform-assigned ids.
	// Builders fail when a required name is missing.
	ToolIDs map[string]string
	// Existing, when set, is the remote assistant's current payload.
	// Its prompt header above the anchor is reused verbatim.
	Existing *models.AssistantPayload
}

// BuilderFunc produces an assistant payload for one variant.
type BuilderFunc func(BuildParams) (models.AssistantPayload, error)

// Registration binds a kind to its deployment name and builder.
// Deprecated entries are kept for credate idempotence but excluded from
// squad wiring.
type Registration struct {
	Kind       Kind
	Name       string
	Deprecated bool
	Build      BuilderFunc
}

// Registry returns all assistant variants in IVR registration order:
// Main first, Introduction second, leaf nodes after, legacy variants
// last.
func Registry() []Registration {
	return []Registration{
		{Kind: KindMain, Name: AssistantMain, Build: BuildMainAssistant},
		{Kind: KindIntroduction, Name: AssistantIntroduction, Build: BuildIntroductionAssistant},
		{Kind: KindHOA, Name: AssistantHOA, Build: BuildHOAAssistant},
		{Kind: KindOwners, Name: AssistantOwners, Build: BuildOwnersAssistant},
		{Kind: KindDirectory, Name: AssistantDirectory, Build: BuildDirectoryAssistant},
		{Kind: KindFAQ, Name: AssistantFAQ, Build: BuildFAQAssistant},
		{Kind: KindCallback, Name: AssistantCallback, Build: BuildCallbackAssistant},
		{Kind: KindBot, Name: AssistantBot, Deprecated: true, Build: BuildBotAssistant},
		{Kind: KindNext, Name: AssistantNext, Deprecated: true, Build: BuildNextAssistant},
	}
}

// bindTools resolves required tool function names to ids, failing with
// the missing tool's name.
func bindTools(ids map[string]string, names ...string) ([]string, error) {
	bound := make([]string, 0, len(names))
	for _, name := range names {
		id, ok := ids[name]
		if !ok {
			return nil, fmt.Errorf("required tool %q not found in tool id map", name)
		}
		bound = append(bound, id)
	}
	return bound, nil
}

// baseTools are required by every assistant variant.
var baseTools = []string{models.ToolRedirectCall, models.ToolSendEmail, models.ToolDispatchCall}

// defaultTranscriber biases recognition toward contact names.
func defaultTranscriber(contacts []models.Contact) *models.TranscriberConfig {
	return &models.TranscriberConfig{
		Provider: "deepgram",
		Model:    "nova-2",
		Language: "en",
		Keyterms: Keyterms(contacts),
	}
}

// build assembles a variant payload from its distinguishing pieces.
func build(p BuildParams, name, firstMessage, task string, extraTools []string, transcriber *models.TranscriberConfig) (models.AssistantPayload, error) {
	toolIDs, err := bindTools(p.ToolIDs, append(append([]string{}, baseTools...), extraTools...)...)
	if err != nil {
		return models.AssistantPayload{}, fmt.Errorf("failed to build assistant %q: %w", name, err)
	}

	var existingModel *models.AssistantModel
	if p.Existing != nil {
		existingModel = p.Existing.Model
	}
	prompt := assemblePrompt(headerFor(existingModel, defaultHeader(task)), p.Contacts)

	if transcriber == nil {
		transcriber = defaultTranscriber(p.Contacts)
	}

	return models.AssistantPayload{
		Name:         name,
		FirstMessage: firstMessage,
		Model: &models.AssistantModel{
			Provider: "openai",
			Model:    "gpt-4o",
			Messages: []models.PlanMessage{{Role: "system", Content: prompt}},
			ToolIDs:  toolIDs,
		},
		Voice: &models.VoiceConfig{
			Provider: "11labs",
			VoiceID:  "sarah",
		},
		Transcriber: transcriber,
		Server:      p.Config.server(),
	}, nil
}

// BuildMainAssistant builds the entry node answering the main line.
func BuildMainAssistant(p BuildParams) (models.AssistantPayload, error) {
	task := `## Task
Answer the main Intempus Realty line. Find out whether the caller is a
tenant, a homeowner, a property owner, or a vendor, then hand the call
off to the introduction menu. Handle emergencies immediately with
redirectCall to the emergency group.`
	return build(p, AssistantMain,
		"Thank you for calling Intempus Realty. How can I help you today?",
		task, []string{models.ToolGuessState}, nil)
}

// BuildIntroductionAssistant builds the generic menu hub every branch
// returns to.
func BuildIntroductionAssistant(p BuildParams) (models.AssistantPayload, error) {
	task := `## Task
You are the menu hub. Offer the caller these paths: HOA questions,
property owner services, reaching a specific person, frequently asked
questions, or leaving a callback request. Hand off to the matching
branch once the caller picks one.`
	return build(p, AssistantIntroduction,
		"I can connect you with the right team. What do you need help with?",
		task, nil, nil)
}

// BuildHOAAssistant builds the HOA branch.
func BuildHOAAssistant(p BuildParams) (models.AssistantPayload, error) {
	task := `## Task
Help homeowners association callers: maintenance requests, dues
questions, and board contacts. Route maintenance emergencies to the HOA
maintenance line with redirectCall. For anything else take the details
and send them to the HOA team with sendEmail.`
	return build(p, AssistantHOA, "", task, nil, nil)
}

// BuildOwnersAssistant builds the property-owner branch.
func BuildOwnersAssistant(p BuildParams) (models.AssistantPayload, error) {
	task := `## Task
Help property owners: onboarding new properties, statements, and
management questions. Use guessState to tailor answers to the owner's
state when it matters. Connect owners to their property manager with
dispatchCall when they ask for a person.`
	return build(p, AssistantOwners, "", task, []string{models.ToolGuessState}, nil)
}

// BuildDirectoryAssistant builds the dial-by-name branch.
func BuildDirectoryAssistant(p BuildParams) (models.AssistantPayload, error) {
	task := `## Task
You are the dial-by-name directory. Ask who the caller is trying to
reach, confirm the name, then follow the directory instructions below.`
	return build(p, AssistantDirectory, "Who would you like to reach?", task, nil, nil)
}

// BuildFAQAssistant builds the FAQ branch.
func BuildFAQAssistant(p BuildParams) (models.AssistantPayload, error) {
	task := `## Task
Answer common questions: office hours (Monday to Friday, nine to five
Pacific), the office address, rent payment options, and maintenance
request procedure. If a question is outside this list, hand the caller
back to the menu.`
	return build(p, AssistantFAQ, "", task, nil, nil)
}

// BuildCallbackAssistant builds the callback-form branch.
func BuildCallbackAssistant(p BuildParams) (models.AssistantPayload, error) {
	task := `## Task
Collect a callback request: the caller's name, number, preferred time,
and a short reason. Read the details back for confirmation, then file
the request with sendEmail to the office.`
	return build(p, AssistantCallback, "", task, nil, nil)
}

// BuildBotAssistant builds the legacy single-node variant, kept only so
// existing deployments keep converging on update.
func BuildBotAssistant(p BuildParams) (models.AssistantPayload, error) {
	task := `## Task
Answer the line, route callers by transferring directly with
redirectCall, and take messages with sendEmail.`
	return build(p, AssistantBot, "", task, nil, nil)
}

// BuildNextAssistant builds the next-generation variant used for
// prompt experiments before they land on Main.
func BuildNextAssistant(p BuildParams) (models.AssistantPayload, error) {
	task := `## Task
Experimental copy of the main-line behavior. Identical routing duties;
prompt and transcriber settings may diverge while under test.`
	return build(p, AssistantNext, "", task, []string{models.ToolGuessState},
		&models.TranscriberConfig{
			Provider: "deepgram",
			Model:    "nova-3",
			Language: "multi",
			Keyterms: Keyterms(p.Contacts),
		})
}
