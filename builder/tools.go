// ABOUTME: Pure builders producing tool-definition payloads from contact data
// ABOUTME: Covers redirect, sendEmail, dispatchCall, guessState, and handoff tools
package builder

import (
	"fmt"

	"github.com/intempus/phonetree/models"
)

// Config carries the deployment-wide settings every builder needs to
// wire server callbacks.
type Config struct {
	ServerURL string
	Secret    string
}

// server builds the shared callback block. The secret is duplicated
// into a custom header because the platform drops the top-level secret
// on some tool callbacks.
func (c Config) server() *models.Server {
	return &models.Server{
		URL:            c.ServerURL,
		TimeoutSeconds: 30,
		Secret:         c.Secret,
		Headers:        map[string]string{models.SecretHeader: c.Secret},
	}
}

// specialDestinations are the fixed dispatch-group numbers that must be
// reachable from the redirect tool whether or not a contact row carries
// them.
var specialDestinations = []models.Destination{
	{
		Type:        models.DestinationNumber,
		Number:      "+15103404275",
		Message:     "Connecting you to HOA maintenance. Please stay on the line.",
		Description: "HOA maintenance",
	},
	{
		Type:        models.DestinationNumber,
		Number:      "+19162358444",
		Message:     "Connecting you to the emergency group. Please stay on the line.",
		Description: "emergency group",
	},
	{
		Type:        models.DestinationNumber,
		Number:      "+14083593034",
		Message:     "Connecting you to the leasing group. Please stay on the line.",
		Description: "leasing group",
	},
}

// warmTransferPlan is the shared post-transfer plan: wait for the
// operator to speak, then read a summary generated from the transcript.
func warmTransferPlan() *models.TransferPlan {
	return &models.TransferPlan{
		Mode: models.TransferModeWarmSummary,
		SummaryPlan: &models.SummaryPlan{
			Enabled: true,
			Messages: []models.PlanMessage{
				{Role: "system", Content: "provide a summary"},
				{Role: "user", Content: "transcript: {{transcript}}"},
			},
		},
	}
}

// BuildRedirectTool derives the transferCall tool from the contact set.
// Destination numbers are deduplicated first-seen-wins, and the fixed
// dispatch-group numbers are appended once each when no contact already
// carries them.
func BuildRedirectTool(cfg Config, contacts []models.Contact) models.ToolPayload {
	seen := make(map[string]struct{})
	var enum []string
	var destinations []models.Destination

	add := func(d models.Destination) {
		if _, dup := seen[d.Number]; dup {
			return
		}
		seen[d.Number] = struct{}{}
		enum = append(enum, d.Number)
		destinations = append(destinations, d)
	}

	// TODO: when two contacts share a number only the first contact's
	// message and description survive; decide with the office whether
	// shared lines should get a merged description instead.
	for _, c := range contacts {
		number := c.E164()
		if number == "" {
			continue
		}
		description := c.Description
		if description == "" {
			description = fmt.Sprintf("Transfer to %s", c.Name)
		}
		add(models.Destination{
			Type:         models.DestinationNumber,
			Number:       number,
			Message:      fmt.Sprintf("Connecting you to %s. Please stay on the line.", c.Name),
			Description:  description,
			TransferPlan: warmTransferPlan(),
		})
	}

	for _, d := range specialDestinations {
		d.TransferPlan = warmTransferPlan()
		add(d)
	}

	return models.ToolPayload{
		Type: models.ToolTypeTransferCall,
		Function: &models.ToolFunction{
			Name:        models.ToolRedirectCall,
			Description: "Transfer the caller to a person or dispatch group.",
			Parameters: &models.Schema{
				Type: "object",
				Properties: map[string]*models.Schema{
					"destination": {
						Type:        "string",
						Description: "The phone number to transfer the call to.",
						Enum:        enum,
					},
				},
				Required: []string{"destination"},
			},
		},
		Destinations: destinations,
		Server:       cfg.server(),
	}
}

// BuildSendEmailTool derives the sendEmail function tool. The
// destination enum is the deduplicated set of primary emails; contacts
// without any email are skipped.
func BuildSendEmailTool(cfg Config, contacts []models.Contact) models.ToolPayload {
	seen := make(map[string]struct{})
	var enum []string
	for _, c := range contacts {
		email := c.PrimaryEmail()
		if email == "" {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		enum = append(enum, email)
	}

	return models.ToolPayload{
		Type: models.ToolTypeFunction,
		Function: &models.ToolFunction{
			Name:        models.ToolSendEmail,
			Description: "Send an email message to a staff member.",
			Parameters: &models.Schema{
				Type: "object",
				Properties: map[string]*models.Schema{
					"to": {
						Type:        "string",
						Description: "The destination email address.",
						Enum:        enum,
					},
					"subject": {
						Type:        "string",
						Description: "The email subject line.",
					},
					"text": {
						Type:        "string",
						Description: "The email body.",
					},
				},
				Required: []string{"to", "text", "subject"},
			},
		},
		Server: cfg.server(),
	}
}

// BuildDispatchCallTool derives the dispatchCall function tool. The
// server decides how to reach the named contact; per-contact spoken
// messages are selected by exact name match on the platform side.
func BuildDispatchCallTool(cfg Config, contacts []models.Contact) models.ToolPayload {
	names := make([]string, 0, len(contacts))
	var messages []models.ToolMessage
	for _, c := range contacts {
		names = append(names, c.Name)
		messages = append(messages, models.ToolMessage{
			Type:    models.MessageRequestStart,
			Content: fmt.Sprintf("Let me check how to reach %s, one moment.", c.Name),
			Conditions: []models.MessageCondition{
				{Param: "name", Operator: "eq", Value: c.Name},
			},
		})
	}
	messages = append(messages, models.ToolMessage{
		Type:    models.MessageRequestFailed,
		Content: "I'm sorry, I couldn't look that person up right now.",
	})

	return models.ToolPayload{
		Type: models.ToolTypeFunction,
		Function: &models.ToolFunction{
			Name:        models.ToolDispatchCall,
			Description: "Look up dispatch instructions for reaching a named staff member.",
			Parameters: &models.Schema{
				Type: "object",
				Properties: map[string]*models.Schema{
					"name": {
						Type:        "string",
						Description: "The full name of the person the caller asked for.",
						Enum:        names,
					},
				},
				Required: []string{"name"},
			},
		},
		Messages: messages,
		Server:   cfg.server(),
	}
}

// BuildGuessStateTool builds the stateless guessState marker tool. The
// server resolves the caller's US state; the tool itself carries no
// parameters.
func BuildGuessStateTool(cfg Config) models.ToolPayload {
	return models.ToolPayload{
		Type: models.ToolTypeFunction,
		Function: &models.ToolFunction{
			Name:        models.ToolGuessState,
			Description: "Guess the caller's US state from their phone number.",
			Parameters: &models.Schema{
				Type:       "object",
				Properties: map[string]*models.Schema{},
			},
		},
		Server: cfg.server(),
	}
}

// HandoffTarget references an assistant a handoff tool can route to,
// by platform id or by name.
type HandoffTarget struct {
	AssistantID   string
	AssistantName string
	Description   string
}

// languageSchema is the extraction schema every handoff destination
// carries so the caller's language follows them across nodes.
func languageSchema() *models.VariableExtractionPlan {
	return &models.VariableExtractionPlan{
		Schema: &models.Schema{
			Type: "object",
			Properties: map[string]*models.Schema{
				"language": {
					Type:        "string",
					Description: "The language the caller is speaking.",
					Enum:        []string{"English", "Spanish"},
				},
			},
			Required: []string{"language"},
		},
	}
}

// BuildHandoffTool builds one handoff tool whose destinations mirror
// the given targets 1:1. A target with neither id nor name is a
// configuration error.
func BuildHandoffTool(cfg Config, targets []HandoffTarget) (models.ToolPayload, error) {
	destinations := make([]models.Destination, 0, len(targets))
	for i, t := range targets {
		if t.AssistantID == "" && t.AssistantName == "" {
			return models.ToolPayload{}, fmt.Errorf("handoff target #%d has neither assistant id nor name", i+1)
		}
		destinations = append(destinations, models.Destination{
			Type:                   models.DestinationAssistant,
			AssistantID:            t.AssistantID,
			AssistantName:          t.AssistantName,
			Description:            t.Description,
			VariableExtractionPlan: languageSchema(),
		})
	}

	return models.ToolPayload{
		Type: models.ToolTypeHandoff,
		Function: &models.ToolFunction{
			Name:        models.ToolHandoff,
			Description: "Hand the conversation off to another assistant.",
		},
		Destinations: destinations,
		Server:       cfg.server(),
	}, nil
}
