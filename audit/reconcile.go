// ABOUTME: Offline consistency audit across three views of the contact-to-number mapping
// ABOUTME: Read-only; every discrepancy becomes a warning string, never an error
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/intempus/phonetree/models"
	"github.com/intempus/phonetree/sheet"
)

// legacyLineRe extracts "user asks for X, call ... with <phone>" lines
// from the flat-file system prompt produced by earlier tool versions.
var legacyLineRe = regexp.MustCompile(`user asks for "([^"]+)", call \w+ with "?(\+?[\d()\s.\-]+)"?`)

// messageNameRe recovers the contact name from an exported destination's
// templated transfer message.
var messageNameRe = regexp.MustCompile(`Connecting you to (.+?)\. Please stay on the line\.`)

// Checker cross-validates the canonical contact list against the legacy
// prompt file and the exported redirect-tool JSON kept for audit.
type Checker struct {
	contacts         []models.Contact
	legacyPromptPath string
	toolExportPath   string
}

// NewChecker creates a checker over the given snapshot and artifact
// paths.
func NewChecker(contacts []models.Contact, legacyPromptPath, toolExportPath string) *Checker {
	return &Checker{
		contacts:         contacts,
		legacyPromptPath: legacyPromptPath,
		toolExportPath:   toolExportPath,
	}
}

// Reconcile compares the three views and reports every mismatch or
// absence per contact name. It never mutates anything; the error return
// covers unreadable artifact files only.
func (c *Checker) Reconcile() ([]string, error) {
	legacy, err := c.parseLegacyPrompt()
	if err != nil {
		return nil, err
	}
	exported, err := c.parseToolExport()
	if err != nil {
		return nil, err
	}

	var warnings []string

	known := make(map[string]struct{}, len(c.contacts))
	for _, contact := range c.contacts {
		known[contact.Name] = struct{}{}
		phone := contact.PrimaryPhone()

		legacyPhone, inLegacy := legacy[contact.Name]
		switch {
		case !inLegacy:
			warnings = append(warnings, fmt.Sprintf("contact '%s' is missing from the legacy prompt", contact.Name))
		case legacyPhone != phone:
			warnings = append(warnings, fmt.Sprintf("contact '%s': legacy prompt has phone %s, sheet has %s", contact.Name, legacyPhone, phone))
		}

		exportedPhone, inExport := exported[contact.Name]
		switch {
		case !inExport:
			warnings = append(warnings, fmt.Sprintf("contact '%s' is missing from the exported redirect tool", contact.Name))
		case exportedPhone != phone:
			warnings = append(warnings, fmt.Sprintf("contact '%s': exported tool has phone %s, sheet has %s", contact.Name, exportedPhone, phone))
		}
	}

	for name := range legacy {
		if _, ok := known[name]; !ok {
			warnings = append(warnings, fmt.Sprintf("legacy prompt entry '%s' has no matching contact", name))
		}
	}

	return warnings, nil
}

// parseLegacyPrompt extracts name-to-phone pairs from the flat prompt
// file, canonicalizing both sides so they compare against the sheet.
func (c *Checker) parseLegacyPrompt() (map[string]string, error) {
	data, err := os.ReadFile(c.legacyPromptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy prompt: %w", err)
	}

	entries := make(map[string]string)
	for _, m := range legacyLineRe.FindAllStringSubmatch(string(data), -1) {
		name := sheet.CanonicalizePersonName(m[1])
		entries[name] = sheet.CanonicalizePhone(m[2])
	}
	return entries, nil
}

// parseToolExport extracts name-to-phone pairs from the exported
// redirect-tool JSON, recovering names from the templated messages.
func (c *Checker) parseToolExport() (map[string]string, error) {
	data, err := os.ReadFile(c.toolExportPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tool export: %w", err)
	}

	var tool models.ToolPayload
	if err := json.Unmarshal(data, &tool); err != nil {
		return nil, fmt.Errorf("failed to parse tool export: %w", err)
	}

	entries := make(map[string]string)
	for _, d := range tool.Destinations {
		m := messageNameRe.FindStringSubmatch(d.Message)
		if m == nil {
			continue
		}
		entries[m[1]] = sheet.CanonicalizePhone(d.Number)
	}
	return entries, nil
}
