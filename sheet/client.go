// ABOUTME: Google Sheets client for the contacts spreadsheet
// ABOUTME: Fetches the contact tab and exposes rows with named-column lookup
package sheet

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewSheetsClient creates a new Google Sheets API client.
func NewSheetsClient(token *oauth2.Token) (*sheets.Service, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}

	config := NewOAuthConfig()
	client := config.Client(context.Background(), token)

	service, err := sheets.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return service, nil
}

// Source fetches raw contact rows from one spreadsheet tab.
type Source struct {
	svc           *sheets.Service
	spreadsheetID string
	tab           string
}

// NewSource creates a contact row source for the given spreadsheet tab.
func NewSource(svc *sheets.Service, spreadsheetID, tab string) *Source {
	return &Source{svc: svc, spreadsheetID: spreadsheetID, tab: tab}
}

// FetchRows reads the tab and returns its data rows. The first sheet row
// is the header and defines column names for Row.Get.
func (s *Source) FetchRows(ctx context.Context) ([]Row, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.tab).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet values: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("sheet tab %q is empty", s.tab)
	}

	header := make(map[string]int)
	for i, cell := range resp.Values[0] {
		if name, ok := cell.(string); ok {
			header[name] = i
		}
	}

	rows := make([]Row, 0, len(resp.Values)-1)
	for _, cells := range resp.Values[1:] {
		rows = append(rows, NewRow(header, cells))
	}
	return rows, nil
}
