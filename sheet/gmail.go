// ABOUTME: Google Gmail API client for outbound mail
// ABOUTME: Shares the OAuth surface used for the contacts sheet fetch
package sheet

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// NewGmailClient creates a new Google Gmail API client.
func NewGmailClient(token *oauth2.Token) (*gmail.Service, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}

	config := NewOAuthConfig()
	client := config.Client(context.Background(), token)

	service, err := gmail.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return service, nil
}
