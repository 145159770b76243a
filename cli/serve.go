// ABOUTME: Webhook server command
// ABOUTME: Wires the contact cache and Gmail mailer into the HTTP server
package cli

import (
	"flag"
	"fmt"

	"github.com/intempus/phonetree/config"
	"github.com/intempus/phonetree/sheet"
	"github.com/intempus/phonetree/web"
)

// ServeCommand starts the webhook server handling tool invocations and
// end-of-call reports.
func ServeCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", cfg.Port, "Port to listen on")
	_ = fs.Parse(args)

	if cfg.WebhookSecret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is not set")
	}
	if cfg.MailFrom == "" {
		return fmt.Errorf("MAIL_FROM is not set")
	}

	cache, err := newCache(cfg)
	if err != nil {
		return err
	}

	token, err := sheet.LoadToken()
	if err != nil {
		return fmt.Errorf("no Google credentials found, run 'phonetree auth' first: %w", err)
	}
	gmailSvc, err := sheet.NewGmailClient(token)
	if err != nil {
		return err
	}

	server := web.NewServer(cache, web.NewGmailMailer(gmailSvc, cfg.MailFrom), cfg.WebhookSecret)
	return server.Start(*port)
}
