// ABOUTME: Entry point for the phone-tree provisioner and webhook server
// ABOUTME: Routes to provisioning, audit, or server commands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/intempus/phonetree/cli"
	"github.com/intempus/phonetree/config"
)

const version = "0.2.1"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	// Handle version flag
	if *showVersion {
		fmt.Printf("phonetree version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()

	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg := config.Load()

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "auth":
		if err := cli.AuthCommand(commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "contacts":
		if err := cli.ContactsCommand(cfg, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "provision":
		if len(commandArgs) == 0 {
			fmt.Println("Error: provision requires a subcommand (tools, assistants, squad, or all)")
			printUsage()
			os.Exit(1)
		}

		sub := commandArgs[0]
		subArgs := commandArgs[1:]

		switch sub {
		case "tools":
			if err := cli.ProvisionToolsCommand(cfg, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "assistants":
			if err := cli.ProvisionAssistantsCommand(cfg, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "squad":
			if err := cli.ProvisionSquadCommand(cfg, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "all":
			if err := cli.ProvisionAllCommand(cfg, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown provision command: %s\n\n", sub)
			printUsage()
			os.Exit(1)
		}

	case "list":
		if len(commandArgs) == 0 {
			fmt.Println("Error: list requires a subcommand (tools or assistants)")
			printUsage()
			os.Exit(1)
		}

		sub := commandArgs[0]
		subArgs := commandArgs[1:]

		switch sub {
		case "tools":
			if err := cli.ListToolsCommand(cfg, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "assistants":
			if err := cli.ListAssistantsCommand(cfg, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown list command: %s\n\n", sub)
			printUsage()
			os.Exit(1)
		}

	case "reconcile":
		if err := cli.ReconcileCommand(cfg, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "serve":
		if err := cli.ServeCommand(cfg, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`phonetree v%s - IVR provisioner for the Intempus voice deployment

USAGE:
  phonetree [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit

COMMANDS:
  auth                   Run the Google OAuth flow and store tokens
  contacts               Fetch and print the normalized contact sheet
  provision              Reconcile desired state against the platform
  list                   List remote platform entities
  reconcile              Audit the sheet against generated artifacts
  serve                  Run the webhook server

PROVISION COMMANDS:
  phonetree provision tools        Create or update the tool set
  phonetree provision assistants   Create or update every assistant
  phonetree provision squad        Assemble and create or update the IVR squad
  phonetree provision all          Tools, assistants, then squad

LIST COMMANDS:
  phonetree list tools             List remote tools with ids
  phonetree list assistants        List remote assistants with ids

CONTACTS:
  phonetree contacts               Print contacts and normalizer warnings
    --json                            Print as JSON instead

RECONCILE:
  phonetree reconcile              Compare sheet, legacy prompt, tool export
    --prompt <path>                   Legacy prompt file (default: legacy-prompt.txt)
    --export <path>                   Tool export JSON (default: redirect-tool.json)

SERVE:
  phonetree serve                  Run the webhook server
    --port <n>                        Port to listen on (default: $PORT or 8090)

ENVIRONMENT (.env is loaded when present):
  VAPI_API_KEY           Platform API key (required for provision/list)
  VAPI_BASE_URL          Platform API base URL (default: https://api.vapi.ai)
  WEBHOOK_URL            Public URL of the webhook server
  WEBHOOK_SECRET         Shared secret for webhook callbacks
  SHEET_ID               Contacts spreadsheet id
  SHEET_TAB              Contacts tab name (default: Contacts)
  MAIL_FROM              From address for sendEmail
  GOOGLE_CLIENT_ID       OAuth client id
  GOOGLE_CLIENT_SECRET   OAuth client secret

EXAMPLES:
  # One-time Google auth
  phonetree auth

  # Check what the sheet normalizes to
  phonetree contacts

  # Bring the whole deployment up to date
  phonetree provision all

  # Run the webhook server
  phonetree serve --port 8090

`, version)
}
