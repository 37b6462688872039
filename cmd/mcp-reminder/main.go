// Command mcp-reminder provides an MCP server for reminder management.
//
// This server exposes the date-keyed reminders file used by notifier as
// tools for adding, listing, reading and deleting reminders.
//
// Usage:
//
//	./mcp-reminder          # Start MCP server (stdio)
//	./mcp-reminder --help   # Show help
//
// Environment:
//
//	NOTIFIER_STORE_PATH  Path to the reminders file (default: messages.json)
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/notexe/reminder-notifier/internal/config"
	"github.com/notexe/reminder-notifier/internal/logging"
	"github.com/notexe/reminder-notifier/internal/reminder"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	cfg, err := config.Load(config.GetDefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol, so logs stay on stderr and are kept quiet.
	logger, err := logging.New("warn", "json")
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	store, err := reminder.Open(cfg.Store.Path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open reminders file: %v\n", err)
		os.Exit(1)
	}

	s := reminder.NewServer(store)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Reminder Server - Reminder management via MCP protocol

USAGE:
    mcp-reminder          Start MCP server (communicates via stdio)
    mcp-reminder --help   Show this help

ENVIRONMENT:
    NOTIFIER_STORE_PATH   Path to the reminders JSON file
                          Default: messages.json in the working directory

TOOLS:
    add_reminder     Add or replace the reminder for a date (date, time, message)
    list_reminders   List all reminders
    get_reminder     Get the reminder for a date
    delete_reminder  Delete the reminder for a date

CONFIGURATION:
    Add to your MCP client config:
    {
      "mcpServers": {
        "reminder": {
          "command": "/path/to/mcp-reminder",
          "args": [],
          "env": {"NOTIFIER_STORE_PATH": "/path/to/messages.json"}
        }
      }
    }`)
}
