// Rubberduck: Personal GTD Assistant MCP Server
//
// An MCP server that gives an AI assistant structured access to the
// owner's Todoist tasks, Google Calendar, and conversation journal,
// plus the guided weekly review and the background-work coordination
// protocol.
//
// Usage:
//
//	rubberduck serve    # Start MCP server (stdio transport)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	gtdserver "github.com/HendryAvila/rubberduck/internal/server"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("rubberduck v%s\n", gtdserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := gtdserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	_ = ctx // stdio server manages its own lifecycle

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Rubberduck v%s — Personal GTD Assistant MCP Server

Usage:
  rubberduck serve    Start the MCP server (stdio transport)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "rubberduck": {
        "command": "rubberduck",
        "args": ["serve"]
      }
    }
  }

Environment:
  TODOIST_API_TOKEN              Todoist REST API token
  GOOGLE_SERVICE_ACCOUNT_JSON    Base64 service account key (or _FILE)
  RUBBERDUCK_STATE_DIR           State directory (default ~/.rubberduck)
`, gtdserver.Version)
}
