package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Recent(ctx context.Context) error
	Starred(ctx context.Context) error
	Folders(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	OpenChat(ctx context.Context, id int64) error
	Star(ctx context.Context, id int64) error
	Move(ctx context.Context, id int64, folder string) error
	Delete(ctx context.Context, id int64) error
	Download(ctx context.Context, id int64) error
	Sync(ctx context.Context) error
	ToggleTheme(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the DocuQuery CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               — show available commands
//	  - register           — create an account
//	  - login              — authenticate
//	  - exit | quit        — leave the program
//
//	Logged in:
//	  - help               — show available commands
//	  - list               — list documents
//	  - recent             — show recently opened documents
//	  - starred            — show starred documents
//	  - folders            — show folders and their document counts
//	  - upload <path>      — upload a PDF
//	  - open <id>          — chat with a document
//	  - star <id>          — toggle the star on a document
//	  - move <id> <folder> — move a document to a folder
//	  - delete <id>        — delete a document
//	  - download <id>      — download the document (edited version if any)
//	  - sync               — copy downloaded files to cloud storage
//	  - darkmode           — toggle the dark-mode preference
//	  - whoami             — show the current user
//	  - logout             — log out
//	  - exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dq> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if !a.isLoggedIn() && requiresLogin(cmd) {
			printlnFn("Log in first ('login' or 'register')")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, recent, starred, folders, upload, open, star, move, delete, download, sync, darkmode, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "recent":
			_ = a.Recent(ctx)

		case "starred":
			_ = a.Starred(ctx)

		case "folders":
			_ = a.Folders(ctx)

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path>")
				continue
			}
			_ = a.Upload(ctx, strings.Join(args, " "))

		case "open":
			id, ok := parseID(args, "Usage: open <id>")
			if !ok {
				continue
			}
			_ = a.OpenChat(ctx, id)

		case "star":
			id, ok := parseID(args, "Usage: star <id>")
			if !ok {
				continue
			}
			_ = a.Star(ctx, id)

		case "move":
			id, ok := parseID(args, "Usage: move <id> <folder>")
			if !ok {
				continue
			}
			if len(args) < 2 {
				printlnFn("Usage: move <id> <folder>")
				continue
			}
			_ = a.Move(ctx, id, strings.Join(args[1:], " "))

		case "delete":
			id, ok := parseID(args, "Usage: delete <id>")
			if !ok {
				continue
			}
			_ = a.Delete(ctx, id)

		case "download":
			id, ok := parseID(args, "Usage: download <id>")
			if !ok {
				continue
			}
			_ = a.Download(ctx, id)

		case "sync":
			_ = a.Sync(ctx)

		case "darkmode":
			_ = a.ToggleTheme(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// requiresLogin reports whether cmd works on the user's data and is
// therefore unavailable until a session exists. Unknown commands are not
// gated so they still get the usual "Unknown command" reply.
func requiresLogin(cmd string) bool {
	switch cmd {
	case "l", "list", "recent", "starred", "folders", "upload", "open",
		"star", "move", "delete", "download", "sync", "darkmode":
		return true
	}
	return false
}

// parseID reads the leading numeric document id from args. On a missing or
// malformed id it prints the usage line and reports false.
func parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		printlnFn(usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn(usage)
		return 0, false
	}
	return id, true
}
