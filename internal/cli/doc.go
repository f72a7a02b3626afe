// Package cli provides the interactive DocuQuery command-line client.
//
// It wires configuration, the local SQLite cache, the backend API client and
// the stores behind an interactive REPL. Typical flow: restore or prompt for
// a session, fetch the document collection, and execute user commands.
//
// Key features:
//   - Register / Login / Logout with a persisted session
//   - Upload PDFs and browse the collection (list, recent, starred, folders)
//   - Chat with a document, including edited-PDF answers
//   - Download documents and sync downloads to cloud storage
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
