package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if u := a.auth.CurrentUser(); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to DocuQuery CLI (type 'help' for commands)")

	if a.isLoggedIn() {
		if u := a.auth.CurrentUser(); u != nil {
			fmt.Printf("Restored session for %s\n", u.Email)
		}
		a.refreshDocuments(ctx)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// refreshDocuments re-fetches the collection, logging failures instead of
// surfacing them; the cached copy stays usable either way.
func (a *App) refreshDocuments(ctx context.Context) {
	if err := a.docs.FetchUserDocuments(ctx); err != nil {
		a.log.Warn(ctx, "could not refresh documents", "err", err)
	}
}
