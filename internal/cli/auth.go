package cli

import (
	"context"
	"fmt"
	"os"

	"docuquery/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, an email and a password and creates a new
// account. A successful signup is also a login: the session is persisted
// and the document list is fetched right away.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Signup(ctx, name, email, string(password)); err != nil {
		printlnFn("Signup failed:", err.Error())
		return err
	}

	printlnFn("Success!")
	a.refreshDocuments(ctx)
	return nil
}

// Login prompts for credentials and authenticates against the backend.
// On success the session token is persisted locally, so the next program
// start restores the session without asking again.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	if u := a.auth.CurrentUser(); u != nil {
		printlnFn(fmt.Sprintf("Welcome, %s!", u.Name))
	}
	a.refreshDocuments(ctx)
	return nil
}

// Logout clears the persisted session. Safe to call when not logged in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Logged out")
	return nil
}

// WhoAmI prints the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.auth.CurrentUser()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>", u.Name, u.Email))
	return nil
}
