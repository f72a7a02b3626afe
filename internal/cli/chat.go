package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"docuquery/internal/common"
	"docuquery/internal/models"
	"docuquery/internal/store"
)

func printMessage(m *models.Message) {
	who := " ai"
	if m.IsUser {
		who = "you"
	}
	line := fmt.Sprintf("%s> %s", who, m.Content)
	if m.Failed {
		line += " [failed]"
	}
	if m.EditedPDFURL != "" {
		line += fmt.Sprintf(" (edited pdf: %s)", m.EditedPDFURL)
	}
	printlnFn(line)
}

// OpenChat enters the chat loop for one document. The history is printed
// first, then each line typed is sent as a question and the answer printed
// as it arrives. 'back' returns to the main prompt.
func (a *App) OpenChat(ctx context.Context, id int64) error {
	doc, err := a.docs.GetByID(id)
	if err != nil {
		printlnFn("Cannot open chat:", err.Error())
		return err
	}

	session := store.NewChatSession(a.api, a.db.Messages, a.docs, a.log, doc)
	if err := session.Load(ctx); err != nil {
		printlnFn("Could not load chat history:", err.Error())
	}

	for _, m := range session.Messages() {
		printMessage(&m)
	}
	printlnFn(fmt.Sprintf("Chatting with %s (type 'back' to leave)", doc.Name))

	for {
		question, err := getSimpleText(a.reader, doc.Name, os.Stdout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if question == "back" || question == "exit" || question == "quit" {
			return nil
		}
		if question == "" {
			continue
		}

		if err := session.Send(ctx, question); err != nil {
			if errors.Is(err, common.ErrExchangePending) {
				printlnFn("Still thinking about the previous question...")
			} else {
				printlnFn("Cannot send:", err.Error())
			}
			continue
		}

		msgs := session.Messages()
		if len(msgs) > 0 {
			printMessage(&msgs[len(msgs)-1])
		}
	}
}
