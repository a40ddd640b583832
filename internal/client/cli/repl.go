package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pwkeeper/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Generate(ctx context.Context, args []string) error
	Check(ctx context.Context) error
	History(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Lock(ctx context.Context) error
	Clear(ctx context.Context) error
	ToggleTheme(ctx context.Context) error
}

const helpText = `Available commands:
  gen [length] [classes]  generate a password; classes is any of u, l, d, s
  check                   rate a password
  history | h             show the password history
  delete <n>              delete entry n from the history
  lock                    forget the master password
  clear                   delete the whole history
  theme                   toggle dark mode
  exit | quit             leave the program`

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, on "exit" or "quit", or as soon as ctx is cancelled,
// even while waiting for input.
//
// Errors returned by handlers are turned into a short message by
// errorMessage; a cancelled prompt prints nothing.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("pwkeeper (%s)> ", statusFn()))
		line, err := readLineContext(ctx, reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
			continue

		case "gen", "g":
			err = a.Generate(ctx, args)

		case "check":
			err = a.Check(ctx)

		case "history", "h":
			err = a.History(ctx)

		case "delete":
			err = a.Delete(ctx, args)

		case "lock":
			err = a.Lock(ctx)

		case "clear":
			err = a.Clear(ctx)

		case "theme":
			err = a.ToggleTheme(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if msg := errorMessage(err); msg != "" {
			printlnFn(msg)
		}
	}
}

// errorMessage maps a handler error to what the user is told.
func errorMessage(err error) string {
	switch {
	case err == nil, errors.Is(err, common.ErrPromptCancelled):
		return ""
	case errors.Is(err, common.ErrAuthenticationFailure):
		return "Incorrect master password."
	case errors.Is(err, common.ErrWeakPassphrase):
		return fmt.Sprintf("Master password not accepted: %v.", err)
	case errors.Is(err, common.ErrLocked):
		return "History is locked; run 'history' to unlock it first."
	case errors.Is(err, common.ErrIndexOutOfRange):
		return "No such history entry."
	case errors.Is(err, common.ErrPersistence):
		return "Failed to save password history. Please try again."
	case errors.Is(err, common.ErrInvalidOptions):
		return err.Error()
	}
	return "Error: " + err.Error()
}
