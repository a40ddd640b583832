package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/pwkeeper/internal/common"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// saveTerminal records the stdin terminal mode and returns a function that
// puts it back. It is a no-op when stdin is not a terminal.
var saveTerminal = func() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}
	state, err := term.GetState(fd)
	if err != nil {
		return func() {}
	}
	return func() { _ = term.Restore(fd, state) }
}

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(ctx context.Context, reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLineContext(ctx, reader)
}

// readLineContext is readLine that gives up once ctx is done. The read
// left behind keeps the reader busy, so callers stop using it after ctx.Err.
func readLineContext(ctx context.Context, reader *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := readLine(reader)
		ch <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// readLine reads one trimmed line. A final line without a newline is
// returned as is; io.EOF is only reported when nothing was read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a secret from the terminal
// without echo. A newline is printed after the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// readSecret runs getPassword in a goroutine so that a cancelled context
// ends the read. On cancellation the terminal mode saved before the read is
// restored, since the abandoned read still has echo switched off.
func readSecret(ctx context.Context, prompt string, w io.Writer) ([]byte, error) {
	type result struct {
		pw  []byte
		err error
	}
	get := getPassword
	restore := saveTerminal()
	ch := make(chan result, 1)
	go func() {
		pw, err := get(prompt, w)
		ch <- result{pw, err}
	}()

	select {
	case <-ctx.Done():
		restore()
		return nil, common.ErrPromptCancelled
	case r := <-ch:
		return r.pw, r.err
	}
}
