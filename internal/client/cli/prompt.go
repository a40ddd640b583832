package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/pwkeeper/internal/common"
	"github.com/dmitrijs2005/pwkeeper/internal/history"
)

// maxPromptAttempts bounds how often a too short or mismatched passphrase
// is asked for again before giving up.
const maxPromptAttempts = 3

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// terminalPrompter asks for the master password on the terminal. An empty
// answer cancels the prompt.
type terminalPrompter struct {
	out io.Writer
}

var _ history.Prompter = (*terminalPrompter)(nil)

func (p *terminalPrompter) PromptPassphrase(ctx context.Context, intent history.Intent) ([]byte, error) {
	if intent == history.IntentSet {
		fmt.Fprintf(p.out, "Set a master password to encrypt your history (at least %d characters, empty to skip).\n", history.MinPassphraseLength)
	} else {
		fmt.Fprintln(p.out, "Enter the master password to access your history (empty to skip).")
	}

	for range maxPromptAttempts {
		pw, err := p.read(ctx, "Master password")
		if err != nil {
			return nil, err
		}
		if len(pw) == 0 {
			return nil, common.ErrPromptCancelled
		}
		if len(pw) < history.MinPassphraseLength {
			common.WipeByteArray(pw)
			fmt.Fprintf(p.out, "Password must be at least %d characters long.\n", history.MinPassphraseLength)
			continue
		}
		if intent != history.IntentSet {
			return pw, nil
		}

		again, err := p.read(ctx, "Repeat master password")
		if err != nil {
			common.WipeByteArray(pw)
			return nil, err
		}
		same := bytes.Equal(pw, again)
		common.WipeByteArray(again)
		if same {
			return pw, nil
		}
		common.WipeByteArray(pw)
		fmt.Fprintln(p.out, "Passwords do not match.")
	}
	return nil, common.ErrWeakPassphrase
}

func (p *terminalPrompter) read(ctx context.Context, prompt string) ([]byte, error) {
	return readSecret(ctx, prompt, p.out)
}
