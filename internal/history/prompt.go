package history

import "context"

// MinPassphraseLength is the shortest accepted master passphrase.
const MinPassphraseLength = 8

// Intent tells the prompter why a passphrase is needed.
type Intent string

const (
	// IntentSet asks for a new passphrase that will protect a fresh history.
	IntentSet Intent = "set"
	// IntentAccess asks for the passphrase of an existing history.
	IntentAccess Intent = "access"
)

// Prompter obtains the master passphrase from the user.
//
// Implementations should enforce MinPassphraseLength and return
// common.ErrPromptCancelled (or a nil passphrase) when the user declines.
// The Store wipes the returned slice after deriving the key.
type Prompter interface {
	PromptPassphrase(ctx context.Context, intent Intent) ([]byte, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, intent Intent) ([]byte, error)

func (f PrompterFunc) PromptPassphrase(ctx context.Context, intent Intent) ([]byte, error) {
	return f(ctx, intent)
}
