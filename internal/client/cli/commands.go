package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/pwkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pwkeeper/internal/common"
	"github.com/dmitrijs2005/pwkeeper/internal/generator"
)

const (
	darkModeEnabled  = "enabled"
	darkModeDisabled = "disabled"
)

// parseGenArgs overlays the configured defaults with "gen" arguments: a
// number sets the length, a word made of u, l, d and s selects exactly those
// classes.
func parseGenArgs(opts generator.Options, args []string) (generator.Options, error) {
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			opts.Length = n
			continue
		}

		opts.Upper, opts.Lower, opts.Digits, opts.Symbols = false, false, false, false
		for _, r := range arg {
			switch r {
			case 'u':
				opts.Upper = true
			case 'l':
				opts.Lower = true
			case 'd':
				opts.Digits = true
			case 's':
				opts.Symbols = true
			default:
				return opts, fmt.Errorf("%w: unknown character class %q (use u, l, d, s)", common.ErrInvalidOptions, r)
			}
		}
	}
	return opts, nil
}

// Generate creates a password, shows its strength and records it in the
// history. A declined master password prompt only skips saving.
func (a *App) Generate(ctx context.Context, args []string) error {
	opts, err := parseGenArgs(a.config.GeneratorOptions(), args)
	if err != nil {
		return err
	}

	password, err := a.generate(opts)
	if err != nil {
		return err
	}

	a.printf("Password: %s\n", password)
	a.showStrength(password)

	if _, err := a.history.Append(ctx, password); err != nil {
		if errors.Is(err, common.ErrPromptCancelled) {
			a.println("Password not saved to history.")
			return nil
		}
		return err
	}
	a.println("Saved to history.")
	return nil
}

// Check rates a password typed without echo. Nothing is stored.
func (a *App) Check(ctx context.Context) error {
	pw, err := readSecret(ctx, "Password to check", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	a.showStrength(string(pw))
	return nil
}

// History unlocks the history if needed and lists it, newest first.
func (a *App) History(ctx context.Context) error {
	entries, err := a.history.Load(ctx)
	if err != nil {
		return err
	}
	a.showHistory(entries)
	return nil
}

// Delete removes the n-th entry (1-based, as listed by History).
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: delete <n>")
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		a.println("Usage: delete <n>")
		return nil
	}

	if err := a.history.Delete(ctx, n-1); err != nil {
		return err
	}
	a.println("Deleted.")
	return nil
}

// Lock forgets the master key until the next prompt.
func (a *App) Lock(ctx context.Context) error {
	a.history.Lock()
	a.println("History locked.")
	return nil
}

// Clear deletes the persisted history after confirmation.
func (a *App) Clear(ctx context.Context) error {
	answer, err := GetSimpleText(ctx, a.reader, "Delete the whole password history? Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		a.println("Aborted.")
		return nil
	}

	if err := a.history.Clear(ctx); err != nil {
		return err
	}
	a.println("History cleared.")
	return nil
}

// ToggleTheme flips dark mode and stores the choice.
func (a *App) ToggleTheme(ctx context.Context) error {
	v := darkModeEnabled
	if a.darkMode {
		v = darkModeDisabled
	}
	if err := a.prefs.Set(ctx, metadata.KeyDarkMode, []byte(v)); err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	a.darkMode = !a.darkMode
	a.printf("Dark mode %s.\n", v)
	return nil
}
