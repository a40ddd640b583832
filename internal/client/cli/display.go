package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pwkeeper/internal/history"
	"github.com/dmitrijs2005/pwkeeper/internal/strength"
)

const barWidth = 20

// ANSI colours used for the strength bar in dark mode.
const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiReset  = "\x1b[0m"
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// strengthBar renders r as a fixed-width bar followed by its percentage.
// With colour the filled part is red, yellow or green by score.
func strengthBar(r strength.Result, colour bool) string {
	filled := r.Percent() * barWidth / 100
	bar := strings.Repeat("#", filled)
	if colour && filled > 0 {
		c := ansiGreen
		switch {
		case r.Score <= 2:
			c = ansiRed
		case r.Score == 3:
			c = ansiYellow
		}
		bar = c + bar + ansiReset
	}
	return fmt.Sprintf("[%s%s] %3d%%", bar, strings.Repeat("-", barWidth-filled), r.Percent())
}

// showStrength prints the score and the brute-force estimate for password.
func (a *App) showStrength(password string) {
	r := strength.Score(password)
	a.printf("Strength: %s %s\n", strengthBar(r, a.darkMode), r.Feedback)
	a.printf("Time to crack: %s\n", a.estimator.BruteForceTime(password))
}

func (a *App) showHistory(entries []history.Entry) {
	if len(entries) == 0 {
		a.println("No passwords in history.")
		return
	}
	for i, e := range entries {
		a.printf("%2d. %s  %s\n", i+1, e.Date, e.Password)
	}
}
