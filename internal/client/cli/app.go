package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/pwkeeper/internal/client/config"
	"github.com/dmitrijs2005/pwkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pwkeeper/internal/generator"
	"github.com/dmitrijs2005/pwkeeper/internal/history"
	"github.com/dmitrijs2005/pwkeeper/internal/logging"
	"github.com/dmitrijs2005/pwkeeper/internal/strength"
)

// historyStore is the part of *history.Store the App drives.
type historyStore interface {
	State(ctx context.Context) (history.State, error)
	Append(ctx context.Context, password string) (history.Entry, error)
	Load(ctx context.Context) ([]history.Entry, error)
	Delete(ctx context.Context, index int) error
	Lock()
	Clear(ctx context.Context) error
}

type App struct {
	config    *config.Config
	history   historyStore
	prefs     metadata.Repository
	estimator *strength.Estimator
	generate  func(generator.Options) (string, error)
	log       logging.Logger
	reader    *bufio.Reader
	out       io.Writer
	darkMode  bool
}

// NewApp builds an App that keeps its history and preferences in repo and
// talks to the user on stdin/stdout.
func NewApp(c *config.Config, repo metadata.Store, log logging.Logger) (*App, error) {
	hs, err := history.New(repo, &terminalPrompter{out: os.Stdout}, history.Options{
		Capacity: c.HistoryCapacity,
		Scheme:   c.Scheme(),
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	return newApp(c, hs, repo, log, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, hs historyStore, prefs metadata.Repository, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:    c,
		history:   hs,
		prefs:     prefs,
		estimator: strength.NewEstimator(c.GuessesPerSecond),
		generate:  generator.Generate,
		log:       log,
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

// Run loads preferences and serves the REPL until the user exits or ctx is
// cancelled. The master key is forgotten on return.
func (a *App) Run(ctx context.Context) {
	defer a.history.Lock()

	a.loadTheme(ctx)
	a.println("Welcome to pwkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) getStatus() string {
	st, err := a.history.State(context.Background())
	if err != nil {
		return "?"
	}
	return st.String()
}

func (a *App) loadTheme(ctx context.Context) {
	v, err := a.prefs.Get(ctx, metadata.KeyDarkMode)
	if err != nil {
		a.log.Warn(ctx, "could not read theme preference", "error", err)
		return
	}
	a.darkMode = string(v) == darkModeEnabled
}
