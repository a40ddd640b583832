package config

import (
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/pwkeeper/internal/client/storage"
	"github.com/dmitrijs2005/pwkeeper/internal/cryptox"
	"github.com/dmitrijs2005/pwkeeper/internal/filex"
	"github.com/dmitrijs2005/pwkeeper/internal/generator"
	"github.com/dmitrijs2005/pwkeeper/internal/history"
	"github.com/dmitrijs2005/pwkeeper/internal/strength"
)

// DatabaseFile is the file name of the history database inside the data dir.
const DatabaseFile = "history.db"

// Config holds runtime settings for the pwkeeper CLI.
//
// Backend is storage.BackendSQLite or storage.BackendBolt; DatabasePath is
// the file either backend uses.
// Length and the four class switches are the defaults for the gen command.
// KDF, KDFIterations and Cipher only apply when a new history is created.
type Config struct {
	Backend          string
	DatabasePath     string
	LogLevel         string
	Length           int
	Upper            bool
	Lower            bool
	Digits           bool
	Symbols          bool
	GuessesPerSecond float64
	HistoryCapacity  int
	KDF              string
	KDFIterations    int
	Cipher           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	scheme := cryptox.DefaultScheme()

	c.Backend = storage.BackendSQLite
	c.DatabasePath = filepath.Join(filex.DataDir(), DatabaseFile)
	c.LogLevel = "warn"
	c.Length = 12
	c.Upper = true
	c.Lower = true
	c.Digits = true
	c.Symbols = true
	c.GuessesPerSecond = strength.DefaultGuessesPerSecond
	c.HistoryCapacity = history.DefaultCapacity
	c.KDF = scheme.KDF
	c.KDFIterations = scheme.Iterations
	c.Cipher = scheme.Cipher
}

// GeneratorOptions returns the configured defaults for generator.Generate.
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		Length:  c.Length,
		Upper:   c.Upper,
		Lower:   c.Lower,
		Digits:  c.Digits,
		Symbols: c.Symbols,
	}
}

// Scheme returns the scheme used to protect a newly created history.
func (c *Config) Scheme() cryptox.Scheme {
	s := cryptox.Scheme{KDF: c.KDF, Cipher: c.Cipher}
	if c.KDF == cryptox.KDFPBKDF2 {
		s.Iterations = c.KDFIterations
	}
	return s
}

// LoadConfig constructs a Config from os.Args and the environment.
// Later sources take precedence: defaults, JSON file, environment, flags.
// It panics on an unreadable config file or a malformed value.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
