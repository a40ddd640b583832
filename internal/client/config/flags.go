package config

import (
	"flag"

	"github.com/dmitrijs2005/pwkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-b string   storage backend (sqlite, bolt)
//	-d string   history database path
//	-l int      default generated password length
//	-g float    attacker guesses per second for the crack-time estimate
//	-v string   log level (debug, info, warn, error)
//
// Only these flags are looked at; everything else in args is ignored.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-b", "-d", "-l", "-g", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend (sqlite, bolt)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "history database path")
	fs.IntVar(&cfg.Length, "l", cfg.Length, "default password length")
	fs.Float64Var(&cfg.GuessesPerSecond, "g", cfg.GuessesPerSecond, "attacker guesses per second")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
