package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by parseEnv.
const EnvPrefix = "PWKEEPER_"

// parseEnv loads an optional .env file from the working directory and then
// overlays cfg with PWKEEPER_* variables. Variables already set in the
// process environment win over the file. Malformed values panic.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	envString("BACKEND", &cfg.Backend)
	envString("DB", &cfg.DatabasePath)
	envString("LOG_LEVEL", &cfg.LogLevel)
	envInt("LENGTH", &cfg.Length)
	envBool("UPPER", &cfg.Upper)
	envBool("LOWER", &cfg.Lower)
	envBool("DIGITS", &cfg.Digits)
	envBool("SYMBOLS", &cfg.Symbols)
	envFloat("GUESSES_PER_SECOND", &cfg.GuessesPerSecond)
	envInt("HISTORY_CAPACITY", &cfg.HistoryCapacity)
	envString("KDF", &cfg.KDF)
	envInt("KDF_ITERATIONS", &cfg.KDFIterations)
	envString("CIPHER", &cfg.Cipher)
}

func envString(name string, dst *string) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		*dst = v
	}
}

func envInt(name string, dst *int) {
	envParse(name, dst, strconv.Atoi)
}

func envBool(name string, dst *bool) {
	envParse(name, dst, strconv.ParseBool)
}

func envFloat(name string, dst *float64) {
	envParse(name, dst, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func envParse[T any](name string, dst *T, parse func(string) (T, error)) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return
	}
	x, err := parse(v)
	if err != nil {
		panic(fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
	}
	*dst = x
}
