package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pwkeeper/internal/flagx"
)

// JsonConfig mirrors the JSON file. Pointer fields distinguish "absent"
// from a zero value so that a file can switch a character class off.
type JsonConfig struct {
	Backend          *string  `json:"backend"`
	DatabasePath     *string  `json:"database_path"`
	LogLevel         *string  `json:"log_level"`
	Length           *int     `json:"length"`
	Upper            *bool    `json:"upper"`
	Lower            *bool    `json:"lower"`
	Digits           *bool    `json:"digits"`
	Symbols          *bool    `json:"symbols"`
	GuessesPerSecond *float64 `json:"guesses_per_second"`
	HistoryCapacity  *int     `json:"history_capacity"`
	KDF              *string  `json:"kdf"`
	KDFIterations    *int     `json:"kdf_iterations"`
	Cipher           *string  `json:"cipher"`
}

// parseJson overlays cfg with the file named by -c or -config, if any.
// Read and unmarshal errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.Backend, jc.Backend)
	set(&cfg.DatabasePath, jc.DatabasePath)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.Length, jc.Length)
	set(&cfg.Upper, jc.Upper)
	set(&cfg.Lower, jc.Lower)
	set(&cfg.Digits, jc.Digits)
	set(&cfg.Symbols, jc.Symbols)
	set(&cfg.GuessesPerSecond, jc.GuessesPerSecond)
	set(&cfg.HistoryCapacity, jc.HistoryCapacity)
	set(&cfg.KDF, jc.KDF)
	set(&cfg.KDFIterations, jc.KDFIterations)
	set(&cfg.Cipher, jc.Cipher)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
