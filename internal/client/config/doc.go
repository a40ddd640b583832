// Package config loads runtime configuration for the pwkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables prefixed with PWKEEPER_, optionally from a .env
//     file in the working directory.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-b string   storage backend: sqlite (default) or bolt
//	-d string   history database path
//	-l int      default password length
//	-g float    attacker guesses per second
//	-v string   log level
//
// # JSON schema
//
// Every key is optional:
//
//	{
//	  "backend": "sqlite",
//	  "database_path": "/home/me/.config/pwkeeper/history.db",
//	  "log_level": "info",
//	  "length": 16,
//	  "upper": true, "lower": true, "digits": true, "symbols": false,
//	  "guesses_per_second": 1e10,
//	  "history_capacity": 10,
//	  "kdf": "pbkdf2-sha256", "kdf_iterations": 100000,
//	  "cipher": "aes-256-gcm"
//	}
//
// # Environment
//
//	PWKEEPER_BACKEND, PWKEEPER_DB, PWKEEPER_LOG_LEVEL, PWKEEPER_LENGTH, PWKEEPER_UPPER,
//	PWKEEPER_LOWER, PWKEEPER_DIGITS, PWKEEPER_SYMBOLS,
//	PWKEEPER_GUESSES_PER_SECOND, PWKEEPER_HISTORY_CAPACITY, PWKEEPER_KDF,
//	PWKEEPER_KDF_ITERATIONS, PWKEEPER_CIPHER
package config
