// Package cli provides the interactive pwkeeper command-line client.
//
// It wires configuration, the metadata store, the encrypted history and a
// small REPL. Typical flow: generate a password, read its strength and
// estimated crack time, and let it be appended to the encrypted history,
// which prompts for the master password on first use.
//
// Commands:
//   - gen [length] [classes]  generate a password (classes: u, l, d, s)
//   - check                   rate a password typed without echo
//   - history | h             unlock and list the history
//   - delete <n>              delete entry n from the history
//   - lock                    forget the master key
//   - clear                   delete the whole history
//   - theme                   toggle dark mode
//   - exit | quit             leave the program
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
