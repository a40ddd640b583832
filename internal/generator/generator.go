// Package generator builds random passwords from a configurable set of
// character classes. Characters are drawn with crypto/rand.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/dmitrijs2005/pwkeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

// Character classes.
const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Digits    = "0123456789"
	Symbols   = "!@#$%^&*()_+=-`~[]{}|;':\",./<>?"
)

// Length bounds accepted by Generate.
const (
	MinLength = 8
	MaxLength = 25
)

var validate = validator.New()

// Options selects the password length and the enabled character classes.
type Options struct {
	Length  int  `json:"length" validate:"min=8,max=25"`
	Upper   bool `json:"upper"`
	Lower   bool `json:"lower"`
	Digits  bool `json:"digits"`
	Symbols bool `json:"symbols"`
}

// Alphabet returns the concatenation of the enabled classes in a fixed
// order: upper, lower, digits, symbols.
func (o Options) Alphabet() string {
	var sb strings.Builder
	if o.Upper {
		sb.WriteString(Uppercase)
	}
	if o.Lower {
		sb.WriteString(Lowercase)
	}
	if o.Digits {
		sb.WriteString(Digits)
	}
	if o.Symbols {
		sb.WriteString(Symbols)
	}
	return sb.String()
}

// Validate reports ErrInvalidOptions when no class is enabled or the length
// is outside [MinLength, MaxLength].
func (o Options) Validate() error {
	if !o.Upper && !o.Lower && !o.Digits && !o.Symbols {
		return fmt.Errorf("%w: select at least one character type", common.ErrInvalidOptions)
	}
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: length must be between %d and %d", common.ErrInvalidOptions, MinLength, MaxLength)
		}
		return fmt.Errorf("%w: %w", common.ErrInvalidOptions, err)
	}
	return nil
}

// Generator draws passwords from a random source.
type Generator struct {
	rand io.Reader
}

// New returns a Generator reading from r. A nil r means crypto/rand.Reader.
func New(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Generate returns a password of opts.Length characters, each picked
// uniformly from opts.Alphabet(). Invalid options yield "" and
// common.ErrInvalidOptions.
func (g *Generator) Generate(opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	alphabet := opts.Alphabet()
	size := big.NewInt(int64(len(alphabet)))

	var sb strings.Builder
	sb.Grow(opts.Length)

	for i := 0; i < opts.Length; i++ {
		n, err := rand.Int(g.rand, size)
		if err != nil {
			return "", fmt.Errorf("read random index: %w", err)
		}
		sb.WriteByte(alphabet[n.Int64()])
	}

	return sb.String(), nil
}

// Generate is a convenience wrapper around a crypto/rand backed Generator.
func Generate(opts Options) (string, error) {
	return New(nil).Generate(opts)
}
