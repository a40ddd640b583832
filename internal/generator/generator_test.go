package generator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/pwkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlyFrom(s, alphabet string) bool {
	for _, r := range s {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"upper only", Options{Length: 8, Upper: true}},
		{"lower only", Options{Length: 9, Lower: true}},
		{"digits only", Options{Length: 10, Digits: true}},
		{"symbols only", Options{Length: 11, Symbols: true}},
		{"letters and digits", Options{Length: 12, Upper: true, Lower: true, Digits: true}},
		{"everything", Options{Length: 25, Upper: true, Lower: true, Digits: true, Symbols: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				pw, err := Generate(tc.opts)
				require.NoError(t, err)
				require.Len(t, pw, tc.opts.Length)
				require.True(t, onlyFrom(pw, tc.opts.Alphabet()), "unexpected char in %q", pw)
			}
		})
	}
}

func TestGenerate_NoClassSelected(t *testing.T) {
	pw, err := Generate(Options{Length: 12})
	require.ErrorIs(t, err, common.ErrInvalidOptions)
	assert.Empty(t, pw)
}

func TestGenerate_LengthOutOfRange(t *testing.T) {
	for _, n := range []int{0, 7, 26, 100} {
		pw, err := Generate(Options{Length: n, Lower: true})
		require.ErrorIs(t, err, common.ErrInvalidOptions, "length %d", n)
		assert.Empty(t, pw)
	}
}

func TestGenerate_Bounds(t *testing.T) {
	for _, n := range []int{MinLength, MaxLength} {
		pw, err := Generate(Options{Length: n, Lower: true})
		require.NoError(t, err)
		assert.Len(t, pw, n)
	}
}

func TestGenerator_DeterministicSource(t *testing.T) {
	// A zero stream always yields index 0, the first letter of the alphabet.
	g := New(bytes.NewReader(make([]byte, 1024)))
	pw, err := g.Generate(Options{Length: 8, Digits: true})
	require.NoError(t, err)
	assert.Equal(t, "00000000", pw)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerator_RandomSourceError(t *testing.T) {
	g := New(failingReader{})
	pw, err := g.Generate(Options{Length: 8, Lower: true})
	require.Error(t, err)
	assert.Empty(t, pw)
	assert.NotErrorIs(t, err, common.ErrInvalidOptions)
}

func TestOptions_Alphabet(t *testing.T) {
	o := Options{Upper: true, Lower: true, Digits: true, Symbols: true}
	assert.Equal(t, Uppercase+Lowercase+Digits+Symbols, o.Alphabet())
	assert.Len(t, Symbols, 32)
	assert.Empty(t, Options{}.Alphabet())
}

func TestGenerate_ScenarioLettersAndDigits(t *testing.T) {
	pw, err := Generate(Options{Length: 12, Upper: true, Lower: true, Digits: true})
	require.NoError(t, err)
	require.Len(t, pw, 12)
	require.True(t, onlyFrom(pw, Uppercase+Lowercase+Digits))
}
