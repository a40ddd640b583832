package cryptox

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/pwkeeper/internal/common"
)

// ByteArray is a byte slice that marshals to a JSON array of numbers
// ([1,2,3]) instead of base64.
type ByteArray []byte

func (b ByteArray) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, 2+len(b)*4)
	out = append(out, '[')
	for i, v := range b {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	}
	return append(out, ']'), nil
}

func (b *ByteArray) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	res := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("byte value %d out of range at index %d", v, i)
		}
		res[i] = byte(v)
	}
	*b = res
	return nil
}

// Blob is the persisted form of an encrypted payload.
type Blob struct {
	Ciphertext ByteArray `json:"ciphertext"`
	Nonce      ByteArray `json:"nonce"`
}

// UnmarshalJSON also accepts "iv" as the nonce field name.
func (b *Blob) UnmarshalJSON(data []byte) error {
	var raw struct {
		Ciphertext ByteArray `json:"ciphertext"`
		Nonce      ByteArray `json:"nonce"`
		IV         ByteArray `json:"iv"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Ciphertext = raw.Ciphertext
	b.Nonce = raw.Nonce
	if b.Nonce == nil {
		b.Nonce = raw.IV
	}
	return nil
}

// EncodeBlob serializes b for storage.
func EncodeBlob(b Blob) ([]byte, error) {
	return json.Marshal(b)
}

// DecodeBlob parses a stored blob. Malformed input is indistinguishable from
// a wrong passphrase and yields common.ErrAuthenticationFailure.
func DecodeBlob(data []byte) (Blob, error) {
	var b Blob
	if err := json.Unmarshal(data, &b); err != nil {
		return Blob{}, common.ErrAuthenticationFailure
	}
	if len(b.Ciphertext) == 0 || len(b.Nonce) == 0 {
		return Blob{}, common.ErrAuthenticationFailure
	}
	return b, nil
}
