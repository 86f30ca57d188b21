// Package b32 implements the base32 variant used by FRITZ!OS to encode
// secret values inside configuration exports. The alphabet is a firmware
// constant and is not compatible with RFC 4648; any change to its ordering
// breaks compatibility with existing exports.
package b32

import (
	"strings"

	"github.com/samber/oops"
)

// Alphabet is the 32-symbol encoding alphabet used for secret tokens.
// Firmware constant, do not reorder.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ123456"

// Alphabet64 is the 64-symbol alphabet used by the certificate password
// derivation. Firmware constant, do not reorder.
const Alphabet64 = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!$"

// finalBytes maps the symbol count of a trailing group to the number of
// decoded bytes it carries. Zero marks an invalid trailing length.
var finalBytes = [9]int{0: 0, 2: 1, 4: 2, 5: 3, 7: 4, 8: 5}

// validFinal reports whether a trailing group of n symbols (1..8) decodes
// to a whole number of bytes.
func validFinal(n int) bool {
	return n == 0 || (n <= 8 && finalBytes[n] != 0)
}

// symbolValues is the reverse lookup table for Alphabet. Entries outside
// the alphabet are -1.
var symbolValues [256]int8

func init() {
	for i := range symbolValues {
		symbolValues[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		symbolValues[Alphabet[i]] = int8(i)
	}
}

// Char64 projects a raw byte value onto the 64-symbol alphabet. The
// projection is one-way; no inverse exists or is needed.
func Char64(v byte) byte {
	return Alphabet64[v%64]
}

// Decode converts a string of alphabet symbols back to the raw bytes it
// encodes. Input is processed in groups of 8 symbols yielding 5 bytes; a
// trailing group must have 2, 4, 5 or 7 symbols (1 to 4 bytes).
func Decode(encoded string) ([]byte, error) {
	if tail := len(encoded) % 8; !validFinal(tail) {
		return nil, oops.
			Code("INVALID_LENGTH").
			In("b32").
			With("length", len(encoded)).
			With("trailing_symbols", tail).
			Errorf("trailing group of %d symbols does not decode to whole bytes", tail)
	}

	out := make([]byte, 0, len(encoded)/8*5+4)
	var acc uint64
	var bits int
	for i := 0; i < len(encoded); i++ {
		v := symbolValues[encoded[i]]
		if v < 0 {
			return nil, oops.
				Code("INVALID_SYMBOL").
				In("b32").
				With("position", i).
				With("symbol", string(encoded[i])).
				Errorf("symbol %q is not in the encoding alphabet", encoded[i])
		}
		acc = acc<<5 | uint64(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>bits))
		}
	}
	return out, nil
}

// Encode is the inverse of Decode. Byte groups of 5 become 8 symbols; a
// trailing group of 1 to 4 bytes becomes 2, 4, 5 or 7 symbols. No padding
// characters are emitted.
func Encode(data []byte) string {
	var b strings.Builder
	b.Grow((len(data)*8 + 4) / 5)
	var acc uint64
	var bits int
	for _, c := range data {
		acc = acc<<8 | uint64(c)
		bits += 8
		for bits >= 5 {
			bits -= 5
			b.WriteByte(Alphabet[acc>>bits&0x1f])
		}
	}
	if bits > 0 {
		b.WriteByte(Alphabet[acc<<(5-bits)&0x1f])
	}
	return b.String()
}
