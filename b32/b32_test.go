package b32

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKnownGroups(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    []byte
	}{
		{
			name:    "all zero bits",
			encoded: "AAAAAAAA",
			want:    []byte{0, 0, 0, 0, 0},
		},
		{
			name:    "all one bits",
			encoded: "66666666",
			want:    []byte{0xff, 0xff, 0xff, 0xff, 0xff},
		},
		{
			name:    "single byte",
			encoded: "63",
			want:    []byte{0xff},
		},
		{
			name:    "empty input",
			encoded: "",
			want:    []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeKnownGroups(t *testing.T) {
	assert.Equal(t, "AAAAAAAA", Encode([]byte{0, 0, 0, 0, 0}))
	assert.Equal(t, "66666666", Encode([]byte{0xff, 0xff, 0xff, 0xff, 0xff}))
	assert.Equal(t, "63", Encode([]byte{0xff}))
	assert.Equal(t, "AE", Encode([]byte{1}))
	assert.Equal(t, "", Encode(nil))
}

func TestRoundTrip(t *testing.T) {
	for size := 0; size <= 32; size++ {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i*37 + 11)
		}
		encoded := Encode(data)
		decoded, err := Decode(encoded)
		require.NoError(t, err, "size %d", size)
		if !bytes.Equal(data, decoded) {
			t.Errorf("round trip mismatch at size %d: %x != %x", size, data, decoded)
		}
	}
}

func TestEncodedLengths(t *testing.T) {
	// 1..5 raw bytes map to 2, 4, 5, 7, 8 symbols.
	wantSymbols := []int{2, 4, 5, 7, 8}
	for i, want := range wantSymbols {
		data := make([]byte, i+1)
		assert.Len(t, Encode(data), want, "%d bytes", i+1)
	}
}

func TestDecodeInvalidSymbol(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "lowercase letter", encoded: "abcdefgh"},
		{name: "digit outside alphabet", encoded: "AAAAAAA0"},
		{name: "digit seven", encoded: "77"},
		{name: "punctuation", encoded: "AB$DEFGH"},
		{name: "space", encoded: "AAAA AAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.encoded)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not in the encoding alphabet")
		})
	}
}

func TestDecodeInvalidTrailingLength(t *testing.T) {
	for _, n := range []int{1, 3, 6} {
		encoded := "AAAAAAAA"[:n]
		_, err := Decode(encoded)
		require.Error(t, err, "trailing length %d", n)
		assert.Contains(t, err.Error(), "whole bytes")

		_, err = Decode("AAAAAAAA" + encoded)
		require.Error(t, err, "full group plus trailing length %d", n)
	}
}

func TestChar64(t *testing.T) {
	assert.Equal(t, byte('a'), Char64(0))
	assert.Equal(t, byte('$'), Char64(63))
	// Projection wraps modulo the alphabet size.
	assert.Equal(t, byte('a'), Char64(64))
	assert.Equal(t, byte('c'), Char64(130))

	seen := make(map[byte]bool)
	for v := 0; v < 256; v++ {
		seen[Char64(byte(v))] = true
	}
	assert.Len(t, seen, 64, "projection must cover the whole alphabet")
}

func TestAlphabetConstants(t *testing.T) {
	assert.Len(t, Alphabet, 32)
	assert.Len(t, Alphabet64, 64)
	// The orderings are firmware contracts.
	assert.Equal(t, byte('A'), Alphabet[0])
	assert.Equal(t, byte('Z'), Alphabet[25])
	assert.Equal(t, byte('1'), Alphabet[26])
	assert.Equal(t, byte('6'), Alphabet[31])
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", Alphabet64[:26])
	assert.Equal(t, "0123456789!$", Alphabet64[52:])
}
