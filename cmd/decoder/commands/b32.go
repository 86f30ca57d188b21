package commands

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/samber/oops"

	"github.com/go-fritz/go-decoder/b32"
)

// RunB32Dec decodes base32 data from stdin to stdout, eight symbols at a
// time. Whitespace is skipped, so line-wrapped input is fine. A trailing
// group is decoded after end of input; its length has to be one of the
// valid final-block sizes.
func RunB32Dec(hexOutput bool) error {
	in := bufio.NewReader(os.Stdin)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var group [8]byte
	used := 0
	flush := func() error {
		data, err := b32.Decode(string(group[:used]))
		if err != nil {
			return err
		}
		used = 0
		return writeDecoded(out, data, hexOutput)
	}

	for {
		c, err := in.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return oops.
				Code("READ_FAILED").
				In("commands").
				Wrapf(err, "failed to read from stdin")
		}
		if unicode.IsSpace(rune(c)) {
			continue
		}
		group[used] = c
		used++
		if used == len(group) {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if used > 0 {
		return flush()
	}
	return nil
}

func writeDecoded(out *bufio.Writer, data []byte, hexOutput bool) error {
	var err error
	if hexOutput {
		_, err = out.WriteString(hex.EncodeToString(data))
	} else {
		_, err = out.Write(data)
	}
	if err != nil {
		return oops.
			Code("WRITE_FAILED").
			In("commands").
			Wrapf(err, "failed to write to stdout")
	}
	return nil
}

// RunB32Enc encodes stdin as base32 on stdout. With hexInput the input is
// hexadecimal text (whitespace tolerated) instead of raw bytes.
func RunB32Enc(hexInput bool) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return oops.
			Code("READ_FAILED").
			In("commands").
			Wrapf(err, "failed to read from stdin")
	}

	if hexInput {
		text := strings.Join(strings.Fields(string(data)), "")
		if data, err = hex.DecodeString(text); err != nil {
			return oops.
				Code("INVALID_SYMBOL").
				In("commands").
				Wrapf(err, "stdin is not valid hexadecimal text")
		}
	}

	fmt.Println(b32.Encode(data))
	return nil
}
