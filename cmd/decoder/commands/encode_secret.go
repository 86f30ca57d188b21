package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/oops"

	decoder "github.com/go-fritz/go-decoder"
)

// RunEncodeSecret encrypts one value under the device key and prints the
// resulting obfuscated token. The value comes from the --value flag when
// set (even if empty), otherwise from stdin with a single trailing
// newline stripped.
func RunEncodeSecret(props []string, envFile, value string, valueSet bool) error {
	if !valueSet {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return oops.
				Code("READ_FAILED").
				In("commands").
				Wrapf(err, "failed to read value from stdin")
		}
		value = strings.TrimSuffix(string(data), "\n")
	}

	key, err := deriveKey(props, envFile)
	if err != nil {
		return err
	}
	engine, err := decoder.NewEngine(decoder.NewEngineConfig(key))
	if err != nil {
		return err
	}
	defer engine.Close()

	token, err := engine.EncodeSecret([]byte(value))
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
