package commands

import (
	decoder "github.com/go-fritz/go-decoder"
)

// RunDecodeSecrets derives the device key, rewrites the input document
// with every decryptable token replaced by its plaintext, and writes the
// result. Tokens that fail to decode or decrypt stay verbatim; they never
// abort the run.
func RunDecodeSecrets(props []string, envFile, inPath, outPath string, raw bool) error {
	cm := decoder.NewCleanupManager()
	cm.TrapSignals(1)
	defer cm.Run()

	key, err := deriveKey(props, envFile)
	if err != nil {
		return err
	}

	config := decoder.NewEngineConfig(key)
	if raw {
		config = config.WithoutEscaping()
	}
	engine, err := decoder.NewEngine(config)
	if err != nil {
		return err
	}
	defer engine.Close()

	document, err := readInput(inPath)
	if err != nil {
		return err
	}

	rewritten, err := engine.Rewrite(document)
	if err != nil {
		return err
	}
	return writeOutput(cm, outPath, rewritten)
}
