package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/samber/oops"

	decoder "github.com/go-fritz/go-decoder"
	"github.com/go-fritz/go-decoder/envstore"
)

// loadStore opens the device environment store, honoring an alternate
// file path when one was configured.
func loadStore(envFile string) (*envstore.Store, error) {
	if envFile != "" {
		return envstore.Load(envFile)
	}
	return envstore.Load()
}

// deriveKey resolves the document cipher key for the given positional
// properties. The local environment store is consulted only in the
// zero-property mode.
func deriveKey(props []string, envFile string) (string, error) {
	var source decoder.DeviceSource
	if len(props) == 0 {
		store, err := loadStore(envFile)
		if err != nil {
			return "", err
		}
		source = store
	}
	return decoder.DeriveDeviceKey(props, source)
}

// readInput reads the whole input document. An empty path or "-" selects
// stdin.
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, oops.
				Code("READ_FAILED").
				In("commands").
				Wrapf(err, "failed to read document from stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.
			Code("READ_FAILED").
			In("commands").
			With("path", path).
			Wrapf(err, "failed to read document")
	}
	return data, nil
}

// writeOutput writes the rewritten document. File output goes through a
// temporary file in the target directory and a rename, registered with
// the cleanup manager so an interrupted run leaves no partial output
// behind.
func writeOutput(cm *decoder.CleanupManager, path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return oops.
				Code("WRITE_FAILED").
				In("commands").
				Wrapf(err, "failed to write document to stdout")
		}
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".decoder-*")
	if err != nil {
		return oops.
			Code("WRITE_FAILED").
			In("commands").
			With("path", path).
			Wrapf(err, "failed to create temporary output file")
	}
	tmpName := tmp.Name()
	cm.Register("output temp file", func() {
		os.Remove(tmpName)
	})

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return oops.
			Code("WRITE_FAILED").
			In("commands").
			With("path", tmpName).
			Wrapf(err, "failed to write temporary output file")
	}
	if err := tmp.Close(); err != nil {
		return oops.
			Code("WRITE_FAILED").
			In("commands").
			With("path", tmpName).
			Wrapf(err, "failed to close temporary output file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return oops.
			Code("WRITE_FAILED").
			In("commands").
			With("path", path).
			Wrapf(err, "failed to move output into place")
	}
	cm.Unregister("output temp file")
	return nil
}
