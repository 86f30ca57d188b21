// Package envstore reads the router's bootloader environment, the
// key/value store holding the hardware identifiers that seed key
// derivation. The store is a plain text file with one "name value" pair
// per line; values are queried by exact name.
package envstore

import (
	"bufio"
	"os"
	"strings"

	"github.com/samber/oops"
)

// DefaultPaths are the candidate store locations, tried in order. The
// procfs path is the live environment; /var/env is the copy some models
// keep after boot.
var DefaultPaths = []string{
	"/proc/sys/urlader/environment",
	"/var/env",
}

// Names of the environment entries consumed by key derivation.
const (
	NameSerial    = "SerialNumber"
	NameMAC       = "maca"
	NameWLANKey   = "wlan_key"
	NameTR069Pass = "tr069_passphrase"
)

// DeviceProperties holds the identifying values key derivation consumes,
// in derivation order. TR069Passphrase may be empty; older devices have
// no such entry.
type DeviceProperties struct {
	Serial          string
	MAC             string
	WLANKey         string
	TR069Passphrase string
}

// Store is an immutable snapshot of one environment file.
type Store struct {
	path   string
	values map[string]string
}

// Load reads the first readable path into a Store. With no arguments the
// default locations are tried. It fails with code NO_LOCAL_DEVICE when
// none of the candidates can be read.
func Load(paths ...string) (*Store, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	var firstErr error
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		store, err := parse(f, path)
		f.Close()
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, oops.
		Code("NO_LOCAL_DEVICE").
		In("envstore").
		With("paths", paths).
		Wrapf(firstErr, "no readable environment store among %d candidate paths", len(paths))
}

func parse(f *os.File, path string) (*Store, error) {
	store := &Store{path: path, values: make(map[string]string)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		cut := strings.IndexAny(line, " \t")
		if cut <= 0 {
			continue
		}
		name := line[:cut]
		value := strings.TrimSpace(line[cut:])
		store.values[name] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, oops.
			Code("NO_LOCAL_DEVICE").
			In("envstore").
			With("path", path).
			Wrapf(err, "failed to read environment store")
	}
	return store, nil
}

// Path returns the location the store was loaded from.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under name.
func (s *Store) Get(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// DeviceProperties collects the derivation inputs from the store. Serial
// number, MAC and WLAN key are required; their absence means this is not
// a device whose exports can be decoded locally.
func (s *Store) DeviceProperties() (DeviceProperties, error) {
	var props DeviceProperties
	var missing []string
	var ok bool

	if props.Serial, ok = s.values[NameSerial]; !ok {
		missing = append(missing, NameSerial)
	}
	if props.MAC, ok = s.values[NameMAC]; !ok {
		missing = append(missing, NameMAC)
	}
	if props.WLANKey, ok = s.values[NameWLANKey]; !ok {
		missing = append(missing, NameWLANKey)
	}
	// Optional; empty on devices without TR-069 provisioning.
	props.TR069Passphrase = s.values[NameTR069Pass]

	if len(missing) > 0 {
		return DeviceProperties{}, oops.
			Code("NO_LOCAL_DEVICE").
			In("envstore").
			With("path", s.path).
			With("missing", missing).
			Errorf("environment store at %s lacks required entries: %s", s.path, strings.Join(missing, ", "))
	}
	return props, nil
}
