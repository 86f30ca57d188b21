// Package decoder recovers secret values that FRITZ!OS embeds in
// configuration exports in obfuscated, tokenized form. It derives the
// device-specific cipher keys from hardware identifiers and rewrites
// export documents with the recovered plaintext spliced in.
package decoder

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"regexp"
	"strings"

	"github.com/samber/oops"

	"github.com/go-fritz/go-decoder/b32"
	"github.com/go-fritz/go-decoder/envstore"
	"github.com/go-fritz/go-decoder/internal"
)

// CertPasswordLength is the length of the derived GUI certificate
// password in characters.
const CertPasswordLength = 8

// DeviceKeySize is the device cipher key length in bytes. The key is
// surfaced as 2*DeviceKeySize lowercase hex characters.
const DeviceKeySize = 32

// MaxDeviceProperties is the largest number of positional device
// properties accepted by DeriveDeviceKey.
const MaxDeviceProperties = 4

// hardwareIDPattern matches a MAC address the way the firmware stores it:
// twelve uppercase hex digits with colons in the standard positions.
var hardwareIDPattern = regexp.MustCompile(`^([0-9A-F]{2}:){5}[0-9A-F]{2}$`)

// DeviceSource supplies the identifying values of the local device.
// *envstore.Store satisfies it.
type DeviceSource interface {
	DeviceProperties() (envstore.DeviceProperties, error)
}

// DeriveCertificatePassword derives the password protecting the device's
// GUI certificate private key from its MAC address. The derivation is the
// firmware's own: the first eight bytes of the MD5 digest of the MAC
// string, each projected onto the 64-symbol alphabet. It is deterministic
// and side-effect free.
func DeriveCertificatePassword(mac string) (string, error) {
	if !hardwareIDPattern.MatchString(mac) {
		return "", oops.
			Code("INVALID_HARDWARE_ID").
			In("decoder").
			With("length", len(mac)).
			Errorf("hardware address must be 17 uppercase characters in AA:BB:CC:DD:EE:FF form")
	}

	digest := md5.Sum([]byte(mac))
	password := make([]byte, CertPasswordLength)
	for i := range password {
		password[i] = b32.Char64(digest[i])
	}
	return string(password), nil
}

// DeriveDeviceKey derives the 256-bit document cipher key. The mode is
// selected by the number of properties supplied:
//
//   - 0 properties: the identifying values are read from source, the
//     local device's environment store.
//   - 1 property: the value is taken verbatim as a pre-computed key and
//     only validated (64 hex characters).
//   - 2 to 4 properties: mimicry mode; the key is derived purely from the
//     supplied values (serial number, MAC, WLAN key, TR-069 passphrase in
//     that order) without touching any local device state.
//
// The key is returned as 64 lowercase hex characters.
func DeriveDeviceKey(props []string, source DeviceSource) (string, error) {
	// Key material itself is never logged, only the selected mode.
	log.WithField("property_count", len(props)).Debug("deriving device key")

	switch {
	case len(props) == 0:
		if source == nil {
			return "", oops.
				Code("NO_LOCAL_DEVICE").
				In("decoder").
				Errorf("no device properties supplied and no local device source available")
		}
		dp, err := source.DeviceProperties()
		if err != nil {
			return "", err
		}
		return mixProperties(dp.Serial, dp.MAC, dp.WLANKey, dp.TR069Passphrase), nil

	case len(props) == 1:
		key := strings.ToLower(props[0])
		if len(key) != 2*DeviceKeySize || !internal.IsHex(key) {
			return "", oops.
				Code("MALFORMED_KEY").
				In("decoder").
				With("length", len(props[0])).
				Errorf("explicit key must be %d hex characters, got %d", 2*DeviceKeySize, len(props[0]))
		}
		return key, nil

	case len(props) <= MaxDeviceProperties:
		for i, p := range props {
			if p == "" {
				return "", oops.
					Code("INCOMPLETE_DEVICE_PROPERTIES").
					In("decoder").
					With("position", i).
					Errorf("device property %d is empty", i+1)
			}
		}
		padded := make([]string, MaxDeviceProperties)
		copy(padded, props)
		return mixProperties(padded...), nil

	default:
		return "", oops.
			Code("INCOMPLETE_DEVICE_PROPERTIES").
			In("decoder").
			With("count", len(props)).
			Errorf("at most %d device properties are supported, got %d", MaxDeviceProperties, len(props))
	}
}

// mixProperties folds the ordered property values into the cipher key.
// The mixing is the firmware's scheme: an MD5 digest over the
// concatenated values, zero-extended to the AES-256 key size.
func mixProperties(values ...string) string {
	h := md5.New()
	for _, v := range values {
		io.WriteString(h, v)
	}
	key := make([]byte, DeviceKeySize)
	copy(key, h.Sum(nil))
	return hex.EncodeToString(key)
}
