package decoder

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"regexp"

	"github.com/dchest/siphash"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"github.com/go-fritz/go-decoder/b32"
	"github.com/go-fritz/go-decoder/crypt"
	"github.com/go-fritz/go-decoder/internal"
)

// Engine locates obfuscated tokens inside an export document, decrypts
// each with the configured device key and rewrites the document with the
// recovered plaintext spliced in. One Engine holds one key; concurrent
// Rewrite calls on distinct documents are safe because an Engine is not
// mutated after construction.
type Engine struct {
	// config contains the engine configuration
	config *EngineConfig

	// key is the raw cipher key decoded from the configuration
	key []byte

	// tokenPattern matches one marker-prefixed token on a line
	tokenPattern *regexp.Regexp

	// fpKey0, fpKey1 key the SipHash token fingerprints used on the
	// debug trace, so skipped tokens can be correlated without logging
	// the token text itself
	fpKey0, fpKey1 uint64

	// logger for engine events
	logger *logger.Logger
}

// substitution is one entry of the rewrite plan: a token's exact original
// text and the plaintext replacing it. Entries are per occurrence, never
// deduplicated by value.
type substitution struct {
	token       []byte
	replacement []byte
}

// NewEngine creates an Engine for the given configuration. A missing or
// undecodable cipher key fails here with code KEY_DERIVATION_FAILED; no
// later call reports key problems.
func NewEngine(config *EngineConfig) (*Engine, error) {
	if config == nil {
		return nil, oops.
			Code("INVALID_CONFIG").
			In("decoder").
			Errorf("engine config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	key, err := hex.DecodeString(config.Key)
	if err != nil {
		return nil, oops.
			Code("KEY_DERIVATION_FAILED").
			In("decoder").
			Wrapf(err, "cipher key is not valid hex")
	}

	fpKey, err := internal.RandomBytes(16)
	if err != nil {
		return nil, oops.
			Code("KEY_DERIVATION_FAILED").
			In("decoder").
			Wrapf(err, "failed to seed token fingerprints")
	}

	// Marker characters are quoted; the alphabet contains no regexp
	// metacharacters.
	pattern := regexp.MustCompile(regexp.QuoteMeta(config.Marker) + "[" + b32.Alphabet + "]+")

	e := &Engine{
		config:       config,
		key:          key,
		tokenPattern: pattern,
		fpKey0:       binary.LittleEndian.Uint64(fpKey[:8]),
		fpKey1:       binary.LittleEndian.Uint64(fpKey[8:]),
		logger:       logger.GetGoI2PLogger(),
	}
	e.logger.WithField("marker", config.Marker).Debug("decoder engine created")
	return e, nil
}

// Close discards the engine's key material. The engine must not be used
// afterwards.
func (e *Engine) Close() {
	internal.SecureZero(e.key)
}

// Rewrite scans document for obfuscated tokens and returns the document
// with every decryptable token replaced by its plaintext value. All bytes
// outside replaced token spans are preserved exactly, line endings
// included. A token that fails to decode or decrypt stays verbatim; one
// corrupt or foreign-keyed token never aborts the rest of the document.
func (e *Engine) Rewrite(document []byte) ([]byte, error) {
	if len(document) == 0 {
		return document, nil
	}

	plan := e.scan(document)
	if len(plan) == 0 {
		return document, nil
	}
	return apply(document, plan), nil
}

// scan builds the substitution plan. Tokens are collected per physical
// line, in document order, one plan entry per occurrence.
func (e *Engine) scan(document []byte) []substitution {
	var plan []substitution
	var skipped int

	for _, line := range bytes.Split(document, []byte{'\n'}) {
		for _, token := range e.tokenPattern.FindAll(line, -1) {
			replacement, err := e.decodeToken(token)
			if err != nil {
				skipped++
				e.logger.WithError(err).WithFields(logrus.Fields{
					"token_fingerprint": e.fingerprint(token),
					"token_length":      len(token),
				}).Debug("token skipped, left verbatim")
				continue
			}
			if e.config.Escape {
				replacement = escapeValue(replacement)
			}
			plan = append(plan, substitution{token: token, replacement: replacement})
		}
	}

	e.logger.WithFields(logrus.Fields{
		"substitutions": len(plan),
		"skipped":       skipped,
	}).Debug("document scan complete")
	return plan
}

// decodeToken recovers the plaintext of a single token: strip the marker,
// base32-decode, decrypt under the engine key.
func (e *Engine) decodeToken(token []byte) ([]byte, error) {
	blob, err := b32.Decode(string(token[len(e.config.Marker):]))
	if err != nil {
		return nil, err
	}
	return crypt.Decrypt(blob, e.key)
}

// EncodeSecret is the inverse pipeline: it encrypts value under the
// engine key and wraps the result as a marker-prefixed token, suitable
// for splicing into an export intended for another device.
func (e *Engine) EncodeSecret(value []byte) (string, error) {
	blob, err := crypt.Seal(value, e.key)
	if err != nil {
		return "", err
	}
	return e.config.Marker + b32.Encode(blob), nil
}

// apply executes the plan over the original document in one pass:
// left-to-right, first match, non-overlapping. Plan entries were recorded
// in document order, so each entry consumes the next occurrence of its
// token text.
func apply(document []byte, plan []substitution) []byte {
	out := make([]byte, 0, len(document))
	rest := document
	for _, s := range plan {
		idx := bytes.Index(rest, s.token)
		if idx < 0 {
			continue
		}
		out = append(out, rest[:idx]...)
		out = append(out, s.replacement...)
		rest = rest[idx+len(s.token):]
	}
	return append(out, rest...)
}

// escapeValue backslash-escapes the characters that would corrupt a
// line-oriented rewrite of the document: the escape character itself, the
// substitution metacharacter, embedded quotes and the line delimiter.
func escapeValue(value []byte) []byte {
	escaped := make([]byte, 0, len(value))
	for _, c := range value {
		switch c {
		case '\\', '&', '"':
			escaped = append(escaped, '\\', c)
		case '\n':
			escaped = append(escaped, '\\', 'n')
		default:
			escaped = append(escaped, c)
		}
	}
	return escaped
}

// fingerprint returns a short keyed hash of the token text for the debug
// trace. The key is per-engine and random, so fingerprints are stable
// within a run but leak nothing across runs.
func (e *Engine) fingerprint(token []byte) string {
	sum := siphash.Hash(e.fpKey0, e.fpKey1, token)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], sum)
	return hex.EncodeToString(buf[:])
}
