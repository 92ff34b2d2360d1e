// Package result encodes a script's return value for the step output channel.
package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Encoding selects how a result value is serialized.
type Encoding string

const (
	EncodingJSON   Encoding = "json"
	EncodingString Encoding = "string"

	// DefaultEncoding applies when no result-encoding input is supplied.
	DefaultEncoding = EncodingJSON
)

var (
	ErrUnsupportedEncoding = errors.New(`"result-encoding" must be either "string" or "json"`)
	ErrEncodeFailed        = errors.New("failed to encode result")
)

// ParseEncoding validates an encoding name. An empty name selects DefaultEncoding.
func ParseEncoding(name string) (Encoding, error) {
	switch Encoding(name) {
	case "":
		return DefaultEncoding, nil
	case EncodingJSON, EncodingString:
		return Encoding(name), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnsupportedEncoding, name)
	}
}

// Encode serializes v according to the named encoding.
func Encode(v any, encoding string) (string, error) {
	enc, err := ParseEncoding(encoding)
	if err != nil {
		return "", err
	}
	return enc.Encode(v)
}

// Encode serializes v. JSON encoding is structural; values that cannot be
// represented, including cyclic structures, return ErrEncodeFailed.
func (e Encoding) Encode(v any) (string, error) {
	switch e {
	case EncodingJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncodeFailed, err)
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	case EncodingString:
		return toString(v), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnsupportedEncoding, string(e))
	}
}

// toString renders v the way a script runtime stringifies values, so a nil
// result becomes "null".
func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return "null"
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
