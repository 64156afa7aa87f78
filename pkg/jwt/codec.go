package jwt

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// segmentEncoding rejects non-zero trailing bits so that every byte string
// has exactly one textual form.
var segmentEncoding = base64.URLEncoding.Strict()

// Segments holds the three encoded parts of a token exactly as received.
type Segments struct {
	Header    string
	Payload   string
	Signature string
}

// SplitToken splits a token on "." and requires exactly three non-empty
// segments. Nothing is decoded here.
func SplitToken(token string) (Segments, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Segments{}, fmt.Errorf("%w: got %d segments, want 3", ErrMalformedToken, len(parts))
	}
	for i, part := range parts {
		if part == "" {
			return Segments{}, fmt.Errorf("%w: segment %d is empty", ErrMalformedToken, i+1)
		}
	}
	return Segments{Header: parts[0], Payload: parts[1], Signature: parts[2]}, nil
}

// SigningInput is the byte sequence that gets hashed: header "." payload.
func (s Segments) SigningInput() []byte {
	return signingInput(s.Header, s.Payload)
}

func (s Segments) String() string {
	return s.Header + "." + s.Payload + "." + s.Signature
}

func (s Segments) DecodeSignature() ([]byte, error) {
	return DecodeSegment(s.Signature)
}

func (s Segments) DecodeHeader() (Header, error) {
	return ParseHeader(s.Header)
}

func (s Segments) DecodePayload() (Payload, error) {
	raw, err := DecodeSegment(s.Payload)
	if err != nil {
		return Payload{}, err
	}
	return ParsePayload(raw)
}

func signingInput(header, payload string) []byte {
	buf := make([]byte, 0, len(header)+1+len(payload))
	buf = append(buf, header...)
	buf = append(buf, '.')
	buf = append(buf, payload...)
	return buf
}

// Marshal produces the canonical serialization of v: compact JSON without
// HTML escaping. Struct fields keep declaration order and a Payload keeps
// insertion order; plain maps are emitted with sorted keys.
func Marshal(v any) ([]byte, error) {
	switch p := v.(type) {
	case Payload:
		return p.Bytes(), nil
	case *Payload:
		if p == nil {
			return nil, ErrMissingPayload
		}
		return p.Bytes(), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode terminates every value with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// EncodeSegment serializes v canonically and encodes it as base64url
// without padding.
func EncodeSegment(v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return EncodeBytes(data), nil
}

// EncodeBytes encodes raw bytes as base64url without padding.
func EncodeBytes(data []byte) string {
	return strings.TrimRight(segmentEncoding.EncodeToString(data), "=")
}

// DecodeSegment restores the padding stripped by EncodeBytes and decodes
// the segment. Invalid alphabet or an impossible length yields ErrEncoding.
func DecodeSegment(s string) ([]byte, error) {
	// The stdlib decoder skips '\r' and '\n'; reject them with everything
	// else outside the alphabet, padding included.
	for i := 0; i < len(s); i++ {
		if !isBase64URL(s[i]) {
			return nil, fmt.Errorf("%w: invalid character %q at offset %d", ErrEncoding, s[i], i)
		}
	}

	switch len(s) % 4 {
	case 1:
		return nil, fmt.Errorf("%w: impossible length %d", ErrEncoding, len(s))
	case 2:
		s += "=="
	case 3:
		s += "="
	}

	data, err := segmentEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Join(ErrEncoding, err)
	}
	return data, nil
}

func isBase64URL(c byte) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_'
}
