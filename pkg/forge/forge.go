package forge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrymomot/jwtlab/pkg/jwt"
)

// ParsePayload validates operator-supplied JSON. It must be a single object;
// key order is kept exactly as written.
func ParsePayload(raw string) (jwt.Payload, error) {
	if strings.TrimSpace(raw) == "" {
		return jwt.Payload{}, &ValidationError{Field: "payload", Message: "payload is empty", Err: jwt.ErrInvalidPayload}
	}

	var probe any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return jwt.Payload{}, &ValidationError{Field: "payload", Message: err.Error(), Err: jwt.ErrInvalidPayload}
	}
	if _, ok := probe.(map[string]any); !ok {
		return jwt.Payload{}, &ValidationError{
			Field:   "payload",
			Message: fmt.Sprintf("must be a JSON object, got %s", kind(probe)),
			Err:     jwt.ErrInvalidPayload,
		}
	}

	p, err := jwt.ParsePayload([]byte(raw))
	if err != nil {
		return jwt.Payload{}, &ValidationError{Field: "payload", Message: err.Error(), Err: err}
	}
	return p, nil
}

// Forge signs payload with key under the algorithm declared by the captured
// header segment. It is the same construction jwt.Sign performs for
// legitimate tokens; the header is re-validated but not re-encoded, since
// Sign emits the canonical header for that algorithm.
func Forge(key []byte, headerSegment string, payload jwt.Payload) (string, error) {
	header, err := jwt.ParseHeader(headerSegment)
	if err != nil {
		return "", &ValidationError{Field: "header", Message: err.Error(), Err: err}
	}
	return jwt.Sign(payload, key, header.Algorithm)
}

// ForgeJSON parses raw with ParsePayload and forges a token from it.
func ForgeJSON(key []byte, headerSegment, raw string) (string, error) {
	payload, err := ParsePayload(raw)
	if err != nil {
		return "", err
	}
	return Forge(key, headerSegment, payload)
}

// FromToken forges a replacement for a captured token, reusing its header.
func FromToken(key []byte, token string, payload jwt.Payload) (string, error) {
	segments, err := jwt.SplitToken(token)
	if err != nil {
		return "", &ValidationError{Field: "token", Message: err.Error(), Err: err}
	}
	return Forge(key, segments.Header, payload)
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
