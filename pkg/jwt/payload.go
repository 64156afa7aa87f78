package jwt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var emptyObject = []byte("{}")

// Payload is a JSON object kept in its compact serialized form. Key order is
// part of the signing input, so it is preserved exactly as supplied and new
// keys are appended in insertion order.
type Payload struct {
	raw []byte
}

// NewPayload returns an empty object.
func NewPayload() Payload {
	return Payload{raw: bytes.Clone(emptyObject)}
}

// ParsePayload validates that data is a single JSON object and stores its
// compact form.
func ParsePayload(data []byte) (Payload, error) {
	if !gjson.ValidBytes(data) {
		return Payload{}, fmt.Errorf("%w: not valid JSON", ErrInvalidPayload)
	}
	if !gjson.ParseBytes(data).IsObject() {
		return Payload{}, fmt.Errorf("%w: not a JSON object", ErrInvalidPayload)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return Payload{}, errors.Join(ErrInvalidPayload, err)
	}
	return Payload{raw: buf.Bytes()}, nil
}

// PayloadFrom serializes v and requires the result to be an object.
// Maps produce sorted keys; structs keep field order.
func PayloadFrom(v any) (Payload, error) {
	if v == nil {
		return Payload{}, ErrMissingPayload
	}
	data, err := Marshal(v)
	if err != nil {
		return Payload{}, errors.Join(ErrInvalidPayload, err)
	}
	return ParsePayload(data)
}

// Set returns a copy of p with key set to value. An existing key keeps its
// position; a new key goes last.
func (p Payload) Set(key string, value any) (Payload, error) {
	var (
		raw []byte
		err error
	)
	switch v := value.(type) {
	case Payload:
		raw, err = sjson.SetRawBytes(p.Bytes(), escapeKey(key), v.Bytes())
	case json.RawMessage:
		raw, err = sjson.SetRawBytes(p.Bytes(), escapeKey(key), v)
	default:
		raw, err = sjson.SetBytes(p.Bytes(), escapeKey(key), value)
	}
	if err != nil {
		return p, errors.Join(ErrInvalidPayload, err)
	}
	return ParsePayload(raw)
}

// Get looks up a top-level key.
func (p Payload) Get(key string) gjson.Result {
	return gjson.GetBytes(p.Bytes(), escapeKey(key))
}

// Bool reports whether key holds JSON true.
func (p Payload) Bool(key string) bool {
	r := p.Get(key)
	return r.Type == gjson.True
}

// String returns the string value of key, or "" when absent.
func (p Payload) String(key string) string {
	r := p.Get(key)
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// Keys lists top-level keys in serialized order.
func (p Payload) Keys() []string {
	var keys []string
	gjson.ParseBytes(p.Bytes()).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys
}

// Len is the number of top-level keys.
func (p Payload) Len() int {
	return len(p.Keys())
}

// Bytes returns a copy of the compact serialization.
func (p Payload) Bytes() []byte {
	if len(p.raw) == 0 {
		return bytes.Clone(emptyObject)
	}
	return bytes.Clone(p.raw)
}

// Equal compares serialized forms, so key order matters.
func (p Payload) Equal(other Payload) bool {
	return bytes.Equal(p.Bytes(), other.Bytes())
}

// Decode unmarshals the payload into v.
func (p Payload) Decode(v any) error {
	if err := json.Unmarshal(p.Bytes(), v); err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	return nil
}

func (p Payload) MarshalJSON() ([]byte, error) {
	return p.Bytes(), nil
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	parsed, err := ParsePayload(data)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Text returns the compact JSON text.
func (p Payload) Text() string {
	return string(p.Bytes())
}

// escapeKey turns a literal key into a gjson/sjson path component.
func escapeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-', c >= 0x80:
		default:
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
