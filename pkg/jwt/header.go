package jwt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// HeaderType is the only accepted "typ" value.
const HeaderType = "JWT"

// Header is the fixed-shape token header. Field order is part of the
// signing input.
type Header struct {
	Type      string    `json:"typ"`
	Algorithm Algorithm `json:"alg"`
}

func NewHeader(alg Algorithm) Header {
	return Header{Type: HeaderType, Algorithm: alg}
}

// ParseHeader decodes a header segment and re-validates its shape: no
// unknown fields, typ "JWT", and a supported algorithm.
func ParseHeader(segment string) (Header, error) {
	raw, err := DecodeSegment(segment)
	if err != nil {
		return Header{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var h Header
	if err := dec.Decode(&h); err != nil {
		if errors.Is(err, ErrUnsupportedAlgorithm) {
			return Header{}, err
		}
		return Header{}, errors.Join(ErrInvalidHeader, err)
	}
	if dec.More() {
		return Header{}, fmt.Errorf("%w: trailing data", ErrInvalidHeader)
	}
	if h.Type != HeaderType {
		return Header{}, fmt.Errorf("%w: typ %q", ErrInvalidHeader, h.Type)
	}
	if !h.Algorithm.Valid() {
		return Header{}, fmt.Errorf("%w: missing alg", ErrInvalidHeader)
	}
	return h, nil
}
