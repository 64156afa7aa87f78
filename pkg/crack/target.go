package crack

import (
	"crypto/hmac"
	"fmt"

	"github.com/dmitrymomot/jwtlab/pkg/jwt"
)

// Target is a captured token reduced to what a scan needs: the exact signing
// input, the decoded signature and the algorithm to test candidates with.
type Target struct {
	segments  jwt.Segments
	algorithm jwt.Algorithm
	input     []byte
	signature []byte
}

// NewTarget prepares token for cracking. When alg is zero the algorithm
// declared in the token's header is used; otherwise alg is pinned and the
// header is not decoded. The signature width must match the algorithm.
func NewTarget(token string, alg jwt.Algorithm) (*Target, error) {
	segments, err := jwt.SplitToken(token)
	if err != nil {
		return nil, err
	}

	if alg == 0 {
		header, err := segments.DecodeHeader()
		if err != nil {
			return nil, err
		}
		alg = header.Algorithm
	} else if !alg.Valid() {
		return nil, fmt.Errorf("%w: %s", jwt.ErrUnsupportedAlgorithm, alg)
	}

	signature, err := segments.DecodeSignature()
	if err != nil {
		return nil, err
	}
	if len(signature) != alg.Size() {
		return nil, fmt.Errorf("%w: signature is %d bytes, %s produces %d",
			jwt.ErrInvalidSignature, len(signature), alg, alg.Size())
	}

	return &Target{
		segments:  segments,
		algorithm: alg,
		input:     segments.SigningInput(),
		signature: signature,
	}, nil
}

// Matches reports whether key reproduces the captured signature.
func (t *Target) Matches(key []byte) bool {
	return hmac.Equal(jwt.KeyedHash(t.algorithm, key, t.input), t.signature)
}

func (t *Target) Algorithm() jwt.Algorithm { return t.algorithm }

// Segments returns the token's segments as captured.
func (t *Target) Segments() jwt.Segments { return t.segments }

// HeaderSegment is the encoded header, reused when forging.
func (t *Target) HeaderSegment() string { return t.segments.Header }
