package jwt

import (
	"bytes"
	"context"
	"crypto/hmac"
	"errors"
	"fmt"
	"log/slog"
)

// Config describes a verifier loaded from the environment.
type Config struct {
	Secret       string    `env:"JWT_SECRET,required"`
	Algorithm    Algorithm `env:"JWT_ALGORITHM" envDefault:"SHA256-HMAC"`
	StrictHeader bool      `env:"JWT_STRICT_HEADER" envDefault:"false"`
}

// Sign builds a token for payload under alg:
// base64url(header) "." base64url(payload) "." base64url(HMAC(signing input)).
// Creating a token and forging one with a recovered key are the same call.
func Sign(payload Payload, key []byte, alg Algorithm) (string, error) {
	if !alg.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
	}

	h, err := EncodeSegment(NewHeader(alg))
	if err != nil {
		return "", fmt.Errorf("failed to encode header: %w", err)
	}
	p := EncodeBytes(payload.Bytes())

	input := signingInput(h, p)
	signature := EncodeBytes(KeyedHash(alg, key, input))

	return string(input) + "." + signature, nil
}

// Service signs and verifies tokens with a single secret and a pinned
// algorithm. The secret is copied at construction and never modified.
type Service struct {
	signingKey   []byte
	algorithm    Algorithm
	strictHeader bool
	logger       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithAlgorithm pins the algorithm used for both signing and verification.
func WithAlgorithm(alg Algorithm) Option {
	return func(s *Service) { s.algorithm = alg }
}

// WithStrictHeader additionally requires every verified token to carry a
// well-formed header declaring the pinned algorithm.
func WithStrictHeader() Option {
	return func(s *Service) { s.strictHeader = true }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a service with the provided signing key.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	s := &Service{
		signingKey: bytes.Clone(signingKey),
		algorithm:  DefaultAlgorithm,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if !s.algorithm.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, s.algorithm)
	}
	return s, nil
}

// NewFromString is New for string-based configuration.
func NewFromString(signingKey string, opts ...Option) (*Service, error) {
	return New([]byte(signingKey), opts...)
}

// NewFromConfig builds a service from environment configuration. Options
// are applied after the config values.
func NewFromConfig(cfg Config, opts ...Option) (*Service, error) {
	base := []Option{}
	if cfg.Algorithm != 0 {
		base = append(base, WithAlgorithm(cfg.Algorithm))
	}
	if cfg.StrictHeader {
		base = append(base, WithStrictHeader())
	}
	return NewFromString(cfg.Secret, append(base, opts...)...)
}

// Algorithm returns the pinned algorithm.
func (s *Service) Algorithm() Algorithm {
	return s.algorithm
}

// Generate signs claims under the pinned algorithm. Claims may be a Payload
// or any value that serializes to a JSON object.
func (s *Service) Generate(claims any) (string, error) {
	if claims == nil {
		return "", ErrMissingPayload
	}

	payload, ok := claims.(Payload)
	if !ok {
		var err error
		if payload, err = PayloadFrom(claims); err != nil {
			return "", err
		}
	}
	return Sign(payload, s.signingKey, s.algorithm)
}

// Verify checks token against the secret and returns its payload.
//
// The signature is recomputed over the received header and payload segments
// under the pinned algorithm; the header's declared "alg" is not consulted
// unless the service was built WithStrictHeader.
func (s *Service) Verify(token string) (Payload, error) {
	payload, err := s.verify(token)
	if err != nil {
		s.logger.LogAttrs(context.Background(), slog.LevelDebug, "token verification failed",
			slog.String("algorithm", s.algorithm.String()),
			slog.Any("error", err),
		)
		return Payload{}, err
	}
	return payload, nil
}

func (s *Service) verify(token string) (Payload, error) {
	segments, err := SplitToken(token)
	if err != nil {
		return Payload{}, err
	}

	if s.strictHeader {
		header, err := segments.DecodeHeader()
		if err != nil {
			return Payload{}, err
		}
		if header.Algorithm != s.algorithm {
			return Payload{}, fmt.Errorf("%w: got %s, want %s", ErrUnexpectedAlgorithm, header.Algorithm, s.algorithm)
		}
	}

	expected := KeyedHash(s.algorithm, s.signingKey, segments.SigningInput())

	signature, err := segments.DecodeSignature()
	if err != nil {
		return Payload{}, err
	}

	// hmac.Equal runs in constant time for equal-length inputs.
	if !hmac.Equal(signature, expected) {
		return Payload{}, ErrInvalidSignature
	}

	payload, err := segments.DecodePayload()
	if err != nil {
		return Payload{}, err
	}
	return payload, nil
}

// Parse verifies token and unmarshals its payload into claims.
func (s *Service) Parse(token string, claims any) error {
	if claims == nil {
		return ErrMissingPayload
	}
	payload, err := s.Verify(token)
	if err != nil {
		return err
	}
	return payload.Decode(claims)
}

// IsMalformed reports whether err is a format problem (segment count,
// encoding, header or payload shape) rather than a signature mismatch.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrEncoding) ||
		errors.Is(err, ErrInvalidHeader) ||
		errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrUnsupportedAlgorithm)
}
