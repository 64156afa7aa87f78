package jwt

import "errors"

var (
	ErrMalformedToken       = errors.New("jwt: malformed token")
	ErrEncoding             = errors.New("jwt: invalid segment encoding")
	ErrInvalidSignature     = errors.New("jwt: invalid signature")
	ErrInvalidHeader        = errors.New("jwt: invalid header")
	ErrInvalidPayload       = errors.New("jwt: invalid payload")
	ErrUnsupportedAlgorithm = errors.New("jwt: unsupported algorithm")
	ErrUnexpectedAlgorithm  = errors.New("jwt: unexpected signing algorithm")
	ErrMissingSigningKey    = errors.New("jwt: missing signing key")
	ErrMissingPayload       = errors.New("jwt: missing payload")
	ErrMissingToken         = errors.New("jwt: missing token")
)
