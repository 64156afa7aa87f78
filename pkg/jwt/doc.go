// Package jwt implements a compact, self-describing token: a base64url
// encoded header and payload joined with a keyed digest.
//
//	base64url(header) "." base64url(payload) "." base64url(HMAC(signing input))
//
// The signing input is the exact byte sequence of the first two encoded
// segments joined by ".", never the decoded objects. Segments are encoded
// without "=" padding and serialized compactly so that a signer, a verifier,
// a cracker and a forger all derive byte-identical input.
//
// This is not a general-purpose JWT library: there is no expiry, audience or
// issuer validation. The package exists to demonstrate how a shared-secret
// token behaves, including deliberately weak digest choices.
//
// # Architecture
//
//   - algorithm.go – the closed Algorithm set and KeyedHash.
//   - codec.go – canonical Marshal, segment encode/decode, SplitToken.
//   - header.go, payload.go – the two signed documents. Payload preserves
//     key insertion order because order changes the signature.
//   - jwt.go – Sign and the Service that signs and verifies under a pinned
//     algorithm.
//   - middleware.go, context.go – the HTTP verification boundary.
//
// # Usage
//
//	svc, err := jwt.NewFromString("s3cr3t", jwt.WithAlgorithm(jwt.SHA256HMAC))
//	if err != nil {
//	    // handle error
//	}
//
//	payload, _ := jwt.ParsePayload([]byte(`{"username":"alice","admin":false}`))
//	token, err := svc.Generate(payload)
//
//	verified, err := svc.Verify(token)
//	if errors.Is(err, jwt.ErrInvalidSignature) {
//	    // reject
//	}
//	admin := verified.Bool("admin")
//
// # Algorithm pinning
//
// Service.Verify recomputes the digest under the algorithm the service was
// built with and ignores the header's declared "alg". A token declaring a
// different algorithm but signed under the pinned one still verifies.
// WithStrictHeader rejects such tokens with ErrUnexpectedAlgorithm.
//
// # Error Handling
//
// Each failure has its own sentinel, comparable with errors.Is:
// ErrMalformedToken (segment count), ErrEncoding (base64url), ErrInvalidSignature
// (digest mismatch), ErrInvalidHeader, ErrInvalidPayload and
// ErrUnsupportedAlgorithm. StatusCode maps them onto HTTP statuses.
package jwt
