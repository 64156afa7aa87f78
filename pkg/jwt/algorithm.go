package jwt

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Algorithm identifies the keyed-hash construction used to sign a token.
// It is a closed set: the header's "alg" value is mapped onto one of the
// variants below and never used to look anything up by name.
type Algorithm uint8

const (
	_ Algorithm = iota
	MD5HMAC
	SHA1HMAC
	SHA256HMAC
	SHA384HMAC
	SHA512HMAC
	BLAKE2b256HMAC
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = SHA256HMAC

var algorithmNames = [...]string{
	MD5HMAC:        "MD5-HMAC",
	SHA1HMAC:       "SHA1-HMAC",
	SHA256HMAC:     "SHA256-HMAC",
	SHA384HMAC:     "SHA384-HMAC",
	SHA512HMAC:     "SHA512-HMAC",
	BLAKE2b256HMAC: "BLAKE2B256-HMAC",
}

// Algorithms returns every supported algorithm, weakest first.
func Algorithms() []Algorithm {
	return []Algorithm{MD5HMAC, SHA1HMAC, SHA256HMAC, SHA384HMAC, SHA512HMAC, BLAKE2b256HMAC}
}

// ParseAlgorithm maps a header "alg" value onto its variant.
// Names are matched exactly.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range Algorithms() {
		if algorithmNames[a] == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

// Valid reports whether a is one of the supported variants.
func (a Algorithm) Valid() bool {
	return a >= MD5HMAC && a <= BLAKE2b256HMAC
}

func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
	return algorithmNames[a]
}

// Size is the signature width in bytes.
func (a Algorithm) Size() int {
	switch a {
	case MD5HMAC:
		return md5.Size
	case SHA1HMAC:
		return sha1.Size
	case SHA256HMAC:
		return sha256.Size
	case SHA384HMAC:
		return sha512.Size384
	case SHA512HMAC:
		return sha512.Size
	case BLAKE2b256HMAC:
		return blake2b.Size256
	default:
		return 0
	}
}

// Weak reports whether the inner digest is collision-prone. The HMAC
// wrapper does not compensate for a broken digest or a narrow output.
func (a Algorithm) Weak() bool {
	return a == MD5HMAC || a == SHA1HMAC
}

// MarshalText writes the header name of the algorithm.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, a)
	}
	return []byte(algorithmNames[a]), nil
}

// UnmarshalText accepts only the names of supported variants.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UnmarshalJSON requires the algorithm to be a JSON string so numeric
// values cannot select a variant.
func (a *Algorithm) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: alg must be a string", ErrUnsupportedAlgorithm)
	}
	return a.UnmarshalText([]byte(name))
}

func (a Algorithm) digest() func() hash.Hash {
	switch a {
	case MD5HMAC:
		return md5.New
	case SHA1HMAC:
		return sha1.New
	case SHA256HMAC:
		return sha256.New
	case SHA384HMAC:
		return sha512.New384
	case SHA512HMAC:
		return sha512.New
	case BLAKE2b256HMAC:
		return newBlake2b256
	default:
		return nil
	}
}

func newBlake2b256() hash.Hash {
	// New256 only fails for keys longer than 64 bytes; the HMAC key is applied
	// by the wrapper, never passed here.
	h, _ := blake2b.New256(nil)
	return h
}

// KeyedHash computes HMAC(alg, key, data). Any key is accepted, including
// an empty one. It panics on an algorithm outside the supported set.
func KeyedHash(alg Algorithm, key, data []byte) []byte {
	fn := alg.digest()
	if fn == nil {
		panic(fmt.Sprintf("jwt: keyed hash with unsupported algorithm %s", alg))
	}
	mac := hmac.New(fn, key)
	mac.Write(data)
	return mac.Sum(nil)
}
