package request

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrInvalidURL    = errors.New("invalid URL")
	ErrInvalidKVPair = errors.New("invalid key=value pair")
)

// KVPair is a single body field given as key=value on the command line.
type KVPair struct {
	Key   string
	Value string
}

// ValidateURL checks that s parses as an absolute URL with at least a scheme
// and a host. The string is returned unchanged, no normalization is applied.
func ValidateURL(s string) (string, error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %s", ErrInvalidURL, s, err.Error())
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q: missing scheme or host", ErrInvalidURL, s)
	}
	return s, nil
}

// ParseKVPair splits a token on = into a key and a value. Empty keys and
// values are allowed. With more than one =, only the first two segments are
// kept and the rest is dropped, matching the historic behavior of the tool.
func ParseKVPair(s string) (KVPair, error) {
	parts := strings.Split(s, "=")
	if len(parts) < 2 {
		return KVPair{}, fmt.Errorf("%w: %q", ErrInvalidKVPair, s)
	}
	return KVPair{Key: parts[0], Value: parts[1]}, nil
}

// ParseKVPairs parses every token, failing on the first malformed one.
func ParseKVPairs(tokens []string) ([]KVPair, error) {
	pairs := make([]KVPair, 0, len(tokens))
	for _, t := range tokens {
		p, err := ParseKVPair(t)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// BodyMap assembles pairs into the object sent as the JSON request body.
// Later pairs overwrite earlier ones with the same key.
func BodyMap(pairs []KVPair) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return m
}
