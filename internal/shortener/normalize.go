package shortener

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// Normalize canonicalizes a target URL so that equivalent spellings share a
// content key:
//   - lowercases the scheme and host
//   - strips default ports (80 for http, 443 for https)
//   - strips trailing slashes from the path (unless the path is just "/")
//   - drops the fragment
//
// Only absolute http(s) URLs are accepted; anything else fails with
// ErrInvalidURL.
func Normalize(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrInvalidURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidURL
	}

	if u.Scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	} else {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	u.Fragment = ""

	return u.String(), nil
}

// KeyFor computes the content key of a normalized URL: its hex-encoded
// SHA-256 digest. Distinct URLs that collide on the key are treated as a
// store conflict, never silently merged.
func KeyFor(normalizedURL string) ContentKey {
	h := sha256.Sum256([]byte(normalizedURL))

	return ContentKey(hex.EncodeToString(h[:]))
}
