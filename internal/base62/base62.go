// Package base62 renders integer IDs as short alphanumeric codes.
//
// The alphabet is 0-9, A-Z, a-z in that order, so encoded strings sort the
// same way the underlying IDs do. Codes are capped at MaxLen symbols, which
// bounds the representable ID space to 62^10 - 1.
package base62

import "errors"

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	base = 62

	// MaxLen is the maximum number of symbols in a code.
	MaxLen = 10

	// MaxID is the largest ID representable in MaxLen symbols (62^10 - 1).
	MaxID int64 = 839299365868340223
)

var (
	// ErrCapacityExceeded is returned when an ID would need more than MaxLen
	// symbols. Callers must treat this as fatal, not retryable.
	ErrCapacityExceeded = errors.New("base62: id exceeds code capacity")

	// ErrInvalidCode is returned when a string contains characters outside
	// the base62 alphabet or is too long to be a valid code.
	ErrInvalidCode = errors.New("base62: invalid code")
)

var charValue [256]int16

func init() {
	for i := range charValue {
		charValue[i] = -1
	}

	for i := 0; i < len(alphabet); i++ {
		charValue[alphabet[i]] = int16(i)
	}
}

// Encode renders id as a base62 string. Negative IDs and IDs beyond MaxID
// fail with ErrCapacityExceeded.
func Encode(id int64) (string, error) {
	if id < 0 || id > MaxID {
		return "", ErrCapacityExceeded
	}

	if id == 0 {
		return "0", nil
	}

	buf := make([]byte, 0, MaxLen)
	for id > 0 {
		buf = append(buf, alphabet[id%base])
		id /= base
	}

	// Digits were produced least-significant first.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

// Decode is the inverse of Encode: Decode(Encode(id)) == id for every valid
// id. It rejects empty strings, strings longer than MaxLen, characters
// outside the alphabet, and values beyond MaxID.
func Decode(code string) (int64, error) {
	if code == "" || len(code) > MaxLen {
		return 0, ErrInvalidCode
	}

	var id int64

	for i := 0; i < len(code); i++ {
		v := charValue[code[i]]
		if v < 0 {
			return 0, ErrInvalidCode
		}

		id = id*base + int64(v)
		if id > MaxID {
			return 0, ErrInvalidCode
		}
	}

	return id, nil
}

// IsValid reports whether s is non-empty, at most MaxLen symbols, and drawn
// entirely from the base62 alphabet. Custom aliases are validated with the
// same rules as generated codes.
func IsValid(s string) bool {
	if s == "" || len(s) > MaxLen {
		return false
	}

	for i := 0; i < len(s); i++ {
		if charValue[s[i]] < 0 {
			return false
		}
	}

	return true
}
