package common

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// MakeRandHexString generates a random hexadecimal string from size random
// bytes, so the result is twice as long as size. It returns an error only if
// the system random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// SplitList converts a comma-separated string into a trimmed list with
// empty entries removed. An all-whitespace input yields a nil slice.
//
// The inverse of JoinList. Entries that themselves contain a comma do not
// survive the round trip; the UI treats the comma as a reserved delimiter.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList renders a list as the comma-separated form the settings and
// project forms display.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
