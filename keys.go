package dataapi

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsValidKey reports whether k can be used as an object key. A valid key:
//   - is relative and not empty
//   - does not end with "/"
//   - has no empty, "." or ".." segments
//   - is valid UTF-8 without control characters
//
// The same key is used for S3 and for the local filesystem backend, so the
// rules are the intersection of both.
func IsValidKey(k string) bool {
	if k == "" || k[0] == '/' || strings.HasSuffix(k, "/") {
		return false
	}

	if !utf8.ValidString(k) {
		return false
	}

	for _, seg := range strings.Split(k, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}

	for _, r := range k {
		if r == '\\' || unicode.IsControl(r) {
			return false
		}
	}

	return true
}
