// Package validation provides validation for configured hostnames.
// The rules follow RFC 1123 host name syntax: dot-separated labels of
// letters, digits, and interior hyphens.
package validation

import (
	"fmt"
	"strings"
)

const (
	maxHostnameLength = 253
	maxLabelLength    = 63
)

// isAlpha returns true if the byte is an ASCII letter.
func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isNum returns true if the byte is an ASCII digit.
func isNum(b byte) bool {
	return b >= '0' && b <= '9'
}

// isAlphaNum returns true if the byte is an ASCII letter or digit.
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isNum(b)
}

// ValidateHostname validates a hostname destined for a DNS rewrite rule.
// The full name must be at most 253 characters; each label must be 1-63
// characters of letters, digits, or hyphens, with no leading or trailing
// hyphen.
func ValidateHostname(name string) error {
	if name == "" {
		return fmt.Errorf("hostname must not be empty")
	}
	if len(name) > maxHostnameLength {
		return fmt.Errorf("hostname %q exceeds %d characters", name, maxHostnameLength)
	}
	for _, label := range strings.Split(name, ".") {
		if label == "" {
			return fmt.Errorf("hostname %q contains an empty label", name)
		}
		if len(label) > maxLabelLength {
			return fmt.Errorf("hostname %q has a label longer than %d characters", name, maxLabelLength)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("hostname %q has a label starting or ending with a hyphen", name)
		}
		for _, b := range []byte(label) {
			if !isAlphaNum(b) && b != '-' {
				return fmt.Errorf("hostname labels can only contain letters, numbers, or hyphens")
			}
		}
	}
	return nil
}
