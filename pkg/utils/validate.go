package utils

import (
	"fmt"
	"net/url"
	"unicode"
)

const maxTargetURLLength = 2048
const maxShortCodeLength = 64

// ValidateTargetURL checks that targetURL is a well-formed absolute URL.
func ValidateTargetURL(targetURL string) error {
	if targetURL == "" {
		return fmt.Errorf("targetUrl is required")
	}

	u, err := url.Parse(targetURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("targetUrl must be an absolute URL")
	}

	if len(targetURL) > maxTargetURLLength {
		return fmt.Errorf("targetUrl must not exceed %d characters", maxTargetURLLength)
	}
	return nil
}

// ValidateShortCode checks a caller-supplied short code. Codes are
// otherwise taken verbatim, so only things that cannot survive as a
// path segment are rejected.
func ValidateShortCode(shortCode string) error {
	if shortCode == "" {
		return fmt.Errorf("shortCode must not be blank")
	}

	if ContainsWhitespace(shortCode) {
		return fmt.Errorf("shortCode must not contain whitespace")
	}

	if len(shortCode) > maxShortCodeLength {
		return fmt.Errorf("shortCode must not exceed %d characters", maxShortCodeLength)
	}
	return nil
}

func ContainsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
