package validator

import "regexp"

// URLPattern is the accepted shape of a user-supplied URL: optional scheme,
// optional "www.", a host label, one to three lowercase TLD-style labels and
// an optional run of query pairs. No path segments, no ports.
const URLPattern = `((https?|ftp|smtp)://)?(www\.)?[a-zA-Z0-9]+(\.[a-z]{2,}){1,3}(\?[a-zA-Z0-9\-_%]+=[a-zA-Z0-9\-_%]+&?)*$`

// urlRegexp is compiled once and shared; *regexp.Regexp is safe for concurrent use.
// The outer anchors force a full match.
var urlRegexp = regexp.MustCompile(`^(?:` + URLPattern + `)$`)

// ValidateURL checks a URL exactly as received - no trimming, no normalization.
// The empty check runs before the pattern check.
func ValidateURL(urlStr string) error {
	if urlStr == "" {
		return ErrEmptyURL
	}

	if !urlRegexp.MatchString(urlStr) {
		return ErrInvalidURL
	}

	return nil
}
