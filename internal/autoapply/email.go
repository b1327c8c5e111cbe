package autoapply

import "regexp"

// emailRe matches an RFC-plausible address: permissive local part, dotted
// domain labels, TLD of at least two letters. Good enough for
// equality-or-skip extraction; not a validator.
var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// ExtractEmail returns the first email-like substring in the description,
// or "" when none is found.
func ExtractEmail(description string) string {
	return emailRe.FindString(description)
}
