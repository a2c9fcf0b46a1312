package service

import "strings"

// EmailLocalPart returns the part before "@", used as a display-name
// fallback when the profile has no name.
func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
