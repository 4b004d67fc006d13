package usecase

import "strings"

const (
	minNameLength     = 2
	minPhoneLength    = 10
	minPasswordLength = 6
)

// isValidEmail provides a basic check for email format.
// For production, consider a more robust library.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}
