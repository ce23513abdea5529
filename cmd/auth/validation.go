package auth

import (
	"fmt"
	"strings"
)

// validateAuthArgs validates the arguments provided to login and register.
func validateAuthArgs(options *RunOptionsAuth, requireName bool) error {
	email := strings.TrimSpace(options.Email)
	if email == "" {
		return fmt.Errorf("the 'email' flag must be specified")
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return fmt.Errorf("the 'email' flag must be a valid email address")
	}
	options.Email = email

	if requireName && strings.TrimSpace(options.Name) == "" {
		return fmt.Errorf("the 'name' flag must be specified")
	}

	return nil
}
