package urlscan

import (
	"fmt"

	"github.com/dfir-analyzer/dfirctl/internal/session"
)

// validateURLScanArgs validates the arguments provided to the urlscan command.
// URL validation itself is the session's strict policy; it runs here as well so
// bad input fails before anything else is constructed.
func validateURLScanArgs(options *RunOptionsURLScan, args []string) error {
	if len(args) == 0 {
		return session.ValidateURL("")
	}
	if len(args) > 1 {
		return fmt.Errorf("only one URL can be analyzed at a time")
	}

	if err := session.ValidateURL(args[0]); err != nil {
		return err
	}

	switch options.Report {
	case "", "pdf", "sarif":
	default:
		return fmt.Errorf("the 'report' flag must be one of: pdf, sarif")
	}

	return nil
}
