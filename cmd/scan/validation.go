package scan

import (
	"fmt"
	"os"
)

// validateScanArgs validates the arguments provided to the scan command.
func validateScanArgs(options *RunOptionsScan, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("a file path must be specified")
	}
	if len(args) > 1 {
		return fmt.Errorf("only one file can be scanned at a time")
	}

	targetPath := args[0]
	if _, err := os.Stat(targetPath); os.IsNotExist(err) {
		return fmt.Errorf("the target path does not exist: %v", targetPath)
	}

	switch options.Report {
	case "", "pdf", "sarif":
	default:
		return fmt.Errorf("the 'report' flag must be one of: pdf, sarif")
	}

	return nil
}
