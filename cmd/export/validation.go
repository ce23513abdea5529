package export

import (
	"fmt"
	"os"
	"regexp"
)

var sha256Pattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// validateExportArgs validates the arguments provided to the export command.
func validateExportArgs(options *RunOptionsExport) error {
	switch options.Format {
	case "csv", "json":
		if options.SHA256 == "" {
			return fmt.Errorf("the 'sha256' flag must be specified")
		}
		if !sha256Pattern.MatchString(options.SHA256) {
			return fmt.Errorf("the 'sha256' flag must be a 64-character lowercase hex digest")
		}
	case "pdf", "sarif":
		if options.InputPath == "" {
			return fmt.Errorf("the 'input' flag must be specified")
		}
		if _, err := os.Stat(options.InputPath); os.IsNotExist(err) {
			return fmt.Errorf("the input path does not exist: %v", options.InputPath)
		}
	case "":
		return fmt.Errorf("the 'format' flag must be specified")
	default:
		return fmt.Errorf("the 'format' flag must be one of: csv, json, pdf, sarif")
	}

	return nil
}
