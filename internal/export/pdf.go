// Package export turns a displayed analysis result into shareable artifacts:
// a local PDF or SARIF report, or a server-side CSV/JSON download referenced
// by content hash. Exports are read-only views; they never mutate a result.
package export

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the already-formatted result panel into a paginated A4
// document at path. Long content flows across pages; gofpdf handles the
// vertical slicing.
func WritePDF(path, title, body string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Courier", "", 9)
	for _, line := range strings.Split(body, "\n") {
		pdf.MultiCell(0, 4.5, line, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF %q: %w", path, err)
	}
	return nil
}
