// =============================================================================
// XML to CSV Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   xml2csv <file.xml>    - Convert the ASBO records of file.xml to file.csv
//   xml2csv version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core pipeline (xmlparser -> converter -> csvwriter)
//   - pkg/       : Shared path utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/XML-to-CSV-conversion/cmd"
)

func main() {
	cmd.Execute()
}
