// =============================================================================
// XML to CSV Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the whole
// pipeline for one input file, from XML parsing to the CSV file on disk.
//
// CONVERSION PIPELINE:
//   1. Load the XML document and detect the root namespace
//   2. Find every record element (ASBO) in that namespace
//   3. Collect the header: all field names, first occurrence order
//   4. Project every record onto the header
//   5. Validate the table
//   6. Write the CSV file (and, if enabled, the XLSX workbook)
//
// Steps 3 and 4 are separate passes. The header must be complete before the
// first row can be written.
//
// ZERO RECORDS:
//   A document without records is not an error. An empty output file is
//   created and Result.Warning is set.
//
// =============================================================================

package converter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/csvwriter"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/validation"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/xlsxwriter"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/xmlparser"
	"github.com/ginjaninja78/XML-to-CSV-conversion/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// FilePath is the input file that was processed.
	FilePath string

	// OutputFile is the CSV file written. Set once the CSV (or the empty
	// file for a record-less document) is on disk.
	OutputFile string

	// XLSXFile is the workbook written, "" when the export is disabled or
	// was skipped.
	XLSXFile string

	// Success indicates whether the conversion completed.
	Success bool

	// Warning is set when the run succeeded but the user should know
	// something, such as an empty record set.
	Warning string

	// Error contains the error if the conversion failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the conversion.
type ProcessingStats struct {
	// Namespace is the root namespace records were searched in.
	Namespace string

	// Records is the number of record elements found.
	Records int

	// Columns is the number of header columns.
	Columns int

	// BytesWritten is the size of the CSV file.
	BytesWritten int64

	// ProcessingTime is the time taken for the whole pipeline.
	ProcessingTime time.Duration
}

// EmptyRecordSetWarning builds the warning reported when no records exist.
func EmptyRecordSetWarning(recordTag string) string {
	return fmt.Sprintf("no <%s> elements found in the XML file, the output CSV file will be empty", recordTag)
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single XML file to CSV.
type Converter struct {
	// inputPath is the absolute path of the input XML file.
	inputPath string

	// cfg is the application configuration.
	cfg *config.Config

	logger *slog.Logger
}

// New creates a new Converter.
//
// PARAMETERS:
//   - inputPath: The path to the input XML file.
//   - cfg: The application configuration; nil means config.Default().
//   - logger: The structured logger; nil means slog.Default().
func New(inputPath string, cfg *config.Config, logger *slog.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		inputPath: inputPath,
		cfg:       cfg,
		logger:    logger.With(slog.String("input", inputPath)),
	}
}

// OutputPath returns the CSV path derived from the input path.
func (c *Converter) OutputPath() string {
	return utils.OutputPath(c.inputPath, c.cfg.OutputExtension)
}

// XLSXPath returns the workbook path derived from the input path.
func (c *Converter) XLSXPath() string {
	return utils.OutputPath(c.inputPath, ".xlsx")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - A Result describing the outcome. Result.Error holds a NOT_FOUND,
//     PARSE, VALIDATION or WRITE error from internal/errors on failure.
//
// Failures and the empty record set are logged at debug level only. The
// caller owns the message shown to the user.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result = Result{FilePath: c.inputPath}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	// =========================================================================
	// STEP 1: LOAD DOCUMENT
	// =========================================================================

	c.logger.Debug("Loading XML document")

	doc, err := xmlparser.Load(c.inputPath)
	if err != nil {
		c.logger.Debug("Failed to load XML document", slog.String("error", err.Error()))
		result.Error = err
		return result
	}
	result.Stats.Namespace = doc.Namespace

	c.logger.Debug("Loaded XML document",
		slog.String("root", doc.Root().Tag),
		slog.String("namespace", doc.Namespace))

	// =========================================================================
	// STEP 2: FIND RECORDS
	// =========================================================================

	records := doc.FindRecords(c.cfg.RecordTag)
	result.Stats.Records = len(records)
	outputPath := c.OutputPath()

	for _, record := range records {
		c.logger.Debug("Found record",
			slog.Int("record", record.Ordinal),
			slog.String("path", record.Path),
			slog.Int("fields", len(record.Fields)))
	}

	if utils.FileExists(outputPath) {
		c.logger.Debug("Replacing existing output file", slog.String("output", outputPath))
	}

	if len(records) == 0 {
		// The caller reports the warning to the user.
		c.logger.Debug("No record elements found",
			slog.String("record_tag", c.cfg.RecordTag),
			slog.String("namespace", doc.Namespace))

		if err := csvwriter.WriteEmptyFile(outputPath); err != nil {
			result.Error = err
			return result
		}
		result.OutputFile = outputPath
		result.Warning = EmptyRecordSetWarning(c.cfg.RecordTag)
		result.Success = true
		return result
	}

	// =========================================================================
	// STEP 3-4: COLLECT HEADERS, PROJECT ROWS
	// =========================================================================

	table := BuildTable(records)
	result.Stats.Columns = len(table.Header)

	c.logger.Info("Built table",
		slog.Int("records", len(records)),
		slog.Int("columns", len(table.Header)))

	// =========================================================================
	// STEP 5: VALIDATE
	// =========================================================================

	if err := validation.Validate(table); err != nil {
		c.logger.Debug("Table validation failed", slog.String("error", err.Error()))
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 6: WRITE OUTPUT
	// =========================================================================

	written, err := csvwriter.WriteFile(outputPath, table)
	result.Stats.BytesWritten = written
	if err != nil {
		c.logger.Debug("Failed to write CSV file",
			slog.String("output", outputPath),
			slog.String("error", err.Error()))
		result.Error = err
		return result
	}
	result.OutputFile = outputPath

	c.logger.Info("Wrote CSV file",
		slog.String("output", outputPath),
		slog.Int64("bytes", written))

	if c.cfg.XLSXExport {
		if err := c.writeWorkbook(table); err != nil {
			result.Error = err
			return result
		}
		result.XLSXFile = c.XLSXPath()
	}

	result.Success = true
	return result
}

// writeWorkbook writes the optional XLSX export.
func (c *Converter) writeWorkbook(table *types.Table) error {
	path := c.XLSXPath()
	if err := xlsxwriter.WriteFile(path, c.cfg.XLSXSheetName, table); err != nil {
		c.logger.Debug("Failed to write XLSX file",
			slog.String("output", path),
			slog.String("error", err.Error()))
		return err
	}
	c.logger.Info("Wrote XLSX file", slog.String("output", path))
	return nil
}
