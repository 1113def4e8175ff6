// =============================================================================
// XML to CSV Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// converts the XML file named by its single positional argument.
//
// COBRA CLI STRUCTURE:
//   rootCmd (xml2csv <file.xml>)
//   └── versionCmd (xml2csv version)
//
// CONSOLE OUTPUT:
//   Human-readable messages go to stdout (success, warning) and stderr
//   (errors). The structured log goes to stderr at the configured level.
//   Any failure exits with status 1.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/converter"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/logging"
	"github.com/ginjaninja78/XML-to-CSV-conversion/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// A missing file at the default path is not an error.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// xlsxExport also writes an .xlsx workbook next to the CSV file.
var xlsxExport bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "xml2csv <file.xml>",
	Short: "XML to CSV Converter - Flatten ASBO message files into CSV",
	Long: `XML to CSV Converter reads one XML message file, finds every <ASBO>
record element and writes one CSV row per record.

The CSV header is the union of all field names found under any record, in the
order they first appear. Records missing a field get an empty value. Every
field is quoted.

The output file has the same name as the input with a .csv extension. If the
file has no <ASBO> records, an empty output file is created and a warning is
printed.

Example Usage:
  xml2csv messages.xml                 # writes messages.csv
  xml2csv messages.xml --xlsx          # also writes messages.xlsx
  xml2csv messages.xml --config my.yaml`,

	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args[0])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file (optional)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.Flags().BoolVar(
		&xlsxExport,
		"xlsx",
		false,
		"Also write an .xlsx workbook next to the CSV file",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runConvert resolves the input path, sets up configuration and logging, and
// runs one conversion.
func runConvert(cmd *cobra.Command, fileName string) error {
	inputPath, err := utils.ResolveInputPath(fileName)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if xlsxExport {
		cfg.XLSXExport = true
	}

	logger, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger = logger.With(slog.String("run_id", uuid.New().String()))

	result := converter.New(inputPath, cfg, logger).Run()
	if result.Error != nil {
		return result.Error
	}

	printSummary(cmd.OutOrStdout(), result)
	return nil
}

// printSummary writes the human-readable outcome of a successful run.
func printSummary(w io.Writer, result converter.Result) {
	if result.Warning != "" {
		fmt.Fprintf(w, "Warning: %s\n", result.Warning)
		fmt.Fprintf(w, "Created empty file: %s\n", result.OutputFile)
		return
	}

	fmt.Fprintf(w, "File successfully created: %s\n", result.OutputFile)
	if result.XLSXFile != "" {
		fmt.Fprintf(w, "Workbook created:          %s\n", result.XLSXFile)
	}
	fmt.Fprintf(w, "  Records: %d\n", result.Stats.Records)
	fmt.Fprintf(w, "  Columns: %d\n", result.Stats.Columns)
	if size, err := utils.FileSize(result.OutputFile); err == nil {
		fmt.Fprintf(w, "  Size:    %d bytes\n", size)
	}
	fmt.Fprintf(w, "  Time:    %s\n", result.Stats.ProcessingTime)
}
