// =============================================================================
// XML to CSV Converter - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   xml2csv version
//
// OUTPUT:
//   XML to CSV Converter
//   Version:    <Version>
//   Build Date: <BuildDate>
//   Go Version: <runtime version>
//   Platform:   <GOOS>/<GOARCH>
//
// Version and BuildDate are stamped at build time:
//   go build -ldflags "-X 'github.com/ginjaninja78/XML-to-CSV-conversion/cmd.Version=1.1.0' \
//                      -X 'github.com/ginjaninja78/XML-to-CSV-conversion/cmd.BuildDate=$(date -I)'"
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Version is the application version.
	Version = "dev"

	// BuildDate is the date the binary was built, "unknown" for local builds.
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeVersion(cmd.OutOrStdout())
	},
}

func writeVersion(w io.Writer) {
	fmt.Fprintln(w, "XML to CSV Converter")
	fmt.Fprintf(w, "Version:    %s\n", Version)
	fmt.Fprintf(w, "Build Date: %s\n", BuildDate)
	fmt.Fprintf(w, "Go Version: %s\n", runtime.Version())
	fmt.Fprintf(w, "Platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
