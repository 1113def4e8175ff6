// =============================================================================
// XML to CSV Converter - File Management Utilities
// =============================================================================
//
// Path helpers shared by the command layer and the converter:
//   - Resolving the user's input argument to an absolute path
//   - Deriving output paths from the input path
//   - Small file queries used in summaries and tests
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveInputPath turns the command-line argument into an absolute path,
// relative to the current working directory. It does not check existence;
// that is the loader's job, so the error is reported in one place.
func ResolveInputPath(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("input file name is empty")
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	return abs, nil
}

// OutputPath replaces the extension of inputPath with ext, keeping the
// directory and base name. A path without an extension gets ext appended.
// Leading dots belong to the stem, so ".xml" and "..xml" have no extension.
//
// EXAMPLE:
//   OutputPath("/data/messages.xml", ".csv")  -> "/data/messages.csv"
//   OutputPath("/data/messages", ".csv")      -> "/data/messages.csv"
//   OutputPath("/data/v1.2/report.xml", ".csv") -> "/data/v1.2/report.csv"
//   OutputPath("/data/..xml", ".csv")         -> "/data/..xml.csv"
func OutputPath(inputPath, ext string) string {
	stem := strings.TrimLeft(filepath.Base(inputPath), ".")
	current := filepath.Ext(stem)
	return strings.TrimSuffix(inputPath, current) + ext
}

// FileExists reports whether path names an existing regular file.
// Directories and unreadable paths report false.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FileSize returns the size in bytes of the file at path.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Size(), nil
}
