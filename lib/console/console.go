package console

import (
	"fmt"
	"io"
	"os"

	"github.com/TwiN/go-color"
)

// Destination for all console output.
var Out io.Writer = os.Stdout

// Whether verbose messages are printed.
// Set from the CLI config (or the `VERBOSE` environment variable) on startup.
var VerboseEnabled = os.Getenv("VERBOSE") == "1"

// Log verbose message to console.
// Only printed when verbose output is enabled.
func Verbose(message string, vars ...any) {
	if !VerboseEnabled {
		return
	}

	fmt.Fprintf(Out, color.Ize(color.Gray, message+"\n"), vars...)
}

// Log success message to console.
func Success(message string, vars ...any) {
	fmt.Fprintf(Out, color.Ize(color.Green, message+"\n"), vars...)
}

// Log info message to console.
func Info(message string, vars ...any) {
	fmt.Fprintf(Out, color.Ize(color.Cyan, message+"\n"), vars...)
}

// Log warning message to console.
func Warning(message string, vars ...any) {
	fmt.Fprintf(Out, color.Ize(color.Yellow, message+"\n"), vars...)
}

// Build a colored error.
// The returned error is meant to be returned from a command action, which prints it.
func Error(message string, vars ...any) error {
	return fmt.Errorf(color.Ize(color.Red, message), vars...)
}

// Log error message to console.
func ErrorPrint(message string, vars ...any) {
	fmt.Fprintf(Out, color.Ize(color.Red, message+"\n"), vars...)
}

// Log error message to console and exit with a non-zero status code.
func Fatal(message string, vars ...any) {
	ErrorPrint(message, vars...)
	os.Exit(1)
}
