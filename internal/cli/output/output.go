package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	json "github.com/json-iterator/go"
	"github.com/o6b7/travelbond/internal/cli/config"
)

// Format is how command results are printed
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Stdout is where results are written; tests swap it for a buffer
var Stdout io.Writer = os.Stdout

var (
	heading = color.New(color.FgCyan, color.Bold)
	muted   = color.New(color.Faint)
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
)

// GetFormat returns the configured output format
func GetFormat() Format {
	if config.GetString("output.format") == string(FormatJSON) {
		return FormatJSON
	}
	return FormatText
}

// ValidateFormat checks a --output value
func ValidateFormat(format string) bool {
	return format == string(FormatText) || format == string(FormatJSON)
}

// JSON writes v as indented JSON
func JSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Heading writes a bold section title
func Heading(w io.Writer, format string, args ...interface{}) {
	heading.Fprintf(w, format+"\n", args...)
}

// Muted writes dim secondary text
func Muted(w io.Writer, format string, args ...interface{}) {
	muted.Fprintf(w, format+"\n", args...)
}

// Field writes an aligned "label: value" line, skipping empty values
func Field(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	success.Fprintf(Stdout, msg+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	warning.Fprintf(Stdout, "Warning: "+msg+"\n", args...)
}

// PrintError prints an error message to stderr
func PrintError(msg string, args ...interface{}) {
	failure.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
}
