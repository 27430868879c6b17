// Package commands contains CLI command implementations for the application.
package commands

import (
	"fmt"
	"io"
	"os"

	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// parseDetail converts the --detail flag to a piiDomain.DetailLevel.
func parseDetail(detail string) (piiDomain.DetailLevel, error) {
	switch detail {
	case "", "summary":
		return piiDomain.DetailSummary, nil
	case "full":
		return piiDomain.DetailFull, nil
	default:
		return "", fmt.Errorf("invalid detail: %s (valid options: summary, full)", detail)
	}
}

// parseFormat validates the --format flag.
func parseFormat(format string) (string, error) {
	switch format {
	case "", "json":
		return "json", nil
	case "text":
		return "text", nil
	default:
		return "", fmt.Errorf("invalid format: %s (valid options: json, text)", format)
	}
}
