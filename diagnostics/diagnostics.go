// Package diagnostics represent utiltiy methods for diagnostics messages
package diagnostics

import (
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Log is the logger shared by the converter and the command line
var Log = commonlog.GetLogger("javakt")

// Configure sets the log verbosity, 0 keeps only errors
func Configure(verbosity int) {
	commonlog.Configure(verbosity, nil)
}

// Fatal prints a fatal error message and exits if err is not nil
func Fatal(msg string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Fatal: %s: %v\n", msg, err)
	os.Exit(1)
}

// MigrationError represents a construct that could not be converted
type MigrationError struct {
	Location   string // e.g., "Foo.java:12:5 class Foo.method bar"
	JavaSource string // The Java code that failed
	Message    string
	NodeKind   string
}

func (e MigrationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Collector accumulates the migration errors of one compilation unit
type Collector struct {
	errors []MigrationError
}

// Add records err and reports it as a warning
func (c *Collector) Add(err MigrationError) {
	c.errors = append(c.errors, err)
	Log.Warningf("%s: %s", err.Location, err.Message)
}

// Errors returns the recorded errors in the order they were found
func (c *Collector) Errors() []MigrationError {
	if c == nil {
		return nil
	}
	return c.errors
}
