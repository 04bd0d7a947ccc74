// Package logging is the library's logging sink. It wraps a single
// charmbracelet logger shared by all packages; the host application can
// raise the verbosity or swap the writer.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

func logger() *log.Logger {
	once.Do(func() {
		singleton = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "resound",
		})
		singleton.SetLevel(log.InfoLevel)
	})
	return singleton
}

// SetDebug toggles debug-level output.
func SetDebug(on bool) {
	if on {
		logger().SetLevel(log.DebugLevel)
	} else {
		logger().SetLevel(log.InfoLevel)
	}
}

// SetOutput redirects the sink, e.g. to a file or io.Discard.
func SetOutput(w io.Writer) {
	logger().SetOutput(w)
}

func Debugf(msg string, args ...interface{}) {
	logger().Debugf(msg, args...)
}

func Infof(msg string, args ...interface{}) {
	logger().Infof(msg, args...)
}

func Warnf(msg string, args ...interface{}) {
	logger().Warnf(msg, args...)
}

func Errorf(msg string, args ...interface{}) {
	logger().Errorf(msg, args...)
}
