// Package log provides the logging facility shared by every graphpipe
// package. It mirrors the logging seam the rest of the module is built
// against: a small interface that host applications can satisfy with their
// own logger, and a logrus-backed default.
package log

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

var debug bool

// Logger is a minimal logging interface implemented by *logrus.Logger and
// easily satisfied by a host application's own logger.
type Logger interface {
	Debug(...interface{})
	Info(...interface{})
	Warn(...interface{})
}

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv("GRAPHPIPE_DEBUG"))
	if err != nil {
		debug = false
	}
}

// New returns a new logger instance. Debug level is enabled when
// GRAPHPIPE_DEBUG is set to a truthy value.
func New() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

type silent struct{}

func (silent) Debug(...interface{}) {}
func (silent) Info(...interface{})  {}
func (silent) Warn(...interface{})  {}

// Silent is a Logger that discards everything. It is the default logger
// for components that are not given one explicitly.
var Silent Logger = silent{}
