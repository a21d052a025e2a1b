/*
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package analogging is the leveled logging sink every other package in
// this module writes through. It mirrors the teacher's jacobin/log package
// -- a Log call plus a package-level SetLevel -- but backs it with logrus
// instead of a hand-rolled writer, and tags each message with a component
// name: Log(component, msg) writes at debug level, and Tracef/Infof/Warnf/
// Errorf choose the level by name.
package analogging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Severity mirrors jacobin/log's level constants (FINE/INFO/WARNING/SEVERE),
// renamed to their logrus counterparts' intent.
type Severity int

const (
	Trace Severity = iota
	Fine
	Info
	Warning
	Severe
)

var logger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}()

// SetLevel adjusts the minimum severity that reaches the sink.
func SetLevel(sev Severity) {
	switch sev {
	case Trace:
		logger.SetLevel(logrus.TraceLevel)
	case Fine:
		logger.SetLevel(logrus.DebugLevel)
	case Info:
		logger.SetLevel(logrus.InfoLevel)
	case Warning:
		logger.SetLevel(logrus.WarnLevel)
	case Severe:
		logger.SetLevel(logrus.ErrorLevel)
	}
}

// Log writes msg at debug level, component-tagged the way the teacher tags
// its trace output with the originating subsystem.
func Log(component, msg string) { logger.WithField("component", component).Debug(msg) }

func Tracef(component, format string, args ...interface{}) {
	logger.WithField("component", component).Tracef(format, args...)
}

func Infof(component, format string, args ...interface{}) {
	logger.WithField("component", component).Infof(format, args...)
}

func Warnf(component, format string, args ...interface{}) {
	logger.WithField("component", component).Warnf(format, args...)
}

func Errorf(component, format string, args ...interface{}) {
	logger.WithField("component", component).Errorf(format, args...)
}
