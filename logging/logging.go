/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package logging

import (
	stdlog "log"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags used in structured logger contexts.
const (
	SourceApp        = "app"
	SourceExtract    = "extract"
	SourceExport     = "export"
	SourceImport     = "import"
	SourceDB         = "db"
	SourceWebRequest = "web_request"
)

var (
	initOnce   sync.Once
	baseLogger *log.Logger

	childMu  sync.Mutex
	children []*log.Logger
)

// Init configures the base logger and stdlib log output.
func Init() {
	initOnce.Do(func() {
		baseLogger = log.NewWithOptions(os.Stderr, log.Options{
			TimeFunction:    log.NowUTC,
			TimeFormat:      time.RFC3339Nano,
			Level:           log.InfoLevel,
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})

		stdLogger := baseLogger.With("source", SourceApp).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})

		stdlog.SetFlags(0)
		stdlog.SetOutput(stdLogger.Writer())
	})
}

// SetDebug toggles debug level output on the base logger and every source
// logger handed out so far.
func SetDebug(enabled bool) {
	Init()

	level := log.InfoLevel
	if enabled {
		level = log.DebugLevel
	}

	childMu.Lock()
	defer childMu.Unlock()

	baseLogger.SetLevel(level)
	for _, child := range children {
		child.SetLevel(level)
	}
}

// Logger returns a logfmt logger tagged with the provided source.
func Logger(source string) *log.Logger {
	Init()

	child := baseLogger.With("source", source)

	childMu.Lock()
	children = append(children, child)
	childMu.Unlock()

	return child
}

// StdLogger returns a stdlib logger that writes logfmt output with a source.
func StdLogger(source string) *stdlog.Logger {
	Init()
	return baseLogger.With("source", source).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
}
