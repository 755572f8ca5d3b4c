package domain

import "go.trai.ch/zerr"

var (
	// ErrExecution is returned when an external tool cannot be started, exits
	// non-zero, or writes anything to its error stream.
	ErrExecution = zerr.New("external process execution failed")

	// ErrProcessTimeout is returned when an external tool does not exit within
	// the configured process timeout.
	ErrProcessTimeout = zerr.New("external process timed out")

	// ErrExecutableNotAllowed is returned when the runner is asked to start an
	// executable outside its allow-list.
	ErrExecutableNotAllowed = zerr.New("executable is not allow-listed")

	// ErrCompile is returned when a LESS engine rejects its input.
	ErrCompile = zerr.New("less compilation failed")

	// ErrImportNotFound is returned when an @import target cannot be resolved
	// against the importing file's directory or any import directory.
	ErrImportNotFound = zerr.New("import not found")

	// ErrUnknownEngine is returned when the configured engine is not registered.
	ErrUnknownEngine = zerr.New("unknown less engine")

	// ErrInvalidPath is returned when a path placed on a command line does not
	// name an existing regular file.
	ErrInvalidPath = zerr.New("path does not name an existing file")

	// ErrCacheReadFailed is returned when a cache backend entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache entry")

	// ErrCacheWriteFailed is returned when a cache backend entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheFlushFailed is returned when the cache backend cannot be flushed.
	ErrCacheFlushFailed = zerr.New("failed to flush cache")

	// ErrUnknownCacheBackend is returned when the configured cache backend is not supported.
	ErrUnknownCacheBackend = zerr.New("unknown cache backend")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read settings file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse settings file")

	// ErrOutputWriteFailed is returned when a compiled stylesheet cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write compiled stylesheet")

	// ErrWatchDisabled is returned when a watch-only feature is used while
	// watch mode is off.
	ErrWatchDisabled = zerr.New("watch mode is disabled")

	// ErrNoInputFiles is returned when compile is invoked without any input.
	ErrNoInputFiles = zerr.New("no input files specified")
)
