// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lessbuild/internal/adapters/autoprefixer"
	_ "go.trai.ch/lessbuild/internal/adapters/cachestore"
	_ "go.trai.ch/lessbuild/internal/adapters/config"
	_ "go.trai.ch/lessbuild/internal/adapters/engine"
	_ "go.trai.ch/lessbuild/internal/adapters/fs"
	_ "go.trai.ch/lessbuild/internal/adapters/logger"
	_ "go.trai.ch/lessbuild/internal/adapters/shell"
	_ "go.trai.ch/lessbuild/internal/adapters/telemetry"
	_ "go.trai.ch/lessbuild/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/lessbuild/internal/app"
	_ "go.trai.ch/lessbuild/internal/engine/pipeline"
)
