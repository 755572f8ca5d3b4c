package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal state directory.
	StateDirName = ".lessbuild"

	// CacheDirName is the name of the cache backend directory.
	CacheDirName = "cache"

	// FilesDirName is the name of the compiled output directory.
	FilesDirName = "files"

	// SettingsFileName is the name of the settings file.
	SettingsFileName = "lessbuild.yaml"

	// EnvFileName is the name of the optional dotenv file.
	EnvFileName = ".env"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "LESSBUILD_"

	// LessExt is the extension of LESS sources.
	LessExt = ".less"

	// CSSExt is the extension of compiled stylesheets.
	CSSExt = ".css"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default directory of the file cache backend.
// It joins .lessbuild and cache.
func DefaultCachePath() string {
	return filepath.Join(StateDirName, CacheDirName)
}

// DefaultOutputPath returns the default directory for compiled stylesheets.
// It joins .lessbuild and files.
func DefaultOutputPath() string {
	return filepath.Join(StateDirName, FilesDirName)
}
