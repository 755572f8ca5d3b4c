package domain

import (
	"strconv"
	"time"
)

// Settings keys, as exposed by the settings store.
const (
	KeyEngine        = "less_engine"
	KeyAutoprefixer  = "less_autoprefixer"
	KeyDeveloperMode = "less_devel"
	KeySourceMaps    = "less_source_maps"
	KeyWatchMode     = "less_watch"
)

// Engine IDs.
const (
	EngineLessc  = "lessc"
	EngineBundle = "bundle"
)

// Cache backend IDs.
const (
	CacheBackendFile   = "file"
	CacheBackendMemory = "memory"
)

const (
	// DefaultTheme is used when a request names no theme.
	DefaultTheme = "default"
	// DefaultCacheSize is the entry limit of the in-memory cache backend.
	DefaultCacheSize = 512
	// DefaultProcessTimeout bounds every external tool invocation.
	DefaultProcessTimeout = 30 * time.Second
	// DefaultListen is the address the HTTP server binds to.
	DefaultListen = ":8080"
	// DefaultPublicPath is the URL prefix compiled files are served under.
	DefaultPublicPath = "/files"
)

// Settings is an immutable snapshot of the pipeline configuration. It is
// taken once at the start of a request and passed down explicitly.
type Settings struct {
	Engine        string
	Autoprefixer  bool
	DeveloperMode bool
	SourceMaps    bool
	WatchMode     bool

	// ImportDirectories are searched, in order, for @import targets.
	ImportDirectories []string

	// Root is the directory requested URL paths are resolved against.
	Root string
	// OutputDir receives compiled stylesheets.
	OutputDir string
	// PublicPath is the URL prefix OutputDir is served under.
	PublicPath string
	Theme      string

	CacheBackend string
	CacheDir     string
	CacheSize    int

	// ProcessTimeout bounds external tool invocations. Zero disables the bound.
	ProcessTimeout time.Duration

	Listen  string
	LogJSON bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Engine:         EngineLessc,
		Root:           ".",
		OutputDir:      DefaultOutputPath(),
		PublicPath:     DefaultPublicPath,
		Theme:          DefaultTheme,
		CacheBackend:   CacheBackendFile,
		CacheDir:       DefaultCachePath(),
		CacheSize:      DefaultCacheSize,
		ProcessTimeout: DefaultProcessTimeout,
		Listen:         DefaultListen,
	}
}

// SourceMapsEnabled reports whether source maps are emitted. They are only
// honoured in developer mode.
func (s Settings) SourceMapsEnabled() bool {
	return s.DeveloperMode && s.SourceMaps
}

// Get returns the string value of one of the settings keys, or "" for an
// unknown key.
func (s Settings) Get(key string) string {
	switch key {
	case KeyEngine:
		return s.Engine
	case KeyAutoprefixer:
		return strconv.FormatBool(s.Autoprefixer)
	case KeyDeveloperMode:
		return strconv.FormatBool(s.DeveloperMode)
	case KeySourceMaps:
		return strconv.FormatBool(s.SourceMaps)
	case KeyWatchMode:
		return strconv.FormatBool(s.WatchMode)
	default:
		return ""
	}
}

// Keys returns the settings store keys in display order.
func Keys() []string {
	return []string{KeyEngine, KeyAutoprefixer, KeyDeveloperMode, KeySourceMaps, KeyWatchMode}
}

// SettingsOverride adjusts a settings snapshot. Command line flags reach the
// pipeline this way.
type SettingsOverride func(*Settings)

// Apply returns a copy of s with overrides applied in order.
func (s Settings) Apply(overrides ...SettingsOverride) Settings {
	s.ImportDirectories = append([]string(nil), s.ImportDirectories...)
	for _, o := range overrides {
		if o != nil {
			o(&s)
		}
	}
	return s
}

// WithImportDirectories returns a copy of s with dirs as its import set.
func (s Settings) WithImportDirectories(dirs ...string) Settings {
	s.ImportDirectories = append([]string(nil), dirs...)
	return s
}
