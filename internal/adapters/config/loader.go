// Package config provides the settings loader for lessbuild.
package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the settings file version this loader understands.
const SupportedVersion = "1"

// Environment variable names, without domain.EnvPrefix.
const (
	EnvEngine         = "ENGINE"
	EnvAutoprefixer   = "AUTOPREFIXER"
	EnvDevel          = "DEVEL"
	EnvSourceMaps     = "SOURCE_MAPS"
	EnvWatch          = "WATCH"
	EnvImportDirs     = "IMPORT_DIRS"
	EnvRoot           = "ROOT"
	EnvOutputDir      = "OUTPUT_DIR"
	EnvPublicPath     = "PUBLIC_PATH"
	EnvTheme          = "THEME"
	EnvCacheBackend   = "CACHE_BACKEND"
	EnvCacheDir       = "CACHE_DIR"
	EnvCacheSize      = "CACHE_SIZE"
	EnvProcessTimeout = "PROCESS_TIMEOUT"
	EnvListen         = "LISTEN"
	EnvLogJSON        = "LOG_JSON"
)

// Loader implements ports.SettingsLoader. Settings are layered, later
// sources winning: defaults, lessbuild.yaml, .env, LESSBUILD_* environment
// variables and finally the caller's overrides.
type Loader struct {
	Logger  ports.Logger
	environ func() []string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, environ: os.Environ}
}

// WithEnviron replaces the process environment seen by the loader.
func (l *Loader) WithEnviron(environ func() []string) *Loader {
	l.environ = environ
	return l
}

// Load reads the settings visible from cwd.
func (l *Loader) Load(cwd string, overrides ...domain.SettingsOverride) (ports.SettingsStore, error) {
	settings, err := l.load(cwd)
	if err != nil {
		return nil, err
	}
	settings = settings.Apply(overrides...)
	resolvePaths(&settings)

	if settings.SourceMaps && !settings.DeveloperMode {
		l.warn("source maps are only emitted in developer mode")
	}

	return NewStore(settings), nil
}

func (l *Loader) load(cwd string) (domain.Settings, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return domain.Settings{}, errors.Join(domain.ErrConfigReadFailed, zerr.With(zerr.Wrap(err, "cannot resolve directory"), "cwd", cwd))
	}

	settings := domain.DefaultSettings()
	settings.Root = absCwd
	envDir := absCwd

	if configPath, ok := findSettingsFile(absCwd); ok {
		var file Settingsfile
		if err := readAndUnmarshalYAML(configPath, &file); err != nil {
			return domain.Settings{}, err
		}
		if file.Version != "" && file.Version != SupportedVersion {
			l.warn("unsupported settings version " + strconv.Quote(file.Version) + " in " + configPath)
		}
		envDir = filepath.Dir(configPath)
		if err := applyFile(&settings, &file, envDir); err != nil {
			return domain.Settings{}, zerr.With(err, "file", configPath)
		}
	}

	env, err := l.readEnv(filepath.Join(envDir, domain.EnvFileName))
	if err != nil {
		return domain.Settings{}, err
	}
	if err := applyEnv(&settings, env, absCwd); err != nil {
		return domain.Settings{}, err
	}

	return settings, nil
}

func (l *Loader) warn(msg string) {
	if l.Logger != nil {
		l.Logger.Warn(msg)
	}
}

// findSettingsFile walks up from dir looking for lessbuild.yaml.
func findSettingsFile(dir string) (string, bool) {
	current := dir
	for {
		candidate := filepath.Join(current, domain.SettingsFileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached root
			return "", false
		}
		current = parent
	}
}

func readAndUnmarshalYAML(path string, dst any) error {
	data, err := os.ReadFile(path) //nolint:gosec // Path is discovered by walking up from cwd
	if err != nil {
		return errors.Join(domain.ErrConfigReadFailed, zerr.With(zerr.Wrap(err, "failed to read settings file"), "file", path))
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return errors.Join(domain.ErrConfigParseFailed, zerr.With(zerr.Wrap(err, "failed to parse settings file"), "file", path))
	}
	return nil
}

// readEnv merges the optional dotenv file with the process environment,
// the process environment taking precedence. Only LESSBUILD_ keys are kept.
func (l *Loader) readEnv(dotenvPath string) (map[string]string, error) {
	env := make(map[string]string)

	dotenv, err := godotenv.Read(dotenvPath)
	switch {
	case err == nil:
		maps.Copy(env, dotenv)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, errors.Join(domain.ErrConfigParseFailed, zerr.With(zerr.Wrap(err, "failed to read dotenv file"), "file", dotenvPath))
	}

	for _, kv := range l.environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			env[key] = value
		}
	}

	for key := range env {
		if !strings.HasPrefix(key, domain.EnvPrefix) {
			delete(env, key)
		}
	}
	return env, nil
}

func applyFile(s *domain.Settings, f *Settingsfile, configDir string) error {
	s.Root = resolveRoot(configDir, f.Root)
	setString(&s.Engine, f.Engine)
	setBool(&s.Autoprefixer, f.Autoprefixer)
	setBool(&s.DeveloperMode, f.DeveloperMode)
	setBool(&s.SourceMaps, f.SourceMaps)
	setBool(&s.WatchMode, f.Watch)
	if len(f.ImportDirectories) > 0 {
		s.ImportDirectories = append([]string(nil), f.ImportDirectories...)
	}
	setString(&s.OutputDir, f.OutputDir)
	setString(&s.PublicPath, f.PublicPath)
	setString(&s.Theme, f.Theme)
	setString(&s.CacheBackend, f.Cache.Backend)
	setString(&s.CacheDir, f.Cache.Dir)
	if f.Cache.Size > 0 {
		s.CacheSize = f.Cache.Size
	}
	setString(&s.Listen, f.Listen)

	if f.ProcessTimeout != "" {
		d, err := time.ParseDuration(f.ProcessTimeout)
		if err != nil {
			return errors.Join(domain.ErrConfigParseFailed, zerr.With(zerr.Wrap(err, "invalid duration"), "key", "process_timeout"))
		}
		s.ProcessTimeout = d
	}
	return nil
}

//nolint:cyclop // flat list of keys
func applyEnv(s *domain.Settings, env map[string]string, cwd string) error {
	lookup := func(name string) (string, bool) {
		v, ok := env[domain.EnvPrefix+name]
		return v, ok && v != ""
	}

	strs := map[string]*string{
		EnvEngine:       &s.Engine,
		EnvOutputDir:    &s.OutputDir,
		EnvPublicPath:   &s.PublicPath,
		EnvTheme:        &s.Theme,
		EnvCacheBackend: &s.CacheBackend,
		EnvCacheDir:     &s.CacheDir,
		EnvListen:       &s.Listen,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		EnvAutoprefixer: &s.Autoprefixer,
		EnvDevel:        &s.DeveloperMode,
		EnvSourceMaps:   &s.SourceMaps,
		EnvWatch:        &s.WatchMode,
		EnvLogJSON:      &s.LogJSON,
	}
	for name, dst := range bools {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return envError(name, err)
			}
			*dst = b
		}
	}

	if v, ok := lookup(EnvRoot); ok {
		s.Root = resolveRoot(cwd, v)
	}
	if v, ok := lookup(EnvImportDirs); ok {
		s.ImportDirectories = filepath.SplitList(v)
	}
	if v, ok := lookup(EnvCacheSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvCacheSize, err)
		}
		s.CacheSize = n
	}
	if v, ok := lookup(EnvProcessTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError(EnvProcessTimeout, err)
		}
		s.ProcessTimeout = d
	}
	return nil
}

func envError(name string, err error) error {
	return errors.Join(domain.ErrConfigParseFailed, zerr.With(zerr.Wrap(err, "invalid environment value"), "variable", domain.EnvPrefix+name))
}

// resolvePaths makes every directory setting absolute, relative ones being
// taken from Root.
func resolvePaths(s *domain.Settings) {
	s.OutputDir = resolveAgainst(s.Root, s.OutputDir)
	s.CacheDir = resolveAgainst(s.Root, s.CacheDir)
	for i, dir := range s.ImportDirectories {
		s.ImportDirectories[i] = resolveAgainst(s.Root, dir)
	}
}

func resolveRoot(base, root string) string {
	if root == "" {
		return base
	}
	return resolveAgainst(base, root)
}

func resolveAgainst(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
