package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lessbuild/internal/core/domain"
)

func TestCacheKey_Stable(t *testing.T) {
	key := domain.CacheKey("/css/main.less")

	assert.Equal(t, "fY8mLJxMPWpUj2J1CVhAt_mZbSb0xL8r7eDuAIkaJ4U", key)
	assert.Equal(t, key, domain.CacheKey("/css/main.less"))
	assert.NotEqual(t, key, domain.CacheKey("/css/other.less"))
	assert.NotContains(t, key, "=")
}

func TestArtifactAndWatchKeys_DoNotCollide(t *testing.T) {
	artifact := domain.ArtifactKey("/css/main.less")
	watch := domain.WatchKey("/css/main.less")

	assert.NotEqual(t, artifact, watch)
	assert.True(t, strings.HasPrefix(artifact, domain.ArtifactKeyPrefix))
	assert.True(t, strings.HasPrefix(watch, domain.WatchKeyPrefix))
	assert.Equal(t, strings.TrimPrefix(artifact, domain.ArtifactKeyPrefix), strings.TrimPrefix(watch, domain.WatchKeyPrefix))
}

func TestNewDependencySet(t *testing.T) {
	tests := []struct {
		name     string
		main     string
		imports  []string
		expected []string
	}{
		{
			name:     "main only",
			main:     "/a/main.less",
			expected: []string{"/a/main.less"},
		},
		{
			name:     "keeps import order",
			main:     "/a/main.less",
			imports:  []string{"/a/b.less", "/a/c.less"},
			expected: []string{"/a/main.less", "/a/b.less", "/a/c.less"},
		},
		{
			name:     "drops duplicates and empty paths",
			main:     "/a/main.less",
			imports:  []string{"/a/b.less", "", "/a/main.less", "/a/b.less"},
			expected: []string{"/a/main.less", "/a/b.less"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NewDependencySet(tt.main, tt.imports...))
		})
	}
}

func TestSettings_SourceMapsRequireDeveloperMode(t *testing.T) {
	s := domain.DefaultSettings()
	s.SourceMaps = true
	assert.False(t, s.SourceMapsEnabled())

	s.DeveloperMode = true
	assert.True(t, s.SourceMapsEnabled())
}

func TestSettings_Get(t *testing.T) {
	s := domain.DefaultSettings()
	s.WatchMode = true

	assert.Equal(t, domain.EngineLessc, s.Get(domain.KeyEngine))
	assert.Equal(t, "true", s.Get(domain.KeyWatchMode))
	assert.Equal(t, "false", s.Get(domain.KeyAutoprefixer))
	assert.Empty(t, s.Get("unknown"))
}

func TestSettings_WithImportDirectoriesCopies(t *testing.T) {
	dirs := []string{"/a", "/b"}
	s := domain.DefaultSettings().WithImportDirectories(dirs...)
	dirs[0] = "/changed"

	assert.Equal(t, []string{"/a", "/b"}, s.ImportDirectories)
}

func TestSettings_ApplyDoesNotMutate(t *testing.T) {
	base := domain.DefaultSettings().WithImportDirectories("/a")

	got := base.Apply(func(s *domain.Settings) {
		s.Engine = domain.EngineBundle
		s.ImportDirectories[0] = "/changed"
	}, nil)

	assert.Equal(t, domain.EngineBundle, got.Engine)
	assert.Equal(t, []string{"/changed"}, got.ImportDirectories)
	assert.Equal(t, domain.EngineLessc, base.Engine)
	assert.Equal(t, []string{"/a"}, base.ImportDirectories)
}
