package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessbuild/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing to a buffer without ANSI escapes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_InfoWarn(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{name: "info", log: func(l *logger.Logger) { l.Info("some message") }, goldenName: "info_basic"},
		{name: "empty info", log: func(l *logger.Logger) { l.Info("") }, goldenName: "info_empty"},
		{name: "warn", log: func(l *logger.Logger) { l.Warn("some warning") }, goldenName: "warn_basic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 30: cannot unmarshal"),
			goldenName: "error_multiline",
		},
		{
			name: "stdlib chain",
			err: fmt.Errorf("failed to initialize service: %w",
				fmt.Errorf("failed to connect to database: %w", errors.New("connection refused"))),
			goldenName: "error_chain_stdlib",
		},
		{
			name:       "joined sentinel",
			err:        errors.Join(errors.New("less compilation failed"), errors.New("import not found")),
			goldenName: "error_joined",
		},
		{
			name: "nested join",
			err: errors.Join(
				errors.New("less compilation failed"),
				errors.Join(errors.New("import not found"), errors.New("open partial.less: no such file")),
			),
			goldenName: "error_joined_nested",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestCollectMessages_Zerr(t *testing.T) {
	sentinel := zerr.New("less compilation failed")
	cause := zerr.Wrap(errors.New("exit status 1"), "lessc failed")

	messages := logger.CollectMessages(errors.Join(sentinel, cause))

	assert.Equal(t, []string{"less compilation failed", "lessc failed", "exit status 1"}, messages)
}

func TestFormatMessages(t *testing.T) {
	assert.Equal(t, "Error: only", logger.FormatMessages([]string{"only"}))
	assert.Equal(t,
		"Error: top\n\n  Caused by:\n    → a\n    → b\n      more",
		logger.FormatMessages([]string{"top", "a", "b\nmore"}))
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.Wrap(errors.New("database connection failed"), "failed to load user data"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error"`)
	assert.Contains(t, out, "failed to load user data")
	assert.NotContains(t, out, "✗")

	buf.Reset()
	lg.SetJSON(false)
	lg.Warn("back to pretty")
	assert.Equal(t, "! back to pretty\n", buf.String())
}

func TestLogger_StdLogger(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.StdLogger().Print("http: TLS handshake error")

	require.Contains(t, buf.String(), "http: TLS handshake error")
	assert.Contains(t, buf.String(), "✗")
}
