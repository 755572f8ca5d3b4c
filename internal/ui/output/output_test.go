package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/lessbuild/internal/ui/output"
	"go.trai.ch/lessbuild/internal/ui/style"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)

	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}

func TestPaint_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out := output.New(&bytes.Buffer{})

	assert.Equal(t, "ok", output.Paint(out, "ok", string(style.Green)))
}
