package pipeline_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessbuild/internal/core/domain"
	"go.trai.ch/lessbuild/internal/core/ports/mocks"
	"go.trai.ch/lessbuild/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

func TestWatchNotifier_UnknownURL(t *testing.T) {
	f := newFixture(t)
	p := newPipeline(t, f.settings(), newBackend(t))

	changes, err := p.Notifier.Poll(context.Background(), []string{"/less/never-rendered.less"})
	require.NoError(t, err)
	assert.NotNil(t, changes)
	assert.Empty(t, changes)
}

func TestWatchNotifier_NoInput(t *testing.T) {
	f := newFixture(t)
	p := newPipeline(t, f.settings(), newBackend(t))

	changes, err := p.Notifier.Poll(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, changes)
	assert.Empty(t, changes)
}

func TestWatchNotifier_Unchanged(t *testing.T) {
	f := newFixture(t)
	p := newPipeline(t, f.settings(), newBackend(t))
	ctx := context.Background()

	rendered, err := p.Renderer.Render(ctx, "", []domain.RenderFile{{URLPath: "/less/main.less", InputFile: f.main}})
	require.NoError(t, err)
	backdate(t, rendered[0].OutputFile)

	changes, err := p.Notifier.Poll(ctx, []string{"http://localhost/less/main.less?v=1"})
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestWatchNotifier_ChangedPartial(t *testing.T) {
	f := newFixture(t)
	p := newPipeline(t, f.settings(), newBackend(t))
	ctx := context.Background()

	rendered, err := p.Renderer.Render(ctx, "", []domain.RenderFile{{URLPath: "/less/main.less", InputFile: f.main}})
	require.NoError(t, err)
	oldOut := rendered[0].OutputFile
	backdate(t, oldOut)

	write(t, f.partial, "a { color: green; }\n")
	touchFuture(t, f.partial)

	changes, err := p.Notifier.Poll(ctx, []string{"/less/main.less"})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "/less/main.less", changes[0].OldFile)
	assert.Regexp(t, `^/files/default/main\.[0-9a-f]{16}\.css$`, changes[0].NewFile)
	assert.NotEqual(t, p.Renderer.URL(oldOut), changes[0].NewFile)
}

func TestWatchNotifier_ExplicitOutputRewritten(t *testing.T) {
	f := newFixture(t)
	p := newPipeline(t, f.settings(), newBackend(t))
	ctx := context.Background()
	target := f.root + "/out/site.css"

	_, err := p.Renderer.Render(ctx, "", []domain.RenderFile{{URLPath: "/less/main.less", InputFile: f.main, OutputFile: target}})
	require.NoError(t, err)
	backdate(t, target)

	write(t, f.partial, "a { color: green; }\n")
	touchFuture(t, f.partial)

	changes, err := p.Notifier.Poll(ctx, []string{"/less/main.less"})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "/files/site.css", changes[0].NewFile)
}

func TestWatchNotifier_RenderErrorPropagates(t *testing.T) {
	f := newFixture(t)
	p := newPipeline(t, f.settings(), newBackend(t))
	ctx := context.Background()

	_, err := p.Renderer.Render(ctx, "", []domain.RenderFile{{URLPath: "/less/main.less", InputFile: f.main}})
	require.NoError(t, err)
	require.NoError(t, os.Remove(f.partial))

	_, err = p.Notifier.Poll(ctx, []string{"/less/main.less"})
	require.ErrorIs(t, err, domain.ErrCompile)
}

func TestWatchNotifier_UnreadableEntryIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockCacheBackend(ctrl)
	log := mocks.NewMockLogger(ctrl)

	backend.EXPECT().Get(domain.WatchKey("/less/main.less"), gomock.Any()).Return(false, domain.ErrCacheReadFailed)
	log.EXPECT().Error(gomock.Any())

	n := pipeline.NewWatchNotifier(backend, nil, nil, log)
	changes, err := n.Poll(context.Background(), []string{"/less/main.less"})
	require.NoError(t, err)
	assert.Empty(t, changes)
}
