package serve

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verluna/site/internal/cfg"
)

// countingHandler counts log records with a given message while
// delegating everything to the wrapped handler.
type countingHandler struct {
	inner slog.Handler
	msg   string
	n     *atomic.Int32
}

func (h countingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h countingHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Message == h.msg {
		h.n.Add(1)
	}
	return h.inner.Handle(ctx, r)
}

func (h countingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return countingHandler{inner: h.inner.WithAttrs(attrs), msg: h.msg, n: h.n}
}

func (h countingHandler) WithGroup(name string) slog.Handler {
	return countingHandler{inner: h.inner.WithGroup(name), msg: h.msg, n: h.n}
}

func countRebuilds(t *testing.T) *atomic.Int32 {
	t.Helper()
	var n atomic.Int32
	old := slog.Default()
	// delegate to a fresh handler rather than the stdlib default: the
	// default handler emits through the log package, whose mutex is
	// already held when slog.SetDefault's log bridge re-enters it
	inner := slog.NewTextHandler(io.Discard, nil)
	slog.SetDefault(slog.New(countingHandler{inner: inner, msg: "index rebuilt", n: &n}))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &n
}

func TestWatchLoop_OneChangeOneRebuild(t *testing.T) {
	s, _ := newTestServer(t, &fakeMailer{}, nil)
	s.cfg.ContentDir = s.posts.Dir()

	rebuilds := countRebuilds(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, s.startWatch(ctx))
	t.Cleanup(func() { _ = s.watcher.Close() })

	writePost(t, s.posts.Dir(), "delta", postDoc("Delta", "2025-04-01", "tutorial", false, false))

	// the debounce window is 200ms: one burst of events must collapse
	// into exactly one rebuild, and the timer must not keep firing
	time.Sleep(1200 * time.Millisecond)
	assert.EqualValues(t, 1, rebuilds.Load())
}

func TestWatchLoop_BurstCollapsesIntoOneRebuild(t *testing.T) {
	s, _ := newTestServer(t, &fakeMailer{}, nil)
	s.cfg.ContentDir = s.posts.Dir()

	rebuilds := countRebuilds(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, s.startWatch(ctx))
	t.Cleanup(func() { _ = s.watcher.Close() })

	for _, slug := range []string{"echo", "foxtrot", "golf"} {
		writePost(t, s.posts.Dir(), slug, postDoc(slug, "2025-04-01", "tutorial", false, false))
	}

	time.Sleep(1200 * time.Millisecond)
	assert.EqualValues(t, 1, rebuilds.Load())
}

func TestNew_UnconfiguredServices(t *testing.T) {
	c := &cfg.Cfg{
		ContentDir:  t.TempDir(),
		AuthorsFile: filepath.Join(t.TempDir(), "authors.yml"),
		IndexPath:   filepath.Join(t.TempDir(), "index.db"),
	}
	require.False(t, c.ChatConfigured())
	require.False(t, c.MailConfigured())

	s, err := New(c)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	// both collaborators come up in their disabled state and report it
	// per request instead of failing startup
	assert.False(t, s.chat.Configured())
	assert.NotNil(t, s.mailer)
}
