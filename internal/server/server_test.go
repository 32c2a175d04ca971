package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRouterInjectsReloadScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html><body>hi</body></html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0644))

	srv := httptest.NewServer(newRouter(newHub(zap.NewNop()), dir))
	defer srv.Close()

	status, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "new WebSocket")
	assert.True(t, strings.HasSuffix(body, "</body></html>"))

	status, body = get(t, srv.URL+"/style.css")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "body{}", body)

	status, body = get(t, srv.URL+"/missing.html")
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotContains(t, body, "WebSocket")
}

func TestHubBroadcast(t *testing.T) {
	hub := newHub(zap.NewNop())
	srv := httptest.NewServer(newRouter(hub, t.TempDir()))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.count() == 1 }, time.Second, 10*time.Millisecond)
	hub.broadcast([]byte("reload"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "reload", string(msg))

	conn.Close()
	require.Eventually(t, func() bool { return hub.count() == 0 }, time.Second, 10*time.Millisecond)
}

func TestWatchPathsSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "content", "guide"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.yaml"), []byte("title: x"), 0644))

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	err = watchPaths(w, []string{
		filepath.Join(dir, "content"),
		filepath.Join(dir, "site.yaml"),
		filepath.Join(dir, "nope"),
	}, zap.NewNop())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "content"),
		filepath.Join(dir, "content", "guide"),
		dir,
	}, w.WatchList())
}

func TestWatchRebuildsAfterQuietPeriod(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "page.md")
	require.NoError(t, os.WriteFile(file, []byte("one"), 0644))

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(dir))

	var builds atomic.Int32
	build := func(ctx context.Context, clean bool) error {
		// an edit saved while the first rebuild runs must not be lost
		if builds.Add(1) == 1 {
			return os.WriteFile(file, []byte("edited during build"), 0644)
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watchForChanges(ctx, w, newHub(zap.NewNop()), build, 50*time.Millisecond, zap.NewNop())

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte(fmt.Sprintf("burst %d", i)), 0644))
	}
	require.Eventually(t, func() bool { return builds.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(2), builds.Load(), "a burst of writes is one rebuild")
}
