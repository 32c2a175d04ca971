// internal/server/server.go
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildFunc rebuilds the site. clean asks for the output directory to be
// emptied first.
type BuildFunc func(ctx context.Context, clean bool) error

// Config describes what the dev server serves and watches.
type Config struct {
	Port      int
	OutputDir string
	Watch     []string
	Debounce  time.Duration
	Logger    *zap.Logger
}

const defaultDebounce = 500 * time.Millisecond

// Run builds once, then serves OutputDir with live reload until ctx ends.
func Run(ctx context.Context, cfg Config, build BuildFunc) error {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	if err := build(ctx, true); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	hub := newHub(log)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchPaths(watcher, cfg.Watch, log); err != nil {
		return err
	}
	go watchForChanges(ctx, watcher, hub, build, cfg.Debounce, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: newRouter(hub, cfg.OutputDir),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Serving site", zap.String("url", fmt.Sprintf("http://localhost:%d", cfg.Port)))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newRouter(hub *Hub, outputDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", hub.serveWs)
	r.Handle("/*", liveReloadWrapper(http.FileServer(http.Dir(outputDir))))
	return r
}

// watchPaths registers every directory under the given paths. Plain files are
// watched through their parent so editors that save by rename are seen.
func watchPaths(watcher *fsnotify.Watcher, paths []string, log *zap.Logger) error {
	watched := make(map[string]bool)
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if watched[dir] {
			return
		}
		if err := watcher.Add(dir); err != nil {
			log.Warn("Could not watch directory", zap.String("dir", dir), zap.Error(err))
			return
		}
		log.Debug("Watching directory", zap.String("dir", dir))
		watched[dir] = true
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("could not stat path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(filepath.Dir(path))
			continue
		}
		if err := filepath.Walk(path, func(walkPath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				add(walkPath)
			}
			return nil
		}); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
	}
	return nil
}

// watchForChanges rebuilds once the watched files have been quiet for the
// debounce interval. Changes arriving during a rebuild schedule another one.
func watchForChanges(ctx context.Context, watcher *fsnotify.Watcher, hub *Hub, build BuildFunc, debounce time.Duration, log *zap.Logger) {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	var changed string
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			changed = event.Name
			timer.Reset(debounce)
		case <-timer.C:
			log.Info("Change detected, rebuilding", zap.String("file", changed))
			if err := build(ctx, false); err != nil {
				log.Error("Rebuild failed", zap.Error(err))
				continue
			}
			log.Info("Site rebuilt, reloading clients", zap.Int("clients", hub.count()))
			hub.broadcast([]byte("reload"))
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn("Watcher error", zap.Error(err))
		}
	}
}

// liveReloadWrapper disables caching and injects the reload script into
// successful HTML responses.
func liveReloadWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		if !strings.HasSuffix(r.URL.Path, ".html") && !strings.HasSuffix(r.URL.Path, "/") {
			next.ServeHTTP(w, r)
			return
		}

		iw := newInterceptingWriter()
		next.ServeHTTP(iw, r)
		for key, values := range iw.header {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}

		body := iw.body.Bytes()
		if iw.statusCode == http.StatusOK {
			body = bytes.Replace(body, []byte("</body>"), []byte(liveReloadScript+"</body>"), 1)
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(body)))
		w.WriteHeader(iw.statusCode)
		w.Write(body)
	})
}

type interceptingWriter struct {
	body       *bytes.Buffer
	statusCode int
	header     http.Header
}

func newInterceptingWriter() *interceptingWriter {
	return &interceptingWriter{
		body:       new(bytes.Buffer),
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (iw *interceptingWriter) Header() http.Header         { return iw.header }
func (iw *interceptingWriter) Write(b []byte) (int, error) { return iw.body.Write(b) }
func (iw *interceptingWriter) WriteHeader(statusCode int)  { iw.statusCode = statusCode }

const liveReloadScript = `
<script>
  (function() {
    var socket = new WebSocket("ws://" + window.location.host + "/ws");
    socket.onmessage = function(event) {
      if (event.data === "reload") {
        window.location.reload();
      }
    };
    socket.onerror = function() {
      console.error("Live reload connection error. Please restart 'folio serve'.");
    };
  })();
</script>
`
