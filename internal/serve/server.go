// Package serve wires the content pipeline, chat proxy and contact
// mailer into the HTTP server.
package serve

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"

	"github.com/verluna/site/internal/cfg"
	"github.com/verluna/site/internal/chat"
	"github.com/verluna/site/internal/domain/content"
	"github.com/verluna/site/internal/index"
	"github.com/verluna/site/internal/mail"
	"github.com/verluna/site/internal/render"
	"github.com/verluna/site/internal/store"
)

type Server struct {
	cfg *cfg.Cfg

	posts    *store.Store
	idx      *index.Store
	compiler *render.Compiler
	chat     *chat.Service
	mailer   mail.Mailer
	authors  map[string]content.Author

	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

func New(c *cfg.Cfg) (*Server, error) {
	idx, err := index.Open(index.OpenOptions{Path: c.IndexPath})
	if err != nil {
		return nil, fmt.Errorf("serve: failed to open index: %w", err)
	}

	authors, err := content.LoadAuthors(c.AuthorsFile)
	if err != nil {
		idx.Close()
		return nil, fmt.Errorf("serve: failed to load authors: %w", err)
	}

	s := &Server{
		cfg:      c,
		posts:    store.New(c.ContentDir),
		idx:      idx,
		compiler: render.NewCompiler(),
		chat: chat.New(chat.Config{
			APIKey:      c.OpenAIAPIKey,
			Model:       c.ChatModel,
			MaxTokens:   c.ChatMaxTokens,
			Temperature: c.ChatTemperature,
			Timeout:     c.ChatTimeout,
		}),
		mailer: mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			Username: c.SMTPUsername,
			Password: c.SMTPPassword,
			From:     c.MailFrom,
			To:       c.ContactEmail,
			SiteURL:  c.SiteURL,
		}),
		authors: authors,
	}

	if !c.ChatConfigured() {
		slog.Warn("no chat upstream key set, /api/chat will return errors")
	}
	if !c.MailConfigured() {
		slog.Warn("no smtp host set, /api/contact will return errors")
	}

	return s, nil
}

func (s *Server) Close() error {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	if s.idx != nil {
		return s.idx.Close()
	}
	return nil
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.rebuild(); err != nil {
		return err
	}

	if err := s.startWatch(ctx); err != nil {
		return err
	}

	if !s.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := s.newEngine()

	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(corsMiddleware())

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/insights", s.handleListInsights)
		api.GET("/insights/featured", s.handleFeaturedInsights)
		api.GET("/insights/:slug", s.handleGetInsight)
		api.POST("/chat", s.handleChat)
		api.POST("/contact", s.handleContact)
	}

	return r
}

// rebuild replaces the index with a fresh load of the whole corpus.
// Per-post failures are logged and skipped; one bad post never takes
// down the listing.
func (s *Server) rebuild() error {
	metas, warns, err := s.posts.LoadAll()
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	for _, w := range warns {
		slog.Warn("skipped post", "slug", w.Slug, "reason", w.Msg)
	}

	if err := s.idx.Rebuild(metas); err != nil {
		return fmt.Errorf("index rebuild: %w", err)
	}
	slog.Info("index rebuilt", "posts", len(metas), "warnings", len(warns))
	return nil
}

func (s *Server) startWatch(ctx context.Context) error {
	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w

		go s.watchLoop(ctx)

		err = filepath.Walk(s.cfg.ContentDir, func(path string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if info.IsDir() {
				return w.Add(path)
			}
			return nil
		})
		if os.IsNotExist(err) {
			// content dir may appear later; serve the empty corpus
			err = nil
		}
	})
	return err
}

func (s *Server) watchLoop(ctx context.Context) {
	slog.Info("watching content directory", "dir", s.cfg.ContentDir)

	// one-shot timer: a burst of events collapses into a single rebuild
	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}

	trigger := func() {
		if !debounce.Stop() {
			select {
			case <-debounce.C:
			default:
			}
		}
		debounce.Reset(200 * time.Millisecond)
	}

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				trigger()
			}
		case werr, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error", "error", werr)
		case <-debounce.C:
			if err := s.rebuild(); err != nil {
				slog.Error("rebuild failed", "error", err)
			}
		}
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
