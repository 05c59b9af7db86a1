package serve

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verluna/site/internal/chat"
	"github.com/verluna/site/internal/domain/content"
	domainerr "github.com/verluna/site/internal/domain/errors"
	"github.com/verluna/site/internal/index"
	"github.com/verluna/site/internal/mail"
	"github.com/verluna/site/internal/render"
)

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (s *Server) handleHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   s.cfg.Version,
	}
	if n, err := s.idx.Count(); err == nil {
		health["posts"] = n
	}
	c.JSON(http.StatusOK, health)
}

func (s *Server) handleListInsights(c *gin.Context) {
	opt := index.ListOptions{
		Tag:          c.Query("tag"),
		FeaturedOnly: c.Query("featured") == "true",
	}
	if raw := c.Query("category"); raw != "" {
		cat := content.Category(raw)
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + raw})
			return
		}
		opt.Category = cat
	}

	posts, err := s.idx.List(opt)
	if err != nil {
		slog.Error("listing query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}
	if posts == nil {
		posts = []content.PostMeta{}
	}

	categoryCounts, err := s.idx.CategoryCounts()
	if err != nil {
		slog.Error("category counts failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}
	tagCounts, err := s.idx.TagCounts()
	if err != nil {
		slog.Error("tag counts failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":          posts,
		"categoryCounts": categoryCounts,
		"tagCounts":      tagCounts,
	})
}

func (s *Server) handleFeaturedInsights(c *gin.Context) {
	posts, err := s.idx.List(index.ListOptions{FeaturedOnly: true, Limit: 3})
	if err != nil {
		slog.Error("featured query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}
	if posts == nil {
		posts = []content.PostMeta{}
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

type insightResponse struct {
	Post     content.PostMeta   `json:"post"`
	HTML     string             `json:"html"`
	Headings []render.Heading   `json:"headings"`
	Author   *content.Author    `json:"author,omitempty"`
	Related  []content.PostMeta `json:"related"`
}

func (s *Server) handleGetInsight(c *gin.Context) {
	slug := c.Param("slug")

	meta, err := s.idx.GetMeta(slug)
	if err != nil {
		if !errors.Is(err, domainerr.ErrNotFound) {
			slog.Error("meta lookup failed", "slug", slug, "error", err)
		}
		s.notFound(c)
		return
	}
	// drafts are invisible through the public detail path
	if meta.Draft {
		s.notFound(c)
		return
	}

	post, err := s.posts.Load(slug)
	if err != nil {
		slog.Warn("post body unavailable", "slug", slug, "error", err)
		s.notFound(c)
		return
	}

	doc, err := s.compiler.Compile(slug, []byte(post.Content))
	if err != nil {
		// hard failure for this post: no partial or corrupt output
		slog.Error("compile failed", "slug", slug, "error", err)
		s.notFound(c)
		return
	}

	related, err := s.idx.Related(slug, meta.Category, meta.Tags, index.DefaultRelatedLimit)
	if err != nil {
		slog.Error("related query failed", "slug", slug, "error", err)
		related = nil
	}
	if related == nil {
		related = []content.PostMeta{}
	}

	resp := insightResponse{
		Post:     post.PostMeta,
		HTML:     string(doc.HTML),
		Headings: doc.Headings,
		Related:  related,
	}
	if a, ok := s.authors[meta.Author]; ok {
		resp.Author = &a
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
}

func (s *Server) handleChat(c *gin.Context) {
	var req struct {
		Messages []chat.Message `json:"messages"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !s.chat.Configured() {
		slog.Error("chat upstream not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API configuration error. Please check server configuration."})
		return
	}

	flusher, _ := c.Writer.(http.Flusher)
	started := false

	err := s.chat.Stream(c.Request.Context(), req.Messages, func(chunk string) error {
		if !started {
			c.Header("Content-Type", "text/plain; charset=utf-8")
			c.Header("Cache-Control", "no-cache")
			c.Header("X-Accel-Buffering", "no")
			c.Status(http.StatusOK)
			started = true
		}
		if _, err := c.Writer.WriteString(chunk); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		slog.Error("chat stream failed", "error", err)
		if !started {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred processing your request."})
		}
		// mid-stream failures just end the stream; the client sees a
		// truncated response, never a replacement
	}
}

func (s *Server) handleContact(c *gin.Context) {
	var form mail.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if form.Name == "" || form.Email == "" || form.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and message are required"})
		return
	}
	if !reEmail.MatchString(form.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid email address"})
		return
	}

	if err := s.mailer.SendContactNotification(form); err != nil {
		var ue domainerr.UpstreamError
		if errors.As(err, &ue) && ue.Kind == domainerr.UpstreamNotConfigured {
			slog.Error("mail service not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Email service is not configured. Please try again later."})
			return
		}
		slog.Error("notification send failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message. Please try again."})
		return
	}

	// confirmation failures are deliberately not surfaced: the inquiry
	// already reached the ops inbox
	if err := s.mailer.SendContactConfirmation(form); err != nil {
		slog.Warn("confirmation send failed", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message sent successfully"})
}
