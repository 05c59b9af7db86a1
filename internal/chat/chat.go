// Package chat proxies the site assistant conversation to an external
// text-generation service and streams the response back verbatim. It
// is best-effort by design: single attempt, no retry, no backoff.
package chat

import (
	"context"
	"errors"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"

	domainerr "github.com/verluna/site/internal/domain/errors"
)

type Config struct {
	APIKey      string
	BaseURL     string // override for tests
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

type Service struct {
	client *openai.Client
	cfg    Config
}

func New(cfg Config) *Service {
	s := &Service{cfg: cfg}
	if cfg.APIKey == "" {
		return s
	}
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	s.client = openai.NewClientWithConfig(cc)
	return s
}

// Configured reports whether an upstream API key is present.
func (s *Service) Configured() bool { return s.client != nil }

// Stream sends the conversation upstream and calls emit for every text
// chunk as it arrives. Cancelling ctx (client disconnect) abandons the
// upstream request; the configured timeout bounds the whole exchange so
// a hanging upstream cannot leak the connection forever.
func (s *Service) Stream(ctx context.Context, msgs []Message, emit func(chunk string) error) error {
	if s.client == nil {
		return domainerr.UpstreamError{Service: "chat", Kind: domainerr.UpstreamNotConfigured}
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    toModelMessages(msgs),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	stream, err := s.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return domainerr.UpstreamError{Service: "chat", Kind: domainerr.UpstreamRejected, Err: err}
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return domainerr.UpstreamError{Service: "chat", Kind: domainerr.UpstreamRejected, Err: err}
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			if err := emit(delta); err != nil {
				return err
			}
		}
	}
}
