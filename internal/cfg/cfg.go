package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP
	Port    string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SiteURL string `long:"site-url" env:"SITE_URL" default:"https://verluna.com" description:"Public site URL used in outbound email links"`

	// Content pipeline
	ContentDir  string `long:"content-dir" env:"CONTENT_DIR" default:"./content/insights" description:"Directory containing insight posts (one markdown file per post)"`
	AuthorsFile string `long:"authors-file" env:"AUTHORS_FILE" default:"./content/authors.yml" description:"YAML file with the author registry"`
	IndexPath   string `long:"index-path" env:"INDEX_PATH" default:"./data/index.db" description:"Path of the bbolt post index"`

	// Chat proxy
	OpenAIAPIKey    string  `long:"openai-api-key" env:"OPENAI_API_KEY" description:"API key for the text-generation upstream (chat disabled when empty)"`
	ChatModel       string  `long:"chat-model" env:"CHAT_MODEL" default:"gpt-4o" description:"Chat completion model"`
	ChatMaxTokens   int     `long:"chat-max-tokens" env:"CHAT_MAX_TOKENS" default:"500" description:"Maximum output tokens per chat response"`
	ChatTemperature float64 `long:"chat-temperature" env:"CHAT_TEMPERATURE" default:"0.7" description:"Sampling temperature for chat responses"`
	ChatTimeout     int     `long:"chat-timeout" env:"CHAT_TIMEOUT" default:"60" description:"Upstream chat timeout in seconds"`

	// Contact form email
	SMTPHost     string `long:"smtp-host" env:"SMTP_HOST" description:"SMTP server host (contact form disabled when empty)"`
	SMTPPort     string `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port"`
	SMTPUsername string `long:"smtp-username" env:"SMTP_USERNAME" description:"SMTP auth username"`
	SMTPPassword string `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP auth password"`
	MailFrom     string `long:"mail-from" env:"MAIL_FROM" default:"Verluna <noreply@verluna.de>" description:"From address for outbound email"`
	ContactEmail string `long:"contact-email" env:"CONTACT_EMAIL" default:"info@verluna.de" description:"Recipient of contact-form notifications"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:            raw.Port,
		SiteURL:         raw.SiteURL,
		ContentDir:      raw.ContentDir,
		AuthorsFile:     raw.AuthorsFile,
		IndexPath:       raw.IndexPath,
		OpenAIAPIKey:    raw.OpenAIAPIKey,
		ChatModel:       raw.ChatModel,
		ChatMaxTokens:   raw.ChatMaxTokens,
		ChatTemperature: float32(raw.ChatTemperature),
		ChatTimeout:     time.Duration(raw.ChatTimeout) * time.Second,
		SMTPHost:        raw.SMTPHost,
		SMTPPort:        raw.SMTPPort,
		SMTPUsername:    raw.SMTPUsername,
		SMTPPassword:    raw.SMTPPassword,
		MailFrom:        raw.MailFrom,
		ContactEmail:    raw.ContactEmail,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	return cfg, nil
}
