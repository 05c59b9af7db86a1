package cfg

import "time"

type Cfg struct {
	// HTTP
	Port    string
	SiteURL string

	// Content pipeline
	ContentDir  string
	AuthorsFile string
	IndexPath   string

	// Chat proxy
	OpenAIAPIKey    string
	ChatModel       string
	ChatMaxTokens   int
	ChatTemperature float32
	ChatTimeout     time.Duration

	// Contact form email
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	ContactEmail string

	Debug   bool
	Version string
}

// ChatConfigured reports whether the text-generation upstream can be
// called at all.
func (c *Cfg) ChatConfigured() bool {
	return c.OpenAIAPIKey != ""
}

// MailConfigured reports whether outbound email can be sent.
func (c *Cfg) MailConfigured() bool {
	return c.SMTPHost != ""
}
