package content

import (
	"strings"
	"time"
)

// Category is the closed set of insight categories.
type Category string

const (
	CategoryGTMEngineering Category = "gtm-engineering"
	CategoryAIAgents       Category = "ai-agents"
	CategoryAutomation     Category = "automation"
	CategoryCaseStudy      Category = "case-study"
	CategoryTutorial       Category = "tutorial"
)

var categoryLabels = map[Category]string{
	CategoryGTMEngineering: "GTM Engineering",
	CategoryAIAgents:       "AI Agents",
	CategoryAutomation:     "Automation",
	CategoryCaseStudy:      "Case Study",
	CategoryTutorial:       "Tutorial",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Categories returns all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryGTMEngineering,
		CategoryAIAgents,
		CategoryAutomation,
		CategoryCaseStudy,
		CategoryTutorial,
	}
}

// ReadingTime is derived from the body word count, never authored.
type ReadingTime struct {
	Text    string  `json:"text"`
	Minutes float64 `json:"minutes"`
	Words   int     `json:"words"`
}

// PostMeta is everything about a post except its body. Listings only
// ever hold metas so body text is not retained in memory for list views.
type PostMeta struct {
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Author      string      `json:"author"`
	Category    Category    `json:"category"`
	Tags        []string    `json:"tags"`
	Featured    bool        `json:"featured"`
	Draft       bool        `json:"draft"`
	Image       string      `json:"image,omitempty"`
	ImageAlt    string      `json:"imageAlt,omitempty"`
	ReadingTime ReadingTime `json:"readingTime"`
}

type Post struct {
	PostMeta
	Content string `json:"content"`
}

func (m *PostMeta) Normalize() {
	m.Slug = strings.TrimSpace(m.Slug)
	m.Title = strings.TrimSpace(m.Title)
	m.Description = strings.TrimSpace(m.Description)
	m.Author = strings.TrimSpace(m.Author)
	m.Tags = normalizeTags(m.Tags)
}

// HasTag reports whether tag appears in the post's tag set (exact match).
func (m PostMeta) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SharedTags counts how many of the given tags the post carries.
func (m PostMeta) SharedTags(tags []string) int {
	n := 0
	for _, t := range tags {
		if m.HasTag(t) {
			n++
		}
	}
	return n
}

// normalizeTags trims and drops empty entries while preserving the
// declared order. Duplicate tags within a post are collapsed so they
// cannot double-count in aggregates.
func normalizeTags(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
