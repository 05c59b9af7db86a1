package store

import (
	"bytes"
	"errors"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verluna/site/internal/domain/content"
	domainerr "github.com/verluna/site/internal/domain/errors"
)

var errNoFrontMatter = errors.New("no front matter found")
var errInvalidFrontMatter = errors.New("invalid front matter")

type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Author      string   `yaml:"author"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Featured    bool     `yaml:"featured"`
	Draft       bool     `yaml:"draft"`
	Image       string   `yaml:"image"`
	ImageAlt    string   `yaml:"imageAlt"`
}

// parseFrontMatter splits a content unit into its YAML metadata block
// and body. The unit must start with a "---" line and carry a closing
// "---" line.
func parseFrontMatter(raw []byte) (frontMatter, []byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return frontMatter{}, raw, errNoFrontMatter
	}

	norm := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	norm = bytes.ReplaceAll(norm, []byte("\r"), []byte("\n"))

	const (
		sep      = "---"
		sepLine  = sep + "\n"
		closeMid = "\n" + sep + "\n"
	)

	if !bytes.HasPrefix(norm, []byte(sepLine)) {
		return frontMatter{}, raw, errNoFrontMatter
	}

	rest := norm[len(sepLine):]

	var yamlPart, bodyPart []byte

	if parts := bytes.SplitN(rest, []byte(closeMid), 2); len(parts) == 2 {
		yamlPart = parts[0]
		bodyPart = parts[1]
	} else {
		// closing "---" with no body after it
		if bytes.HasSuffix(rest, []byte("\n"+sep)) {
			yamlPart = rest[:len(rest)-len("\n"+sep)]
			bodyPart = nil
		} else if bytes.Equal(bytes.TrimSpace(rest), []byte(sep)) {
			yamlPart = nil
			bodyPart = nil
		} else {
			return frontMatter{}, raw, errInvalidFrontMatter
		}
	}

	yamlPart = bytes.TrimSpace(yamlPart)
	bodyPart = bytes.TrimSpace(bodyPart)

	var fm frontMatter
	if len(yamlPart) > 0 {
		if err := yaml.Unmarshal(yamlPart, &fm); err != nil {
			return frontMatter{}, raw, err
		}
	}

	return fm, bodyPart, nil
}

// toMeta validates the frontmatter against the post schema and builds
// the PostMeta for slug. All missing/malformed required fields are
// collected into one ValidationError.
func (fm frontMatter) toMeta(slug string) (content.PostMeta, error) {
	var ve domainerr.ValidationError

	if fm.Title == "" {
		ve.Add("title", "must not be empty")
	}
	if fm.Description == "" {
		ve.Add("description", "must not be empty")
	}
	if fm.Author == "" {
		ve.Add("author", "must not be empty")
	}

	cat := content.Category(fm.Category)
	if fm.Category == "" {
		ve.Add("category", "must not be empty")
	} else if !cat.Valid() {
		ve.Add("category", "unknown category: "+fm.Category)
	}

	if fm.Tags == nil {
		ve.Add("tags", "must be present")
	}

	var date time.Time
	if fm.Date == "" {
		ve.Add("date", "must not be empty")
	} else {
		t, err := parseDate(fm.Date)
		if err != nil {
			ve.Add("date", "unparsable date: "+fm.Date)
		}
		date = t
	}

	if ve.HasAny() {
		return content.PostMeta{}, ve
	}

	meta := content.PostMeta{
		Slug:        slug,
		Title:       fm.Title,
		Description: fm.Description,
		Date:        date,
		Author:      fm.Author,
		Category:    cat,
		Tags:        fm.Tags,
		Featured:    fm.Featured,
		Draft:       fm.Draft,
		Image:       fm.Image,
		ImageAlt:    fm.ImageAlt,
	}
	meta.Normalize()
	return meta, nil
}

var dateLayouts = []string{
	time.RFC3339,
	time.DateOnly,
	"2006-01-02 15:04",
	time.DateTime,
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
