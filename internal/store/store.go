// Package store maps content-unit slugs to posts. One markdown file per
// post under a fixed content directory; the file name minus extension is
// the slug.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/verluna/site/internal/domain/content"
	domainerr "github.com/verluna/site/internal/domain/errors"
)

var postExtensions = []string{".mdx", ".md"}

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string { return s.dir }

// ListSlugs enumerates all content units in the store. A missing
// content directory yields an empty set, not an error. Order follows
// the directory listing (lexical by file name).
func (s *Store) ListSlugs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		for _, want := range postExtensions {
			if ext == want {
				out = append(out, strings.TrimSuffix(name, filepath.Ext(name)))
				break
			}
		}
	}
	return out, nil
}

// Load reads the unit named by slug, validates its frontmatter against
// the post schema and computes the derived reading time. Returns
// domainerr.ErrNotFound when no unit with that slug exists and a
// ValidationError when required fields are missing or malformed.
func (s *Store) Load(slug string) (content.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" || strings.ContainsAny(slug, "/\\") {
		return content.Post{}, domainerr.ErrNotFound
	}

	var raw []byte
	found := false
	for _, ext := range postExtensions {
		data, err := os.ReadFile(filepath.Join(s.dir, slug+ext))
		if err == nil {
			raw = data
			found = true
			break
		}
		if !os.IsNotExist(err) {
			return content.Post{}, err
		}
	}
	if !found {
		return content.Post{}, domainerr.ErrNotFound
	}

	fm, body, err := parseFrontMatter(raw)
	if err != nil {
		var ve domainerr.ValidationError
		ve.Add("frontmatter", err.Error())
		return content.Post{}, ve
	}

	meta, err := fm.toMeta(slug)
	if err != nil {
		return content.Post{}, err
	}
	meta.ReadingTime = EstimateReadingTime(string(body))

	return content.Post{
		PostMeta: meta,
		Content:  string(body),
	}, nil
}
