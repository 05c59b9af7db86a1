package index

import (
	"encoding/json"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/verluna/site/internal/domain/content"
	domainerr "github.com/verluna/site/internal/domain/errors"
)

type ListOptions struct {
	Category      content.Category // keep only this category when set
	Tag           string           // keep only posts carrying this tag when set
	FeaturedOnly  bool
	IncludeDrafts bool
	Limit         int // 0 = unlimited
}

func (s *Store) GetMeta(slug string) (content.PostMeta, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.PostMeta{}, domainerr.ErrNotFound
	}
	var m content.PostMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return domainerr.ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return domainerr.ErrNotFound
		}
		return json.Unmarshal(v, &m)
	})
	return m, err
}

// List returns post metas in the default listing order: featured first,
// then date descending, slug ascending on equal dates. The order is
// encoded in the rank keys so one cursor pass suffices.
func (s *Store) List(opt ListOptions) ([]content.PostMeta, error) {
	var out []content.PostMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		metaB := tx.Bucket(bMeta)
		if metaB == nil {
			return nil
		}

		cur, ok := rankCursor(tx, opt)
		if !ok {
			return nil
		}

		for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
			slug := slugFromRankKey(k)
			if slug == "" {
				continue
			}
			v := metaB.Get([]byte(slug))
			if v == nil {
				continue
			}

			var m content.PostMeta
			if err := json.Unmarshal(v, &m); err != nil {
				continue
			}
			if m.Draft && !opt.IncludeDrafts {
				continue
			}
			if opt.Category != "" && m.Category != opt.Category {
				continue
			}
			if opt.Tag != "" && !m.HasTag(opt.Tag) {
				continue
			}
			if opt.FeaturedOnly && !m.Featured {
				continue
			}
			out = append(out, m)
			if opt.Limit > 0 && len(out) >= opt.Limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// rankCursor picks the narrowest index bucket that covers the filter.
func rankCursor(tx *bolt.Tx, opt ListOptions) (*bolt.Cursor, bool) {
	if opt.Tag != "" {
		parent := tx.Bucket(bIdxTag)
		if parent == nil {
			return nil, false
		}
		sb := parent.Bucket([]byte(opt.Tag))
		if sb == nil {
			return nil, false
		}
		return sb.Cursor(), true
	}
	if opt.Category != "" {
		parent := tx.Bucket(bIdxCat)
		if parent == nil {
			return nil, false
		}
		sb := parent.Bucket([]byte(opt.Category))
		if sb == nil {
			return nil, false
		}
		return sb.Cursor(), true
	}
	b := tx.Bucket(bIdxRank)
	if b == nil {
		return nil, false
	}
	return b.Cursor(), true
}

// Count reports the number of indexed posts, drafts included.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return nil
		}
		n = b.Stats().KeyN
		return nil
	})
	return n, err
}
