package index

import (
	"encoding/json"
	"sort"

	bolt "go.etcd.io/bbolt"

	"github.com/verluna/site/internal/domain/content"
)

type CategoryCount struct {
	Category content.Category `json:"category"`
	Label    string           `json:"label"`
	Count    int              `json:"count"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CategoryCounts aggregates over the full non-draft corpus, sorted by
// count descending with name ascending as the tie-break.
func (s *Store) CategoryCounts() ([]CategoryCount, error) {
	counts := make(map[content.Category]int)
	err := s.eachPublicMeta(func(m content.PostMeta) {
		counts[m.Category]++
	})
	if err != nil {
		return nil, err
	}

	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryCount{Category: cat, Label: cat.Label(), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Category < out[j].Category
		}
		return out[i].Count > out[j].Count
	})
	return out, nil
}

// TagCounts aggregates over the full non-draft corpus, sorted by count
// descending with name ascending as the tie-break.
func (s *Store) TagCounts() ([]TagCount, error) {
	counts := make(map[string]int)
	err := s.eachPublicMeta(func(m content.PostMeta) {
		for _, t := range m.Tags {
			counts[t]++
		}
	})
	if err != nil {
		return nil, err
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Tag < out[j].Tag
		}
		return out[i].Count > out[j].Count
	})
	return out, nil
}

func (s *Store) eachPublicMeta(fn func(content.PostMeta)) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var m content.PostMeta
			if err := json.Unmarshal(v, &m); err != nil {
				return nil
			}
			if m.Draft {
				return nil
			}
			fn(m)
			return nil
		})
	})
}
