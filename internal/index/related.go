package index

import (
	"sort"

	"github.com/verluna/site/internal/domain/content"
)

// DefaultRelatedLimit caps related-post lists on detail pages.
const DefaultRelatedLimit = 3

// Related scores every other public post against the source post's
// category and tags and returns up to limit of them, best first.
//
// Shared category is worth two shared tags: category membership is
// coarser-grained but more reliable than tag overlap. The sort is
// stable over the default listing order, so equally relevant posts
// fall back to recency — with an all-zero scoring the result simply
// degrades to the most recent posts, never an empty list.
func (s *Store) Related(slug string, category content.Category, tags []string, limit int) ([]content.PostMeta, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	all, err := s.List(ListOptions{})
	if err != nil {
		return nil, err
	}

	candidates := make([]content.PostMeta, 0, len(all))
	for _, m := range all {
		if m.Slug == slug {
			continue
		}
		candidates = append(candidates, m)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return relevanceScore(candidates[i], category, tags) > relevanceScore(candidates[j], category, tags)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func relevanceScore(m content.PostMeta, category content.Category, tags []string) int {
	score := 0
	if m.Category == category {
		score += 2
	}
	score += m.SharedTags(tags)
	return score
}
