package store

import (
	"errors"
	"runtime"
	"sort"
	"sync"

	"github.com/verluna/site/internal/domain/content"
	domainerr "github.com/verluna/site/internal/domain/errors"
)

// Warning records a per-post problem found during a corpus load. One
// bad post never prevents the rest of the corpus from loading.
type Warning struct {
	Slug string
	Msg  string
}

type loadResult struct {
	pos  int
	meta content.PostMeta
	warn *Warning
	skip bool
	err  error
}

// LoadAll loads every slug in the store and returns the metas of all
// posts that parsed cleanly, plus warnings for the ones that did not.
// Bodies are read for the reading-time computation but not retained.
// Duplicate slugs keep the first occurrence in enumeration order.
func (s *Store) LoadAll() ([]content.PostMeta, []Warning, error) {
	slugs, err := s.ListSlugs()
	if err != nil {
		return nil, nil, err
	}

	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan int)
	results := make(chan loadResult)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range jobs {
				slug := slugs[pos]
				post, loadErr := s.Load(slug)
				if loadErr != nil {
					var ve domainerr.ValidationError
					if errors.As(loadErr, &ve) {
						results <- loadResult{
							pos:  pos,
							warn: &Warning{Slug: slug, Msg: ve.Error()},
							skip: true,
						}
						continue
					}
					if errors.Is(loadErr, domainerr.ErrNotFound) {
						// file vanished between listing and read
						results <- loadResult{pos: pos, skip: true}
						continue
					}
					results <- loadResult{pos: pos, err: loadErr}
					continue
				}
				results <- loadResult{pos: pos, meta: post.PostMeta}
			}
		}()
	}

	go func() {
		for pos := range slugs {
			jobs <- pos
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	collected := make([]loadResult, 0, len(slugs))
	var warns []Warning
	for r := range results {
		if r.err != nil {
			return nil, nil, r.err
		}
		if r.warn != nil {
			warns = append(warns, *r.warn)
		}
		if r.skip {
			continue
		}
		collected = append(collected, r)
	}

	// restore enumeration order so duplicate handling is deterministic
	sort.Slice(collected, func(i, j int) bool { return collected[i].pos < collected[j].pos })

	seen := make(map[string]struct{}, len(collected))
	metas := make([]content.PostMeta, 0, len(collected))
	for _, r := range collected {
		if _, ok := seen[r.meta.Slug]; ok {
			warns = append(warns, Warning{Slug: r.meta.Slug, Msg: "duplicate slug, skipped"})
			continue
		}
		seen[r.meta.Slug] = struct{}{}
		metas = append(metas, r.meta)
	}
	return metas, warns, nil
}
