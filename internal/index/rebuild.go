package index

import (
	"encoding/json"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/verluna/site/internal/domain/content"
)

// Rebuild replaces the whole index with the given corpus in one write
// transaction. Drafts are indexed too; queries filter them out unless
// asked otherwise. This full swap is the only write path, so readers
// never observe a partially updated index.
func (s *Store) Rebuild(metas []content.PostMeta) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket(bMeta)
		_ = tx.DeleteBucket(bIdxRank)
		_ = tx.DeleteBucket(bIdxTag)
		_ = tx.DeleteBucket(bIdxCat)

		metaB, _ := tx.CreateBucket(bMeta)
		rankB, _ := tx.CreateBucket(bIdxRank)
		tagB, _ := tx.CreateBucket(bIdxTag)
		catB, _ := tx.CreateBucket(bIdxCat)

		for _, m := range metas {
			if strings.TrimSpace(m.Slug) == "" {
				continue
			}
			mb, err := json.Marshal(m)
			if err != nil {
				return err
			}
			if err := metaB.Put([]byte(m.Slug), mb); err != nil {
				return err
			}

			key := makeRankKey(m.Featured, m.Date.UnixNano(), m.Slug)
			if err := rankB.Put(key, []byte{1}); err != nil {
				return err
			}

			for _, tag := range m.Tags {
				if tag == "" {
					continue
				}
				sb, err := tagB.CreateBucketIfNotExists([]byte(tag))
				if err != nil {
					return err
				}
				if err := sb.Put(key, []byte{1}); err != nil {
					return err
				}
			}

			sb, err := catB.CreateBucketIfNotExists([]byte(m.Category))
			if err != nil {
				return err
			}
			if err := sb.Put(key, []byte{1}); err != nil {
				return err
			}
		}
		return nil
	})
}
