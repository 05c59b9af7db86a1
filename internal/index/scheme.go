package index

var (
	bMeta    = []byte("meta")     // slug -> metaBytes
	bIdxRank = []byte("idx_rank") // rankKey -> 1, default listing order
	bIdxTag  = []byte("idx_tag")  // tag -> sub-bucket of rankKeys
	bIdxCat  = []byte("idx_cat")  // category -> sub-bucket of rankKeys
)
