package index

// rankKey = featuredByte(1) + invTime(8) + 0x00 + slug
//
// Iterating a bucket of rank keys yields the default listing order:
// featured posts first, then date descending, with slug ascending as
// the final deterministic tie-break.
func makeRankKey(featured bool, unixNano int64, slug string) []byte {
	// pre-epoch dates would invert under ^uint64 and sort as newest;
	// clamp them to the epoch instead
	if unixNano < 0 {
		unixNano = 0
	}

	buf := make([]byte, 0, 1+8+1+len(slug))

	if featured {
		buf = append(buf, 0x00)
	} else {
		buf = append(buf, 0x01)
	}

	inv := ^uint64(unixNano)
	tmp := make([]byte, 8)
	putU64(tmp, inv)
	buf = append(buf, tmp...)

	buf = append(buf, 0x00)
	buf = append(buf, []byte(slug)...)
	return buf
}

func slugFromRankKey(k []byte) string {
	// featuredByte(1) + invTime(8) + 0x00 + slug
	if len(k) < 1+8+2 || k[9] != 0x00 {
		return ""
	}
	return string(k[10:])
}

func putU64(dst []byte, v uint64) {
	dst[0] = byte(v >> 56)
	dst[1] = byte(v >> 48)
	dst[2] = byte(v >> 40)
	dst[3] = byte(v >> 32)
	dst[4] = byte(v >> 24)
	dst[5] = byte(v >> 16)
	dst[6] = byte(v >> 8)
	dst[7] = byte(v)
}
