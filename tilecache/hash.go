package tilecache

import "encoding/binary"

// wordMultiplier is folded into every 32-bit word of the cell's packed
// image. codepointMultiplier is folded into the codepoint alone, giving
// it more influence over the bucket choice than any single trait byte.
const (
	codepointMultiplier uint32 = 2654435761 // Knuth's multiplicative hash constant
	wordMultiplier      uint32 = 0x01020304
)

// hashCell reduces cell to a bucket index in [0, buckets). It folds the
// codepoint and every 32-bit word of the cell's packed wire image
// together; an all-zero word (common -- most traits are unset on most
// cells) is XOR'd against an increasing salt instead of the multiplier,
// so a run of zero words doesn't collapse to a single contribution.
func hashCell(cell Cell, buckets int) int {
	img := cell.Bytes()

	h := uint32(cell.Codepoint) * codepointMultiplier

	salt := uint32(0x9E3779B9)
	for i := 0; i+4 <= len(img); i += 4 {
		word := binary.LittleEndian.Uint32(img[i : i+4])
		if word == 0 {
			h ^= salt
			salt += 0x6D2B79F5
			continue
		}
		h ^= word * wordMultiplier
	}

	if rem := len(img) % 4; rem != 0 {
		var tail [4]byte
		copy(tail[:], img[len(img)-rem:])
		word := binary.LittleEndian.Uint32(tail[:])
		if word == 0 {
			h ^= salt
		} else {
			h ^= word * wordMultiplier
		}
	}

	return int(h) % buckets
}
