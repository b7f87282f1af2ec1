package tilecache

import "golang.org/x/exp/constraints"

// bucket holds one hash bucket's records. len(records) tracks how
// many records have ever been grown into the bucket (capacity); count is
// how many of those, from index 0, currently hold a live cell key.
// Indices [count, len(records)) are allocated physical slots waiting to
// be claimed by a future allocation -- this is the "bucket has room"
// case in allocate.
type bucket struct {
	records []Record
	count   int
}

// allocate claims a record in b for cell, growing or evicting as needed,
// and returns a pointer to the claimed record (already stamped with
// cell, with Hits/Passes/Rate reset).
func (b *bucket) allocate(c *Cache, cell Cell) (*Record, error) {
	if b.count < len(b.records) {
		r := &b.records[b.count]
		*r = Record{Key: cell, ImageIndex: r.ImageIndex, Line: r.Line, Column: r.Column}
		b.count++
		return r, nil
	}

	if c.imageNext < c.imageLimit {
		grow := c.imageLimit - c.imageNext
		if grow > c.confinement {
			grow = c.confinement
		}
		for i := 0; i < grow; i++ {
			img, line, col := c.unpackSlot(c.imageNext)
			c.imageNext++
			b.records = append(b.records, Record{ImageIndex: img, Line: line, Column: col})
		}
		r := &b.records[b.count]
		*r = Record{Key: cell, ImageIndex: r.ImageIndex, Line: r.Line, Column: r.Column}
		b.count++
		return r, nil
	}

	if len(b.records) == 0 {
		return nil, ErrNoCapacity
	}

	dropped := clamp((b.count+3)/4, 1, b.count)
	if dropped > 0 {
		b.count -= dropped
		r := &b.records[b.count]
		*r = Record{Key: cell, ImageIndex: r.ImageIndex, Line: r.Line, Column: r.Column}
		b.count++
		return r, nil
	}

	r := &b.records[len(b.records)-1]
	*r = Record{Key: cell, ImageIndex: r.ImageIndex, Line: r.Line, Column: r.Column}
	return r, nil
}

func clamp[T constraints.Integer](x, min, max T) T {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// prioritize implements the bucket's hot/cold reordering. It is called
// after visiting the record at curIdx during a lookup walk; prevIdx is
// the index visited immediately before it (-1 if curIdx is the first).
// It returns the index where the record that was at curIdx now lives,
// since a promotion swaps it with prevIdx.
func prioritize(b *bucket, prevIdx, curIdx int) int {
	if prevIdx < 0 {
		return curIdx
	}

	cur := &b.records[curIdx]
	if cur.Hits+cur.Passes < 50 {
		return curIdx
	}

	passes := cur.Passes
	if passes == 0 {
		passes = 1
	}
	delta := (cur.Hits * 100) / passes
	if cur.Hits < cur.Passes {
		delta = -delta
	}
	cur.Rate = (cur.Rate + delta) / 2
	cur.Hits, cur.Passes = 1, 1

	prev := &b.records[prevIdx]
	if cur.Rate-prev.Rate > 5 {
		b.records[prevIdx], b.records[curIdx] = b.records[curIdx], b.records[prevIdx]
		return prevIdx
	}
	return curIdx
}
