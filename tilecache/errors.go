package tilecache

import "errors"

// ErrNoCapacity is returned by NewCache for a non-positive confinement, or
// by Acquire when every physical slot is already bound to other buckets
// and the cell's bucket holds no record to evict.
var ErrNoCapacity = errors.New("tilecache: no physical slot capacity")

// ErrSurfaceCount is returned when the number of supplied surfaces does
// not match the confinement (one surface per image).
var ErrSurfaceCount = errors.New("tilecache: surface count must equal confinement")
