package tilecache

import "github.com/bloeys/cellmatrix/cells"

// Record is one entry of a bucket: the cell value it was rasterized for,
// and the physical tile slot permanently bound to it at allocation time.
// The slot coordinates never change for the lifetime of a Record -- only
// the Record's position within its bucket's backing array can move (see
// prioritize), and only its Key/Hits/Passes/Rate are overwritten when a
// slot is reused by eviction or bucket-full overwrite.
type Record struct {
	Key Cell

	ImageIndex uint16
	Line       uint16
	Column     uint16

	Hits   int
	Passes int
	Rate   int
}

// Cell is a local alias so this package reads naturally without importing
// cells under a qualified name in every signature.
type Cell = cells.Cell
