package cells

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

// GlyphInscriptionParameters controls how a glyph's image is rasterized
// within a cell.
type GlyphInscriptionParameters struct {
	StrokeWidth float32

	CellWidth, CellHeight   float64
	HorizontalPad           float64
	VerticalPad             float64
	HorizontalOffset        float64
	VerticalOffset          float64
}

// MatrixParameters holds the dimensions necessary to translate between
// cell coordinates and system (pixel) units.
//
// Invariant: XCells * YCells == VCells.
type MatrixParameters struct {
	ScaleFactor float64

	XCellUnits, YCellUnits, VCellUnits float64
	XScreenUnits, YScreenUnits         float64

	XCells, YCells uint16
	VCells         uint64
}

// ConfigureCells derives the per-cell unit dimensions from inscription
// parameters and a scale factor, aligning them on whole scaled pixels the
// way the reference cellmatrix_configure_cells routine does.
func ConfigureCells(ip GlyphInscriptionParameters, scaleFactor float64) MatrixParameters {
	mp := MatrixParameters{ScaleFactor: scaleFactor}

	xUnits := ip.CellWidth + ip.HorizontalPad
	yUnits := ip.CellHeight + ip.VerticalPad

	mp.XCellUnits = math.Ceil(xUnits*scaleFactor) / scaleFactor
	mp.YCellUnits = math.Ceil(yUnits*scaleFactor) / scaleFactor
	mp.VCellUnits = mp.XCellUnits * mp.YCellUnits

	return mp
}

// CalculateDimensions updates the cell-count and screen-unit fields of mp
// for a surface of the given size, in system units. XCells*YCells is kept
// equal to VCells by construction.
func (mp *MatrixParameters) CalculateDimensions(screenWidth, screenHeight float64) {
	mp.XCells = uint16(math.Floor(screenWidth / mp.XCellUnits))
	mp.YCells = uint16(math.Floor(screenHeight / mp.YCellUnits))
	mp.VCells = uint64(mp.XCells) * uint64(mp.YCells)

	mp.XScreenUnits = float64(mp.XCells) * mp.XCellUnits
	mp.YScreenUnits = float64(mp.YCells) * mp.YCellUnits
}

// CellUnits returns the (x, y) cell-unit dimensions as a vector, for
// callers that compose it with other gglm-based screen math (the native
// backend's projection setup, in particular).
func (mp MatrixParameters) CellUnits() gglm.Vec2 {
	return *gglm.NewVec2(float32(mp.XCellUnits), float32(mp.YCellUnits))
}

// ScreenUnits returns the (x, y) screen-unit dimensions as a vector.
func (mp MatrixParameters) ScreenUnits() gglm.Vec2 {
	return *gglm.NewVec2(float32(mp.XScreenUnits), float32(mp.YScreenUnits))
}

// Area returns the full-matrix Area implied by these dimensions.
func (mp MatrixParameters) Area() Area {
	return Area{Lines: mp.YCells, Span: mp.XCells}
}
