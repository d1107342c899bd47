package ocean

// CellKind distinguishes surface wind-driven gyres from deep
// thermohaline overturning cells.
type CellKind int

const (
	SurfaceCell CellKind = iota
	DeepCell
)

func (k CellKind) String() string {
	if k == DeepCell {
		return "deep"
	}
	return "surface"
}

// CirculationCell is an idealized circular current system superposed
// on the forcing. Immutable once created.
type CirculationCell struct {
	CX, CY    float64 // center, grid coordinates
	Strength  float64
	Clockwise bool
	Kind      CellKind
}

// DefaultCells returns the fixed set of six circulation cells for a
// w×h grid: a subtropical and subpolar gyre pair per hemisphere, plus
// two deep overturning cells. Centers scale with the grid dimensions.
func DefaultCells(w, h int) []CirculationCell {
	fw, fh := float64(w), float64(h)
	return []CirculationCell{
		{CX: 0.30 * fw, CY: 0.30 * fh, Strength: 1.5, Clockwise: true, Kind: SurfaceCell},
		{CX: 0.70 * fw, CY: 0.30 * fh, Strength: 1.2, Clockwise: false, Kind: SurfaceCell},
		{CX: 0.30 * fw, CY: 0.70 * fh, Strength: 1.5, Clockwise: false, Kind: SurfaceCell},
		{CX: 0.70 * fw, CY: 0.70 * fh, Strength: 1.2, Clockwise: true, Kind: SurfaceCell},
		{CX: 0.50 * fw, CY: 0.15 * fh, Strength: 0.8, Clockwise: true, Kind: DeepCell},
		{CX: 0.50 * fw, CY: 0.85 * fh, Strength: 0.8, Clockwise: false, Kind: DeepCell},
	}
}
