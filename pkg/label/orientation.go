package label

import "fmt"

// Orientation selects a physical label layout family. It fixes the grid
// shape used for expansion and the font sizing tables consulted when
// formatting field text.
type Orientation string

const (
	OrientationMini       Orientation = "mini"
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
	OrientationDouble     Orientation = "double"
	OrientationInventory  Orientation = "inventory"
)

// gridShape describes the fixed grid of one orientation. Widths and
// heights are in twentieths of a point (twips) so the physical label
// size is exact regardless of printer driver autofit behavior.
type gridShape struct {
	Rows       int
	Cols       int
	CellWidth  int // twips
	CellHeight int // twips
}

var gridShapes = map[Orientation]gridShape{
	OrientationMini:       {Rows: 3, Cols: 3, CellWidth: 3456, CellHeight: 4320},
	OrientationVertical:   {Rows: 3, Cols: 3, CellWidth: 3456, CellHeight: 4320},
	OrientationHorizontal: {Rows: 10, Cols: 2, CellWidth: 5400, CellHeight: 1440},
	OrientationDouble:     {Rows: 4, Cols: 3, CellWidth: 3456, CellHeight: 3240},
	OrientationInventory:  {Rows: 2, Cols: 2, CellWidth: 5400, CellHeight: 6480},
}

// Shape returns the grid shape for the orientation.
func (o Orientation) Shape() gridShape {
	return gridShapes[o]
}

// Capacity returns the number of label cells one grid of this
// orientation holds.
func (o Orientation) Capacity() int {
	s := gridShapes[o]
	return s.Rows * s.Cols
}

// Valid reports whether the orientation is one of the known layout
// families.
func (o Orientation) Valid() bool {
	_, ok := gridShapes[o]
	return ok
}

func (o Orientation) String() string {
	return string(o)
}

// ParseOrientation converts a user-supplied name into an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	o := Orientation(s)
	if !o.Valid() {
		return "", fmt.Errorf("unknown orientation %q", s)
	}
	return o, nil
}

// Orientations lists all supported layout families in a stable order.
func Orientations() []Orientation {
	return []Orientation{
		OrientationMini,
		OrientationVertical,
		OrientationHorizontal,
		OrientationDouble,
		OrientationInventory,
	}
}
