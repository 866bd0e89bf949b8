package label

import "go.uber.org/zap"

// ensureGrid verifies a table's grid descriptor before any row/cell
// traversal and repairs it when possible. It returns false only when
// the table cannot be repaired, in which case callers must skip the
// table rather than crash on it.
//
// Repair ladder:
//  1. grid present and consistent: nothing to do.
//  2. grid missing or wrong width: synthesize one from the first
//     row's cell count.
//  3. rows disagree on cell count (inconsistent beyond descriptor
//     repair): rebuild a minimal empty skeleton of the best-guess
//     shape and log the repair.
//  4. no rows and no grid: unrepairable.
func ensureGrid(t *Table, o Orientation) bool {
	if t == nil {
		return false
	}
	if len(t.Rows) == 0 {
		if t.Grid != nil && len(t.Grid.Columns) > 0 {
			// Descriptor but no content; an empty skeleton of the
			// descriptor's width keeps later traversals safe.
			rebuildSkeleton(t, 1, len(t.Grid.Columns), o)
			Logger().Warn("table had no rows, rebuilt empty skeleton",
				zap.String("orientation", string(o)),
				zap.Int("cols", len(t.Grid.Columns)))
			return true
		}
		return false
	}

	firstRowCells := len(t.Rows[0].Cells)
	if firstRowCells == 0 {
		return false
	}

	consistent := true
	for i := range t.Rows {
		if len(t.Rows[i].Cells) != firstRowCells {
			consistent = false
			break
		}
	}
	if !consistent {
		rebuildSkeleton(t, len(t.Rows), firstRowCells, o)
		Logger().Warn("table rows inconsistent, rebuilt skeleton",
			zap.String("orientation", string(o)),
			zap.Int("rows", len(t.Rows)),
			zap.Int("cols", firstRowCells))
		return true
	}

	if t.Grid == nil || len(t.Grid.Columns) != firstRowCells {
		t.Grid = synthesizeGrid(t, firstRowCells, o)
		Logger().Warn("table grid descriptor missing or mismatched, synthesized",
			zap.String("orientation", string(o)),
			zap.Int("cols", firstRowCells))
	}
	return true
}

// synthesizeGrid builds a grid descriptor from the first row's cell
// widths, falling back to the orientation's cell width.
func synthesizeGrid(t *Table, cols int, o Orientation) *TableGrid {
	grid := &TableGrid{Columns: make([]GridColumn, cols)}
	for i := 0; i < cols; i++ {
		width := o.Shape().CellWidth
		if i < len(t.Rows[0].Cells) {
			if props := t.Rows[0].Cells[i].Properties; props != nil && props.Width != nil && props.Width.Val > 0 {
				width = props.Width.Val
			}
		}
		grid.Columns[i] = GridColumn{Width: width}
	}
	return grid
}

// rebuildSkeleton replaces the table's content with an empty grid of
// the given shape, preserving nothing. Content inside a structurally
// broken table cannot be trusted to map to cells.
func rebuildSkeleton(t *Table, rows, cols int, o Orientation) {
	shape := o.Shape()
	t.Grid = &TableGrid{Columns: make([]GridColumn, cols)}
	for i := range t.Grid.Columns {
		t.Grid.Columns[i] = GridColumn{Width: shape.CellWidth}
	}
	t.Rows = make([]TableRow, rows)
	for r := range t.Rows {
		t.Rows[r] = TableRow{
			Properties: &TableRowProperties{
				Height: &RowHeight{Val: shape.CellHeight, HRule: "exact"},
			},
			Cells: make([]TableCell, cols),
		}
		for c := range t.Rows[r].Cells {
			t.Rows[r].Cells[c] = TableCell{
				Properties: &TableCellProperties{
					Width: &TableWidth{Type: "dxa", Val: shape.CellWidth},
				},
				Paragraphs: []Paragraph{{}},
			}
		}
	}
}

// forEachCell walks every cell of every repairable table in the
// document in label order, calling fn with the 1-based label index.
// Unrepairable tables are skipped with a warning, never aborted on.
func forEachCell(doc *Document, o Orientation, fn func(labelIndex int, cell *TableCell)) {
	index := 0
	for _, elem := range doc.Body.Elements {
		table, ok := elem.(*Table)
		if !ok {
			continue
		}
		if !ensureGrid(table, o) {
			Logger().Warn("skipping unrepairable table", zap.String("orientation", string(o)))
			continue
		}
		for r := range table.Rows {
			for c := range table.Rows[r].Cells {
				index++
				fn(index, &table.Rows[r].Cells[c])
			}
		}
	}
}
