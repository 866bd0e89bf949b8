package label

import (
	"fmt"
	"strings"
)

// ExpandGrid replaces the document's single-cell base template table
// with the orientation's full N-row × M-col grid. Every cell receives
// a deep copy of the template cell's content with its placeholder
// namespace renumbered from label 1 to the cell's own label index.
// Column widths and row heights are fixed so the physical label size
// is exact; the overall table width is perCellWidth × cols, which the
// page setup relies on for centering.
func ExpandGrid(doc *Document, o Orientation) error {
	var source *Table
	for _, elem := range doc.Body.Elements {
		if t, ok := elem.(*Table); ok {
			source = t
			break
		}
	}
	if source == nil {
		return NewTemplateError(o, "cannot expand grid", ErrNoTemplateTable)
	}
	if !ensureGrid(source, o) || len(source.Rows) == 0 || len(source.Rows[0].Cells) == 0 {
		return NewTemplateError(o, "cannot expand grid", ErrNoTemplateTable)
	}

	templateCell := source.Rows[0].Cells[0].Clone()
	synthesizeMissingFields(&templateCell)

	shape := o.Shape()
	grid := &Table{
		Properties: &TableProperties{
			Width:  &TableWidth{Type: "dxa", Val: shape.CellWidth * shape.Cols},
			Layout: &TableLayout{Type: "fixed"},
		},
		Grid: &TableGrid{Columns: make([]GridColumn, shape.Cols)},
		Rows: make([]TableRow, shape.Rows),
	}
	for c := range grid.Grid.Columns {
		grid.Grid.Columns[c] = GridColumn{Width: shape.CellWidth}
	}
	for r := 0; r < shape.Rows; r++ {
		grid.Rows[r] = TableRow{
			Properties: &TableRowProperties{
				Height: &RowHeight{Val: shape.CellHeight, HRule: "exact"},
			},
			Cells: make([]TableCell, shape.Cols),
		}
		for c := 0; c < shape.Cols; c++ {
			labelIndex := r*shape.Cols + c + 1
			cell := templateCell.Clone()
			cell.Properties = &TableCellProperties{
				Width: &TableWidth{Type: "dxa", Val: shape.CellWidth},
			}
			renumberCell(&cell, labelIndex)
			grid.Rows[r].Cells[c] = cell
		}
	}

	// The original single-cell table is discarded; only the expanded
	// grid survives. Any header/footer references died with the
	// template part, since the output package is rebuilt from scratch.
	doc.Body.Elements = []BodyElement{grid}
	return nil
}

// renumberCell rewrites every placeholder in the cell from label 1 to
// label n. Replacement keys on the full "{{Label1." prefix including
// the field separator dot, so "{{Label10." can never be corrupted by
// a "{{Label1." rewrite.
func renumberCell(cell *TableCell, n int) {
	if n == 1 {
		return
	}
	to := fmt.Sprintf("{{Label%d.", n)
	for p := range cell.Paragraphs {
		for r := range cell.Paragraphs[p].Runs {
			run := &cell.Paragraphs[p].Runs[r]
			if run.Text != nil {
				run.Text.Content = strings.ReplaceAll(run.Text.Content, "{{Label1.", to)
			}
		}
	}
}

// synthesizeMissingFields ensures the template cell carries a
// placeholder for every required field slot. A source design missing
// a slot gets a new placeholder run synthesized immediately after the
// description anchor, repeating (bounded by the required-field list)
// until all slots exist.
func synthesizeMissingFields(cell *TableCell) {
	text := cell.GetText()
	anchorIdx := anchorParagraph(cell)
	for _, ft := range requiredFields {
		token := placeholder(1, ft)
		if strings.Contains(text, token) {
			continue
		}
		para := Paragraph{Runs: []Run{{Text: &Text{Content: token}}}}
		insertAt := anchorIdx + 1
		if insertAt > len(cell.Paragraphs) {
			insertAt = len(cell.Paragraphs)
		}
		cell.Paragraphs = append(cell.Paragraphs[:insertAt],
			append([]Paragraph{para}, cell.Paragraphs[insertAt:]...)...)
		anchorIdx = insertAt
		text += token
	}
}

// anchorParagraph returns the index of the paragraph holding the
// description placeholder, or the last paragraph when none does.
func anchorParagraph(cell *TableCell) int {
	token := placeholder(1, FieldDescription)
	for i := range cell.Paragraphs {
		if strings.Contains(cell.Paragraphs[i].GetText(), token) {
			return i
		}
	}
	if len(cell.Paragraphs) == 0 {
		cell.Paragraphs = []Paragraph{{}}
	}
	return len(cell.Paragraphs) - 1
}
