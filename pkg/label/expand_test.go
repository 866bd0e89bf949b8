package label

import (
	"errors"
	"strings"
	"testing"
)

const singleCellTemplateXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:tbl>
      <w:tblPr>
        <w:tblW w:w="5400" w:type="dxa"/>
        <w:tblLayout w:type="fixed"/>
      </w:tblPr>
      <w:tblGrid>
        <w:gridCol w:w="5400"/>
      </w:tblGrid>
      <w:tr>
        <w:trPr><w:trHeight w:val="1440" w:hRule="exact"/></w:trPr>
        <w:tc>
          <w:tcPr><w:tcW w:w="5400" w:type="dxa"/></w:tcPr>
          <w:p><w:r><w:t>{{Label1.Description}} {{Label1.Weight}}</w:t></w:r></w:p>
          <w:p><w:r><w:t>{{Label1.Brand}}</w:t></w:r></w:p>
          <w:p><w:r><w:t>{{Label1.Price}}</w:t></w:r></w:p>
          <w:p><w:r><w:t>{{Label1.Lineage}}</w:t></w:r></w:p>
          <w:p><w:r><w:t>{{Label1.Ratio}}</w:t></w:r></w:p>
          <w:p><w:r><w:t>{{Label1.Vendor}}</w:t></w:r></w:p>
          <w:p><w:r><w:t>{{Label1.Strain}}</w:t></w:r></w:p>
          <w:p><w:r><w:t>{{Label1.DOH}} {{Label1.Payload}}</w:t></w:r></w:p>
        </w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func parseTestDocument(t *testing.T, xmlText string) *Document {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(xmlText))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	return doc
}

func firstTable(t *testing.T, doc *Document) *Table {
	t.Helper()
	for _, elem := range doc.Body.Elements {
		if table, ok := elem.(*Table); ok {
			return table
		}
	}
	t.Fatal("document has no table")
	return nil
}

func TestExpandGridShape(t *testing.T) {
	for _, o := range Orientations() {
		t.Run(string(o), func(t *testing.T) {
			doc := parseTestDocument(t, singleCellTemplateXML)
			if err := ExpandGrid(doc, o); err != nil {
				t.Fatalf("ExpandGrid: %v", err)
			}
			shape := o.Shape()
			table := firstTable(t, doc)
			if len(table.Rows) != shape.Rows {
				t.Fatalf("rows = %d, want %d", len(table.Rows), shape.Rows)
			}
			for r := range table.Rows {
				if len(table.Rows[r].Cells) != shape.Cols {
					t.Fatalf("row %d cells = %d, want %d", r, len(table.Rows[r].Cells), shape.Cols)
				}
			}
			if got := len(table.Grid.Columns); got != shape.Cols {
				t.Errorf("grid columns = %d, want %d", got, shape.Cols)
			}
			if got := table.Properties.Width.Val; got != shape.CellWidth*shape.Cols {
				t.Errorf("table width = %d, want %d", got, shape.CellWidth*shape.Cols)
			}
		})
	}
}

func TestExpandGridRenumbering(t *testing.T) {
	doc := parseTestDocument(t, singleCellTemplateXML)
	if err := ExpandGrid(doc, OrientationHorizontal); err != nil {
		t.Fatalf("ExpandGrid: %v", err)
	}

	table := firstTable(t, doc)
	index := 0
	for r := range table.Rows {
		for c := range table.Rows[r].Cells {
			index++
			text := table.Rows[r].Cells[c].GetText()
			want := placeholder(index, FieldDescription)
			if !strings.Contains(text, want) {
				t.Errorf("cell %d missing %s:\n%s", index, want, text)
			}
			// A cell may only reference its own label index.
			for other := 1; other <= OrientationHorizontal.Capacity(); other++ {
				if other == index {
					continue
				}
				stray := placeholder(other, FieldDescription)
				if strings.Contains(text, stray) {
					t.Errorf("cell %d contains stray %s", index, stray)
				}
			}
		}
	}
	if index != OrientationHorizontal.Capacity() {
		t.Errorf("walked %d cells, want %d", index, OrientationHorizontal.Capacity())
	}
}

// Renumbering cell 1 into cells 10..20 must not corrupt double-digit
// indices: a naive "{{Label1" rewrite would also hit "{{Label10".
func TestExpandGridDoubleDigitSafety(t *testing.T) {
	doc := parseTestDocument(t, singleCellTemplateXML)
	if err := ExpandGrid(doc, OrientationHorizontal); err != nil {
		t.Fatalf("ExpandGrid: %v", err)
	}
	table := firstTable(t, doc)
	// Cell 10 is row 4 col 1 in the 10x2 grid.
	text := table.Rows[4].Cells[1].GetText()
	if !strings.Contains(text, "{{Label10.Description}}") {
		t.Errorf("cell 10 text corrupted:\n%s", text)
	}
	if strings.Contains(text, "{{Label100.") || strings.Contains(text, "{{Label10.Label") {
		t.Errorf("cell 10 double-rewritten:\n%s", text)
	}
}

func TestExpandGridSynthesizesMissingFields(t *testing.T) {
	sparse := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:tbl>
      <w:tblGrid><w:gridCol w:w="5400"/></w:tblGrid>
      <w:tr><w:tc>
        <w:p><w:r><w:t>{{Label1.Description}}</w:t></w:r></w:p>
      </w:tc></w:tr>
    </w:tbl>
  </w:body>
</w:document>`
	doc := parseTestDocument(t, sparse)
	if err := ExpandGrid(doc, OrientationMini); err != nil {
		t.Fatalf("ExpandGrid: %v", err)
	}
	text := firstTable(t, doc).Rows[0].Cells[0].GetText()
	for _, ft := range requiredFields {
		if !strings.Contains(text, placeholder(1, ft)) {
			t.Errorf("synthesized cell missing %s placeholder", ft)
		}
	}
}

func TestExpandGridNoTable(t *testing.T) {
	empty := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p><w:r><w:t>no table here</w:t></w:r></w:p></w:body>
</w:document>`
	doc := parseTestDocument(t, empty)
	err := ExpandGrid(doc, OrientationMini)
	if err == nil {
		t.Fatal("ExpandGrid accepted a document without tables")
	}
	if !errors.Is(err, ErrNoTemplateTable) {
		t.Errorf("err = %v, want ErrNoTemplateTable", err)
	}
	if !IsTemplateError(err) {
		t.Errorf("err = %v, want TemplateError", err)
	}
}
