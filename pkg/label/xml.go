package label

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// The document model below covers the WordprocessingML subset the
// label pipeline needs: ordered body elements, paragraphs, runs,
// tables, and inline drawings. Marshaling emits w:-prefixed elements
// directly so the serialized part never needs a fix-up pass.

// Document represents one word-processing document part.
type Document struct {
	Body *Body
}

// BodyElement is any element that can appear in a document body.
type BodyElement interface {
	isBodyElement()
}

// Body holds the ordered elements of the document body.
type Body struct {
	Elements []BodyElement
}

// Paragraph is a paragraph of runs.
type Paragraph struct {
	Properties *ParagraphProperties `xml:"pPr"`
	Runs       []Run                `xml:"r"`
}

func (p Paragraph) isBodyElement() {}

// ParagraphProperties carries the paragraph formatting the engine
// manipulates: justification and vertical spacing.
type ParagraphProperties struct {
	Alignment *Alignment `xml:"jc"`
	Spacing   *Spacing   `xml:"spacing"`
}

// Run is a run of identically formatted content.
type Run struct {
	Properties *RunProperties `xml:"rPr"`
	Text       *Text          `xml:"t"`
	Break      *Break         `xml:"br"`
	Drawing    *Drawing       `xml:"-"`
}

// RunProperties carries run formatting.
type RunProperties struct {
	Bold   *Empty      `xml:"b"`
	Italic *Empty      `xml:"i"`
	Color  *Color      `xml:"color"`
	Size   *HalfPoints `xml:"sz"`
	SizeCs *HalfPoints `xml:"szCs"`
}

// Text is the text content of a run.
type Text struct {
	Space   string `xml:"space,attr"`
	Content string `xml:",chardata"`
}

// Break is a line break.
type Break struct {
	Type string `xml:"type,attr,omitempty"`
}

// Empty marks a boolean toggle property.
type Empty struct{}

// Alignment is paragraph justification ("left", "center", "right").
type Alignment struct {
	Val string `xml:"val,attr"`
}

// Spacing is paragraph spacing before/after in twips.
type Spacing struct {
	Before int `xml:"before,attr"`
	After  int `xml:"after,attr"`
}

// Color is a run color as RRGGBB hex.
type Color struct {
	Val string `xml:"val,attr"`
}

// HalfPoints is a font size in half-points, as w:sz stores it.
type HalfPoints struct {
	Val int `xml:"val,attr"`
}

// Table is a table with its grid descriptor and rows.
type Table struct {
	Properties *TableProperties `xml:"tblPr"`
	Grid       *TableGrid       `xml:"tblGrid"`
	Rows       []TableRow       `xml:"tr"`
}

func (t Table) isBodyElement() {}

// TableProperties carries the table-level settings the expander fixes.
type TableProperties struct {
	Width  *TableWidth  `xml:"tblW"`
	Layout *TableLayout `xml:"tblLayout"`
}

// TableWidth is the overall table width.
type TableWidth struct {
	Type string `xml:"type,attr"`
	Val  int    `xml:"w,attr"`
}

// TableLayout selects fixed vs autofit column behavior.
type TableLayout struct {
	Type string `xml:"type,attr"`
}

// TableGrid is the grid descriptor: one column entry per grid column.
type TableGrid struct {
	Columns []GridColumn `xml:"gridCol"`
}

// GridColumn is one column width in twips.
type GridColumn struct {
	Width int `xml:"w,attr"`
}

// TableRow is one table row.
type TableRow struct {
	Properties *TableRowProperties `xml:"trPr"`
	Cells      []TableCell         `xml:"tc"`
}

// TableRowProperties carries row-level settings.
type TableRowProperties struct {
	Height *RowHeight `xml:"trHeight"`
}

// RowHeight is a row height with its rule ("exact" pins the physical
// label height).
type RowHeight struct {
	Val   int    `xml:"val,attr"`
	HRule string `xml:"hRule,attr,omitempty"`
}

// TableCell is one table cell.
type TableCell struct {
	Properties *TableCellProperties `xml:"tcPr"`
	Paragraphs []Paragraph          `xml:"p"`
}

// TableCellProperties carries cell-level settings.
type TableCellProperties struct {
	Width *TableWidth `xml:"tcW"`
}

// UnmarshalXML preserves the order of paragraphs and tables in the
// body. Section properties, bookmarks and other elements the pipeline
// does not touch are skipped.
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var para Paragraph
				if err := d.DecodeElement(&para, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &para)
			case "tbl":
				var table Table
				if err := d.DecodeElement(&table, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &table)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "body" {
				return nil
			}
		}
	}
}

// ParseDocument parses a word/document.xml part.
func ParseDocument(r io.Reader) (*Document, error) {
	var raw struct {
		XMLName xml.Name `xml:"document"`
		Body    *Body    `xml:"body"`
	}
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, NewDocumentError("parse", "word/document.xml", err)
	}
	if raw.Body == nil {
		raw.Body = &Body{}
	}
	return &Document{Body: raw.Body}, nil
}

// --- Marshaling ---
//
// Every type marshals itself with w:-prefixed element names so the
// document part serializes correctly in a single pass.

func encodeEmpty(e *xml.Encoder, name string, attrs ...xml.Attr) error {
	start := xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func (p Paragraph) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:p"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if p.Properties != nil {
		if err := p.Properties.encode(e); err != nil {
			return err
		}
	}
	for _, run := range p.Runs {
		if err := run.encode(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (pp *ParagraphProperties) encode(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:pPr"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if pp.Alignment != nil {
		if err := encodeEmpty(e, "w:jc", attr("w:val", pp.Alignment.Val)); err != nil {
			return err
		}
	}
	if pp.Spacing != nil {
		if err := encodeEmpty(e, "w:spacing",
			attr("w:before", fmt.Sprintf("%d", pp.Spacing.Before)),
			attr("w:after", fmt.Sprintf("%d", pp.Spacing.After))); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (r Run) encode(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:r"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if r.Properties != nil {
		if err := r.Properties.encode(e); err != nil {
			return err
		}
	}
	if r.Break != nil {
		var attrs []xml.Attr
		if r.Break.Type != "" {
			attrs = append(attrs, attr("w:type", r.Break.Type))
		}
		if err := encodeEmpty(e, "w:br", attrs...); err != nil {
			return err
		}
	}
	if r.Text != nil {
		tstart := xml.StartElement{Name: xml.Name{Local: "w:t"}}
		if r.Text.Space == "preserve" || r.Text.Content != strings.TrimSpace(r.Text.Content) {
			tstart.Attr = append(tstart.Attr, attr("xml:space", "preserve"))
		}
		if err := e.EncodeToken(tstart); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.CharData(r.Text.Content)); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: tstart.Name}); err != nil {
			return err
		}
	}
	if r.Drawing != nil {
		if err := r.Drawing.encode(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (rp *RunProperties) encode(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:rPr"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if rp.Bold != nil {
		if err := encodeEmpty(e, "w:b"); err != nil {
			return err
		}
	}
	if rp.Italic != nil {
		if err := encodeEmpty(e, "w:i"); err != nil {
			return err
		}
	}
	if rp.Color != nil {
		if err := encodeEmpty(e, "w:color", attr("w:val", rp.Color.Val)); err != nil {
			return err
		}
	}
	if rp.Size != nil {
		if err := encodeEmpty(e, "w:sz", attr("w:val", fmt.Sprintf("%d", rp.Size.Val))); err != nil {
			return err
		}
	}
	if rp.SizeCs != nil {
		if err := encodeEmpty(e, "w:szCs", attr("w:val", fmt.Sprintf("%d", rp.SizeCs.Val))); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (t Table) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:tbl"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if t.Properties != nil {
		pstart := xml.StartElement{Name: xml.Name{Local: "w:tblPr"}}
		if err := e.EncodeToken(pstart); err != nil {
			return err
		}
		if t.Properties.Width != nil {
			if err := encodeEmpty(e, "w:tblW",
				attr("w:w", fmt.Sprintf("%d", t.Properties.Width.Val)),
				attr("w:type", t.Properties.Width.Type)); err != nil {
				return err
			}
		}
		if t.Properties.Layout != nil {
			if err := encodeEmpty(e, "w:tblLayout", attr("w:type", t.Properties.Layout.Type)); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(xml.EndElement{Name: pstart.Name}); err != nil {
			return err
		}
	}
	if t.Grid != nil {
		gstart := xml.StartElement{Name: xml.Name{Local: "w:tblGrid"}}
		if err := e.EncodeToken(gstart); err != nil {
			return err
		}
		for _, col := range t.Grid.Columns {
			if err := encodeEmpty(e, "w:gridCol", attr("w:w", fmt.Sprintf("%d", col.Width))); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(xml.EndElement{Name: gstart.Name}); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if err := row.encode(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (tr TableRow) encode(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:tr"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if tr.Properties != nil && tr.Properties.Height != nil {
		pstart := xml.StartElement{Name: xml.Name{Local: "w:trPr"}}
		if err := e.EncodeToken(pstart); err != nil {
			return err
		}
		attrs := []xml.Attr{attr("w:val", fmt.Sprintf("%d", tr.Properties.Height.Val))}
		if tr.Properties.Height.HRule != "" {
			attrs = append(attrs, attr("w:hRule", tr.Properties.Height.HRule))
		}
		if err := encodeEmpty(e, "w:trHeight", attrs...); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: pstart.Name}); err != nil {
			return err
		}
	}
	for _, cell := range tr.Cells {
		if err := cell.encode(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (tc TableCell) encode(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:tc"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if tc.Properties != nil && tc.Properties.Width != nil {
		pstart := xml.StartElement{Name: xml.Name{Local: "w:tcPr"}}
		if err := e.EncodeToken(pstart); err != nil {
			return err
		}
		if err := encodeEmpty(e, "w:tcW",
			attr("w:w", fmt.Sprintf("%d", tc.Properties.Width.Val)),
			attr("w:type", tc.Properties.Width.Type)); err != nil {
			return err
		}
		if err := e.EncodeToken(xml.EndElement{Name: pstart.Name}); err != nil {
			return err
		}
	}
	paras := tc.Paragraphs
	if len(paras) == 0 {
		// A table cell must contain at least one paragraph or Word
		// refuses to open the document.
		paras = []Paragraph{{}}
	}
	for _, p := range paras {
		if err := p.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// --- Text helpers ---

// GetText returns the text content of a run.
func (r *Run) GetText() string {
	if r.Text == nil {
		return ""
	}
	return r.Text.Content
}

// GetText returns the concatenated text of all runs in a paragraph.
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for i := range p.Runs {
		sb.WriteString(p.Runs[i].GetText())
	}
	return sb.String()
}

// GetText returns the concatenated text of all paragraphs in a cell.
func (c *TableCell) GetText() string {
	var parts []string
	for i := range c.Paragraphs {
		parts = append(parts, c.Paragraphs[i].GetText())
	}
	return strings.Join(parts, "\n")
}

// --- Deep copies ---
//
// Grid expansion clones the template cell once per grid slot; shared
// pointers between cells would make per-cell formatting bleed across
// labels.

// Clone returns a deep copy of the paragraph.
func (p *Paragraph) Clone() Paragraph {
	out := Paragraph{}
	if p.Properties != nil {
		props := *p.Properties
		if p.Properties.Alignment != nil {
			a := *p.Properties.Alignment
			props.Alignment = &a
		}
		if p.Properties.Spacing != nil {
			s := *p.Properties.Spacing
			props.Spacing = &s
		}
		out.Properties = &props
	}
	out.Runs = make([]Run, len(p.Runs))
	for i := range p.Runs {
		out.Runs[i] = p.Runs[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the run.
func (r Run) Clone() Run {
	out := Run{}
	if r.Properties != nil {
		props := *r.Properties
		if r.Properties.Color != nil {
			c := *r.Properties.Color
			props.Color = &c
		}
		if r.Properties.Size != nil {
			s := *r.Properties.Size
			props.Size = &s
		}
		if r.Properties.SizeCs != nil {
			s := *r.Properties.SizeCs
			props.SizeCs = &s
		}
		if r.Properties.Bold != nil {
			props.Bold = &Empty{}
		}
		if r.Properties.Italic != nil {
			props.Italic = &Empty{}
		}
		out.Properties = &props
	}
	if r.Text != nil {
		t := *r.Text
		out.Text = &t
	}
	if r.Break != nil {
		b := *r.Break
		out.Break = &b
	}
	if r.Drawing != nil {
		d := *r.Drawing
		out.Drawing = &d
	}
	return out
}

// Clone returns a deep copy of the cell.
func (c *TableCell) Clone() TableCell {
	out := TableCell{}
	if c.Properties != nil && c.Properties.Width != nil {
		w := *c.Properties.Width
		out.Properties = &TableCellProperties{Width: &w}
	}
	out.Paragraphs = make([]Paragraph, len(c.Paragraphs))
	for i := range c.Paragraphs {
		out.Paragraphs[i] = c.Paragraphs[i].Clone()
	}
	return out
}
