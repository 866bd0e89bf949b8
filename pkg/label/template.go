package label

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// TemplateLibrary supplies the packaged single-cell base template for
// each orientation. The built-in templates are synthesized in memory;
// a template directory, when configured, overrides them per
// orientation with <dir>/<orientation>.docx.
type TemplateLibrary struct {
	dir string
}

// NewTemplateLibrary creates a library. dir may be empty to use only
// the built-in templates.
func NewTemplateLibrary(dir string) *TemplateLibrary {
	return &TemplateLibrary{dir: dir}
}

// Base returns the base template for an orientation as an opaque docx
// byte buffer.
func (l *TemplateLibrary) Base(o Orientation) ([]byte, error) {
	if !o.Valid() {
		return nil, NewTemplateError(o, "unknown orientation", nil)
	}
	if l.dir != "" {
		path := filepath.Join(l.dir, string(o)+".docx")
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
		// Fall through to the built-in template; an unreadable override
		// is not fatal.
		Logger().Debug("template override not readable, using built-in",
			zap.String("orientation", string(o)))
	}
	return builtinTemplate(o), nil
}

// placeholder returns the literal template token for label index n and
// field ft.
func placeholder(n int, ft FieldType) string {
	return fmt.Sprintf("{{Label%d.%s}}", n, placeholderSuffix[ft])
}

// requiredFields are the slots every expanded cell must carry, in the
// order they appear on a label.
var requiredFields = []FieldType{
	FieldDescription,
	FieldWeight,
	FieldBrand,
	FieldPrice,
	FieldLineage,
	FieldRatio,
	FieldVendor,
	FieldStrain,
	FieldDOH,
	FieldQR,
}

// builtinTemplate synthesizes the packaged base template for one
// orientation: a minimal docx whose document holds a single styled
// table cell with Label1 placeholders.
func builtinTemplate(o Orientation) []byte {
	shape := o.Shape()

	var body bytes.Buffer
	body.WriteString(`<w:tbl><w:tblPr>`)
	body.WriteString(fmt.Sprintf(`<w:tblW w:w="%d" w:type="dxa"/>`, shape.CellWidth))
	body.WriteString(`<w:tblLayout w:type="fixed"/></w:tblPr>`)
	body.WriteString(fmt.Sprintf(`<w:tblGrid><w:gridCol w:w="%d"/></w:tblGrid>`, shape.CellWidth))
	body.WriteString(`<w:tr><w:trPr>`)
	body.WriteString(fmt.Sprintf(`<w:trHeight w:val="%d" w:hRule="exact"/>`, shape.CellHeight))
	body.WriteString(`</w:trPr><w:tc><w:tcPr>`)
	body.WriteString(fmt.Sprintf(`<w:tcW w:w="%d" w:type="dxa"/>`, shape.CellWidth))
	body.WriteString(`</w:tcPr>`)

	para := func(tokens ...string) {
		body.WriteString(`<w:p>`)
		for _, tok := range tokens {
			body.WriteString(`<w:r><w:t>`)
			body.WriteString(tok)
			body.WriteString(`</w:t></w:r>`)
		}
		body.WriteString(`</w:p>`)
	}

	para(placeholder(1, FieldDescription), placeholder(1, FieldWeight))
	para(placeholder(1, FieldBrand))
	para(placeholder(1, FieldPrice))
	para(placeholder(1, FieldLineage))
	para(placeholder(1, FieldRatio))
	para(placeholder(1, FieldVendor))
	para(placeholder(1, FieldStrain))
	para(placeholder(1, FieldDOH), placeholder(1, FieldQR))

	body.WriteString(`</w:tc></w:tr></w:tbl>`)

	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="` + wordMLNamespace + `"><w:body>` + body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	ct, _ := w.Create("[Content_Types].xml")
	io.WriteString(ct, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	rels, _ := w.Create("_rels/.rels")
	io.WriteString(rels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="`+relationshipNamespace+`">
  <Relationship Id="rId1" Type="`+documentRelationType+`" Target="word/document.xml"/>
</Relationships>`)

	wordRels, _ := w.Create("word/_rels/document.xml.rels")
	io.WriteString(wordRels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="`+relationshipNamespace+`">
</Relationships>`)

	doc, _ := w.Create("word/document.xml")
	io.WriteString(doc, documentXML)

	w.Close()
	return buf.Bytes()
}
