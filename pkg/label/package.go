package label

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const (
	wordMLNamespace       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relationshipNamespace = "http://schemas.openxmlformats.org/package/2006/relationships"
	imageRelationType     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	documentRelationType  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
)

// Relationship is one entry in a package relationships part.
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// Relationships is the collection of relationships for a part.
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// mediaPart is one image to embed in the output package.
type mediaPart struct {
	Filename string // under word/media/
	RelID    string
	Data     []byte
}

// packageReader gives access to the parts of a docx package read as an
// opaque byte buffer.
type packageReader struct {
	parts map[string]*zip.File
}

// openPackage indexes a docx byte buffer by part name. A package
// without word/document.xml is not a word-processing file.
func openPackage(data []byte) (*packageReader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, NewDocumentError("open", "", err)
	}
	pr := &packageReader{parts: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		pr.parts[f.Name] = f
	}
	if _, ok := pr.parts["word/document.xml"]; !ok {
		return nil, NewDocumentError("open", "word/document.xml", fmt.Errorf("part missing"))
	}
	return pr, nil
}

// documentXML returns the main document part.
func (pr *packageReader) documentXML() ([]byte, error) {
	return pr.part("word/document.xml")
}

func (pr *packageReader) part(name string) ([]byte, error) {
	f, ok := pr.parts[name]
	if !ok {
		return nil, NewDocumentError("read", name, fmt.Errorf("part not found"))
	}
	rc, err := f.Open()
	if err != nil {
		return nil, NewDocumentError("read", name, err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, NewDocumentError("read", name, err)
	}
	return content, nil
}

// serializeDocument renders the document model to a complete
// word/document.xml part in one pass. The grid's physical page setup
// is written fresh; headers and footers are never referenced, which is
// how the pipeline strips them.
func serializeDocument(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	buf.WriteString(`<w:document`)
	buf.WriteString(` xmlns:w="` + wordMLNamespace + `"`)
	buf.WriteString(` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`)
	buf.WriteString(` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"`)
	buf.WriteString(` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`)
	buf.WriteString(` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"`)
	buf.WriteString(`><w:body>`)

	enc := xml.NewEncoder(&buf)
	for _, elem := range doc.Body.Elements {
		if err := enc.Encode(elem); err != nil {
			return nil, NewDocumentError("marshal", "word/document.xml", err)
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, NewDocumentError("marshal", "word/document.xml", err)
	}

	// Letter page with narrow margins so the grid centers on the sheet.
	buf.WriteString(`<w:sectPr>`)
	buf.WriteString(`<w:pgSz w:w="12240" w:h="15840"/>`)
	buf.WriteString(`<w:pgMar w:top="360" w:right="360" w:bottom="360" w:left="360" w:header="0" w:footer="0" w:gutter="0"/>`)
	buf.WriteString(`</w:sectPr>`)
	buf.WriteString(`</w:body></w:document>`)
	return buf.Bytes(), nil
}

// writePackage assembles a complete docx package around the given
// document part and media. The package is built from scratch rather
// than patched: composition merges chunk documents, so the original
// template parts (headers, footers, stale relationships) must not
// leak through.
func writePackage(docXML []byte, media []mediaPart) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	write := func(name, content string) error {
		fw, err := w.Create(name)
		if err != nil {
			return NewDocumentError("write", name, err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			return NewDocumentError("write", name, err)
		}
		return nil
	}

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Default Extension="png" ContentType="image/png"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	if err := write("[Content_Types].xml", contentTypes); err != nil {
		return nil, err
	}

	rootRels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="` + relationshipNamespace + `">
  <Relationship Id="rId1" Type="` + documentRelationType + `" Target="word/document.xml"/>
</Relationships>`
	if err := write("_rels/.rels", rootRels); err != nil {
		return nil, err
	}

	rels := Relationships{Namespace: relationshipNamespace}
	for _, m := range media {
		rels.Relationship = append(rels.Relationship, Relationship{
			ID:     m.RelID,
			Type:   imageRelationType,
			Target: "media/" + m.Filename,
		})
	}
	relsXML, err := xml.Marshal(&rels)
	if err != nil {
		return nil, NewDocumentError("marshal", "word/_rels/document.xml.rels", err)
	}
	header := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	if err := write("word/_rels/document.xml.rels", header+string(relsXML)); err != nil {
		return nil, err
	}

	fw, err := w.Create("word/document.xml")
	if err != nil {
		return nil, NewDocumentError("write", "word/document.xml", err)
	}
	if _, err := fw.Write(docXML); err != nil {
		return nil, NewDocumentError("write", "word/document.xml", err)
	}

	for _, m := range media {
		fw, err := w.Create("word/media/" + m.Filename)
		if err != nil {
			return nil, NewDocumentError("write", "word/media/"+m.Filename, err)
		}
		if _, err := fw.Write(m.Data); err != nil {
			return nil, NewDocumentError("write", "word/media/"+m.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, NewDocumentError("close", "", err)
	}
	return buf.Bytes(), nil
}

// documentText extracts all visible text from a serialized document
// part. Used by tests and by the residual-marker sweep verification.
func documentText(docXML []byte) string {
	var sb strings.Builder
	dec := xml.NewDecoder(bytes.NewReader(docXML))
	inText := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String()
}
