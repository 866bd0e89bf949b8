package label

import (
	"strings"
	"testing"
)

func TestSerializeDocumentPrefixes(t *testing.T) {
	doc := &Document{Body: &Body{Elements: []BodyElement{
		&Paragraph{
			Properties: &ParagraphProperties{Alignment: &Alignment{Val: "center"}},
			Runs: []Run{{
				Properties: &RunProperties{Bold: &Empty{}, Size: &HalfPoints{Val: 24}},
				Text:       &Text{Content: "hello"},
			}},
		},
	}}}

	out, err := serializeDocument(doc)
	if err != nil {
		t.Fatalf("serializeDocument: %v", err)
	}
	xmlText := string(out)

	for _, want := range []string{
		`<w:document`,
		`<w:body>`,
		`<w:p>`,
		`<w:jc w:val="center">`,
		`<w:b>`,
		`<w:sz w:val="24">`,
		`<w:t>hello</w:t>`,
		`<w:sectPr>`,
	} {
		if !strings.Contains(xmlText, want) {
			t.Errorf("serialized document missing %s:\n%s", want, xmlText)
		}
	}
}

func TestSerializeDocumentPreservesLeadingSpace(t *testing.T) {
	doc := &Document{Body: &Body{Elements: []BodyElement{
		&Paragraph{Runs: []Run{{Text: &Text{Content: " padded "}}}},
	}}}
	out, err := serializeDocument(doc)
	if err != nil {
		t.Fatalf("serializeDocument: %v", err)
	}
	if !strings.Contains(string(out), `xml:space="preserve"`) {
		t.Error("whitespace-sensitive text must carry xml:space")
	}
}

func TestSerializeDocumentEmptyCellGetsParagraph(t *testing.T) {
	table := &Table{
		Grid: &TableGrid{Columns: []GridColumn{{Width: 5400}}},
		Rows: []TableRow{{Cells: []TableCell{{}}}},
	}
	doc := &Document{Body: &Body{Elements: []BodyElement{table}}}
	out, err := serializeDocument(doc)
	if err != nil {
		t.Fatalf("serializeDocument: %v", err)
	}
	if !strings.Contains(string(out), `<w:tc><w:p></w:p></w:tc>`) {
		t.Errorf("empty cell must serialize with a paragraph:\n%s", out)
	}
}

func TestWritePackageRoundTrip(t *testing.T) {
	docXML := []byte(`<?xml version="1.0"?><w:document xmlns:w="` + wordMLNamespace + `"><w:body><w:p><w:r><w:t>roundtrip</w:t></w:r></w:p></w:body></w:document>`)
	media := []mediaPart{{Filename: "image_abcd1234.png", RelID: "rIdImg1", Data: []byte{0x89, 'P', 'N', 'G'}}}

	out, err := writePackage(docXML, media)
	if err != nil {
		t.Fatalf("writePackage: %v", err)
	}

	pkg, err := openPackage(out)
	if err != nil {
		t.Fatalf("openPackage: %v", err)
	}
	got, err := pkg.documentXML()
	if err != nil {
		t.Fatalf("documentXML: %v", err)
	}
	if string(got) != string(docXML) {
		t.Error("document part changed in transit")
	}

	rels, err := pkg.part("word/_rels/document.xml.rels")
	if err != nil {
		t.Fatalf("rels part: %v", err)
	}
	if !strings.Contains(string(rels), `Target="media/image_abcd1234.png"`) {
		t.Errorf("media relationship missing:\n%s", rels)
	}
	if _, err := pkg.part("word/media/image_abcd1234.png"); err != nil {
		t.Errorf("media part missing: %v", err)
	}
}

func TestOpenPackageRejectsNonDocx(t *testing.T) {
	if _, err := openPackage([]byte("not a zip")); err == nil {
		t.Error("openPackage accepted garbage")
	}
	// A valid zip without word/document.xml is still not a document.
	empty, err := writePackage([]byte("<w:document/>"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := openPackage(empty); err != nil {
		t.Fatalf("control package should open: %v", err)
	}
}

func TestDocumentText(t *testing.T) {
	docXML := []byte(`<w:document xmlns:w="` + wordMLNamespace + `"><w:body><w:p><w:r><w:t>one</w:t></w:r><w:r><w:t> two</w:t></w:r></w:p></w:body></w:document>`)
	if got := documentText(docXML); got != "one two" {
		t.Errorf("documentText = %q, want %q", got, "one two")
	}
}
