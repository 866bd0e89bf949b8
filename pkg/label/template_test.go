package label

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinTemplatesParse(t *testing.T) {
	lib := NewTemplateLibrary("")
	for _, o := range Orientations() {
		t.Run(string(o), func(t *testing.T) {
			data, err := lib.Base(o)
			if err != nil {
				t.Fatalf("Base: %v", err)
			}
			pkg, err := openPackage(data)
			if err != nil {
				t.Fatalf("openPackage: %v", err)
			}
			docXML, err := pkg.documentXML()
			if err != nil {
				t.Fatalf("documentXML: %v", err)
			}
			doc, err := ParseDocument(bytes.NewReader(docXML))
			if err != nil {
				t.Fatalf("ParseDocument: %v", err)
			}
			table := firstTable(t, doc)
			if len(table.Rows) != 1 || len(table.Rows[0].Cells) != 1 {
				t.Fatalf("built-in template must be single-cell, got %dx%d",
					len(table.Rows), len(table.Rows[0].Cells))
			}
			text := table.Rows[0].Cells[0].GetText()
			for _, ft := range requiredFields {
				if !strings.Contains(text, placeholder(1, ft)) {
					t.Errorf("template missing %s placeholder", ft)
				}
			}
		})
	}
}

func TestBaseUnknownOrientation(t *testing.T) {
	lib := NewTemplateLibrary("")
	if _, err := lib.Base(Orientation("diagonal")); err == nil {
		t.Error("Base accepted an unknown orientation")
	}
}

func TestBaseDirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	override := []byte("custom template bytes")
	if err := os.WriteFile(filepath.Join(dir, "mini.docx"), override, 0o644); err != nil {
		t.Fatal(err)
	}

	lib := NewTemplateLibrary(dir)
	got, err := lib.Base(OrientationMini)
	if err != nil {
		t.Fatalf("Base: %v", err)
	}
	if !bytes.Equal(got, override) {
		t.Error("override file not used")
	}

	// Orientations without an override fall back to the built-in.
	fallback, err := lib.Base(OrientationVertical)
	if err != nil {
		t.Fatalf("Base fallback: %v", err)
	}
	if _, err := openPackage(fallback); err != nil {
		t.Errorf("fallback is not a package: %v", err)
	}
}
