package label

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestStaticStore(t *testing.T) {
	store := &StaticStore{
		Lineages:    map[string]string{"blue dream": "Sativa Dominant"},
		JointRatios: map[string]string{"blue dream 1g": "1 x 5"},
	}

	if got, ok := store.Lineage("  Blue Dream  "); !ok || got != "Sativa Dominant" {
		t.Errorf("Lineage = %q, %v", got, ok)
	}
	if _, ok := store.Lineage("unknown"); ok {
		t.Error("unknown strain should miss")
	}
	if got, ok := store.JointRatio("Blue Dream 1g"); !ok || got != "1 x 5" {
		t.Errorf("JointRatio = %q, %v", got, ok)
	}
}

func TestDirIconResolver(t *testing.T) {
	dir := t.TempDir()
	icon := []byte{0x89, 'P', 'N', 'G'}
	if err := os.WriteFile(filepath.Join(dir, "general use.png"), icon, 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := DirIconResolver{Dir: dir}
	got, ok := resolver.Icon(" General Use ", "Flower")
	if !ok || !bytes.Equal(got, icon) {
		t.Errorf("Icon = %v, %v", got, ok)
	}
	if _, ok := resolver.Icon("missing", "Flower"); ok {
		t.Error("missing icon should miss")
	}
	if _, ok := resolver.Icon("", "Flower"); ok {
		t.Error("empty flag should miss")
	}
}

func TestQRPayloadGenerator(t *testing.T) {
	gen := QRPayloadGenerator{}
	img, err := gen.Generate("Blue Dream 1g")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// PNG magic bytes.
	if len(img) < 8 || !bytes.Equal(img[:4], []byte{0x89, 'P', 'N', 'G'}) {
		t.Errorf("payload image is not a PNG (%d bytes)", len(img))
	}
}
