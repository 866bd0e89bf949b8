package label

import (
	"os"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Store is the persisted product/strain lookup collaborator. It is
// read-mostly and must tolerate concurrent readers; locking is the
// implementation's concern, not the engine's.
type Store interface {
	// Lineage resolves a strain name to its canonical lineage.
	Lineage(strain string) (string, bool)
	// JointRatio resolves a product display name to its stored joint
	// ratio, used when the record's own value is blank or zero-like.
	JointRatio(displayName string) (string, bool)
}

// NopStore resolves nothing; records fall back to their own values.
type NopStore struct{}

func (NopStore) Lineage(string) (string, bool)    { return "", false }
func (NopStore) JointRatio(string) (string, bool) { return "", false }

// StaticStore is a map-backed Store. Maps are never mutated after
// construction, so concurrent readers are safe.
type StaticStore struct {
	Lineages    map[string]string
	JointRatios map[string]string
}

func (s *StaticStore) Lineage(strain string) (string, bool) {
	v, ok := s.Lineages[strings.ToLower(strings.TrimSpace(strain))]
	return v, ok
}

func (s *StaticStore) JointRatio(name string) (string, bool) {
	v, ok := s.JointRatios[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

// ComplianceIconResolver maps a compliance flag and product type to an
// image asset. The engine only sizes and positions the returned image.
type ComplianceIconResolver interface {
	Icon(flag, productType string) ([]byte, bool)
}

// NopIconResolver returns no icon for any flag.
type NopIconResolver struct{}

func (NopIconResolver) Icon(string, string) ([]byte, bool) { return nil, false }

// DirIconResolver resolves icons from <dir>/<flag>.png asset files.
type DirIconResolver struct {
	Dir string
}

func (r DirIconResolver) Icon(flag, _ string) ([]byte, bool) {
	flag = strings.ToLower(strings.TrimSpace(flag))
	if flag == "" || r.Dir == "" {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(r.Dir, flag+".png"))
	if err != nil {
		return nil, false
	}
	return data, true
}

// PayloadCodeGenerator turns an item's display name into a scannable
// raster image. The engine sizes it in millimeters from the marker
// font model.
type PayloadCodeGenerator interface {
	Generate(displayName string) ([]byte, error)
}

// QRPayloadGenerator encodes display names as QR PNGs.
type QRPayloadGenerator struct {
	// Pixels is the rendered edge length; the drawing extent controls
	// the printed size, so this only needs enough resolution to scan.
	Pixels int
}

func (g QRPayloadGenerator) Generate(displayName string) ([]byte, error) {
	pixels := g.Pixels
	if pixels <= 0 {
		pixels = 256
	}
	return qrcode.Encode(displayName, qrcode.Medium, pixels)
}
