package label

import (
	"encoding/xml"
	"fmt"
)

// EMU conversion constants. WordprocessingML drawing extents are in
// English Metric Units: 914400 per inch, 36000 per millimeter.
const (
	emuPerMM = 36000
	mmPerPt  = 25.4 / 72.0
)

// Drawing is an inline picture: a compliance icon or payload-code
// image embedded in a label cell. Extents are in EMU; the relationship
// ID points at the media part registered in the output package.
type Drawing struct {
	ID        int
	Name      string
	RelID     string
	WidthEMU  int64
	HeightEMU int64
}

// mmToEMU converts millimeters to EMU.
func mmToEMU(mm float64) int64 {
	return int64(mm * emuPerMM)
}

// pointsToMM converts a font point size to millimeters. Image
// placeholders are sized from their field's font-size model.
func pointsToMM(pt float64) float64 {
	return pt * mmPerPt
}

// encode emits the w:drawing subtree for an inline picture.
func (d *Drawing) encode(e *xml.Encoder) error {
	open := func(name string, attrs ...xml.Attr) error {
		return e.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
	}
	closeEl := func(name string) error {
		return e.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
	}

	cx := fmt.Sprintf("%d", d.WidthEMU)
	cy := fmt.Sprintf("%d", d.HeightEMU)
	id := fmt.Sprintf("%d", d.ID)

	if err := open("w:drawing"); err != nil {
		return err
	}
	if err := open("wp:inline",
		attr("distT", "0"), attr("distB", "0"), attr("distL", "0"), attr("distR", "0")); err != nil {
		return err
	}
	if err := encodeEmpty(e, "wp:extent", attr("cx", cx), attr("cy", cy)); err != nil {
		return err
	}
	if err := encodeEmpty(e, "wp:docPr", attr("id", id), attr("name", d.Name)); err != nil {
		return err
	}
	if err := open("a:graphic"); err != nil {
		return err
	}
	if err := open("a:graphicData",
		attr("uri", "http://schemas.openxmlformats.org/drawingml/2006/picture")); err != nil {
		return err
	}
	if err := open("pic:pic"); err != nil {
		return err
	}

	if err := open("pic:nvPicPr"); err != nil {
		return err
	}
	if err := encodeEmpty(e, "pic:cNvPr", attr("id", id), attr("name", d.Name)); err != nil {
		return err
	}
	if err := encodeEmpty(e, "pic:cNvPicPr"); err != nil {
		return err
	}
	if err := closeEl("pic:nvPicPr"); err != nil {
		return err
	}

	if err := open("pic:blipFill"); err != nil {
		return err
	}
	if err := encodeEmpty(e, "a:blip", attr("r:embed", d.RelID)); err != nil {
		return err
	}
	if err := open("a:stretch"); err != nil {
		return err
	}
	if err := encodeEmpty(e, "a:fillRect"); err != nil {
		return err
	}
	if err := closeEl("a:stretch"); err != nil {
		return err
	}
	if err := closeEl("pic:blipFill"); err != nil {
		return err
	}

	if err := open("pic:spPr"); err != nil {
		return err
	}
	if err := open("a:xfrm"); err != nil {
		return err
	}
	if err := encodeEmpty(e, "a:off", attr("x", "0"), attr("y", "0")); err != nil {
		return err
	}
	if err := encodeEmpty(e, "a:ext", attr("cx", cx), attr("cy", cy)); err != nil {
		return err
	}
	if err := closeEl("a:xfrm"); err != nil {
		return err
	}
	if err := open("a:prstGeom", attr("prst", "rect")); err != nil {
		return err
	}
	if err := encodeEmpty(e, "a:avLst"); err != nil {
		return err
	}
	if err := closeEl("a:prstGeom"); err != nil {
		return err
	}
	if err := closeEl("pic:spPr"); err != nil {
		return err
	}

	if err := closeEl("pic:pic"); err != nil {
		return err
	}
	if err := closeEl("a:graphicData"); err != nil {
		return err
	}
	if err := closeEl("a:graphic"); err != nil {
		return err
	}
	if err := closeEl("wp:inline"); err != nil {
		return err
	}
	return closeEl("w:drawing")
}
