package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image/color"
	"image/jpeg"
	"image/png"
	"strconv"
)

// Font selects one of the two built-in Type1 fonts every conformant
// reader ships.
type Font int

const (
	Helvetica Font = iota
	HelveticaBold
)

func (f Font) resource() string {
	if f == HelveticaBold {
		return "/F2"
	}
	return "/F1"
}

// Document assembles a multi-page PDF. Coordinates given to its methods
// are measured from the top-left corner of the page, matching how the
// layout code flows downward; conversion to PDF's bottom-left origin
// happens at emit time.
type Document struct {
	pages  []*bytes.Buffer
	images []*imageObject
}

type imageObject struct {
	name             string
	width, height    int
	colorSpace       string
	bitsPerComponent int
	filter           string
	data             []byte
}

func NewDocument() *Document {
	d := &Document{}
	d.AddPage()
	return d
}

// AddPage starts a new page; subsequent drawing lands on it.
func (d *Document) AddPage() {
	d.pages = append(d.pages, &bytes.Buffer{})
}

func (d *Document) current() *bytes.Buffer {
	return d.pages[len(d.pages)-1]
}

// Text draws s at (x, yTop) in the given font, size and hex color.
func (d *Document) Text(x, yTop float64, font Font, size float64, hexColor, s string) {
	r, g, b := parseHexColor(hexColor)
	buf := d.current()
	fmt.Fprintf(buf, "%.3f %.3f %.3f rg\n", r, g, b)
	buf.WriteString("BT\n")
	fmt.Fprintf(buf, "%s %.1f Tf\n", font.resource(), size)
	fmt.Fprintf(buf, "%.1f %.1f Td\n", x, pageHeight-yTop-size)
	fmt.Fprintf(buf, "(%s) Tj\n", EscapeText(s))
	buf.WriteString("ET\n")
}

// Rule draws a horizontal stroke from x1 to x2 at yTop.
func (d *Document) Rule(x1, x2, yTop float64, hexColor string) {
	r, g, b := parseHexColor(hexColor)
	buf := d.current()
	fmt.Fprintf(buf, "%.3f %.3f %.3f RG\n", r, g, b)
	fmt.Fprintf(buf, "%.1f %.1f m %.1f %.1f l S\n",
		x1, pageHeight-yTop, x2, pageHeight-yTop)
}

// Image places an encoded PNG or JPEG at (x, yTop) scaled to w by h
// points. Unsupported or corrupt image data returns an error without
// touching the page.
func (d *Document) Image(data []byte, x, yTop, w, h float64) error {
	obj, err := d.registerImage(data)
	if err != nil {
		return err
	}
	buf := d.current()
	fmt.Fprintf(buf, "q %.1f 0 0 %.1f %.1f %.1f cm /%s Do Q\n",
		w, h, x, pageHeight-yTop-h, obj.name)
	return nil
}

func (d *Document) registerImage(data []byte) (*imageObject, error) {
	var (
		obj *imageObject
		err error
	)
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG")):
		obj, err = decodePNG(data)
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		obj, err = decodeJPEG(data)
	default:
		return nil, fmt.Errorf("unsupported image format")
	}
	if err != nil {
		return nil, err
	}
	obj.name = "Im" + strconv.Itoa(len(d.images)+1)
	d.images = append(d.images, obj)
	return obj, nil
}

// decodePNG re-encodes the pixels as flate-compressed raw RGB, flattening
// any alpha over white the way signatures appear on paper.
func decodePNG(data []byte) (*imageObject, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	raw := make([]byte, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			raw = append(raw, flattenChannel(r, a), flattenChannel(g, a), flattenChannel(b, a))
		}
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return &imageObject{
		width:            bounds.Dx(),
		height:           bounds.Dy(),
		colorSpace:       "DeviceRGB",
		bitsPerComponent: 8,
		filter:           "FlateDecode",
		data:             compressed.Bytes(),
	}, nil
}

// decodeJPEG embeds the original bytes untouched; PDF readers decode
// DCT streams natively.
func decodeJPEG(data []byte) (*imageObject, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	colorSpace := "DeviceRGB"
	if cfg.ColorModel == color.GrayModel {
		colorSpace = "DeviceGray"
	}
	return &imageObject{
		width:            cfg.Width,
		height:           cfg.Height,
		colorSpace:       colorSpace,
		bitsPerComponent: 8,
		filter:           "DCTDecode",
		data:             data,
	}, nil
}

// flattenChannel composites a premultiplied 16-bit channel over white
// and narrows to 8 bits.
func flattenChannel(c, a uint32) byte {
	white := 0xffff - a
	return byte((c + white) >> 8)
}

// TextWidth estimates the rendered width of s at the given size. The
// metric is deliberately the same one WrapWidth and TextHeight use, so
// measured wrapping and actual drawing can never disagree.
func TextWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.5
}

// WrapWidth greedily wraps s so no line exceeds width points at the
// given font size.
func WrapWidth(s string, size, width float64) []string {
	maxLen := int(width / (size * 0.5))
	if maxLen < 1 {
		maxLen = 1
	}
	return WrapText(s, maxLen)
}

// TextHeight measures the wrapped height of s at the given size and
// width, using the same metric as WrapWidth.
func TextHeight(s string, size, width float64) float64 {
	lines := WrapWidth(s, size, width)
	if len(lines) == 0 {
		lines = []string{""}
	}
	return float64(len(lines)) * (size + 3)
}

// Bytes assembles the final PDF file.
func (d *Document) Bytes() []byte {
	// Object numbering: 1 catalog, 2 pages tree, then page/content
	// pairs, then the two fonts, then image xobjects.
	numPages := len(d.pages)
	firstPageObj := 3
	fontObj := firstPageObj + numPages*2
	firstImageObj := fontObj + 2
	totalObjects := firstImageObj + len(d.images) - 1

	resources := fmt.Sprintf("<< /Font << /F1 %d 0 R /F2 %d 0 R >>", fontObj, fontObj+1)
	if len(d.images) > 0 {
		resources += " /XObject <<"
		for i, img := range d.images {
			resources += fmt.Sprintf(" /%s %d 0 R", img.name, firstImageObj+i)
		}
		resources += " >>"
	}
	resources += " >>"

	kids := ""
	for i := 0; i < numPages; i++ {
		kids += fmt.Sprintf("%d 0 R ", firstPageObj+i*2)
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, totalObjects)

	writeObj := func(body string) {
		offsets = append(offsets, out.Len())
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids[:len(kids)-1], numPages))

	for i, content := range d.pages {
		writeObj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.0f %.0f] /Contents %d 0 R /Resources %s >>",
			pageWidth, pageHeight, firstPageObj+i*2+1, resources))
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream",
			content.Len(), content.String()))
	}

	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>")

	for _, img := range d.images {
		offsets = append(offsets, out.Len())
		fmt.Fprintf(&out,
			"%d 0 obj\n<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /%s /BitsPerComponent %d /Filter /%s /Length %d >>\nstream\n",
			len(offsets), img.width, img.height, img.colorSpace, img.bitsPerComponent, img.filter, len(img.data))
		out.Write(img.data)
		out.WriteString("\nendstream\nendobj\n")
	}

	xrefOffset := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(offsets)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset)

	return out.Bytes()
}

func parseHexColor(s string) (r, g, b float64) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0
	}
	parse := func(hex string) float64 {
		v, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return 0
		}
		return float64(v) / 255
	}
	return parse(s[1:3]), parse(s[3:5]), parse(s[5:7])
}
