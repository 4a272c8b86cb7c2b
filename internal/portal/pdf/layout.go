package pdf

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"time"
)

const (
	marginLeft   = 72.0
	marginRight  = 540.0
	contentWidth = 468.0

	topMargin = 50.0

	headerColor = "#1e40af"
	ruleColor   = "#cbd5e1"
	mutedColor  = "#64748b"
	textColor   = "#000000"

	fieldStep         = 20.0
	sectionHeaderStep = 25.0
)

var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// flow is the page cursor the form renderers share: it tracks the
// current vertical position and breaks to a new page when a block would
// land past the bottom threshold.
type flow struct {
	doc *Document
	y   float64
}

// start draws the common document header and positions the cursor.
func start(title string, generated time.Time) (*Document, *flow) {
	doc := NewDocument()
	f := &flow{doc: doc, y: 110}

	centerText(doc, title, 50, HelveticaBold, 18, headerColor)
	centerText(doc, "Generated: "+formatDate(&generated), 75, Helvetica, 10, mutedColor)
	return doc, f
}

func centerText(doc *Document, s string, y float64, font Font, size float64, color string) {
	x := marginLeft + (contentWidth-TextWidth(s, size))/2
	if x < marginLeft {
		x = marginLeft
	}
	doc.Text(x, y, font, size, color, s)
}

// breakIf starts a new page when the cursor is past the threshold.
// Thresholds differ per block kind: 680 for sections and text areas,
// 700 for checklist rows, 720 for short field rows, 650 for sign-off
// blocks that may carry an image.
func (f *flow) breakIf(threshold float64) {
	if f.y > threshold {
		f.doc.AddPage()
		f.y = topMargin
	}
}

// field renders a bold label and its value on one line.
func (f *flow) field(label, value string) {
	if value == "" {
		value = "N/A"
	}
	f.doc.Text(marginLeft, f.y, HelveticaBold, 10, textColor, label)
	f.doc.Text(marginLeft+TextWidth(label, 10), f.y, Helvetica, 10, textColor, value)
	f.y += fieldStep
}

// sectionHeader renders a colored title over a horizontal rule.
func (f *flow) sectionHeader(title string) {
	f.doc.Text(marginLeft, f.y, HelveticaBold, 12, headerColor, title)
	f.doc.Rule(marginLeft, marginRight, f.y+15, ruleColor)
	f.y += sectionHeaderStep
}

// textArea renders a bold label above a wrapped block of text. The
// cursor advances by the measured height so long values never overlap
// the next block.
func (f *flow) textArea(label, value string) {
	f.breakIf(680)

	if value == "" {
		value = "N/A"
	}
	f.doc.Text(marginLeft, f.y, HelveticaBold, 10, textColor, label)
	f.y += 15

	lineY := f.y
	for _, line := range WrapWidth(value, 9, contentWidth) {
		f.doc.Text(marginLeft, lineY, Helvetica, 9, textColor, line)
		lineY += 12
	}

	height := TextHeight(value, 9, contentWidth)
	if height < 30 {
		height = 30
	}
	f.y += height + 10
}

// signature renders the sign-off image decoded from a data URI, or a
// textual placeholder when the blob cannot be decoded. One corrupt
// signature must never abort the rest of the document.
func (f *flow) signature(dataURI string) {
	raw, err := decodeDataURI(dataURI)
	if err == nil {
		f.doc.Text(marginLeft, f.y, Helvetica, 9, textColor, "   Signature:")
		f.y += 12
		err = f.doc.Image(raw, 100, f.y, 150, 40)
		if err == nil {
			f.y += 50
			return
		}
		// image failed after the label; fall through to the placeholder
	}
	f.doc.Text(marginLeft, f.y, Helvetica, 10, textColor, "   [Signature on file]")
	f.y += 15
}

func decodeDataURI(s string) ([]byte, error) {
	trimmed := dataURIPrefix.ReplaceAllString(s, "")
	raw, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}
	return raw, nil
}

// formatDate renders a date as MM/DD/YYYY, or N/A when absent.
func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Format("01/02/2006")
}
