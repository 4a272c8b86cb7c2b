// Package pdf renders exported forms without an external PDF library.
// Two layers: a minimal single-page emitter for plain text documents,
// and a multi-page layout document with fonts, colors, rules and
// embedded signature images.
package pdf

import (
	"fmt"
	"io"
	"strings"
)

const (
	pageWidth  = 612.0
	pageHeight = 792.0

	simpleTopY      = 760.0
	simpleMinY      = 60.0
	simpleTitleSize = 18
	simpleBodySize  = 10
	simpleLeading   = 6
	blankLineStep   = 10

	// WrapColumns is the greedy word-wrap width for the simple emitter.
	WrapColumns = 90
)

// EscapeText escapes the three characters with syntactic meaning inside
// a PDF literal string. Skipping any of them corrupts the stream.
func EscapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\', '(', ')':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WrapText splits s into lines of at most maxLen characters using
// greedy line-breaking. Joining the result with spaces reconstructs the
// whitespace-normalized input.
func WrapText(s string, maxLen int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= maxLen {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// WriteSimple emits a minimal valid single-page PDF 1.4 document with a
// title and body lines. Body lines are word-wrapped at WrapColumns;
// empty lines only advance the cursor. There is no pagination: the
// cursor clamps at the bottom margin and further lines stack there.
func WriteSimple(w io.Writer, title string, lines []string) error {
	var content strings.Builder

	y := simpleTopY
	content.WriteString("BT\n")
	fmt.Fprintf(&content, "/F1 %d Tf\n", simpleTitleSize)
	fmt.Fprintf(&content, "72 %.0f Td\n", y)
	fmt.Fprintf(&content, "(%s) Tj\n", EscapeText(title))
	content.WriteString("ET\n")
	y -= simpleTitleSize + simpleLeading
	y -= blankLineStep

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			y -= blankLineStep
			if y < simpleMinY {
				y = simpleMinY
			}
			continue
		}
		for _, wrapped := range WrapText(line, WrapColumns) {
			content.WriteString("BT\n")
			fmt.Fprintf(&content, "/F1 %d Tf\n", simpleBodySize)
			fmt.Fprintf(&content, "72 %.0f Td\n", y)
			fmt.Fprintf(&content, "(%s) Tj\n", EscapeText(wrapped))
			content.WriteString("ET\n")
			y -= simpleBodySize + simpleLeading
			if y < simpleMinY {
				y = simpleMinY
			}
		}
	}

	stream := content.String()

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		fmt.Sprintf("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.0f %.0f] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n",
			pageWidth, pageHeight),
		fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%sendstream\nendobj\n",
			len(stream), stream),
		"5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
	}

	var out strings.Builder
	out.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		out.WriteString(obj)
	}

	xrefOffset := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefOffset)

	_, err := io.WriteString(w, out.String())
	return err
}
