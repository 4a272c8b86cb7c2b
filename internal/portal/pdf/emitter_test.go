package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeText(t *testing.T) {
	require.Equal(t, `plain text`, EscapeText("plain text"))
	require.Equal(t, `\(parens\)`, EscapeText("(parens)"))
	require.Equal(t, `a\\b`, EscapeText(`a\b`))
	require.Equal(t, `\\\(\)`, EscapeText(`\()`))
}

func TestWrapText(t *testing.T) {
	input := strings.Repeat("word ", 50)
	lines := WrapText(input, 20)

	for _, line := range lines {
		require.LessOrEqual(t, len(line), 20)
	}

	// Rejoining reconstructs the whitespace-normalized input.
	require.Equal(t, strings.Join(strings.Fields(input), " "), strings.Join(lines, " "))
}

func TestWrapTextEmpty(t *testing.T) {
	require.Nil(t, WrapText("", 20))
	require.Nil(t, WrapText("   ", 20))
}

func TestWrapTextLongWord(t *testing.T) {
	// A single word longer than the width still lands on its own line.
	lines := WrapText("short "+strings.Repeat("x", 40)+" tail", 20)
	require.Len(t, lines, 3)
}

func TestWriteSimpleStructure(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSimple(&buf, "Test (Title)", []string{
		"first line",
		"",
		`line with \ backslash and (parens)`,
	})
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "%PDF-1.4\n"))
	require.True(t, strings.HasSuffix(out, "%%EOF\n"))

	// Special characters must be escaped inside the content stream.
	require.Contains(t, out, `\(Title\)`)
	require.Contains(t, out, `\\ backslash`)
	require.Contains(t, out, `\(parens\)`)

	// The declared Length must match the actual stream byte count.
	stream := between(t, out, "stream\n", "endstream")
	lengthStr := between(t, out, "/Length ", " >>")
	length, err := strconv.Atoi(lengthStr)
	require.NoError(t, err)
	require.Equal(t, len(stream), length)

	// xref: free entry plus one in-use entry per object, and startxref
	// pointing at the xref keyword.
	require.Contains(t, out, "xref\n0 6\n0000000000 65535 f \n")
	require.Equal(t, 5, strings.Count(out, " 00000 n \n"))

	startxref := between(t, out, "startxref\n", "\n%%EOF")
	offset, err := strconv.Atoi(startxref)
	require.NoError(t, err)
	require.Equal(t, "xref", out[offset:offset+4])

	require.Contains(t, out, "/Root 1 0 R")
}

func TestWriteSimpleOffsetsAccurate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSimple(&buf, "Offsets", []string{"body"}))

	out := buf.String()
	xrefStart := strings.Index(out, "xref\n")
	require.Positive(t, xrefStart)

	// Every recorded offset points at the start of its object.
	lines := strings.Split(out[xrefStart:], "\n")
	for i, line := range lines[3:8] {
		var off int
		_, scanErr := fmt.Sscanf(line, "%d", &off)
		require.NoError(t, scanErr)
		wantPrefix := strconv.Itoa(i+1) + " 0 obj"
		require.True(t, strings.HasPrefix(out[off:], wantPrefix),
			"object %d offset %d points at %q", i+1, off, out[off:off+10])
	}
}

func between(t *testing.T, s, from, to string) string {
	t.Helper()
	start := strings.Index(s, from)
	require.GreaterOrEqual(t, start, 0)
	start += len(from)
	end := strings.Index(s[start:], to)
	require.GreaterOrEqual(t, end, 0)
	return s[start : start+end]
}
