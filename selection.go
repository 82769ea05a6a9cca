package main

import (
	"fmt"
	"strings"
)

const (
	fieldSeparator  = "\t"
	recordSeparator = "\n"
)

// Clipboard is the external text channel used by copy, extract and paste.
// fyne.Clipboard satisfies it.
type Clipboard interface {
	Content() string
	SetContent(content string)
}

// Serialize writes the cells of r as tab separated fields, one line per row.
// Empty cells give empty fields. A cell holding a tab or line break could not
// be pasted back and fails with ErrDelimiterInText.
func Serialize(g *Grid, r Range) (string, error) {
	if err := g.CheckRange(r); err != nil {
		return "", err
	}
	var sb strings.Builder
	for i := r.Top; i <= r.Bottom; i++ {
		if i > r.Top {
			sb.WriteString(recordSeparator)
		}
		for j := r.Left; j <= r.Right; j++ {
			if j > r.Left {
				sb.WriteString(fieldSeparator)
			}
			text := g.cells[i][j]
			if err := checkRawText(text); err != nil {
				return "", fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}

// Copy puts the cells of r on the clipboard
func Copy(g *Grid, r Range, cb Clipboard) error {
	text, err := Serialize(g, r)
	if err != nil {
		return err
	}
	cb.SetContent(text)
	return nil
}

// Extract puts the cells of r on the clipboard and empties them
func Extract(g *Grid, r Range, cb Clipboard) error {
	text, err := Serialize(g, r)
	if err != nil {
		return err
	}
	cb.SetContent(text)
	return g.Clear(r)
}

// splitRecords breaks delimited text into rows of fields. CRLF line endings
// and one trailing newline are accepted.
func splitRecords(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", recordSeparator)
	text = strings.TrimSuffix(text, recordSeparator)
	lines := strings.Split(text, recordSeparator)
	records := make([][]string, len(lines))
	for i, line := range lines {
		records[i] = strings.Split(line, fieldSeparator)
	}
	return records
}

// Deserialize writes delimited text into g with its first field at origin.
// Each record starts at origin.Col. Rows are added as needed; fields beyond
// the last column are dropped.
func Deserialize(g *Grid, origin Position, text string) (Range, error) {
	if err := g.checkCell(origin.Row, origin.Col); err != nil {
		return Range{}, err
	}
	records := splitRecords(text)
	g.growRows(origin.Row + len(records))
	right := origin.Col
	for i, fields := range records {
		for j, field := range fields {
			col := origin.Col + j
			if col >= g.cols {
				break
			}
			g.cells[origin.Row+i][col] = field
			right = max(right, col)
		}
	}
	return Range{Top: origin.Row, Left: origin.Col, Bottom: origin.Row + len(records) - 1, Right: right}, nil
}

// placeBlocks writes texts row-major from origin. Continuation rows start
// at column 0, so consecutive blocks stay adjacent in reading order.
func placeBlocks(g *Grid, origin Position, texts []string) (Range, error) {
	if err := g.checkCell(origin.Row, origin.Col); err != nil {
		return Range{}, err
	}
	if len(texts) == 0 {
		return CellRange(origin), nil
	}
	start := origin.Row*g.cols + origin.Col
	end := start + len(texts) - 1
	g.growRows(end/g.cols + 1)
	for i, text := range texts {
		k := start + i
		g.cells[k/g.cols][k%g.cols] = text
	}
	r := Range{Top: origin.Row, Left: origin.Col, Bottom: end / g.cols, Right: end % g.cols}
	if r.Bottom > r.Top {
		r.Left = 0
		r.Right = g.cols - 1
	}
	return r, nil
}

// InsertFixedWidthChunks splits data into bs-sized blocks encoded in the
// grid's encoding and writes them from origin
func InsertFixedWidthChunks(g *Grid, origin Position, data []byte, bs BlockSize) (Range, error) {
	var s byteStream
	s.appendKnown(data)
	texts, err := s.cells(bs.Bytes(), g.encoding)
	if err != nil {
		return Range{}, err
	}
	return placeBlocks(g, origin, texts)
}

// InsertPlaceholders marks n unknown bytes from origin, laid out like
// InsertFixedWidthChunks would lay out n known bytes
func InsertPlaceholders(g *Grid, origin Position, n int, bs BlockSize) (Range, error) {
	var s byteStream
	s.appendUnknown(n)
	texts, err := s.cells(bs.Bytes(), g.encoding)
	if err != nil {
		return Range{}, err
	}
	return placeBlocks(g, origin, texts)
}

// PasteResult describes what a paste wrote
type PasteResult struct {
	Range Range
	// Bytes is the number of raw bytes pasted; zero for delimited text
	Bytes int
}

// Paste writes the clipboard into g at origin. Delimited text (containing a
// tab or newline) is deserialized cell by cell; anything else is decoded in
// the grid's encoding and split into bs-sized blocks.
func Paste(g *Grid, origin Position, cb Clipboard, bs BlockSize) (PasteResult, error) {
	text := cb.Content()
	if text == "" {
		return PasteResult{}, fmt.Errorf("clipboard is empty")
	}
	if strings.ContainsAny(text, fieldSeparator+recordSeparator) {
		r, err := Deserialize(g, origin, text)
		return PasteResult{Range: r}, err
	}
	data, err := Decode(text, g.encoding)
	if err != nil {
		return PasteResult{}, err
	}
	r, err := InsertFixedWidthChunks(g, origin, data, bs)
	if err != nil {
		return PasteResult{}, err
	}
	return PasteResult{Range: r, Bytes: len(data)}, nil
}
