package main

import (
	"fmt"
	"unicode/utf8"
)

// Position addresses a single grid cell
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Range is an inclusive rectangle of cells
type Range struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// NewRange builds the rectangle spanned by two corner cells
func NewRange(a, b Position) Range {
	return Range{
		Top:    min(a.Row, b.Row),
		Left:   min(a.Col, b.Col),
		Bottom: max(a.Row, b.Row),
		Right:  max(a.Col, b.Col),
	}
}

// CellRange is the range holding only p
func CellRange(p Position) Range {
	return NewRange(p, p)
}

// Origin returns the top-left cell of the range
func (r Range) Origin() Position {
	return Position{Row: r.Top, Col: r.Left}
}

func (r Range) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Top, r.Left, r.Bottom, r.Right)
}

// Grid is a rectangular table of text cells, each holding one block of a
// byte stream rendered in the grid's encoding. An empty string is an empty
// cell.
type Grid struct {
	cells    [][]string
	cols     int
	encoding Encoding
}

// NewGrid creates an empty rows x cols grid
func NewGrid(rows, cols int, enc Encoding) *Grid {
	rows = max(rows, 0)
	cols = max(cols, 0)
	g := &Grid{cols: cols, encoding: enc}
	for i := 0; i < rows; i++ {
		g.cells = append(g.cells, make([]string, cols))
	}
	return g
}

// NewGridFromBytes lays data out in blocks of bs, DefaultColumns per row
func NewGridFromBytes(data []byte, bs BlockSize, enc Encoding) (*Grid, error) {
	var s byteStream
	s.appendKnown(data)
	texts, err := s.cells(bs.Bytes(), enc)
	if err != nil {
		return nil, err
	}
	g := NewGrid(0, DefaultColumns, enc)
	g.fill(texts, Position{})
	return g, nil
}

func (g *Grid) Rows() int {
	return len(g.cells)
}

func (g *Grid) Columns() int {
	return g.cols
}

// Encoding returns the encoding the cell texts are written in
func (g *Grid) Encoding() Encoding {
	return g.encoding
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.Rows() && col >= 0 && col < g.cols
}

func (g *Grid) checkCell(row, col int) error {
	if !g.inBounds(row, col) {
		return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrIndexOutOfRange, row, col, g.Rows(), g.cols)
	}
	return nil
}

// Cell returns the text at (row, col) and whether the cell holds any
func (g *Grid) Cell(row, col int) (string, bool, error) {
	if err := g.checkCell(row, col); err != nil {
		return "", false, err
	}
	text := g.cells[row][col]
	return text, text != "", nil
}

// SetCell replaces the text at (row, col); "" empties the cell
func (g *Grid) SetCell(row, col int, text string) error {
	if err := g.checkCell(row, col); err != nil {
		return err
	}
	g.cells[row][col] = text
	return nil
}

// ClearCell empties the cell at (row, col)
func (g *Grid) ClearCell(row, col int) error {
	return g.SetCell(row, col, "")
}

// CheckRange fails unless every cell of r lies inside the grid
func (g *Grid) CheckRange(r Range) error {
	if r.Top > r.Bottom || r.Left > r.Right || !g.inBounds(r.Top, r.Left) || !g.inBounds(r.Bottom, r.Right) {
		return fmt.Errorf("%w: range %v outside %dx%d grid", ErrIndexOutOfRange, r, g.Rows(), g.cols)
	}
	return nil
}

// Clear empties every cell in r
func (g *Grid) Clear(r Range) error {
	if err := g.CheckRange(r); err != nil {
		return err
	}
	for i := r.Top; i <= r.Bottom; i++ {
		for j := r.Left; j <= r.Right; j++ {
			g.cells[i][j] = ""
		}
	}
	return nil
}

// ClearAll empties every cell, keeping the shape
func (g *Grid) ClearAll() {
	for _, row := range g.cells {
		clear(row)
	}
}

// InsertRow adds an empty row below row after; -1 inserts at the top
func (g *Grid) InsertRow(after int) error {
	if after < -1 || after >= g.Rows() {
		return fmt.Errorf("%w: row %d", ErrIndexOutOfRange, after)
	}
	at := after + 1
	g.cells = append(g.cells, nil)
	copy(g.cells[at+1:], g.cells[at:])
	g.cells[at] = make([]string, g.cols)
	return nil
}

// InsertColumn adds an empty column right of column after; -1 inserts at
// the left edge
func (g *Grid) InsertColumn(after int) error {
	if after < -1 || after >= g.cols {
		return fmt.Errorf("%w: column %d", ErrIndexOutOfRange, after)
	}
	at := after + 1
	for i, row := range g.cells {
		row = append(row, "")
		copy(row[at+1:], row[at:])
		row[at] = ""
		g.cells[i] = row
	}
	g.cols++
	return nil
}

func (g *Grid) RemoveRow(index int) error {
	if index < 0 || index >= g.Rows() {
		return fmt.Errorf("%w: row %d", ErrIndexOutOfRange, index)
	}
	g.cells = append(g.cells[:index], g.cells[index+1:]...)
	return nil
}

func (g *Grid) RemoveColumn(index int) error {
	if index < 0 || index >= g.cols {
		return fmt.Errorf("%w: column %d", ErrIndexOutOfRange, index)
	}
	for i, row := range g.cells {
		g.cells[i] = append(row[:index], row[index+1:]...)
	}
	g.cols--
	return nil
}

// growRows appends empty rows until the grid has at least n
func (g *Grid) growRows(n int) {
	for g.Rows() < n {
		g.cells = append(g.cells, make([]string, g.cols))
	}
}

// stream flattens the grid row-major. Cells are concatenated by their
// decoded length, so cells of any width are handled.
func (g *Grid) stream() (*byteStream, error) {
	s := &byteStream{}
	for i, row := range g.cells {
		for j, text := range row {
			if text == "" {
				continue
			}
			if IsPlaceholder(text) {
				s.appendUnknown(utf8.RuneCountInString(text))
				continue
			}
			data, err := Decode(text, g.encoding)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
			s.appendKnown(data)
		}
	}
	return s, nil
}

// Flatten returns the bytes held by the grid in row-major order
func (g *Grid) Flatten() ([]byte, error) {
	s, err := g.stream()
	if err != nil {
		return nil, err
	}
	if !s.complete() {
		return nil, ErrUnknownBytes
	}
	return s.data, nil
}

// fill discards the current contents and writes texts row-major from
// origin on a DefaultColumns wide grid. Rows after the first start at
// column 0.
func (g *Grid) fill(texts []string, origin Position) {
	g.cols = DefaultColumns
	start := origin.Row*g.cols + origin.Col
	end := start + len(texts)
	g.cells = nil
	g.growRows((end + g.cols - 1) / g.cols)
	for i, text := range texts {
		k := start + i
		g.cells[k/g.cols][k%g.cols] = text
	}
}

// Rechunk re-partitions the grid content into bs-sized cells, DefaultColumns
// per row. The grid is unchanged if it fails.
func (g *Grid) Rechunk(bs BlockSize) error {
	if !bs.Valid() {
		return fmt.Errorf("unsupported block size %d", int(bs))
	}
	s, err := g.stream()
	if err != nil {
		return err
	}
	texts, err := s.cells(bs.Bytes(), g.encoding)
	if err != nil {
		return err
	}
	g.fill(texts, Position{})
	return nil
}

// ResolveEncoding switches the grid to enc: the content is flattened in the
// current encoding, re-encoded, and refilled in bs-sized cells starting at
// origin. It is a no-op when enc is already active.
func (g *Grid) ResolveEncoding(enc Encoding, bs BlockSize, origin Position) error {
	if enc == g.encoding {
		return nil
	}
	if !bs.Valid() {
		return fmt.Errorf("unsupported block size %d", int(bs))
	}
	if origin.Row < 0 || origin.Col < 0 || origin.Col >= DefaultColumns || (origin.Row >= g.Rows() && origin.Row != 0) {
		return fmt.Errorf("%w: origin %v", ErrIndexOutOfRange, origin)
	}
	s, err := g.stream()
	if err != nil {
		return err
	}
	texts, err := s.cells(bs.Bytes(), enc)
	if err != nil {
		return err
	}
	g.encoding = enc
	g.fill(texts, origin)
	return nil
}

// TranscodeCells re-renders each cell in enc without moving it. Placeholder
// cells are kept as they are.
func (g *Grid) TranscodeCells(enc Encoding) error {
	if enc == g.encoding {
		return nil
	}
	out := g.Snapshot()
	for i, row := range out {
		for j, text := range row {
			if text == "" || IsPlaceholder(text) {
				continue
			}
			converted, err := Transcode(text, g.encoding, enc)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
			out[i][j] = converted
		}
	}
	g.cells = out
	g.encoding = enc
	return nil
}

// Snapshot returns a copy of the cell texts
func (g *Grid) Snapshot() [][]string {
	out := make([][]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Equal reports whether both grids have the same shape, encoding and cells
func (g *Grid) Equal(other *Grid) bool {
	if g.encoding != other.encoding || g.cols != other.cols || g.Rows() != other.Rows() {
		return false
	}
	for i := range g.cells {
		for j := range g.cells[i] {
			if g.cells[i][j] != other.cells[i][j] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	return &Grid{cells: g.Snapshot(), cols: g.cols, encoding: g.encoding}
}
