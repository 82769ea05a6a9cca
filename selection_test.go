package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memClipboard keeps clipboard content in memory
type memClipboard struct {
	content string
}

func (m *memClipboard) Content() string {
	return m.content
}

func (m *memClipboard) SetContent(content string) {
	m.content = content
}

func TestSerialize(t *testing.T) {
	g := gridOf(Raw, []string{"a", "b", "c"}, []string{"d", "", "f"}, []string{"g", "h", "i"})

	text, err := Serialize(g, Range{Top: 0, Left: 0, Bottom: 1, Right: 2})
	require.NoError(t, err)
	assert.Equal(t, "a\tb\tc\nd\t\tf", text)

	text, err = Serialize(g, CellRange(Position{Row: 2, Col: 1}))
	require.NoError(t, err)
	assert.Equal(t, "h", text)

	_, err = Serialize(g, Range{Top: 0, Left: 0, Bottom: 3, Right: 0})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestCopyPasteRoundTrip(t *testing.T) {
	g := gridOf(Hex, []string{"00", "11", "22"}, []string{"33", "44", "55"}, []string{"66", "77", "88"})
	before := g.Clone()
	cb := &memClipboard{}
	r := NewRange(Position{Row: 1, Col: 1}, Position{Row: 2, Col: 2})

	require.NoError(t, Copy(g, r, cb))
	assert.True(t, before.Equal(g))
	assert.Equal(t, "44\t55\n77\t88", cb.Content())

	require.NoError(t, g.Clear(r))
	_, err := Paste(g, r.Origin(), cb, BlockSize64)
	require.NoError(t, err)
	assert.True(t, before.Equal(g))
}

func TestCopyRejectsCellsWithDelimiters(t *testing.T) {
	// a quoted CSV field may carry a line break into a Raw cell
	g, err := ReadCSV(strings.NewReader("\"ab\ncdefg\",hijklmno\npqrstuvw,xyz\n"), UTF8, Raw)
	require.NoError(t, err)
	before := g.Clone()
	cb := &memClipboard{content: "unchanged"}
	r := Range{Top: 0, Left: 0, Bottom: 1, Right: 1}

	assert.ErrorIs(t, Copy(g, r, cb), ErrDelimiterInText)
	assert.ErrorIs(t, Extract(g, r, cb), ErrDelimiterInText)
	assert.Equal(t, "unchanged", cb.Content())
	assert.True(t, before.Equal(g))

	require.NoError(t, Copy(g, Range{Top: 1, Left: 0, Bottom: 1, Right: 1}, cb))
	assert.Equal(t, "pqrstuvw\txyz", cb.Content())
}

func TestExtractClearsSource(t *testing.T) {
	g := gridOf(Raw, []string{"ab", "cd"}, []string{"ef", "gh"})
	cb := &memClipboard{}

	require.NoError(t, Extract(g, Range{Top: 0, Left: 1, Bottom: 1, Right: 1}, cb))
	assert.Equal(t, "cd\ngh", cb.Content())
	assert.Equal(t, [][]string{{"ab", ""}, {"ef", ""}}, g.Snapshot())
}

func TestDeserializeGrowsRowsAndDropsExtraFields(t *testing.T) {
	g := NewGrid(1, 3, Raw)

	r, err := Deserialize(g, Position{Row: 0, Col: 1}, "a\tb\tc\r\nd\n\te\n")
	require.NoError(t, err)
	assert.Equal(t, Range{Top: 0, Left: 1, Bottom: 2, Right: 2}, r)
	assert.Equal(t, [][]string{
		{"", "a", "b"},
		{"", "d", ""},
		{"", "", "e"},
	}, g.Snapshot())
	assert.Equal(t, 3, g.Columns())

	_, err = Deserialize(g, Position{Row: 0, Col: 3}, "x")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestInsertFixedWidthChunks(t *testing.T) {
	g := NewGrid(1, 4, Raw)

	r, err := InsertFixedWidthChunks(g, Position{Row: 0, Col: 2}, []byte("AAAABBBBCCCCDDDDEE"), BlockSize64)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"", "", "AAAABBBB", "CCCCDDDD"},
		{"EE", "", "", ""},
	}, g.Snapshot())
	assert.Equal(t, Range{Top: 0, Left: 0, Bottom: 1, Right: 3}, r)

	g = NewGrid(1, 4, Hex)
	r, err = InsertFixedWidthChunks(g, Position{}, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}, BlockSize64)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"0102030405060708", "09", "", ""}}, g.Snapshot())
	assert.Equal(t, Range{Top: 0, Left: 0, Bottom: 0, Right: 1}, r)
}

func TestInsertPlaceholders(t *testing.T) {
	g := NewGrid(1, 4, Hex)
	_, err := InsertPlaceholders(g, Position{Row: 0, Col: 3}, 20, BlockSize64)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"", "", "", "????????"},
		{"????????", "????", "", ""},
	}, g.Snapshot())
}

func TestPasteRawBlocks(t *testing.T) {
	g := NewGrid(2, 4, Base64)
	cb := &memClipboard{content: "Zm9vYmFyYmF6cXV4MTIz"}

	res, err := Paste(g, Position{}, cb, BlockSize64)
	require.NoError(t, err)
	assert.Equal(t, 15, res.Bytes)
	assert.Equal(t, []string{"Zm9vYmFyYmE=", "enF1eDEyMw==", "", ""}, g.Snapshot()[0])

	flat, err := g.Flatten()
	require.NoError(t, err)
	assert.Equal(t, "foobarbazqux123", string(flat))
}

func TestPasteErrorsLeaveGrid(t *testing.T) {
	g := NewGrid(2, 4, Hex)
	before := g.Clone()

	_, err := Paste(g, Position{}, &memClipboard{content: "xyz"}, BlockSize64)
	assert.ErrorIs(t, err, ErrInvalidHex)
	assert.True(t, before.Equal(g))

	_, err = Paste(g, Position{}, &memClipboard{}, BlockSize64)
	assert.Error(t, err)
	assert.True(t, before.Equal(g))
}
