package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadAllBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cipher.bin")
	data := []byte{0x00, 0x01, 0xfe, 0xff}

	require.NoError(t, WriteAllBytes(path, data))
	got, err := ReadAllBytes(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, WriteAllBytes(path, []byte("replaced")))
	got, err = ReadAllBytes(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("replaced"), got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteAllBytesKeepsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not kept on windows")
	}
	path := filepath.Join(t.TempDir(), "cipher.bin")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	require.NoError(t, WriteAllBytes(path, []byte("new")))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	fresh := filepath.Join(t.TempDir(), "fresh.bin")
	require.NoError(t, WriteAllBytes(fresh, []byte("new")))
	info, err = os.Stat(fresh)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWriteAllBytesFailureLeavesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "cipher.bin")
	assert.Error(t, WriteAllBytes(path, []byte("x")))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	_, err = ReadAllBytes(path)
	assert.Error(t, err)
}

func TestReadCSVPadsRaggedRows(t *testing.T) {
	g, err := ReadCSV(strings.NewReader("a,b,c\nd\n, e ,\n"), UTF8, Raw)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Columns())
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d", "", ""}, {"", " e ", ""}}, g.Snapshot())
}

func TestCSVRoundTripCharsets(t *testing.T) {
	g := gridOf(Raw, []string{"テスト", "????"}, []string{"", "ok"}, []string{" ABCDEF ", "GH  "})
	for _, cs := range []Charset{UTF8, ShiftJIS} {
		path := filepath.Join(t.TempDir(), "plain.csv")
		require.NoError(t, SaveCSV(path, g, cs))

		loaded, err := LoadCSV(path, cs, Raw)
		require.NoError(t, err)
		assert.True(t, g.Equal(loaded), "%v", cs)
	}
}

func TestWriteCSVShiftJISBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, gridOf(Raw, []string{"テスト"}), ShiftJIS))
	assert.False(t, utf8.Valid(buf.Bytes()))
	assert.Equal(t, []byte("\x83\x65\x83\x58\x83\x67\n"), buf.Bytes())
}

func TestLatin1CSV(t *testing.T) {
	g, err := ReadCSV(bytes.NewReader([]byte("gr\xfc\xdfe,x\n")), Latin1, Raw)
	require.NoError(t, err)
	text, _, err := g.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "grüße", text)
}

func TestParseCharset(t *testing.T) {
	for _, cs := range Charsets {
		got, err := ParseCharset(cs.String())
		require.NoError(t, err)
		assert.Equal(t, cs, got)
	}
	_, err := ParseCharset("ebcdic")
	assert.Error(t, err)
}
