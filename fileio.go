package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadAllBytes loads a whole file
func ReadAllBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return data, nil
}

// WriteAllBytes replaces path with data. The bytes go to a temporary file
// next to path which is renamed over it, so a failed write leaves the old
// file in place. An existing file keeps its permissions.
func WriteAllBytes(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("unable to create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	mode := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("unable to set permissions on %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("unable to replace %s: %w", path, err)
	}
	return nil
}

// Charset is the text encoding of a CSV grid file
type Charset int

const (
	UTF8 Charset = iota
	ShiftJIS
	Latin1
	Windows1252
)

// Charsets lists the supported CSV charsets in display order
var Charsets = []Charset{UTF8, ShiftJIS, Latin1, Windows1252}

func (c Charset) String() string {
	switch c {
	case UTF8:
		return "UTF-8"
	case ShiftJIS:
		return "Shift_JIS"
	case Latin1:
		return "ISO-8859-1"
	case Windows1252:
		return "Windows-1252"
	default:
		return fmt.Sprintf("Charset(%d)", int(c))
	}
}

// ParseCharset accepts the display names, case-insensitively
func ParseCharset(s string) (Charset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "shift_jis", "shift-jis", "sjis":
		return ShiftJIS, nil
	case "iso-8859-1", "latin1", "latin-1":
		return Latin1, nil
	case "windows-1252", "cp1252":
		return Windows1252, nil
	default:
		return 0, fmt.Errorf("unknown charset %q", s)
	}
}

func (c Charset) textEncoding() (encoding.Encoding, error) {
	switch c {
	case UTF8:
		return unicode.UTF8, nil
	case ShiftJIS:
		return japanese.ShiftJIS, nil
	case Latin1:
		return charmap.ISO8859_1, nil
	case Windows1252:
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported charset %v", c)
	}
}

// ReadCSV parses comma separated rows into a grid whose cells are in enc.
// Fields are kept byte for byte, spaces included. Short rows are padded with
// empty cells to the widest row.
func ReadCSV(r io.Reader, cs Charset, enc Encoding) (*Grid, error) {
	te, err := cs.textEncoding()
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(transform.NewReader(r, te.NewDecoder()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading csv: %w", err)
	}

	cols := 0
	for _, record := range records {
		cols = max(cols, len(record))
	}
	g := NewGrid(len(records), cols, enc)
	for i, record := range records {
		for j, field := range record {
			g.cells[i][j] = field
		}
	}
	return g, nil
}

// WriteCSV writes every row of g as a comma separated record
func WriteCSV(w io.Writer, g *Grid, cs Charset) error {
	te, err := cs.textEncoding()
	if err != nil {
		return err
	}
	tw := transform.NewWriter(w, te.NewEncoder())
	writer := csv.NewWriter(tw)
	if err = writer.WriteAll(g.Snapshot()); err != nil {
		return fmt.Errorf("error writing csv: %w", err)
	}
	if err = tw.Close(); err != nil {
		return fmt.Errorf("error encoding csv as %v: %w", cs, err)
	}
	return nil
}

// LoadCSV reads a CSV grid file
func LoadCSV(path string, cs Charset, enc Encoding) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer file.Close()

	g, err := ReadCSV(file, cs, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// SaveCSV writes g to path as CSV, replacing the file atomically
func SaveCSV(path string, g *Grid, cs Charset) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, g, cs); err != nil {
		return err
	}
	return WriteAllBytes(path, buf.Bytes())
}
