package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCLIOptions(t *testing.T) {
	opts, err := parseCLIOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultCLIOptions(), opts)
	assert.Equal(t, Hex, opts.encoding)

	opts, err = parseCLIOptions([]string{"-block", "128", "-encoding", "base64", "-mode", "cfb", "-cipher", "des", "-charset", "shift_jis"})
	require.NoError(t, err)
	assert.Equal(t, Session{BlockSize: BlockSize128, Mode: CFB, Cipher: DES}, opts.session)
	assert.Equal(t, Base64, opts.encoding)
	assert.Equal(t, ShiftJIS, opts.charset)

	for _, args := range [][]string{
		{"-block"},
		{"-block", "100"},
		{"-verbose", "1"},
		{"stray"},
	} {
		_, err = parseCLIOptions(args)
		assert.Error(t, err, "%v", args)
	}
}

func TestDumpFile(t *testing.T) {
	path := writeTestFile(t, "cipher.bin", "ABCDEFGHIJ")

	var out bytes.Buffer
	require.NoError(t, runCommand(&out, path, "-dump", nil))
	assert.Equal(t, path+": 64-bit blocks, Hex, 1x4\n   0: 4142434445464748\t494a\t\t\n", out.String())

	out.Reset()
	require.NoError(t, runCommand(&out, path, "-dump", []string{"-encoding", "utf-8", "-block", "128"}))
	assert.Equal(t, path+": 128-bit blocks, UTF-8, 1x4\n   0: ABCDEFGHIJ\t\t\t\n", out.String())
}

func TestGadgetFromFiles(t *testing.T) {
	cipher := writeTestFile(t, "cipher.bin", "ABCDEFGHIJKLMNOP")
	plain := writeTestFile(t, "plain.csv", "????????,696a6b6c6d6e6f70\n")

	var out bytes.Buffer
	require.NoError(t, runCommand(&out, cipher, "-gadget", []string{plain}))
	assert.Equal(t, "mode:      CBC\n"+
		"plaintext: (0,1) 696a6b6c6d6e6f70\n"+
		"cipher:    (0,0) 4142434445464748\n"+
		"keystream: 2828282828282838\n", out.String())

	out.Reset()
	require.NoError(t, runCommand(&out, cipher, "-gadget", []string{plain, "-mode", "cfb"}))
	assert.Contains(t, out.String(), "mode:      CFB\n")
	assert.Contains(t, out.String(), "cipher:    (0,0) 4142434445464748\n")
	assert.Contains(t, out.String(), "keystream: 2828282828282838\n")

	empty := writeTestFile(t, "empty.csv", "????????,????????\n")
	err := runCommand(&out, cipher, "-gadget", []string{empty})
	assert.ErrorIs(t, err, ErrNoKnownPlaintext)
}

func TestConvertFile(t *testing.T) {
	in := writeTestFile(t, "cipher.bin", "ABCDEFGHIJKLMNOP")
	outPath := filepath.Join(t.TempDir(), "grid.csv")

	var out bytes.Buffer
	require.NoError(t, runCommand(&out, in, "-convert", []string{outPath, "-encoding", "utf-8"}))
	assert.Contains(t, out.String(), outPath)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGH,IJKLMNOP,,\n", string(got))
}

func TestRunCommandErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, runCommand(&out, "x", "-explode", nil))
	assert.Error(t, runCommand(&out, "x", "-gadget", nil))
	assert.Error(t, runCommand(&out, "x", "-convert", nil))
	assert.Error(t, runCommand(&out, filepath.Join(t.TempDir(), "missing"), "-dump", nil))
}
