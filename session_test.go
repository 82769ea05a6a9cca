package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlockSize(t *testing.T) {
	for _, bs := range BlockSizes {
		got, err := ParseBlockSize(bs.String())
		require.NoError(t, err)
		assert.Equal(t, bs, got)
		assert.Equal(t, int(bs)/8, bs.Bytes())
	}

	for _, s := range []string{"", "32", "abc", "1024"} {
		_, err := ParseBlockSize(s)
		assert.Error(t, err, s)
	}
}

func TestParseEncoding(t *testing.T) {
	for _, enc := range Encodings {
		got, err := ParseEncoding(enc.String())
		require.NoError(t, err)
		assert.Equal(t, enc, got)
	}

	got, err := ParseEncoding(" B64 ")
	require.NoError(t, err)
	assert.Equal(t, Base64, got)

	_, err = ParseEncoding("base85")
	assert.Error(t, err)
}

func TestParseModeAndCipher(t *testing.T) {
	for _, m := range CipherModes {
		got, err := ParseCipherMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseCipherMode("ecb")
	assert.Error(t, err)

	for _, c := range Ciphers {
		got, err := ParseCipher(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err = ParseCipher("blowfish")
	assert.Error(t, err)

	assert.Equal(t, BlockSize64, DES.DefaultBlockSize())
	assert.Equal(t, BlockSize128, AES.DefaultBlockSize())
}

func TestSessionValidate(t *testing.T) {
	require.NoError(t, DefaultSession().Validate())

	s := DefaultSession()
	s.BlockSize = 96
	assert.Error(t, s.Validate())

	s = DefaultSession()
	s.Mode = CipherMode(7)
	assert.Error(t, s.Validate())
}
