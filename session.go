package main

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultColumns is the number of block cells per grid row
const DefaultColumns = 4

// BlockSize is a cipher block width in bits
type BlockSize int

const (
	BlockSize64  BlockSize = 64
	BlockSize128 BlockSize = 128
	BlockSize256 BlockSize = 256
	BlockSize512 BlockSize = 512
)

// BlockSizes lists the selectable block sizes in display order
var BlockSizes = []BlockSize{BlockSize64, BlockSize128, BlockSize256, BlockSize512}

// Bytes returns the block width in bytes
func (b BlockSize) Bytes() int {
	return int(b) / 8
}

func (b BlockSize) String() string {
	return strconv.Itoa(int(b))
}

// Valid reports whether b is one of the selectable block sizes
func (b BlockSize) Valid() bool {
	switch b {
	case BlockSize64, BlockSize128, BlockSize256, BlockSize512:
		return true
	default:
		return false
	}
}

// ParseBlockSize parses a decimal bit count such as "128"
func ParseBlockSize(s string) (BlockSize, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid block size %q: %w", s, err)
	}
	b := BlockSize(n)
	if !b.Valid() {
		return 0, fmt.Errorf("unsupported block size %d (must be 64, 128, 256 or 512)", n)
	}
	return b, nil
}

// Encoding selects how a cell's text maps to bytes
type Encoding int

const (
	Raw Encoding = iota
	Hex
	Base32
	Base64
)

// Encodings lists the encodings in display order
var Encodings = []Encoding{Raw, Hex, Base32, Base64}

func (e Encoding) String() string {
	switch e {
	case Raw:
		return "UTF-8"
	case Hex:
		return "Hex"
	case Base32:
		return "Base32"
	case Base64:
		return "Base64"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding accepts the display names and a few common aliases
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "utf-8", "utf8", "raw", "ascii", "text":
		return Raw, nil
	case "hex":
		return Hex, nil
	case "base32", "b32":
		return Base32, nil
	case "base64", "b64":
		return Base64, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q", s)
	}
}

// CipherMode selects which gadget relation is searched
type CipherMode int

const (
	CBC CipherMode = iota
	CFB
)

// CipherModes lists the gadget modes in display order
var CipherModes = []CipherMode{CBC, CFB}

func (m CipherMode) String() string {
	switch m {
	case CBC:
		return "CBC"
	case CFB:
		return "CFB"
	default:
		return fmt.Sprintf("CipherMode(%d)", int(m))
	}
}

// ParseCipherMode parses "cbc" or "cfb"
func ParseCipherMode(s string) (CipherMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cbc":
		return CBC, nil
	case "cfb":
		return CFB, nil
	default:
		return 0, fmt.Errorf("unknown cipher mode %q", s)
	}
}

// Cipher names the block cipher that produced the ciphertext. It is only a
// hint: nothing here encrypts or decrypts.
type Cipher int

const (
	AES Cipher = iota
	DES
)

// Ciphers lists the ciphers in display order
var Ciphers = []Cipher{AES, DES}

func (c Cipher) String() string {
	switch c {
	case AES:
		return "AES"
	case DES:
		return "DES"
	default:
		return fmt.Sprintf("Cipher(%d)", int(c))
	}
}

// DefaultBlockSize returns the native block width of the cipher
func (c Cipher) DefaultBlockSize() BlockSize {
	switch c {
	case DES:
		return BlockSize64
	default:
		return BlockSize128
	}
}

// ParseCipher parses "aes" or "des"
func ParseCipher(s string) (Cipher, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aes":
		return AES, nil
	case "des":
		return DES, nil
	default:
		return 0, fmt.Errorf("unknown cipher %q", s)
	}
}

// Session is the analyst's current configuration. It is passed explicitly to
// every operation that depends on it.
type Session struct {
	BlockSize BlockSize
	Mode      CipherMode
	Cipher    Cipher
}

// DefaultSession matches the state the workbench starts in
func DefaultSession() Session {
	return Session{
		BlockSize: BlockSize64,
		Mode:      CBC,
		Cipher:    AES,
	}
}

// Validate rejects values outside the enumerations
func (s Session) Validate() error {
	if !s.BlockSize.Valid() {
		return fmt.Errorf("unsupported block size %d", int(s.BlockSize))
	}
	switch s.Mode {
	case CBC, CFB:
	default:
		return fmt.Errorf("unsupported cipher mode %d", int(s.Mode))
	}
	switch s.Cipher {
	case AES, DES:
	default:
		return fmt.Errorf("unsupported cipher %d", int(s.Cipher))
	}
	return nil
}
