package main

import (
	"encoding/hex"
	"fmt"
)

// Gadget is one recovered block relation between the plaintext and
// ciphertext grids: a known plaintext block P[i], the ciphertext block
// C[i-1] chained into it, and their XOR.
//
// In CBC, P[i] = D(C[i]) ^ C[i-1], so the XOR is D(C[i]). CFB chains
// through the same preceding block, E(C[i-1]) ^ C[i] = P[i]; the relation is
// recorded the same way and Mode says which chaining the analyst assumes.
type Gadget struct {
	Mode      CipherMode
	Plain     []byte
	PlainAt   Position
	Cipher    []byte
	CipherAt  Position
	Keystream []byte
}

func (g Gadget) String() string {
	return fmt.Sprintf("%s gadget: plain %v %x, cipher %v %x, keystream %s",
		g.Mode, g.PlainAt, g.Plain, g.CipherAt, g.Cipher, hex.EncodeToString(g.Keystream))
}

// FindKnownPlaintextCell returns the first non-empty plaintext cell that is
// not a placeholder, decoded, with its position
func FindKnownPlaintextCell(plain *Grid) ([]byte, Position, error) {
	for i, row := range plain.cells {
		for j, text := range row {
			if text == "" || IsPlaceholder(text) {
				continue
			}
			data, err := Decode(text, plain.encoding)
			if err != nil {
				return nil, Position{}, fmt.Errorf("plaintext cell (%d,%d): %w", i, j, err)
			}
			return data, Position{Row: i, Col: j}, nil
		}
	}
	return nil, Position{}, ErrNoKnownPlaintext
}

// precedingCell returns the cell before p in row-major block order
func precedingCell(g *Grid, p Position) (Position, error) {
	if err := g.checkCell(p.Row, p.Col); err != nil {
		return Position{}, err
	}
	switch {
	case p.Col > 0:
		return Position{Row: p.Row, Col: p.Col - 1}, nil
	case p.Row > 0:
		return Position{Row: p.Row - 1, Col: g.cols - 1}, nil
	default:
		return Position{}, fmt.Errorf("%w: no block precedes %v", ErrIndexOutOfRange, p)
	}
}

func decodeCell(g *Grid, p Position) ([]byte, error) {
	text, _, err := g.Cell(p.Row, p.Col)
	if err != nil {
		return nil, err
	}
	if IsPlaceholder(text) {
		return nil, fmt.Errorf("cell %v: %w", p, ErrUnknownBytes)
	}
	data, err := Decode(text, g.encoding)
	if err != nil {
		return nil, fmt.Errorf("cell %v: %w", p, err)
	}
	return data, nil
}

// PairedCipherCell decodes the ciphertext block preceding (row, col): the
// previous column, or the last column of the previous row
func PairedCipherCell(cipher *Grid, row, col int) ([]byte, error) {
	p, err := precedingCell(cipher, Position{Row: row, Col: col})
	if err != nil {
		return nil, err
	}
	return decodeCell(cipher, p)
}

// RecoverKeystream XORs two equal-length blocks byte by byte
func RecoverKeystream(plain, cipher []byte) ([]byte, error) {
	if len(plain) != len(cipher) {
		return nil, fmt.Errorf("%w: %d plaintext bytes, %d ciphertext bytes", ErrLengthMismatch, len(plain), len(cipher))
	}
	out := make([]byte, len(plain))
	for i := range plain {
		out[i] = plain[i] ^ cipher[i]
	}
	return out, nil
}

// SearchGadget pairs the first known plaintext block with the ciphertext
// block preceding it, and recovers the keystream
func SearchGadget(s Session, cipher, plain *Grid) (Gadget, error) {
	plainBytes, at, err := FindKnownPlaintextCell(plain)
	if err != nil {
		return Gadget{}, err
	}

	var cipherAt Position
	switch s.Mode {
	case CBC, CFB:
		cipherAt, err = precedingCell(cipher, at)
	default:
		err = fmt.Errorf("unsupported cipher mode %v", s.Mode)
	}
	if err != nil {
		return Gadget{}, err
	}

	cipherBytes, err := decodeCell(cipher, cipherAt)
	if err != nil {
		return Gadget{}, err
	}
	keystream, err := RecoverKeystream(plainBytes, cipherBytes)
	if err != nil {
		return Gadget{}, err
	}
	return Gadget{
		Mode:      s.Mode,
		Plain:     plainBytes,
		PlainAt:   at,
		Cipher:    cipherBytes,
		CipherAt:  cipherAt,
		Keystream: keystream,
	}, nil
}

// Forge returns the block to put in place of the gadget's ciphertext block
// so that the relation yields want at the plaintext position. In CBC this
// makes P[i] decrypt to want.
func Forge(g Gadget, want []byte) ([]byte, error) {
	return RecoverKeystream(g.Keystream, want)
}
