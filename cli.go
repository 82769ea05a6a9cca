package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// cliOptions holds the flags shared by the command line commands
type cliOptions struct {
	session  Session
	encoding Encoding
	charset  Charset
}

func defaultCLIOptions() cliOptions {
	return cliOptions{
		session:  DefaultSession(),
		encoding: Hex,
		charset:  UTF8,
	}
}

// parseCLIOptions reads -block, -encoding, -mode, -cipher and -charset pairs
func parseCLIOptions(args []string) (cliOptions, error) {
	opts := defaultCLIOptions()
	for i := 0; i < len(args); i++ {
		flag := args[i]
		if !strings.HasPrefix(flag, "-") {
			return opts, fmt.Errorf("unexpected argument %q", flag)
		}
		if i+1 >= len(args) {
			return opts, fmt.Errorf("%s requires a value", flag)
		}
		value := args[i+1]
		i++

		var err error
		switch flag {
		case "-block":
			opts.session.BlockSize, err = ParseBlockSize(value)
		case "-encoding":
			opts.encoding, err = ParseEncoding(value)
		case "-mode":
			opts.session.Mode, err = ParseCipherMode(value)
		case "-cipher":
			opts.session.Cipher, err = ParseCipher(value)
		case "-charset":
			opts.charset, err = ParseCharset(value)
		default:
			err = fmt.Errorf("unknown option %s", flag)
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// loadCipherGrid lays out the bytes of a ciphertext file
func loadCipherGrid(path string, opts cliOptions) (*Grid, error) {
	data, err := ReadAllBytes(path)
	if err != nil {
		return nil, err
	}
	g, err := NewGridFromBytes(data, opts.session.BlockSize, opts.encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// printGrid writes one line per row, cells separated by tabs, prefixed with
// the row index
func printGrid(w io.Writer, g *Grid) error {
	for i, n := 0, g.Rows(); i < n; i++ {
		line, err := Serialize(g, Range{Top: i, Left: 0, Bottom: i, Right: g.Columns() - 1})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%4d: %s\n", i, line)
	}
	return nil
}

// dumpFile prints a file as a block grid
func dumpFile(w io.Writer, path string, opts cliOptions) error {
	g, err := loadCipherGrid(path, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d-bit blocks, %v, %dx%d\n", path, int(opts.session.BlockSize), g.Encoding(), g.Rows(), g.Columns())
	return printGrid(w, g)
}

// gadgetFromFiles pairs a ciphertext file with a plaintext CSV grid whose
// unknown cells are written as '?' and prints the recovered gadget
func gadgetFromFiles(w io.Writer, cipherPath, plainPath string, opts cliOptions) error {
	cipher, err := loadCipherGrid(cipherPath, opts)
	if err != nil {
		return err
	}
	plain, err := LoadCSV(plainPath, opts.charset, opts.encoding)
	if err != nil {
		return err
	}
	gadget, err := SearchGadget(opts.session, cipher, plain)
	if err != nil {
		return fmt.Errorf("error searching gadget: %w", err)
	}
	keystream, err := Encode(gadget.Keystream, opts.encoding)
	if err != nil {
		keystream, _ = Encode(gadget.Keystream, Hex)
	}
	fmt.Fprintf(w, "mode:      %v\n", gadget.Mode)
	fmt.Fprintf(w, "plaintext: %v %x\n", gadget.PlainAt, gadget.Plain)
	fmt.Fprintf(w, "cipher:    %v %x\n", gadget.CipherAt, gadget.Cipher)
	fmt.Fprintf(w, "keystream: %s\n", keystream)
	return nil
}

// convertFile writes a ciphertext file as a CSV block grid
func convertFile(w io.Writer, inputPath, outputPath string, opts cliOptions) error {
	g, err := loadCipherGrid(inputPath, opts)
	if err != nil {
		return err
	}
	if err = SaveCSV(outputPath, g, opts.charset); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %dx%d %v grid to %s\n", g.Rows(), g.Columns(), g.Encoding(), outputPath)
	return nil
}

// runCommand executes one command line command
func runCommand(w io.Writer, file, command string, args []string) error {
	switch command {
	case "-dump":
		opts, err := parseCLIOptions(args)
		if err != nil {
			return err
		}
		return dumpFile(w, file, opts)

	case "-gadget":
		if len(args) < 1 {
			return fmt.Errorf("-gadget requires a plaintext CSV file")
		}
		opts, err := parseCLIOptions(args[1:])
		if err != nil {
			return err
		}
		return gadgetFromFiles(w, file, args[0], opts)

	case "-convert":
		if len(args) < 1 {
			return fmt.Errorf("-convert requires an output file")
		}
		opts, err := parseCLIOptions(args[1:])
		if err != nil {
			return err
		}
		return convertFile(w, file, args[0], opts)

	default:
		return fmt.Errorf("unknown command '%s'. Must be one of -dump, -gadget or -convert", command)
	}
}

func fail(err error, usage func()) {
	fmt.Println("Error:", err)
	if usage != nil {
		usage()
	}
	os.Exit(1)
}
