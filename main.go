package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	// Custom usage message
	usage := func() {
		name := filepath.Base(os.Args[0])
		fmt.Println("Usage:")
		fmt.Printf("  %s                                  (Launch GUI mode)\n", name)
		fmt.Printf("  %s <file>                           (Launch GUI mode with ciphertext file loaded)\n", name)
		fmt.Printf("  %s -gui                             (Launch GUI mode)\n", name)
		fmt.Printf("  %s <file> -dump [options]           (Command line: print the block grid)\n", name)
		fmt.Printf("  %s <file> -gadget <plain.csv> [options] (Command line: recover a gadget)\n", name)
		fmt.Printf("  %s <file> -convert <out.csv> [options]  (Command line: write the block grid as CSV)\n", name)
		fmt.Println("Options:")
		fmt.Println("  -block 64|128|256|512   block size in bits (default 64)")
		fmt.Println("  -encoding utf-8|hex|base32|base64   cell encoding (default hex)")
		fmt.Println("  -mode cbc|cfb           gadget mode (default cbc)")
		fmt.Println("  -cipher aes|des         cipher hint (default aes)")
		fmt.Println("  -charset utf-8|shift_jis|iso-8859-1|windows-1252   CSV charset (default utf-8)")
	}
	args := os.Args[1:]

	if len(args) == 0 || (len(args) == 1 && args[0] == "-gui") {
		NewGUI("").Run()
		return
	}

	if len(args) == 1 && !strings.HasPrefix(args[0], "-") {
		// Single file argument - launch GUI with file loaded
		NewGUI(args[0]).Run()
		return
	}

	if len(args) < 2 {
		fail(fmt.Errorf("you must provide a file and a command for command line operations"), usage)
	}

	file := args[0]
	if strings.HasPrefix(file, "-") {
		fail(fmt.Errorf("first argument must be a file, not a flag"), usage)
	}

	if err := runCommand(os.Stdout, file, args[1], args[2:]); err != nil {
		fail(err, usage)
	}
}
