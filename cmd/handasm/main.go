// Command handasm turns a hand-written listing of the form
//
//	XXXX OP A1 A2 ...
//
// (XXXX an address field, OP an opcode byte, A1/A2 optional operand bytes,
// all hex) into a flat binary. Useful for authoring small regression
// fixtures by hand outside the JSON conformance corpus. Unlike a plain hex
// assembler, each line's opcode byte is validated against this repo's
// decode table: a line whose token count doesn't match the opcode's
// instruction length is rejected before any bytes are written.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go6502/core/cpu"
)

var offset = flag.Int("offset", 0x0000, "offset to start writing assembled data; everything prior is zero filled")

func main() {
	flag.Parse()
	if len(flag.Args()) != 2 {
		log.Fatalf("usage: %s <input> <output>", os.Args[0])
	}
	in, out := flag.Args()[0], flag.Args()[1]

	data, err := assembleFile(in)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile(out, data, 0644); err != nil {
		log.Fatalf("writing %q: %v", out, err)
	}
}

func assembleFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	output := make([]byte, *offset)

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || !isListingLine(text) {
			continue
		}
		bytes, err := assembleLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		output = append(output, bytes...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return output, nil
}

// isListingLine reports whether text starts with a 4-hex-digit address
// field, the shape the teacher's egrep-based filter matched.
func isListingLine(text string) bool {
	if len(text) < 4 {
		return false
	}
	_, err := strconv.ParseUint(text[:4], 16, 16)
	return err == nil
}

// assembleLine parses "XXXX OP A1 A2" and validates OP's length against the
// opcode table before returning the OP+operand bytes (the address field
// itself is positional, not emitted).
func assembleLine(text string) ([]byte, error) {
	rest := text[4:]
	if i := strings.IndexByte(rest, '\t'); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.Index(rest, "(*)"); i >= 0 {
		rest = rest[:i]
	}
	toks := strings.Fields(rest)
	if len(toks) == 0 || len(toks) > 3 {
		return nil, fmt.Errorf("expected 1-3 operand tokens, got %d: %q", len(toks), text)
	}

	bytes := make([]byte, 0, len(toks))
	for _, t := range toks {
		v, err := strconv.ParseUint(t, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", t, err)
		}
		bytes = append(bytes, byte(v))
	}

	_, _, length, _, ok := cpu.Descriptor(bytes[0])
	if !ok {
		return nil, fmt.Errorf("opcode %#02x has no decode-table entry", bytes[0])
	}
	if int(length) != len(bytes) {
		return nil, fmt.Errorf("opcode %#02x expects %d bytes, line has %d", bytes[0], length, len(bytes))
	}
	return bytes, nil
}
