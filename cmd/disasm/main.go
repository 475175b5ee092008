// Command disasm disassembles a flat binary (as produced by cmd/handasm)
// starting at a given load address.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go6502/core/bus"
	"github.com/go6502/core/disassemble"
)

var (
	load  = flag.Uint("load", 0x0000, "address the binary is loaded at")
	start = flag.Uint("start", 0x0000, "address to start disassembling from")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("usage: %s <binary>", os.Args[0])
	}

	data, err := os.ReadFile(flag.Args()[0])
	if err != nil {
		log.Fatal(err)
	}

	ram := bus.NewFlatRAM()
	ram.Load(uint16(*load), data)

	pc := uint16(*start)
	end := uint16(*load) + uint16(len(data))
	for pc < end {
		text, n := disassemble.Step(pc, ram)
		fmt.Println(text)
		pc += uint16(n)
	}
}
