// Package fixture loads and runs SingleStepTests-style JSON conformance
// cases against the cpu package: one JSON object per instruction, giving an
// initial CPU+RAM state, the expected final state, and the cycle-by-cycle
// bus trace's length (spec.md §6/§9).
package fixture

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-test/deep"
	"github.com/go6502/core/cpu"
)

// State is the (a,x,y,s,pc,p,ram) shape shared by a Case's "initial" and
// "final" fields.
type State struct {
	A   uint8       `json:"a"`
	X   uint8       `json:"x"`
	Y   uint8       `json:"y"`
	S   uint8       `json:"s"`
	PC  uint16      `json:"pc"`
	P   uint8       `json:"p"`
	RAM [][2]uint16 `json:"ram"`
}

// CycleEntry is one [address, byte, "read"|"write"] trace triple. Run does
// not validate the sequence or its length; the length is only reported as
// Result.WantCycles.
type CycleEntry struct {
	Addr uint16
	Byte uint8
	Kind string
}

// UnmarshalJSON accepts the corpus's heterogeneous 3-element array form.
func (e *CycleEntry) UnmarshalJSON(data []byte) error {
	var raw [3]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &e.Addr); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &e.Byte); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &e.Kind)
}

// Case is one test vector: a name, the state before and after exactly one
// cpu.Step call, and the expected cycle trace.
type Case struct {
	Name    string       `json:"name"`
	Initial State        `json:"initial"`
	Final   State        `json:"final"`
	Cycles  []CycleEntry `json:"cycles"`
}

// ParseCases decodes a fixture file's top-level JSON array of cases.
func ParseCases(data []byte) ([]Case, error) {
	var cases []Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("fixture: decode cases: %w", err)
	}
	return cases, nil
}

// toCPU builds a cpu.CPU from a State's register fields. RAM is loaded
// separately into a SparseRAM.
func toCPU(s State) cpu.CPU {
	return cpu.CPU{
		A:  s.A,
		X:  s.X,
		Y:  s.Y,
		SP: s.S,
		PC: s.PC,
		P:  s.P,
	}
}

// Result is the outcome of running one Case.
type Result struct {
	Case        Case
	Pass        bool
	CPUDiff     []string
	RAMDiff     []string
	GotCycles   uint8
	WantCycles  int
	GotOutcome  cpu.Outcome
}

// Run executes one case's single cpu.Step call and reports whether the
// resulting CPU and sorted RAM match case.Final exactly.
func Run(c Case) Result {
	chip := toCPU(c.Initial)
	ram := NewSparseRAM(c.Initial.RAM)

	gotCycles, outcome := cpu.Step(&chip, ram)

	want := toCPU(c.Final)
	res := Result{
		Case:       c,
		GotCycles:  gotCycles,
		WantCycles: len(c.Cycles),
		GotOutcome: outcome,
	}

	res.CPUDiff = diffCPU(chip, want)
	res.RAMDiff = diffRAM(ram.Entries(), c.Final.RAM)
	res.Pass = len(res.CPUDiff) == 0 && len(res.RAMDiff) == 0

	return res
}

// diffCPU reports field-level differences between got and want using
// go-test/deep, which understands struct field names without hand-written
// comparisons per field.
func diffCPU(got, want cpu.CPU) []string {
	return deep.Equal(got, want)
}

// diffRAM compares two sparse RAM listings after sorting both by address,
// per spec.md §9: "sorted by address, same (address, byte) pairs".
func diffRAM(got, want [][2]uint16) []string {
	gs := sortedCopy(got)
	ws := sortedCopy(want)

	if len(gs) != len(ws) {
		return []string{fmt.Sprintf("ram: got %d entries want %d", len(gs), len(ws))}
	}
	var d []string
	for i := range gs {
		if gs[i] != ws[i] {
			d = append(d, fmt.Sprintf("ram[%d]: got (%#04x=%#02x) want (%#04x=%#02x)",
				i, gs[i][0], gs[i][1], ws[i][0], ws[i][1]))
		}
	}
	return d
}

func sortedCopy(entries [][2]uint16) [][2]uint16 {
	out := make([][2]uint16, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
