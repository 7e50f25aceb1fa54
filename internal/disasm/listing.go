package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// Line is a single line of a listing.
type Line struct {
	Address uint16
	Data    []byte // one or two bytes
	Label   string // label of the address, if it is a jump or call target
	Code    string
}

// Listing is the linear disassembly of a program.
type Listing struct {
	Lines []Line
}

// New disassembles the program loaded at the base address. Every address
// targeted by a jump, call or index load inside the program gets a label.
func New(program []byte, base uint16) *Listing {
	jumpTargets := set.New[uint16]()
	callTargets := set.New[uint16]()
	dataTargets := set.New[uint16]()
	end := base + uint16(len(program))

	for i := 0; i+1 < len(program); i += 2 {
		word := uint16(program[i])<<8 | uint16(program[i+1])
		target := word & 0x0FFF
		if target < base || target >= end {
			continue
		}

		switch word & 0xF000 {
		case 0x1000:
			jumpTargets.Add(target)
		case 0x2000:
			callTargets.Add(target)
		case 0xA000:
			dataTargets.Add(target)
		}
	}

	listing := &Listing{}
	for i := 0; i < len(program); i += 2 {
		address := base + uint16(i)
		line := Line{
			Address: address,
			Label:   label(address, base, jumpTargets, callTargets, dataTargets),
		}

		if i+1 < len(program) {
			word := uint16(program[i])<<8 | uint16(program[i+1])
			line.Data = program[i : i+2]
			line.Code = Format(word)
		} else {
			line.Data = program[i : i+1]
			line.Code = fmt.Sprintf(".byte $%02X", program[i])
		}
		listing.Lines = append(listing.Lines, line)
	}
	return listing
}

func label(address, base uint16, jumps, calls, data set.Set[uint16]) string {
	switch {
	case address == base:
		return "Start"
	case calls.Contains(address):
		return fmt.Sprintf("_func_%04x", address)
	case jumps.Contains(address):
		return fmt.Sprintf("_label_%04x", address)
	case data.Contains(address):
		return fmt.Sprintf("_data_%04x", address)
	default:
		return ""
	}
}

// Options controls the listing output.
type Options struct {
	HexComments    bool // output instruction bytes as hex values in comments
	OffsetComments bool // output addresses in comments
}

// Write outputs the listing in assembler syntax.
func (l *Listing) Write(w io.Writer, opts Options) error {
	for _, line := range l.Lines {
		if line.Label != "" {
			if _, err := fmt.Fprintf(w, "%s:\n", line.Label); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		text := "  " + line.Code
		comment := lineComment(line, opts)
		if comment != "" {
			text = fmt.Sprintf("%-24s; %s", text, comment)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

func lineComment(line Line, opts Options) string {
	var parts []string
	if opts.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", line.Address))
	}
	if opts.HexComments {
		hex := make([]string, len(line.Data))
		for i, b := range line.Data {
			hex[i] = fmt.Sprintf("%02X", b)
		}
		parts = append(parts, strings.Join(hex, " "))
	}
	return strings.Join(parts, " ")
}
