package render

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"

	"github.com/elfwire/elfwire/elf"
)

const (
	maxX86InstructionLength = 15
)

type DisassembledInstruction struct {
	Address uint64
	x86asm.Inst
}

func (inst DisassembledInstruction) String() string {
	return fmt.Sprintf(
		"0x%016x: %s",
		inst.Address,
		x86asm.GNUSyntax(inst.Inst, inst.Address, nil))
}

// DisassembleEntry decodes up to numInstructions instructions starting at
// the file's entry point.  The entry point virtual address is mapped back to
// a file offset through the loadable segment that contains it.  x86 and
// x86-64 only.
func DisassembleEntry(
	file *elf.File,
	content []byte,
	numInstructions int,
) (
	[]DisassembledInstruction,
	error,
) {
	if numInstructions < 0 {
		return nil, fmt.Errorf(
			"invalid number of instructions to disassemble: %d",
			numInstructions)
	}

	var mode int
	switch file.MachineArchitecture {
	case elf.MachineArchitectureX86_64:
		mode = 64
	case elf.MachineArchitectureX386:
		mode = 32
	default:
		return nil, fmt.Errorf(
			"cannot disassemble machine architecture: %s",
			file.MachineArchitecture)
	}

	entry := file.EntryPointAddress

	var segment *elf.ProgramHeaderEntry
	for idx := range file.ProgramHeaders {
		candidate := &file.ProgramHeaders[idx]
		if candidate.ProgramType != elf.ProgramLoadable {
			continue
		}

		if candidate.VirtualAddress <= entry &&
			entry < candidate.VirtualAddress+candidate.FileImageSize {

			segment = candidate
			break
		}
	}

	if segment == nil {
		return nil, fmt.Errorf(
			"entry point (0x%x) not within any loadable segment",
			entry)
	}

	start := entry - segment.VirtualAddress + segment.ContentOffset
	end := segment.ContentOffset + segment.FileImageSize
	if end > uint64(len(content)) || start > end {
		return nil, fmt.Errorf(
			"loadable segment [0x%x:0x%x] out of bound (%d content bytes)",
			segment.ContentOffset,
			end,
			len(content))
	}

	code := content[start:end]
	address := entry

	result := make([]DisassembledInstruction, 0, numInstructions)
	for len(result) < numInstructions && len(code) > 0 {
		window := code
		if len(window) > maxX86InstructionLength {
			window = window[:maxX86InstructionLength]
		}

		inst, err := x86asm.Decode(window, mode)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to disassemble instruction at 0x%x: %w",
				address,
				err)
		}

		result = append(
			result,
			DisassembledInstruction{
				Address: address,
				Inst:    inst,
			})

		code = code[inst.Len:]
		address += uint64(inst.Len)
	}

	return result, nil
}
