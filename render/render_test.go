package render

import (
	"strings"
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
	"gopkg.in/yaml.v3"

	"github.com/elfwire/elfwire/elf"
)

func testFile() *elf.File {
	return &elf.File{
		Identification: elf.Identification{
			Class:              elf.Class32,
			DataEncoding:       elf.DataEncodingLittleEndian,
			Version:            elf.IdentifierVersion,
			OperatingSystemABI: elf.OperatingSystemABILinux,
			ABIVersion:         0,
		},
		FileHeader: elf.FileHeader{
			FileType:                elf.FileTypeExecutable,
			MachineArchitecture:     elf.MachineArchitectureX386,
			FormatVersion:           1,
			EntryPointAddress:       0x8048000,
			ProgramHeaderOffset:     52,
			SectionHeaderOffset:     84,
			ElfHeaderSize:           elf.Elf32HeaderSize,
			ProgramHeaderEntrySize:  elf.Elf32ProgramHeaderEntrySize,
			NumProgramHeaderEntries: 1,
			SectionHeaderEntrySize:  elf.Elf32SectionHeaderEntrySize,
			NumSectionHeaderEntries: 1,
			SectionStringTableIndex: elf.SectionIndexUndefined,
		},
		ProgramHeaders: []elf.ProgramHeaderEntry{
			{
				ProgramType:     elf.ProgramLoadable,
				ProgramFlags:    elf.ProgramFlags(0x5),
				ContentOffset:   0x1000,
				VirtualAddress:  0x8048000,
				PhysicalAddress: 0x8048000,
				FileImageSize:   0x100,
				MemoryImageSize: 0x200,
				Alignment:       0x1000,
			},
		},
		SectionHeaders: []elf.SectionHeaderEntry{
			{
				NameIndex:        1,
				SectionType:      elf.SectionTypeProgramDefinedInfo,
				SectionFlags:     elf.SectionOccupiesMemory,
				Address:          0x8048000,
				Offset:           0x1000,
				Size:             0x100,
				AddressAlignment: 16,
			},
		},
	}
}

type RenderSuite struct{}

func TestRender(t *testing.T) {
	suite.RunTests(t, &RenderSuite{})
}

func (RenderSuite) TestWriteFileHeader(t *testing.T) {
	builder := &strings.Builder{}
	err := WriteFileHeader(builder, testFile())
	expect.Nil(t, err)

	output := builder.String()
	expect.True(t, strings.HasPrefix(output, "ELF Header:\n"))
	expect.True(t, strings.Contains(output, "Class:"))
	expect.True(t, strings.Contains(output, "ELF32"))
	expect.True(t, strings.Contains(output, "2's complement, little endian"))
	expect.True(t, strings.Contains(output, "EXEC (Executable file)"))
	expect.True(t, strings.Contains(output, "Intel 80386"))
	expect.True(
		t,
		strings.Contains(output, "Entry point address:               0x8048000"))
	expect.True(
		t,
		strings.Contains(output, "Number of program headers:         1"))
}

func (RenderSuite) TestWriteProgramHeaders(t *testing.T) {
	builder := &strings.Builder{}
	err := WriteProgramHeaders(builder, testFile())
	expect.Nil(t, err)

	output := builder.String()
	expect.True(t, strings.Contains(output, "Program Headers:"))
	expect.True(t, strings.Contains(output, "Loadable"))
	expect.True(t, strings.Contains(output, "r-x"))
	expect.True(t, strings.Contains(output, "0x8048000"))
}

func (RenderSuite) TestWriteSectionHeaders(t *testing.T) {
	builder := &strings.Builder{}
	err := WriteSectionHeaders(builder, testFile())
	expect.Nil(t, err)

	output := builder.String()
	expect.True(t, strings.Contains(output, "Section Headers:"))
	expect.True(t, strings.Contains(output, "ProgramDefinedInfo"))
	expect.True(t, strings.Contains(output, "-a---------"))
}

func (RenderSuite) TestWriteYAML(t *testing.T) {
	builder := &strings.Builder{}
	err := WriteYAML(builder, testFile())
	expect.Nil(t, err)

	decoded := map[string]interface{}{}
	err = yaml.Unmarshal([]byte(builder.String()), &decoded)
	expect.Nil(t, err)

	expect.Equal(t, "ELF32", decoded["class"])

	header, ok := decoded["file_header"].(map[string]interface{})
	expect.True(t, ok)
	expect.Equal(t, "EXEC (Executable file)", header["type"])
	expect.Equal(t, "Intel 80386", header["machine"])
	expect.Equal(t, 0x8048000, header["entry_point"])

	segments, ok := decoded["program_headers"].([]interface{})
	expect.True(t, ok)
	expect.Equal(t, 1, len(segments))

	sections, ok := decoded["section_headers"].([]interface{})
	expect.True(t, ok)
	expect.Equal(t, 1, len(sections))
}

func (RenderSuite) TestDisassembleEntry(t *testing.T) {
	file := &elf.File{
		Identification: elf.Identification{
			Class:        elf.Class64,
			DataEncoding: elf.DataEncodingLittleEndian,
			Version:      elf.IdentifierVersion,
		},
		FileHeader: elf.FileHeader{
			FileType:            elf.FileTypeExecutable,
			MachineArchitecture: elf.MachineArchitectureX86_64,
			FormatVersion:       1,
			EntryPointAddress:   0x401000,
		},
		ProgramHeaders: []elf.ProgramHeaderEntry{
			{
				ProgramType:    elf.ProgramGNUStack,
				ProgramFlags:   elf.ProgramFlags(0x6),
				VirtualAddress: 0,
				FileImageSize:  0,
			},
			{
				ProgramType:     elf.ProgramLoadable,
				ProgramFlags:    elf.ProgramFlags(0x5),
				ContentOffset:   0x100,
				VirtualAddress:  0x401000,
				FileImageSize:   4,
				MemoryImageSize: 4,
			},
		},
	}

	content := make([]byte, 0x104)
	// nop; xor eax, eax; ret
	copy(content[0x100:], []byte{0x90, 0x31, 0xc0, 0xc3})

	instructions, err := DisassembleEntry(file, content, 10)
	expect.Nil(t, err)
	expect.Equal(t, 3, len(instructions))

	expect.Equal(t, uint64(0x401000), instructions[0].Address)
	expect.True(t, strings.Contains(instructions[0].String(), "nop"))
	expect.True(t, strings.Contains(instructions[1].String(), "xor"))
	expect.Equal(t, uint64(0x401003), instructions[2].Address)
	expect.True(t, strings.Contains(instructions[2].String(), "ret"))

	// count limits the result
	instructions, err = DisassembleEntry(file, content, 2)
	expect.Nil(t, err)
	expect.Equal(t, 2, len(instructions))
}

func (RenderSuite) TestDisassembleEntryErrors(t *testing.T) {
	file := testFile()
	file.MachineArchitecture = elf.MachineArchitectureARM

	_, err := DisassembleEntry(file, nil, 5)
	expect.Error(t, err, "cannot disassemble machine architecture")

	file = testFile()
	file.EntryPointAddress = 0xdeadbeef

	_, err = DisassembleEntry(file, make([]byte, 0x1100), 5)
	expect.Error(t, err, "not within any loadable segment")
}
