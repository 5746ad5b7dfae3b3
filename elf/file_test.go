package elf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

// testFile32 lays out a complete 32-bit little-endian file with the tables
// at non-contiguous declared offsets:
//
//	[0:52]    identification + file header
//	[52:64]   gap
//	[64:128]  2 program header entries
//	[128:144] gap
//	[144:224] 2 section header entries
func testFile32() []byte {
	ident := Identification{
		Class:              Class32,
		DataEncoding:       DataEncodingLittleEndian,
		Version:            IdentifierVersion,
		OperatingSystemABI: OperatingSystemABILinux,
		ABIVersion:         0,
	}

	header := FileHeader{
		FileType:                FileTypeExecutable,
		MachineArchitecture:     MachineArchitectureX386,
		FormatVersion:           1,
		EntryPointAddress:       0x8048000,
		ProgramHeaderOffset:     64,
		SectionHeaderOffset:     144,
		ElfHeaderSize:           Elf32HeaderSize,
		ProgramHeaderEntrySize:  Elf32ProgramHeaderEntrySize,
		NumProgramHeaderEntries: 2,
		SectionHeaderEntrySize:  Elf32SectionHeaderEntrySize,
		NumSectionHeaderEntries: 2,
		SectionStringTableIndex: SectionIndexUndefined,
	}

	content, err := EncodeFileHeader(ident, header)
	if err != nil {
		panic(err)
	}

	le := binary.LittleEndian

	content = append(content, make([]byte, 64-len(content))...)

	// entry 0: loadable r-x segment
	for _, value := range []uint32{
		uint32(ProgramLoadable),
		0x1000,    // offset
		0x8048000, // vaddr
		0x8048000, // paddr
		0x100,     // filesz
		0x200,     // memsz
		0x5,       // flags
		0x1000,    // align
	} {
		content = le.AppendUint32(content, value)
	}

	// entry 1: gnu stack marker
	for _, value := range []uint32{
		uint32(ProgramGNUStack),
		0, 0, 0, 0, 0,
		0x6, // flags
		0x10,
	} {
		content = le.AppendUint32(content, value)
	}

	content = append(content, make([]byte, 144-len(content))...)

	// entry 0: null section
	for _, value := range []uint32{0, 0, 0, 0, 0, 0, 0, 0, 0, 0} {
		content = le.AppendUint32(content, value)
	}

	// entry 1: alloc+exec progbits
	for _, value := range []uint32{
		1, // name index
		uint32(SectionTypeProgramDefinedInfo),
		uint32(SectionOccupiesMemory | SectionContainsInstructions),
		0x8048000, // addr
		0x1000,    // offset
		0x100,     // size
		0,         // link
		0,         // info
		16,        // addralign
		0,         // entsize
	} {
		content = le.AppendUint32(content, value)
	}

	return content
}

type FileSuite struct{}

func TestFile(t *testing.T) {
	suite.RunTests(t, &FileSuite{})
}

func (FileSuite) TestDecodePipeline32(t *testing.T) {
	file, err := Decode(testFile32())
	expect.Nil(t, err)

	expect.Equal(t, Class32, file.Class)
	expect.Equal(t, DataEncodingLittleEndian, file.DataEncoding)
	expect.Equal(t, OperatingSystemABILinux, file.OperatingSystemABI)
	expect.Equal(t, FileTypeExecutable, file.FileType)
	expect.Equal(t, MachineArchitectureX386, file.MachineArchitecture)
	expect.Equal(t, uint64(0x8048000), file.EntryPointAddress)

	expect.Equal(t, 2, len(file.ProgramHeaders))
	expect.Equal(
		t,
		ProgramHeaderEntry{
			ProgramType:     ProgramLoadable,
			ProgramFlags:    ProgramFlags(0x5),
			ContentOffset:   0x1000,
			VirtualAddress:  0x8048000,
			PhysicalAddress: 0x8048000,
			FileImageSize:   0x100,
			MemoryImageSize: 0x200,
			Alignment:       0x1000,
		},
		file.ProgramHeaders[0])
	expect.Equal(t, ProgramGNUStack, file.ProgramHeaders[1].ProgramType)
	expect.Equal(t, "rw-", file.ProgramHeaders[1].ProgramFlags.String())

	expect.Equal(t, 2, len(file.SectionHeaders))
	expect.Equal(t, SectionTypeNull, file.SectionHeaders[0].SectionType)
	expect.Equal(
		t,
		SectionHeaderEntry{
			NameIndex:        1,
			SectionType:      SectionTypeProgramDefinedInfo,
			SectionFlags:     SectionOccupiesMemory | SectionContainsInstructions,
			Address:          0x8048000,
			Offset:           0x1000,
			Size:             0x100,
			Link:             0,
			Info:             0,
			AddressAlignment: 16,
			EntrySize:        0,
		},
		file.SectionHeaders[1])
	expect.Equal(t, "-ax--------", file.SectionHeaders[1].SectionFlags.String())
}

func (FileSuite) TestParseReader(t *testing.T) {
	file, err := Parse(bytes.NewReader(testFile32()))
	expect.Nil(t, err)
	expect.Equal(t, 2, len(file.ProgramHeaders))
	expect.Equal(t, 2, len(file.SectionHeaders))
}

func (FileSuite) TestDecodePipeline64BigEndian(t *testing.T) {
	ident := Identification{
		Class:              Class64,
		DataEncoding:       DataEncodingBigEndian,
		Version:            IdentifierVersion,
		OperatingSystemABI: OperatingSystemABIFreeBSD,
		ABIVersion:         0,
	}

	header := FileHeader{
		FileType:                FileTypeSharedObject,
		MachineArchitecture:     MachineArchitectureAArch64,
		FormatVersion:           1,
		EntryPointAddress:       0x400000,
		ProgramHeaderOffset:     Elf64HeaderSize,
		SectionHeaderOffset:     Elf64HeaderSize + Elf64ProgramHeaderEntrySize,
		ElfHeaderSize:           Elf64HeaderSize,
		ProgramHeaderEntrySize:  Elf64ProgramHeaderEntrySize,
		NumProgramHeaderEntries: 1,
		SectionHeaderEntrySize:  Elf64SectionHeaderEntrySize,
		NumSectionHeaderEntries: 1,
		SectionStringTableIndex: SectionIndexUndefined,
	}

	content, err := EncodeFileHeader(ident, header)
	expect.Nil(t, err)

	be := binary.BigEndian

	content = be.AppendUint32(content, uint32(ProgramLoadable))
	content = be.AppendUint32(content, 0x5) // flags precede addresses
	for _, value := range []uint64{0, 0x400000, 0x400000, 0x800, 0x800, 0x1000} {
		content = be.AppendUint64(content, value)
	}

	content = be.AppendUint32(content, 7) // name index
	content = be.AppendUint32(content, uint32(SectionTypeStringTable))
	for _, value := range []uint64{0, 0, 0x2000, 0x40} {
		content = be.AppendUint64(content, value)
	}
	content = be.AppendUint32(content, 3) // link
	content = be.AppendUint32(content, 9) // info
	content = be.AppendUint64(content, 1)
	content = be.AppendUint64(content, 0)

	file, err := Decode(content)
	expect.Nil(t, err)
	expect.Equal(t, ident, file.Identification)
	expect.Equal(t, header, file.FileHeader)

	expect.Equal(t, 1, len(file.ProgramHeaders))
	expect.Equal(
		t,
		ProgramHeaderEntry{
			ProgramType:     ProgramLoadable,
			ProgramFlags:    ProgramFlags(0x5),
			ContentOffset:   0,
			VirtualAddress:  0x400000,
			PhysicalAddress: 0x400000,
			FileImageSize:   0x800,
			MemoryImageSize: 0x800,
			Alignment:       0x1000,
		},
		file.ProgramHeaders[0])

	expect.Equal(t, 1, len(file.SectionHeaders))
	expect.Equal(
		t,
		SectionHeaderEntry{
			NameIndex:        7,
			SectionType:      SectionTypeStringTable,
			SectionFlags:     SectionFlags(0),
			Address:          0,
			Offset:           0x2000,
			Size:             0x40,
			Link:             3,
			Info:             9,
			AddressAlignment: 1,
			EntrySize:        0,
		},
		file.SectionHeaders[0])
}

func (FileSuite) TestTruncatedProgramHeaderTable(t *testing.T) {
	content := testFile32()[:64+2*Elf32ProgramHeaderEntrySize-1]

	_, err := Decode(content)
	expect.True(t, errors.Is(err, ErrTruncated))

	decodeErr := &DecodeError{}
	expect.True(t, errors.As(err, &decodeErr))
	expect.Equal(t, StageProgramHeaders, decodeErr.Stage)
}

func (FileSuite) TestTruncatedSectionHeaderTable(t *testing.T) {
	content := testFile32()[:144+Elf32SectionHeaderEntrySize]

	_, err := Decode(content)
	expect.True(t, errors.Is(err, ErrTruncated))

	decodeErr := &DecodeError{}
	expect.True(t, errors.As(err, &decodeErr))
	expect.Equal(t, StageSectionHeaders, decodeErr.Stage)
}

func (FileSuite) TestOutOfBoundTableOffset(t *testing.T) {
	content := testFile32()

	// phoff lives at offset 28 in the 32-bit layout
	binary.LittleEndian.PutUint32(content[28:], 0xffff0000)

	_, err := Decode(content)
	expect.True(t, errors.Is(err, ErrTruncated))

	decodeErr := &DecodeError{}
	expect.True(t, errors.As(err, &decodeErr))
	expect.Equal(t, StageProgramHeaders, decodeErr.Stage)
	expect.Equal(t, "offset", decodeErr.Field)
}

func (FileSuite) TestUnknownProgramTypePreserved(t *testing.T) {
	content := testFile32()
	binary.LittleEndian.PutUint32(content[64:], 0x70000005)

	file, err := Decode(content)
	expect.Nil(t, err)
	expect.Equal(t, ProgramType(0x70000005), file.ProgramHeaders[0].ProgramType)
}

func (FileSuite) TestUnknownSectionTypePreserved(t *testing.T) {
	content := testFile32()

	// second section entry's sh_type, never aliased to SectionTypeNull
	binary.LittleEndian.PutUint32(content[144+40+4:], 0x60000123)

	file, err := Decode(content)
	expect.Nil(t, err)
	expect.Equal(
		t,
		SectionType(0x60000123),
		file.SectionHeaders[1].SectionType)
}

func (FileSuite) TestReservedSectionFlagBitsPreserved(t *testing.T) {
	content := testFile32()
	binary.LittleEndian.PutUint32(content[144+40+8:], 0x80000007)

	file, err := Decode(content)
	expect.Nil(t, err)
	expect.Equal(
		t,
		SectionFlags(0x80000007),
		file.SectionHeaders[1].SectionFlags)
}

func (FileSuite) TestEmptyTables(t *testing.T) {
	ident := Identification{
		Class:        Class64,
		DataEncoding: DataEncodingLittleEndian,
		Version:      IdentifierVersion,
	}

	header := FileHeader{
		FileType:            FileTypeRelocatable,
		MachineArchitecture: MachineArchitectureRISCV,
		FormatVersion:       1,
		ElfHeaderSize:       Elf64HeaderSize,
	}

	content, err := EncodeFileHeader(ident, header)
	expect.Nil(t, err)

	file, err := Decode(content)
	expect.Nil(t, err)
	expect.Equal(t, 0, len(file.ProgramHeaders))
	expect.Equal(t, 0, len(file.SectionHeaders))
}
