package elf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// FileHeader holds the fixed-size header that follows the identification
// block.  Address-valued fields (e_entry, e_phoff, e_shoff) are widened to
// uint64 regardless of class; the class recorded at identification selects
// the 4 or 8 byte on-disk layout.
type FileHeader struct {
	FileType            // e_type
	MachineArchitecture // e_machine

	FormatVersion uint32 // e_version

	EntryPointAddress   uint64 // e_entry
	ProgramHeaderOffset uint64 // e_phoff
	SectionHeaderOffset uint64 // e_shoff

	ArchitectureFlags uint32 // e_flags

	ElfHeaderSize           uint16       // e_ehsize
	ProgramHeaderEntrySize  uint16       // e_phentsize
	NumProgramHeaderEntries uint16       // e_phnum
	SectionHeaderEntrySize  uint16       // e_shentsize
	NumSectionHeaderEntries uint16       // e_shnum
	SectionStringTableIndex SectionIndex // e_shstrndx
}

// decodeFileHeader decodes the post-identification fields.  The cursor must
// be positioned immediately after the identification block, with its byte
// order already set from ident.
func decodeFileHeader(
	cursor *Cursor,
	ident Identification,
) (
	FileHeader,
	error,
) {
	header := FileHeader{}

	fileType, err := cursor.U16()
	if err != nil {
		return header, newDecodeError(
			StageFileHeader,
			"type",
			cursor.Position,
			err)
	}
	header.FileType = FileType(fileType)

	machine, err := cursor.U16()
	if err != nil {
		return header, newDecodeError(
			StageFileHeader,
			"machine",
			cursor.Position,
			err)
	}
	header.MachineArchitecture = MachineArchitecture(machine)

	version, err := cursor.U32()
	if err != nil {
		return header, newDecodeError(
			StageFileHeader,
			"version",
			cursor.Position,
			err)
	}

	if version != FormatVersion {
		return header, newDecodeError(
			StageFileHeader,
			"version",
			cursor.Position,
			fmt.Errorf("%w: %d", ErrUnsupportedVersion, version))
	}
	header.FormatVersion = version

	addrFields := []struct {
		name string
		dest *uint64
	}{
		{"entry point", &header.EntryPointAddress},
		{"program header offset", &header.ProgramHeaderOffset},
		{"section header offset", &header.SectionHeaderOffset},
	}

	for _, field := range addrFields {
		value, err := cursor.Addr(ident.Class)
		if err != nil {
			return header, newDecodeError(
				StageFileHeader,
				field.name,
				cursor.Position,
				err)
		}
		*field.dest = value
	}

	flags, err := cursor.U32()
	if err != nil {
		return header, newDecodeError(
			StageFileHeader,
			"flags",
			cursor.Position,
			err)
	}
	header.ArchitectureFlags = flags

	sizeFields := []struct {
		name string
		dest *uint16
	}{
		{"header size", &header.ElfHeaderSize},
		{"program header entry size", &header.ProgramHeaderEntrySize},
		{"program header count", &header.NumProgramHeaderEntries},
		{"section header entry size", &header.SectionHeaderEntrySize},
		{"section header count", &header.NumSectionHeaderEntries},
		{"section string table index", nil},
	}

	for _, field := range sizeFields {
		value, err := cursor.U16()
		if err != nil {
			return header, newDecodeError(
				StageFileHeader,
				field.name,
				cursor.Position,
				err)
		}

		if field.dest == nil {
			header.SectionStringTableIndex = SectionIndex(value)
		} else {
			*field.dest = value
		}
	}

	return header, nil
}

// EncodeFileHeader emits the exact on-disk byte sequence for the file header
// region: the 16-byte identification block followed by the fixed fields in
// ident's class layout and data encoding.
func EncodeFileHeader(
	ident Identification,
	header FileHeader,
) (
	[]byte,
	error,
) {
	byteOrder, ok := ident.DataEncoding.byteOrder().(binary.AppendByteOrder)
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s",
			ErrUnsupportedDataEncoding,
			ident.DataEncoding)
	}

	size := Elf64HeaderSize
	if ident.Class == Class32 {
		size = Elf32HeaderSize
	}

	buffer := make([]byte, 0, size)
	buffer = ident.append(buffer)

	buffer = byteOrder.AppendUint16(buffer, uint16(header.FileType))
	buffer = byteOrder.AppendUint16(buffer, uint16(header.MachineArchitecture))
	buffer = byteOrder.AppendUint32(buffer, header.FormatVersion)

	addrFields := []struct {
		name  string
		value uint64
	}{
		{"entry point", header.EntryPointAddress},
		{"program header offset", header.ProgramHeaderOffset},
		{"section header offset", header.SectionHeaderOffset},
	}

	for _, field := range addrFields {
		switch ident.Class {
		case Class32:
			if field.value > math.MaxUint32 {
				return nil, fmt.Errorf(
					"%s (%#x) does not fit in the 32-bit layout",
					field.name,
					field.value)
			}
			buffer = byteOrder.AppendUint32(buffer, uint32(field.value))
		case Class64:
			buffer = byteOrder.AppendUint64(buffer, field.value)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedClass, ident.Class)
		}
	}

	buffer = byteOrder.AppendUint32(buffer, header.ArchitectureFlags)

	buffer = byteOrder.AppendUint16(buffer, header.ElfHeaderSize)
	buffer = byteOrder.AppendUint16(buffer, header.ProgramHeaderEntrySize)
	buffer = byteOrder.AppendUint16(buffer, header.NumProgramHeaderEntries)
	buffer = byteOrder.AppendUint16(buffer, header.SectionHeaderEntrySize)
	buffer = byteOrder.AppendUint16(buffer, header.NumSectionHeaderEntries)
	buffer = byteOrder.AppendUint16(
		buffer,
		uint16(header.SectionStringTableIndex))

	return buffer, nil
}
