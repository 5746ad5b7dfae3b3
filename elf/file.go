package elf

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Resources:
// https://refspecs.linuxfoundation.org/

// File is the composite decode result.  All fields are value objects created
// once by Decode and never mutated afterwards; both tables preserve on-disk
// order.
type File struct {
	Identification
	FileHeader

	ProgramHeaders []ProgramHeaderEntry
	SectionHeaders []SectionHeaderEntry
}

func Parse(reader io.Reader) (*File, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read elf file: %w", err)
	}

	return Decode(content)
}

// Decode runs the full pipeline over an in-memory buffer: identification,
// file header, program header table, section header table.  A failure at any
// stage aborts the whole decode; there is no partial result.
func Decode(content []byte) (*File, error) {
	// NOTE: the identifier (e_ident) has no endianness of its own.  It must
	// be decoded first to determine the byte order of everything else.
	cursor := NewCursor(binary.LittleEndian, content)

	ident, err := decodeIdentification(cursor)
	if err != nil {
		return nil, err
	}
	cursor.ByteOrder = ident.DataEncoding.byteOrder()

	header, err := decodeFileHeader(cursor, ident)
	if err != nil {
		return nil, err
	}

	file := &File{
		Identification: ident,
		FileHeader:     header,
	}

	// The tables live at their header-declared offsets, which need not be
	// contiguous with the fixed header.
	if header.NumProgramHeaderEntries > 0 {
		err = seekTable(
			cursor,
			StageProgramHeaders,
			header.ProgramHeaderOffset)
		if err != nil {
			return nil, err
		}

		file.ProgramHeaders, err = decodeProgramHeaders(
			cursor,
			ident,
			header.NumProgramHeaderEntries)
		if err != nil {
			return nil, err
		}
	}

	if header.NumSectionHeaderEntries > 0 {
		err = seekTable(
			cursor,
			StageSectionHeaders,
			header.SectionHeaderOffset)
		if err != nil {
			return nil, err
		}

		file.SectionHeaders, err = decodeSectionHeaders(
			cursor,
			ident,
			header.NumSectionHeaderEntries)
		if err != nil {
			return nil, err
		}
	}

	return file, nil
}

func seekTable(
	cursor *Cursor,
	stage DecodeStage,
	offset uint64,
) error {
	// Guard the uint64 to int conversion before seeking.
	if offset > uint64(len(cursor.Content)) {
		return newDecodeError(
			stage,
			"offset",
			cursor.Position,
			fmt.Errorf(
				"table offset %d exceeds input size %d: %w",
				offset,
				len(cursor.Content),
				ErrTruncated))
	}

	_, err := cursor.Seek(int(offset), io.SeekStart)
	if err != nil {
		return newDecodeError(stage, "offset", cursor.Position, err)
	}

	return nil
}
