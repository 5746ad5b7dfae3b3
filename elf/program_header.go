package elf

import (
	"fmt"
)

// ProgramHeaderEntry describes one segment.  The 32 and 64-bit on-disk
// layouts order the fields differently (the 64-bit layout moves p_flags to
// immediately after p_type); the decoded form is layout independent.
type ProgramHeaderEntry struct {
	ProgramType            // p_type
	ProgramFlags           // p_flags
	ContentOffset   uint64 // p_offset
	VirtualAddress  uint64 // p_vaddr
	PhysicalAddress uint64 // p_paddr
	FileImageSize   uint64 // p_filesz
	MemoryImageSize uint64 // p_memsz
	Alignment       uint64 // p_align
}

func programHeaderEntrySize(class Class) int {
	if class == Class32 {
		return Elf32ProgramHeaderEntrySize
	}
	return Elf64ProgramHeaderEntrySize
}

// decodeProgramHeaders decodes exactly count fixed-size entries starting at
// the cursor's current position, preserving on-disk order.  Program header
// order is load significant.
func decodeProgramHeaders(
	cursor *Cursor,
	ident Identification,
	count uint16,
) (
	[]ProgramHeaderEntry,
	error,
) {
	entrySize := programHeaderEntrySize(ident.Class)
	if cursor.NumRemaining() < int(count)*entrySize {
		return nil, newDecodeError(
			StageProgramHeaders,
			"",
			cursor.Position,
			fmt.Errorf(
				"%d entries of %d bytes, %d bytes remaining: %w",
				count,
				entrySize,
				cursor.NumRemaining(),
				ErrTruncated))
	}

	entries := make([]ProgramHeaderEntry, 0, count)
	for idx := 0; idx < int(count); idx++ {
		entry, err := decodeProgramHeaderEntry(cursor, ident.Class)
		if err != nil {
			return nil, newDecodeError(
				StageProgramHeaders,
				fmt.Sprintf("entry %d", idx),
				cursor.Position,
				err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func decodeProgramHeaderEntry(
	cursor *Cursor,
	class Class,
) (
	ProgramHeaderEntry,
	error,
) {
	entry := ProgramHeaderEntry{}

	segType, err := cursor.U32()
	if err != nil {
		return entry, err
	}
	entry.ProgramType = ProgramType(segType)

	if class == Class64 {
		flags, err := cursor.U32()
		if err != nil {
			return entry, err
		}
		entry.ProgramFlags = ProgramFlags(flags)
	}

	fields := []*uint64{
		&entry.ContentOffset,
		&entry.VirtualAddress,
		&entry.PhysicalAddress,
		&entry.FileImageSize,
		&entry.MemoryImageSize,
	}

	for _, dest := range fields {
		value, err := cursor.Addr(class)
		if err != nil {
			return entry, err
		}
		*dest = value
	}

	if class == Class32 {
		flags, err := cursor.U32()
		if err != nil {
			return entry, err
		}
		entry.ProgramFlags = ProgramFlags(flags)
	}

	alignment, err := cursor.Addr(class)
	if err != nil {
		return entry, err
	}
	entry.Alignment = alignment

	return entry, nil
}
