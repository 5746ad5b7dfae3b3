package elf

import (
	"fmt"
)

// SectionHeaderEntry describes one section.  NameIndex is the raw string
// table offset; name resolution belongs to a consumer with access to the
// section string table.  Link and Info are u32 in both layouts.
type SectionHeaderEntry struct {
	NameIndex        uint32 // sh_name
	SectionType             // sh_type
	SectionFlags            // sh_flags
	Address          uint64 // sh_addr
	Offset           uint64 // sh_offset
	Size             uint64 // sh_size
	Link             uint32 // sh_link
	Info             uint32 // sh_info
	AddressAlignment uint64 // sh_addralign
	EntrySize        uint64 // sh_entsize
}

func sectionHeaderEntrySize(class Class) int {
	if class == Class32 {
		return Elf32SectionHeaderEntrySize
	}
	return Elf64SectionHeaderEntrySize
}

// decodeSectionHeaders decodes exactly count fixed-size entries starting at
// the cursor's current position, preserving on-disk order.
func decodeSectionHeaders(
	cursor *Cursor,
	ident Identification,
	count uint16,
) (
	[]SectionHeaderEntry,
	error,
) {
	entrySize := sectionHeaderEntrySize(ident.Class)
	if cursor.NumRemaining() < int(count)*entrySize {
		return nil, newDecodeError(
			StageSectionHeaders,
			"",
			cursor.Position,
			fmt.Errorf(
				"%d entries of %d bytes, %d bytes remaining: %w",
				count,
				entrySize,
				cursor.NumRemaining(),
				ErrTruncated))
	}

	entries := make([]SectionHeaderEntry, 0, count)
	for idx := 0; idx < int(count); idx++ {
		entry, err := decodeSectionHeaderEntry(cursor, ident.Class)
		if err != nil {
			return nil, newDecodeError(
				StageSectionHeaders,
				fmt.Sprintf("entry %d", idx),
				cursor.Position,
				err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func decodeSectionHeaderEntry(
	cursor *Cursor,
	class Class,
) (
	SectionHeaderEntry,
	error,
) {
	entry := SectionHeaderEntry{}

	name, err := cursor.U32()
	if err != nil {
		return entry, err
	}
	entry.NameIndex = name

	sectionType, err := cursor.U32()
	if err != nil {
		return entry, err
	}
	entry.SectionType = SectionType(sectionType)

	flags, err := cursor.Addr(class)
	if err != nil {
		return entry, err
	}
	entry.SectionFlags = SectionFlags(flags)

	addrFields := []*uint64{
		&entry.Address,
		&entry.Offset,
		&entry.Size,
	}

	for _, dest := range addrFields {
		value, err := cursor.Addr(class)
		if err != nil {
			return entry, err
		}
		*dest = value
	}

	link, err := cursor.U32()
	if err != nil {
		return entry, err
	}
	entry.Link = link

	info, err := cursor.U32()
	if err != nil {
		return entry, err
	}
	entry.Info = info

	alignment, err := cursor.Addr(class)
	if err != nil {
		return entry, err
	}
	entry.AddressAlignment = alignment

	entSize, err := cursor.Addr(class)
	if err != nil {
		return entry, err
	}
	entry.EntrySize = entSize

	return entry, nil
}
