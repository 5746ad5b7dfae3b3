// Package render formats decoded elf metadata for human and machine
// consumption.  It only consumes the composite decode result; it never
// re-reads the input buffer except for disassembly.
package render

import (
	"fmt"
	"io"

	"github.com/elfwire/elfwire/elf"
)

func WriteFileHeader(writer io.Writer, file *elf.File) error {
	_, err := fmt.Fprintf(
		writer,
		`ELF Header:
  Class:                             %s
  Data:                              %s
  Version:                           %d
  OS/ABI:                            %s
  ABI Version:                       %d
  Type:                              %s
  Machine:                           %s
  Version:                           %d
  Entry point address:               0x%x
  Start of program headers:          %d (bytes into file)
  Start of section headers:          %d (bytes into file)
  Flags:                             0x%x
  Size of this header:               %d (bytes)
  Size of program headers:           %d (bytes)
  Number of program headers:         %d
  Size of section headers:           %d (bytes)
  Number of section headers:         %d
  Section header string table index: %d
`,
		file.Class,
		file.DataEncoding,
		file.Identification.Version,
		file.OperatingSystemABI,
		file.ABIVersion,
		file.FileType,
		file.MachineArchitecture,
		file.FormatVersion,
		file.EntryPointAddress,
		file.ProgramHeaderOffset,
		file.SectionHeaderOffset,
		file.ArchitectureFlags,
		file.ElfHeaderSize,
		file.ProgramHeaderEntrySize,
		file.NumProgramHeaderEntries,
		file.SectionHeaderEntrySize,
		file.NumSectionHeaderEntries,
		file.SectionStringTableIndex)
	return err
}

func WriteProgramHeaders(writer io.Writer, file *elf.File) error {
	_, err := fmt.Fprintf(
		writer,
		"\nProgram Headers:\n"+
			"  %-16s%-12s%-12s%-12s%-12s%-12s%-8s%s\n",
		"Type",
		"Offset",
		"VirtAddr",
		"PhysAddr",
		"FileSize",
		"MemSize",
		"Flags",
		"Align")
	if err != nil {
		return err
	}

	for _, entry := range file.ProgramHeaders {
		_, err = fmt.Fprintf(
			writer,
			"  %-16s0x%-10x0x%-10x0x%-10x0x%-10x0x%-10x%-8s0x%x\n",
			entry.ProgramType,
			entry.ContentOffset,
			entry.VirtualAddress,
			entry.PhysicalAddress,
			entry.FileImageSize,
			entry.MemoryImageSize,
			entry.ProgramFlags,
			entry.Alignment)
		if err != nil {
			return err
		}
	}

	return nil
}

func WriteSectionHeaders(writer io.Writer, file *elf.File) error {
	_, err := fmt.Fprintf(
		writer,
		"\nSection Headers:\n"+
			"  %-8s%-24s%-12s%-12s%-12s%-12s%-13s%-8s%-8s%s\n",
		"Name",
		"Type",
		"Address",
		"Offset",
		"Size",
		"EntSize",
		"Flags",
		"Link",
		"Info",
		"Align")
	if err != nil {
		return err
	}

	for _, entry := range file.SectionHeaders {
		_, err = fmt.Fprintf(
			writer,
			"  %-8d%-24s0x%-10x0x%-10x0x%-10x0x%-10x%-13s%-8d%-8d0x%x\n",
			entry.NameIndex,
			entry.SectionType,
			entry.Address,
			entry.Offset,
			entry.Size,
			entry.EntrySize,
			entry.SectionFlags,
			entry.Link,
			entry.Info,
			entry.AddressAlignment)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteAll dumps the file header and both tables in readelf order.
func WriteAll(writer io.Writer, file *elf.File) error {
	err := WriteFileHeader(writer, file)
	if err != nil {
		return err
	}

	err = WriteProgramHeaders(writer, file)
	if err != nil {
		return err
	}

	return WriteSectionHeaders(writer, file)
}
