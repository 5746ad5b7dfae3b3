package render

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/elfwire/elfwire/elf"
)

// The yaml document mirrors the composite decode result with enum values
// rendered through their string forms and raw numeric fields left numeric.
type document struct {
	Class        string `yaml:"class"`
	DataEncoding string `yaml:"data_encoding"`
	IdentVersion uint8  `yaml:"ident_version"`
	OsAbi        string `yaml:"os_abi"`
	AbiVersion   uint8  `yaml:"abi_version"`

	Header         fileHeaderDocument      `yaml:"file_header"`
	ProgramHeaders []programHeaderDocument `yaml:"program_headers"`
	SectionHeaders []sectionHeaderDocument `yaml:"section_headers"`
}

type fileHeaderDocument struct {
	Type                  string `yaml:"type"`
	Machine               string `yaml:"machine"`
	Version               uint32 `yaml:"version"`
	EntryPoint            uint64 `yaml:"entry_point"`
	ProgramHeaderOffset   uint64 `yaml:"program_header_offset"`
	SectionHeaderOffset   uint64 `yaml:"section_header_offset"`
	Flags                 uint32 `yaml:"flags"`
	HeaderSize            uint16 `yaml:"header_size"`
	ProgramHeaderEntSize  uint16 `yaml:"program_header_entry_size"`
	NumProgramHeaders     uint16 `yaml:"num_program_headers"`
	SectionHeaderEntSize  uint16 `yaml:"section_header_entry_size"`
	NumSectionHeaders     uint16 `yaml:"num_section_headers"`
	SectionStringTableIdx uint16 `yaml:"section_string_table_index"`
}

type programHeaderDocument struct {
	Type            string `yaml:"type"`
	Flags           string `yaml:"flags"`
	Offset          uint64 `yaml:"offset"`
	VirtualAddress  uint64 `yaml:"virtual_address"`
	PhysicalAddress uint64 `yaml:"physical_address"`
	FileSize        uint64 `yaml:"file_size"`
	MemorySize      uint64 `yaml:"memory_size"`
	Alignment       uint64 `yaml:"alignment"`
}

type sectionHeaderDocument struct {
	NameIndex        uint32 `yaml:"name_index"`
	Type             string `yaml:"type"`
	Flags            string `yaml:"flags"`
	Address          uint64 `yaml:"address"`
	Offset           uint64 `yaml:"offset"`
	Size             uint64 `yaml:"size"`
	Link             uint32 `yaml:"link"`
	Info             uint32 `yaml:"info"`
	AddressAlignment uint64 `yaml:"address_alignment"`
	EntrySize        uint64 `yaml:"entry_size"`
}

func newDocument(file *elf.File) document {
	doc := document{
		Class:        file.Class.String(),
		DataEncoding: file.DataEncoding.String(),
		IdentVersion: file.Identification.Version,
		OsAbi:        file.OperatingSystemABI.String(),
		AbiVersion:   file.ABIVersion,
		Header: fileHeaderDocument{
			Type:                  file.FileType.String(),
			Machine:               file.MachineArchitecture.String(),
			Version:               file.FormatVersion,
			EntryPoint:            file.EntryPointAddress,
			ProgramHeaderOffset:   file.ProgramHeaderOffset,
			SectionHeaderOffset:   file.SectionHeaderOffset,
			Flags:                 file.ArchitectureFlags,
			HeaderSize:            file.ElfHeaderSize,
			ProgramHeaderEntSize:  file.ProgramHeaderEntrySize,
			NumProgramHeaders:     file.NumProgramHeaderEntries,
			SectionHeaderEntSize:  file.SectionHeaderEntrySize,
			NumSectionHeaders:     file.NumSectionHeaderEntries,
			SectionStringTableIdx: uint16(file.SectionStringTableIndex),
		},
	}

	for _, entry := range file.ProgramHeaders {
		doc.ProgramHeaders = append(
			doc.ProgramHeaders,
			programHeaderDocument{
				Type:            entry.ProgramType.String(),
				Flags:           entry.ProgramFlags.String(),
				Offset:          entry.ContentOffset,
				VirtualAddress:  entry.VirtualAddress,
				PhysicalAddress: entry.PhysicalAddress,
				FileSize:        entry.FileImageSize,
				MemorySize:      entry.MemoryImageSize,
				Alignment:       entry.Alignment,
			})
	}

	for _, entry := range file.SectionHeaders {
		doc.SectionHeaders = append(
			doc.SectionHeaders,
			sectionHeaderDocument{
				NameIndex:        entry.NameIndex,
				Type:             entry.SectionType.String(),
				Flags:            entry.SectionFlags.String(),
				Address:          entry.Address,
				Offset:           entry.Offset,
				Size:             entry.Size,
				Link:             entry.Link,
				Info:             entry.Info,
				AddressAlignment: entry.AddressAlignment,
				EntrySize:        entry.EntrySize,
			})
	}

	return doc
}

func WriteYAML(writer io.Writer, file *elf.File) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()

	return encoder.Encode(newDocument(file))
}
