// Based on linux's man page, elf.h, golang's debug/elf package,
// and the elf 1.2 spec.
package elf

import (
	"encoding/binary"
	"fmt"
)

var (
	// EI_MAG0 - EI_MAG3
	IdentifierMagic = []byte{
		0x7f, // ELFMAG0
		'E',  // ELFMAG1
		'L',  // ELFMAG2
		'F',  // ELFMAG3
	}
)

const (
	IdentifierVersion = 1 // EI_CURRENT
	FormatVersion     = 1 // EV_CURRENT

	ElfIdentifierSize = 16

	// Full header sizes, identifier included.
	Elf32HeaderSize = 52
	Elf64HeaderSize = 64

	Elf32ProgramHeaderEntrySize = 32
	Elf64ProgramHeaderEntrySize = 56

	Elf32SectionHeaderEntrySize = 40
	Elf64SectionHeaderEntrySize = 64
)

// EI_CLASS
type Class byte

const (
	ClassNone = Class(0) // ELFCLASSNONE
	Class32   = Class(1) // ELFCLASS32
	Class64   = Class(2) // ELFCLASS64
)

func (class Class) String() string {
	switch class {
	case ClassNone:
		return "ClassNone"
	case Class32:
		return "ELF32"
	case Class64:
		return "ELF64"
	default:
		return fmt.Sprintf("ClassUnknown(%d)", byte(class))
	}
}

// EI_DATA
type DataEncoding byte

const (
	DataEncodingNone         = DataEncoding(0) // ELFDATANONE
	DataEncodingLittleEndian = DataEncoding(1) // ELFDATA2LSB
	DataEncodingBigEndian    = DataEncoding(2) // ELFDATA2MSB
)

func (encoding DataEncoding) String() string {
	switch encoding {
	case DataEncodingNone:
		return "DataEncodingNone"
	case DataEncodingLittleEndian:
		return "2's complement, little endian"
	case DataEncodingBigEndian:
		return "2's complement, big endian"
	default:
		return fmt.Sprintf("DataEncodingUnknown(%d)", byte(encoding))
	}
}

func (encoding DataEncoding) byteOrder() binary.ByteOrder {
	switch encoding {
	case DataEncodingLittleEndian:
		return binary.LittleEndian
	case DataEncodingBigEndian:
		return binary.BigEndian
	default:
		return nil
	}
}

// EI_OSABI
//
// The os/abi registry is advisory and open.  Unrecognized bytes are carried
// through unmodified.
type OperatingSystemABI byte

const (
	OperatingSystemABIUnixSystemV = OperatingSystemABI(0x00) // ELFOSABI_NONE
	OperatingSystemABIHPUX        = OperatingSystemABI(0x01)
	OperatingSystemABINetBSD      = OperatingSystemABI(0x02)
	OperatingSystemABILinux       = OperatingSystemABI(0x03) // ELFOSABI_LINUX
	OperatingSystemABIGNUHurd     = OperatingSystemABI(0x04)
	OperatingSystemABISolaris     = OperatingSystemABI(0x06)
	OperatingSystemABIAIX         = OperatingSystemABI(0x07)
	OperatingSystemABIIRIX        = OperatingSystemABI(0x08)
	OperatingSystemABIFreeBSD     = OperatingSystemABI(0x09)
	OperatingSystemABITru64       = OperatingSystemABI(0x0a)
	OperatingSystemABINovell      = OperatingSystemABI(0x0b)
	OperatingSystemABIOpenBSD     = OperatingSystemABI(0x0c)
	OperatingSystemABIOpenVMS     = OperatingSystemABI(0x0d)
	OperatingSystemABINonStop     = OperatingSystemABI(0x0e)
	OperatingSystemABIAros        = OperatingSystemABI(0x0f)
	OperatingSystemABIFenix       = OperatingSystemABI(0x10)
	OperatingSystemABICloudABI    = OperatingSystemABI(0x11)
	OperatingSystemABIOpenVOS     = OperatingSystemABI(0x12)
)

var operatingSystemABINames = map[OperatingSystemABI]string{
	OperatingSystemABIUnixSystemV: "UNIX - System V",
	OperatingSystemABIHPUX:        "UNIX - HP-UX",
	OperatingSystemABINetBSD:      "UNIX - NetBSD",
	OperatingSystemABILinux:       "Linux",
	OperatingSystemABIGNUHurd:     "Unix - GNU",
	OperatingSystemABISolaris:     "UNIX - Solaris",
	OperatingSystemABIAIX:         "UNIX - AIX",
	OperatingSystemABIIRIX:        "UNIX - IRIX",
	OperatingSystemABIFreeBSD:     "UNIX - FreeBSD",
	OperatingSystemABITru64:       "UNIX - TRU64",
	OperatingSystemABINovell:      "Novell - Modesto",
	OperatingSystemABIOpenBSD:     "Unix - OpenBSD",
	OperatingSystemABIOpenVMS:     "VMS - OpenVMS",
	OperatingSystemABINonStop:     "HP - Non-Stop Kernel",
	OperatingSystemABIAros:        "Aros",
	OperatingSystemABIFenix:       "FenixOS",
	OperatingSystemABICloudABI:    "Nuxi CloudABI",
	OperatingSystemABIOpenVOS:     "Stratus Technologies OpenVOS",
}

func (osAbi OperatingSystemABI) String() string {
	name, ok := operatingSystemABINames[osAbi]
	if !ok {
		return fmt.Sprintf("OperatingSystemABIUnknown(%d)", byte(osAbi))
	}

	return name
}

// e_type
//
// The file type value space is treated as open for forward compatibility,
// matching the treatment of e_machine.  The reserved os / processor ranges
// guarantee new values will appear over time.
type FileType uint16

const (
	FileTypeNone         = FileType(0)      // ET_NONE
	FileTypeRelocatable  = FileType(1)      // ET_REL
	FileTypeExecutable   = FileType(2)      // ET_EXEC
	FileTypeSharedObject = FileType(3)      // ET_DYN
	FileTypeCore         = FileType(4)      // ET_CORE
	FileTypeLoOs         = FileType(0xfe00) // ET_LOOS
	FileTypeHiOs         = FileType(0xfeff) // ET_HIOS
	FileTypeLoProc       = FileType(0xff00) // ET_LOPROC
	FileTypeHiProc       = FileType(0xffff) // ET_HIPROC
)

func (ft FileType) String() string {
	switch ft {
	case FileTypeNone:
		return "None"
	case FileTypeRelocatable:
		return "REL (Relocatable file)"
	case FileTypeExecutable:
		return "EXEC (Executable file)"
	case FileTypeSharedObject:
		return "DYN (Shared object file)"
	case FileTypeCore:
		return "CORE (Core file)"
	case FileTypeLoOs:
		return "OS Specific: (LoOs)"
	case FileTypeHiOs:
		return "OS Specific: (HiOs)"
	case FileTypeLoProc:
		return "Processor Specific: (LoProc)"
	case FileTypeHiProc:
		return "Processor Specific: (HiProc)"
	default:
		return fmt.Sprintf("FileTypeUnknown(%d)", uint16(ft))
	}
}

// e_machine
//
// Open registry.  Unrecognized codes round-trip unchanged.
type MachineArchitecture uint16

const (
	MachineArchitectureNone       = MachineArchitecture(0)  // EM_NONE
	MachineArchitectureM32        = MachineArchitecture(1)  // EM_M32
	MachineArchitectureSPARC      = MachineArchitecture(2)  // EM_SPARC
	MachineArchitectureX386       = MachineArchitecture(3)  // EM_386
	MachineArchitectureM68K       = MachineArchitecture(4)  // EM_68K
	MachineArchitectureM88K       = MachineArchitecture(5)  // EM_88K
	MachineArchitectureIntelMCU   = MachineArchitecture(6)  // EM_IAMCU
	MachineArchitectureIntel80860 = MachineArchitecture(7)  // EM_860
	MachineArchitectureMIPS       = MachineArchitecture(8)  // EM_MIPS
	MachineArchitectureS370       = MachineArchitecture(9)  // EM_S370
	MachineArchitectureMIPSRS3LE  = MachineArchitecture(10) // EM_MIPS_RS3_LE
	MachineArchitecturePARISC     = MachineArchitecture(14) // EM_PARISC
	MachineArchitectureI960       = MachineArchitecture(19) // EM_960
	MachineArchitecturePPC        = MachineArchitecture(20) // EM_PPC
	MachineArchitecturePPC64      = MachineArchitecture(21) // EM_PPC64
	MachineArchitectureS390       = MachineArchitecture(22) // EM_S390
	MachineArchitectureV800       = MachineArchitecture(36) // EM_V800
	MachineArchitectureFR20       = MachineArchitecture(37) // EM_FR20
	MachineArchitectureRH32       = MachineArchitecture(38) // EM_RH32
	MachineArchitectureRCE        = MachineArchitecture(39) // EM_RCE
	MachineArchitectureARM        = MachineArchitecture(40) // EM_ARM
	MachineArchitectureAlpha      = MachineArchitecture(41) // EM_FAKE_ALPHA
	MachineArchitectureSH         = MachineArchitecture(42) // EM_SH
	MachineArchitectureSPARCV9    = MachineArchitecture(43) // EM_SPARCV9
	MachineArchitectureTricore    = MachineArchitecture(44) // EM_TRICORE
	MachineArchitectureARC        = MachineArchitecture(45) // EM_ARC
	MachineArchitectureH8300      = MachineArchitecture(46) // EM_H8_300
	MachineArchitectureH8300H     = MachineArchitecture(47) // EM_H8_300H
	MachineArchitectureH8S        = MachineArchitecture(48) // EM_H8S
	MachineArchitectureH8500      = MachineArchitecture(49) // EM_H8_500
	MachineArchitectureIA64       = MachineArchitecture(50) // EM_IA_64
	MachineArchitectureMIPSX      = MachineArchitecture(51) // EM_MIPS_X
	MachineArchitectureColdfire   = MachineArchitecture(52) // EM_COLDFIRE
	MachineArchitectureM68HC12    = MachineArchitecture(53) // EM_68HC12
	MachineArchitectureMMA        = MachineArchitecture(54) // EM_MMA
	MachineArchitecturePCP        = MachineArchitecture(55) // EM_PCP
	MachineArchitectureNCPU       = MachineArchitecture(56) // EM_NCPU
	MachineArchitectureNDR1       = MachineArchitecture(57) // EM_NDR1
	MachineArchitectureStarcore   = MachineArchitecture(58) // EM_STARCORE
	MachineArchitectureME16       = MachineArchitecture(59) // EM_ME16
	MachineArchitectureST100      = MachineArchitecture(60) // EM_ST100
	MachineArchitectureTinyJ      = MachineArchitecture(61) // EM_TINYJ
	MachineArchitectureX86_64     = MachineArchitecture(62) // EM_X86_64

	MachineArchitectureTIC6000   = MachineArchitecture(140) // EM_TI_C6000
	MachineArchitectureAArch64   = MachineArchitecture(183) // EM_AARCH64
	MachineArchitectureRISCV     = MachineArchitecture(243) // EM_RISCV
	MachineArchitectureBPF       = MachineArchitecture(247) // EM_BPF
	MachineArchitectureMCS6502   = MachineArchitecture(254) // EM_CSKY - 2
	MachineArchitectureWDC65C817 = MachineArchitecture(257) // EM_65816
)

var machineArchitectureNames = map[MachineArchitecture]string{
	MachineArchitectureNone:       "None",
	MachineArchitectureM32:        "WE32100",
	MachineArchitectureSPARC:      "Sparc",
	MachineArchitectureX386:       "Intel 80386",
	MachineArchitectureM68K:       "MC68000",
	MachineArchitectureM88K:       "MC88000",
	MachineArchitectureIntelMCU:   "Intel MCU",
	MachineArchitectureIntel80860: "Intel 80860",
	MachineArchitectureMIPS:       "MIPS R3000",
	MachineArchitectureS370:       "IBM System/370",
	MachineArchitectureMIPSRS3LE:  "MIPS R4000 big-endian",
	MachineArchitecturePARISC:     "HPPA",
	MachineArchitectureI960:       "Intel 80960",
	MachineArchitecturePPC:        "PowerPC",
	MachineArchitecturePPC64:      "PowerPC64",
	MachineArchitectureS390:       "IBM S/390",
	MachineArchitectureV800:       "Renesas V850 (using RH850 ABI)",
	MachineArchitectureFR20:       "Fujitsu FR20",
	MachineArchitectureRH32:       "TRW RH32",
	MachineArchitectureRCE:        "Motorola M*Core",
	MachineArchitectureARM:        "ARM",
	MachineArchitectureAlpha:      "Digital Alpha (old)",
	MachineArchitectureSH:         "Renesas / SuperH SH",
	MachineArchitectureSPARCV9:    "Sparc v9",
	MachineArchitectureTricore:    "Siemens Tricore",
	MachineArchitectureARC:        "ARC",
	MachineArchitectureH8300:      "Renesas H8/300",
	MachineArchitectureH8300H:     "Renesas H8/300H",
	MachineArchitectureH8S:        "Renesas H8S",
	MachineArchitectureH8500:      "Renesas H8/500",
	MachineArchitectureIA64:       "Intel IA-64",
	MachineArchitectureMIPSX:      "Stanford MIPS-X",
	MachineArchitectureColdfire:   "Motorola Coldfire",
	MachineArchitectureM68HC12:    "Motorola MC68HC12 Microcontroller",
	MachineArchitectureMMA:        "Fujitsu Multimedia Accellerator",
	MachineArchitecturePCP:        "Siemens PCP",
	MachineArchitectureNCPU:       "Sony nCPU embedded RISC processor",
	MachineArchitectureNDR1:       "Denso NDR1 microprocessor",
	MachineArchitectureStarcore:   "Motorola Star*Core processor",
	MachineArchitectureME16:       "Toyota ME16 processor",
	MachineArchitectureST100:      "STMicroelectronics ST100 processor",
	MachineArchitectureTinyJ:      "Advanced Logic Corp. TinyJ embedded processor",
	MachineArchitectureX86_64:     "Advanced Micro Devices X86-64",
	MachineArchitectureTIC6000:    "Texas Instruments TMS320C6000 DSP family",
	MachineArchitectureAArch64:    "AArch64",
	MachineArchitectureRISCV:      "RISC-V",
	MachineArchitectureBPF:        "Berkeley Packet Filter",
	MachineArchitectureMCS6502:    "MOS Technology MCS 6502 processor",
	MachineArchitectureWDC65C817:  "WDC 65816/65C816",
}

func (arch MachineArchitecture) String() string {
	name, ok := machineArchitectureNames[arch]
	if !ok {
		return fmt.Sprintf("MachineArchitectureUnknown(%d)", uint16(arch))
	}

	return name
}

// p_type
//
// Open registry.  The os / processor specific ranges are intentionally
// extensible; gnu segment types live in the os specific range.
type ProgramType uint32

const (
	ProgramNull            = ProgramType(0) // PT_NULL
	ProgramLoadable        = ProgramType(1) // PT_LOAD
	ProgramDynamicLinking  = ProgramType(2) // PT_DYNAMIC
	ProgramInterpreterPath = ProgramType(3) // PT_INTERP
	ProgramNote            = ProgramType(4) // PT_NOTE
	ProgramSharedLibrary   = ProgramType(5) // PT_SHLIB
	ProgramHeaderInfo      = ProgramType(6) // PT_PHDR
	ProgramThreadLocal     = ProgramType(7) // PT_TLS

	ProgramLoOs   = ProgramType(0x60000000) // PT_LOOS
	ProgramHiOs   = ProgramType(0x6fffffff) // PT_HIOS
	ProgramLoProc = ProgramType(0x70000000) // PT_LOPROC
	ProgramHiProc = ProgramType(0x7fffffff) // PT_HIPROC

	ProgramGNUEhFrame = ProgramType(0x6474e550) // PT_GNU_EH_FRAME
	ProgramGNUStack   = ProgramType(0x6474e551) // PT_GNU_STACK
	ProgramGNURelro   = ProgramType(0x6474e552) // PT_GNU_RELRO
)

func (segType ProgramType) String() string {
	switch segType {
	case ProgramNull:
		return "ProgramNull"
	case ProgramLoadable:
		return "Loadable"
	case ProgramDynamicLinking:
		return "DynamicLinking"
	case ProgramInterpreterPath:
		return "InterpreterPath"
	case ProgramNote:
		return "Note"
	case ProgramSharedLibrary:
		return "SharedLibrary"
	case ProgramHeaderInfo:
		return "HeaderInfo"
	case ProgramThreadLocal:
		return "ThreadLocal"
	case ProgramGNUEhFrame:
		return "GNUEhFrame"
	case ProgramGNUStack:
		return "GNUStack"
	case ProgramGNURelro:
		return "GNURelro"
	default:
		return fmt.Sprintf("ProgramUnknown(%#x)", uint32(segType))
	}
}

// p_flags
type ProgramFlags uint32

const (
	ProgramFlagExecutableBit = ProgramFlags(0x1) // PF_X
	ProgramFlagWritableBit   = ProgramFlags(0x2) // PF_W
	ProgramFlagReadableBit   = ProgramFlags(0x4) // PF_R
)

func (bits ProgramFlags) String() string {
	if bits > 7 {
		return fmt.Sprintf("%#x", uint32(bits))
	}

	rwx := []byte{'-', '-', '-'}
	if bits&ProgramFlagReadableBit != 0 {
		rwx[0] = 'r'
	}

	if bits&ProgramFlagWritableBit != 0 {
		rwx[1] = 'w'
	}

	if bits&ProgramFlagExecutableBit != 0 {
		rwx[2] = 'x'
	}

	return string(rwx)
}

// sh_type
//
// Open registry.  Unrecognized codes are never aliased to SectionTypeNull;
// the raw value round-trips.
type SectionType uint32

const (
	SectionTypeNull                    = SectionType(0)  // SHT_NULL
	SectionTypeProgramDefinedInfo      = SectionType(1)  // SHT_PROGBITS
	SectionTypeSymbolTable             = SectionType(2)  // SHT_SYMTAB
	SectionTypeStringTable             = SectionType(3)  // SHT_STRTAB
	SectionTypeRelocationWithAddends   = SectionType(4)  // SHT_RELA
	SectionTypeSymbolHashTable         = SectionType(5)  // SHT_HASH
	SectionTypeDynamic                 = SectionType(6)  // SHT_DYNAMIC
	SectionTypeNote                    = SectionType(7)  // SHT_NOTE
	SectionTypeNoSpace                 = SectionType(8)  // SHT_NOBITS
	SectionTypeRelocationNoAddends     = SectionType(9)  // SHT_REL
	SectionTypeReserved                = SectionType(10) // SHT_SHLIB
	SectionTypeDynamicSymbolTable      = SectionType(11) // SHT_DYNSYM
	SectionTypeInitializerArray        = SectionType(14) // SHT_INIT_ARRAY
	SectionTypeFinalizerArray          = SectionType(15) // SHT_FINI_ARRAY
	SectionTypePreInitializerArray     = SectionType(16) // SHT_PREINIT_ARRAY
	SectionTypeGroup                   = SectionType(17) // SHT_GROUP
	SectionTypeExtendedSectionIndices  = SectionType(18) // SHT_SYMTAB_SHNDX
	SectionTypeNumDefinedTypes         = SectionType(19) // SHT_NUM
)

var sectionTypeNames = map[SectionType]string{
	SectionTypeNull:                   "SectionTypeNull",
	SectionTypeProgramDefinedInfo:     "ProgramDefinedInfo",
	SectionTypeSymbolTable:            "SymbolTable",
	SectionTypeStringTable:            "StringTable",
	SectionTypeRelocationWithAddends:  "RelocationWithAddends",
	SectionTypeSymbolHashTable:        "SymbolHashTable",
	SectionTypeDynamic:                "Dynamic",
	SectionTypeNote:                   "Note",
	SectionTypeNoSpace:                "NoSpace",
	SectionTypeRelocationNoAddends:    "RelocationNoAddends",
	SectionTypeReserved:               "Reserved",
	SectionTypeDynamicSymbolTable:     "DynamicSymbolTable",
	SectionTypeInitializerArray:       "InitializerArray",
	SectionTypeFinalizerArray:         "FinalizerArray",
	SectionTypePreInitializerArray:    "PreInitializerArray",
	SectionTypeGroup:                  "Group",
	SectionTypeExtendedSectionIndices: "ExtendedSectionIndices",
	SectionTypeNumDefinedTypes:        "NumDefinedTypes",
}

func (stype SectionType) String() string {
	name, ok := sectionTypeNames[stype]
	if !ok {
		return fmt.Sprintf("SectionTypeUnknown(%#x)", uint32(stype))
	}

	return name
}

// sh_flags
//
// Bit set, not an exhaustive enumeration.  Reserved bits are preserved.
type SectionFlags uint64

const (
	SectionContainsWritableData         = SectionFlags(0x1)   // SHF_WRITE
	SectionOccupiesMemory               = SectionFlags(0x2)   // SHF_ALLOC
	SectionContainsInstructions         = SectionFlags(0x4)   // SHF_EXECINSTR
	SectionMayBeMerged                  = SectionFlags(0x10)  // SHF_MERGE
	SectionContainsStrings              = SectionFlags(0x20)  // SHF_STRINGS
	SectionInfoHoldsSectionIndex        = SectionFlags(0x40)  // SHF_INFO_LINK
	SectionRequiresSpecialOrdering      = SectionFlags(0x80)  // SHF_LINK_ORDER
	SectionRequiresOsSpecificProcessing = SectionFlags(0x100) // SHF_OS_NONCONFORMING
	SectionIsGroupMember                = SectionFlags(0x200) // SHF_GROUP
	SectionContainsTLSData              = SectionFlags(0x400) // SHF_TLS
	SectionIsCompressed                 = SectionFlags(0x800) // SHF_COMPRESSED
)

func (flags SectionFlags) String() string {
	result := make([]byte, 11)
	for i := 0; i < 11; i++ {
		result[i] = '-'
	}

	if flags&SectionContainsWritableData != 0 {
		result[0] = 'w'
	}
	if flags&SectionOccupiesMemory != 0 {
		result[1] = 'a'
	}
	if flags&SectionContainsInstructions != 0 {
		result[2] = 'x'
	}
	if flags&SectionMayBeMerged != 0 {
		result[3] = 'm'
	}
	if flags&SectionContainsStrings != 0 {
		result[4] = 's'
	}
	if flags&SectionInfoHoldsSectionIndex != 0 {
		result[5] = 'i'
	}
	if flags&SectionRequiresSpecialOrdering != 0 {
		result[6] = 'l'
	}
	if flags&SectionRequiresOsSpecificProcessing != 0 {
		result[7] = 'o'
	}
	if flags&SectionIsGroupMember != 0 {
		result[8] = 'g'
	}
	if flags&SectionContainsTLSData != 0 {
		result[9] = 't'
	}
	if flags&SectionIsCompressed != 0 {
		result[10] = 'c'
	}

	return string(result)
}

// e_shstrndx
type SectionIndex uint16

const (
	SectionIndexUndefined = SectionIndex(0) // SHN_UNDEF
)
