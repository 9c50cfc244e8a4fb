// Package elf provides ELF64 relocatable object (ET_REL) building
// utilities. This package has no dependency on compiler internals and can
// be used standalone for generating ELF64 object files.
package elf

import "encoding/binary"

// ELF64 constants.
const (
	ELFMAG0       = 0x7f
	ELFMAG1       = 'E'
	ELFMAG2       = 'L'
	ELFMAG3       = 'F'
	ELFCLASS64    = 2
	ELFDATA2LSB   = 1 // little endian
	EV_CURRENT    = 1
	ELFOSABI_NONE = 0

	ET_REL = 1 // relocatable object file

	EM_X86_64 = 62

	// Section header types.
	SHT_NULL     = 0
	SHT_PROGBITS = 1
	SHT_SYMTAB   = 2
	SHT_STRTAB   = 3
	SHT_RELA     = 4
	SHT_NOBITS   = 8

	// Section header flags.
	SHF_WRITE     = 0x1
	SHF_ALLOC     = 0x2
	SHF_EXECINSTR = 0x4
	SHF_INFO_LINK = 0x40

	// Symbol types (low 4 bits of st_info).
	STT_NOTYPE  = 0
	STT_OBJECT  = 1
	STT_FUNC    = 2
	STT_SECTION = 3
	STT_FILE    = 4

	// Symbol bindings (high 4 bits of st_info).
	STB_LOCAL  = 0
	STB_GLOBAL = 1
	STB_WEAK   = 2

	// Relocation types this backend emits.
	R_X86_64_64        = 1  // abs64
	R_X86_64_PC32      = 2  // pc-rel32
	R_X86_64_PLT32     = 4  // plt-pc-rel32
	R_X86_64_GOTPCREL  = 9  // got-pc-rel
	R_X86_64_32        = 10 // abs32

	// SHN_UNDEF marks an undefined-section symbol, i.e. one resolved by the
	// linker rather than defined in this object.
	SHN_UNDEF = 0

	ELF64HeaderSize        = 64
	ELF64SectionHeaderSize = 64
	ELF64SymbolSize        = 24
	ELF64RelaSize          = 24
)

// Header64 represents the ELF64 file header.
type Header64 struct {
	Ident     [16]byte
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint64
	PhOff     uint64
	ShOff     uint64
	Flags     uint32
	EhSize    uint16
	PhEntSize uint16
	PhNum     uint16
	ShEntSize uint16
	ShNum     uint16
	ShStrNdx  uint16
}

// appendTo writes hdr's fields, in file order, onto out.
func (hdr *Header64) appendTo(out []byte) []byte {
	out = append(out, hdr.Ident[:]...)
	out = appendLE16(out, hdr.Type)
	out = appendLE16(out, hdr.Machine)
	out = appendLE32(out, hdr.Version)
	out = appendLE64(out, hdr.Entry)
	out = appendLE64(out, hdr.PhOff)
	out = appendLE64(out, hdr.ShOff)
	out = appendLE32(out, hdr.Flags)
	out = appendLE16(out, hdr.EhSize)
	out = appendLE16(out, hdr.PhEntSize)
	out = appendLE16(out, hdr.PhNum)
	out = appendLE16(out, hdr.ShEntSize)
	out = appendLE16(out, hdr.ShNum)
	out = appendLE16(out, hdr.ShStrNdx)
	return out
}

// SectionHeader64 represents one ELF64 section header table entry.
type SectionHeader64 struct {
	Name      uint32
	Type      uint32
	Flags     uint64
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntSize   uint64
}

func (sh *SectionHeader64) appendTo(out []byte) []byte {
	out = appendLE32(out, sh.Name)
	out = appendLE32(out, sh.Type)
	out = appendLE64(out, sh.Flags)
	out = appendLE64(out, sh.Addr)
	out = appendLE64(out, sh.Offset)
	out = appendLE64(out, sh.Size)
	out = appendLE32(out, sh.Link)
	out = appendLE32(out, sh.Info)
	out = appendLE64(out, sh.AddrAlign)
	out = appendLE64(out, sh.EntSize)
	return out
}

func appendLE16(out []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(out, buf[:]...)
}

func appendLE32(out []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(out, buf[:]...)
}

func appendLE64(out []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(out, buf[:]...)
}
